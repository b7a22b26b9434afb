package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSkillCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    SkillCategory
		wantErr bool
	}{
		{"2", SkillCategoryERPEcosystem, false},
		{"ERPEcosystem", SkillCategoryERPEcosystem, false},
		{"dataperformance", SkillCategoryDataPerformance, false},
		{" 4 ", SkillCategoryIntegrationAndInfrastructure, false},
		{"Frontend", 0, true},
		{"0", 0, true},
		{"9", 0, true},
		{"-1", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSkillCategory(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSkillCategory_UnmarshalJSON(t *testing.T) {
	var s struct {
		Category SkillCategory `json:"category"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"category":3}`), &s))
	assert.Equal(t, SkillCategoryDataPerformance, s.Category)

	require.NoError(t, json.Unmarshal([]byte(`{"category":"BackendSystems"}`), &s))
	assert.Equal(t, SkillCategoryBackendSystems, s.Category)

	assert.Error(t, json.Unmarshal([]byte(`{"category":"nope"}`), &s))
	assert.Error(t, json.Unmarshal([]byte(`{"category":true}`), &s))
}

func TestSkillCategory_String(t *testing.T) {
	assert.Equal(t, "ERPEcosystem", SkillCategoryERPEcosystem.String())
	assert.Equal(t, "9", SkillCategory(9).String())
	assert.False(t, SkillCategory(0).Valid())
	assert.True(t, SkillCategoryBackendSystems.Valid())
}
