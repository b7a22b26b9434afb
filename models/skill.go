package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SkillCategory groups skills in the skills matrix. Values are persisted as integers.
type SkillCategory int

const (
	SkillCategoryBackendSystems               SkillCategory = 1
	SkillCategoryERPEcosystem                 SkillCategory = 2
	SkillCategoryDataPerformance              SkillCategory = 3
	SkillCategoryIntegrationAndInfrastructure SkillCategory = 4
)

var skillCategoryNames = map[SkillCategory]string{
	SkillCategoryBackendSystems:               "BackendSystems",
	SkillCategoryERPEcosystem:                 "ERPEcosystem",
	SkillCategoryDataPerformance:              "DataPerformance",
	SkillCategoryIntegrationAndInfrastructure: "IntegrationAndInfrastructure",
}

func (c SkillCategory) String() string {
	if name, ok := skillCategoryNames[c]; ok {
		return name
	}
	return strconv.Itoa(int(c))
}

// Valid reports whether c is one of the known categories.
func (c SkillCategory) Valid() bool {
	_, ok := skillCategoryNames[c]
	return ok
}

// ParseSkillCategory accepts either the numeric value ("2") or the name ("ERPEcosystem", case-insensitive).
func ParseSkillCategory(s string) (SkillCategory, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if c := SkillCategory(n); c.Valid() {
			return c, nil
		}
		return 0, fmt.Errorf("unknown skill category %d", n)
	}
	for c, name := range skillCategoryNames {
		if strings.EqualFold(name, s) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown skill category %q", s)
}

// UnmarshalJSON accepts both numbers and category names. Numbers are not range-checked here.
func (c *SkillCategory) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*c = SkillCategory(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("skill category must be a number or a name: %w", err)
	}
	parsed, err := ParseSkillCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Skill represents one entry in the skills matrix
type Skill struct {
	BaseEntity
	Name         string        `json:"name" db:"name" gorm:"type:varchar(100);not null"`
	Category     SkillCategory `json:"category" db:"category" gorm:"type:integer;not null;index:idx_skills_category_order,priority:1"`
	Proficiency  int           `json:"proficiency" db:"proficiency" gorm:"not null;default:0"`
	DisplayOrder int           `json:"displayOrder" db:"display_order" gorm:"not null;default:0;index:idx_skills_category_order,priority:2"`
	IsActive     bool          `json:"isActive" db:"is_active" gorm:"not null;index"`
}
