package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-api/config"
	"github.com/rpupo63/portfolio-api/database"
	"github.com/rpupo63/portfolio-api/models"
	"github.com/rpupo63/portfolio-api/services"
	"github.com/rpupo63/portfolio-api/storage"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

const testKey = "test-secret-key"

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("connection refused") }

func testServices(t *testing.T) (Services, database.Database) {
	t.Helper()

	db, err := database.Open(context.Background(), database.Options{
		Driver:   database.DriverSQLite,
		DSN:      filepath.Join(t.TempDir(), "test.db"),
		LogLevel: gormlogger.Silent,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	store := database.New(db)
	t.Cleanup(func() { _ = store.Close() })

	projects := services.NewProjectService(store)
	skills := services.NewSkillService(store)
	experiences := services.NewExperienceService(store)
	profile := services.NewProfileService(store)

	return Services{
		Projects:    projects,
		Skills:      skills,
		Experiences: experiences,
		Profile:     profile,
		Portfolio:   services.NewPortfolioService(profile, projects, skills, experiences),
		Resume:      services.NewResumeService(storage.NewLocalStore(t.TempDir())),
	}, store
}

func testRouter(t *testing.T, security config.Security, opts ...func(*router)) http.Handler {
	t.Helper()
	svcs, store := testServices(t)
	opts = append([]func(*router){withSecurity(security), withExposeErrors(true)}, opts...)
	return newRouter(svcs, store, opts...)
}

func devRouter(t *testing.T) http.Handler {
	return testRouter(t, config.Security{APIKey: testKey})
}

func do(t *testing.T, h http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func withKey() map[string]string { return map[string]string{apiKeyHeader: testKey} }

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestProjectLifecycle(t *testing.T) {
	h := devRouter(t)

	rec := do(t, h, http.MethodPost, "/api/projects", map[string]any{
		"title":    "Portfolio API",
		"category": "Backend",
		"tags":     "go,postgres",
	}, withKey())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[services.ProjectResponse](t, rec)
	require.NotZero(t, created.ID)
	assert.Equal(t, fmt.Sprintf("/api/projects/%d", created.ID), rec.Header().Get("Location"))
	assert.True(t, created.IsActive)

	path := fmt.Sprintf("/api/projects/%d", created.ID)

	rec = do(t, h, http.MethodGet, path, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Portfolio API", decode[services.ProjectResponse](t, rec).Title)

	rec = do(t, h, http.MethodPut, path, map[string]any{"title": "Portfolio API v2"}, withKey())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[services.ProjectResponse](t, rec)
	assert.Equal(t, "Portfolio API v2", updated.Title)
	assert.Equal(t, "Backend", updated.Category)

	rec = do(t, h, http.MethodDelete, path, nil, withKey())
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = do(t, h, http.MethodGet, path, nil, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, fmt.Sprintf("Project with id %d not found", created.ID), decode[ErrorResponse](t, rec).Message)

	rec = do(t, h, http.MethodDelete, path, nil, withKey())
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/projects", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]services.ProjectResponse](t, rec))
}

func TestProjectValidation(t *testing.T) {
	h := devRouter(t)

	rec := do(t, h, http.MethodPost, "/api/projects", map[string]any{"title": "ab"}, withKey())
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Title must be at least 3 characters", decode[ErrorResponse](t, rec).Message)

	rec = do(t, h, http.MethodPost, "/api/projects", `{"title": `, withKey())
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/projects", "", withKey())
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/projects/abc", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPut, "/api/projects/999", map[string]any{"title": "x"}, withKey())
	assert.Equal(t, http.StatusNotFound, rec.Code, "lookup happens before validation")
}

func TestSkillsByCategory(t *testing.T) {
	h := devRouter(t)

	for _, s := range []map[string]any{
		{"name": "Go", "category": 1, "proficiency": 90, "displayOrder": 2},
		{"name": "SQL", "category": "DataPerformance", "proficiency": 85},
		{"name": "gRPC", "category": 1, "proficiency": 70, "displayOrder": 1},
		{"name": "Hidden", "category": 1, "proficiency": 50, "isActive": false},
	} {
		rec := do(t, h, http.MethodPost, "/api/skills", s, withKey())
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := do(t, h, http.MethodGet, "/api/skills/category/1", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	skills := decode[[]services.SkillResponse](t, rec)
	require.Len(t, skills, 2)
	assert.Equal(t, "gRPC", skills[0].Name)
	assert.Equal(t, "Go", skills[1].Name)

	rec = do(t, h, http.MethodGet, "/api/skills/category/dataperformance", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]services.SkillResponse](t, rec), 1)

	rec = do(t, h, http.MethodGet, "/api/skills/category/bogus", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/skills", map[string]any{"name": "Rust", "category": 1, "proficiency": 101}, withKey())
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Proficiency must be between 0 and 100", decode[ErrorResponse](t, rec).Message)
}

func TestExperienceCurrent(t *testing.T) {
	h := devRouter(t)

	rec := do(t, h, http.MethodGet, "/api/experiences/current", nil, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No current experience found", decode[ErrorResponse](t, rec).Message)

	rec = do(t, h, http.MethodPost, "/api/experiences", map[string]any{
		"title":     "Senior Engineer",
		"startDate": "2022-01-01",
		"isCurrent": true,
	}, withKey())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/experiences", map[string]any{
		"title":     "Engineer",
		"startDate": "2020-01-01",
		"endDate":   "2019-01-01",
	}, withKey())
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "EndDate must be greater than or equal to StartDate", decode[ErrorResponse](t, rec).Message)

	rec = do(t, h, http.MethodGet, "/api/experiences/current", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	current := decode[services.ExperienceResponse](t, rec)
	assert.Equal(t, "Senior Engineer", current.Title)
	assert.Equal(t, time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), current.StartDate)
}

func TestProfileUpsert(t *testing.T) {
	h := devRouter(t)

	rec := do(t, h, http.MethodGet, "/api/profile", nil, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Profile not found", decode[ErrorResponse](t, rec).Message)

	rec = do(t, h, http.MethodPut, "/api/profile", map[string]any{"name": "Rafael", "location": "Lisbon"}, withKey())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	first := decode[services.ProfileResponse](t, rec)

	rec = do(t, h, http.MethodPut, "/api/profile", map[string]any{"role": "Backend Engineer"}, withKey())
	require.Equal(t, http.StatusOK, rec.Code)
	second := decode[services.ProfileResponse](t, rec)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Rafael", second.Name)
	assert.Equal(t, "Backend Engineer", second.Role)
	require.NotNil(t, second.Location)
	assert.Equal(t, "Lisbon", *second.Location)
}

func TestPortfolio(t *testing.T) {
	h := devRouter(t)

	rec := do(t, h, http.MethodGet, "/api/portfolio", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	empty := decode[services.Portfolio](t, rec)
	assert.Nil(t, empty.Profile)

	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/api/projects", map[string]any{"title": "Ledger"}, withKey()).Code)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPut, "/api/profile", map[string]any{"name": "Rafael"}, withKey()).Code)

	rec = do(t, h, http.MethodGet, "/api/portfolio", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	full := decode[services.Portfolio](t, rec)
	require.NotNil(t, full.Profile)
	assert.Equal(t, "Rafael", full.Profile.Name)
	assert.Len(t, full.Projects, 1)
}

func TestWriteAccess(t *testing.T) {
	body := map[string]any{"title": "Secured"}

	t.Run("missing key", func(t *testing.T) {
		rec := do(t, devRouter(t), http.MethodPost, "/api/projects", body, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, decode[ErrorResponse](t, rec).Message, "API Key missing")
	})

	t.Run("invalid key", func(t *testing.T) {
		rec := do(t, devRouter(t), http.MethodPost, "/api/projects", body, map[string]string{apiKeyHeader: "nope"})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid API Key", decode[ErrorResponse](t, rec).Message)
	})

	t.Run("reads stay public", func(t *testing.T) {
		rec := do(t, devRouter(t), http.MethodGet, "/api/projects", nil, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("bearer token", func(t *testing.T) {
		token, err := IssueToken(testKey, "ci", time.Minute)
		require.NoError(t, err)
		rec := do(t, devRouter(t), http.MethodPost, "/api/projects", body, map[string]string{"Authorization": "Bearer " + token})
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("token signed with another key", func(t *testing.T) {
		token, err := IssueToken("other-key", "ci", time.Minute)
		require.NoError(t, err)
		rec := do(t, devRouter(t), http.MethodPost, "/api/projects", body, map[string]string{"Authorization": "Bearer " + token})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("no key outside production", func(t *testing.T) {
		h := testRouter(t, config.Security{})
		rec := do(t, h, http.MethodPost, "/api/projects", body, nil)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("no key in production", func(t *testing.T) {
		h := testRouter(t, config.Security{Production: true})
		rec := do(t, h, http.MethodPost, "/api/projects", body, nil)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "API Key validation not configured. Contact administrator.", decode[ErrorResponse](t, rec).Message)
	})
}

func TestAdminListings(t *testing.T) {
	h := devRouter(t)

	for _, p := range []map[string]any{
		{"title": "Visible", "displayOrder": 1},
		{"title": "Draft", "displayOrder": 2, "isActive": false},
		{"title": "Removed", "displayOrder": 3},
	} {
		require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/api/projects", p, withKey()).Code)
	}
	removed := decode[[]services.ProjectResponse](t, do(t, h, http.MethodGet, "/api/projects", nil, nil))
	require.Len(t, removed, 2)
	require.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, fmt.Sprintf("/api/projects/%d", removed[1].ID), nil, withKey()).Code)

	rec := do(t, h, http.MethodGet, "/api/projects/all", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/projects/all", nil, withKey())
	require.Equal(t, http.StatusOK, rec.Code)
	all := decode[[]services.AdminProjectResponse](t, rec)
	require.Len(t, all, 2)
	assert.Equal(t, "Visible", all[0].Title)
	assert.Equal(t, "Draft", all[1].Title)

	rec = do(t, h, http.MethodGet, "/api/projects/all?includeDeleted=true", nil, withKey())
	require.Equal(t, http.StatusOK, rec.Code)
	withDeleted := decode[[]services.AdminProjectResponse](t, rec)
	require.Len(t, withDeleted, 3)
	assert.False(t, withDeleted[0].IsDeleted)
	assert.True(t, withDeleted[2].IsDeleted)

	// public payloads never carry the soft-delete flag
	rec = do(t, h, http.MethodGet, fmt.Sprintf("/api/projects/%d", all[0].ID), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "isDeleted")

	rec = do(t, h, http.MethodGet, "/api/projects/all?includeDeleted=maybe", nil, withKey())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func uploadRequest(t *testing.T, path, contentType string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="resume.pdf"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(apiKeyHeader, testKey)
	return req
}

func TestResumeUploadAndDownload(t *testing.T) {
	h := devRouter(t)
	pdf := []byte("%PDF-1.7 resume")

	rec := do(t, h, http.MethodGet, "/api/resume/en", nil, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Resume file 'resume-en.pdf' not found", decode[ErrorResponse](t, rec).Message)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, uploadRequest(t, "/api/resume/en", "text/plain", []byte("hello")))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Only PDF files are allowed", decode[ErrorResponse](t, rec).Message)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, uploadRequest(t, "/api/resume/en", "application/pdf", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No file uploaded", decode[ErrorResponse](t, rec).Message)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, uploadRequest(t, "/api/resume/fr", "application/pdf", pdf))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, uploadRequest(t, "/api/resume/en", "application/pdf", pdf))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Resume uploaded successfully", decode[MessageResponse](t, rec).Message)

	rec = do(t, h, http.MethodGet, "/api/resume/en", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Resume.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, pdf, rec.Body.Bytes())

	rec = do(t, h, http.MethodPost, "/api/resume/en", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealth(t *testing.T) {
	h := devRouter(t)

	rec := do(t, h, http.MethodGet, "/healthz", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[HealthResponse](t, rec).Status)

	rec = do(t, h, http.MethodGet, "/readyz", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", decode[HealthResponse](t, rec).Status)

	svcs, _ := testServices(t)
	down := newRouter(svcs, failingPinger{}, withExposeErrors(false))
	rec = do(t, down, http.MethodGet, "/readyz", nil, nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Empty(t, decode[ErrorResponse](t, rec).Error)
}

func TestRequestIDHeader(t *testing.T) {
	h := devRouter(t)

	rec := do(t, h, http.MethodGet, "/healthz", nil, nil)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	const id = "0b7e1d2c-5f38-4a8c-9a57-3f1f6c2f0a11"
	rec = do(t, h, http.MethodGet, "/healthz", nil, map[string]string{requestIDHeader: id})
	assert.Equal(t, id, rec.Header().Get(requestIDHeader))
}

func TestPanicRecovery(t *testing.T) {
	for _, expose := range []bool{true, false} {
		t.Run(fmt.Sprintf("expose=%v", expose), func(t *testing.T) {
			r := chi.NewRouter()
			r.Use(RequestID)
			r.Use(LogInternalServerErrors(expose))
			r.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })

			rec := do(t, r, http.MethodGet, "/boom", nil, nil)
			require.Equal(t, http.StatusInternalServerError, rec.Code)
			body := decode[ErrorResponse](t, rec)
			assert.Equal(t, "Internal server error", body.Message)
			if !expose {
				assert.Empty(t, body.Error)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	h := testRouter(t, config.Security{APIKey: testKey}, withOrigins([]string{"https://example.com"}))

	preflight := map[string]string{
		"Origin":                        "https://example.com",
		"Access-Control-Request-Method": http.MethodPost,
	}
	rec := do(t, h, http.MethodOptions, "/api/projects", nil, preflight)
	assert.Equal(t, "https://example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	preflight["Origin"] = "https://evil.example"
	rec = do(t, h, http.MethodOptions, "/api/projects", nil, preflight)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, decode[ErrorResponse](t, rec).Details, "https://evil.example")

	prod := testRouter(t, config.Security{APIKey: testKey, Production: true},
		withOrigins([]string{"https://example.com"}), withExposeErrors(false))
	rec = do(t, prod, http.MethodOptions, "/api/projects", nil, preflight)
	require.Equal(t, http.StatusForbidden, rec.Code)
	body := decode[ErrorResponse](t, rec)
	assert.NotEmpty(t, body.Message)
	assert.Empty(t, body.Details)
	assert.NotContains(t, rec.Body.String(), "details")
}

func TestAuthFailureReasonIsLogged(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		reason  string
	}{
		{"missing", nil, "missing"},
		{"invalid", map[string]string{apiKeyHeader: "nope"}, "invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			auth := newAuthMiddleware(config.Security{APIKey: testKey}, true)
			auth.logger = zerolog.New(&buf)

			handler := auth.requireKey(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler must not run")
			}))
			rec := do(t, handler, http.MethodPost, "/api/projects", nil, tt.headers)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, buf.String(), `"reason":"`+tt.reason+`"`)
		})
	}
}

func TestSkillCategoryValidation(t *testing.T) {
	h := devRouter(t)

	tests := []struct {
		name    string
		body    map[string]any
		message string
	}{
		{"omitted", map[string]any{"name": "Go", "proficiency": 50}, "Category is required"},
		{"zero", map[string]any{"name": "Go", "category": 0, "proficiency": 50}, "Category is required"},
		{"out of range", map[string]any{"name": "Go", "category": 9, "proficiency": 50}, "Invalid skill category"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/skills", tt.body, withKey())
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Equal(t, tt.message, decode[ErrorResponse](t, rec).Message)
		})
	}

	for _, c := range []string{"0", "9", "-1"} {
		rec := do(t, h, http.MethodGet, "/api/skills/category/"+c, nil, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "category %s", c)
	}

	rec := do(t, h, http.MethodPost, "/api/skills", map[string]any{"name": "Go", "category": 2, "proficiency": 50}, withKey())
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[services.SkillResponse](t, rec)

	rec = do(t, h, http.MethodPut, fmt.Sprintf("/api/skills/%d", created.ID), map[string]any{"category": 9}, withKey())
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/skills/all?includeDeleted=true", nil, withKey())
	require.Equal(t, http.StatusOK, rec.Code)
	all := decode[[]services.AdminSkillResponse](t, rec)
	require.Len(t, all, 1)
	assert.Equal(t, models.SkillCategoryERPEcosystem, all[0].Category)
}

func TestSoftDeleteOverHTTP(t *testing.T) {
	tests := []struct {
		collection string
		resource   string
		body       map[string]any
		filtered   string
	}{
		{
			collection: "/api/skills",
			resource:   "Skill",
			body:       map[string]any{"name": "Go", "category": 1, "proficiency": 80},
			filtered:   "/api/skills/category/1",
		},
		{
			collection: "/api/experiences",
			resource:   "Experience",
			body:       map[string]any{"title": "Staff Engineer", "startDate": "2023-01-01", "isCurrent": true},
			filtered:   "/api/experiences/current",
		},
	}

	for _, tt := range tests {
		t.Run(tt.resource, func(t *testing.T) {
			h := devRouter(t)

			rec := do(t, h, http.MethodPost, tt.collection, tt.body, withKey())
			require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
			var created struct {
				ID uint `json:"id"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
			item := fmt.Sprintf("%s/%d", tt.collection, created.ID)

			require.Equal(t, http.StatusOK, do(t, h, http.MethodGet, tt.filtered, nil, nil).Code)

			rec = do(t, h, http.MethodDelete, item, nil, withKey())
			require.Equal(t, http.StatusNoContent, rec.Code)

			rec = do(t, h, http.MethodGet, item, nil, nil)
			require.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, fmt.Sprintf("%s with id %d not found", tt.resource, created.ID), decode[ErrorResponse](t, rec).Message)

			rec = do(t, h, http.MethodGet, tt.collection, nil, nil)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, "[]", rec.Body.String())

			rec = do(t, h, http.MethodGet, tt.collection+"/all", nil, withKey())
			require.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, "[]", rec.Body.String())

			rec = do(t, h, http.MethodGet, tt.filtered, nil, nil)
			switch tt.resource {
			case "Skill":
				require.Equal(t, http.StatusOK, rec.Code)
				assert.JSONEq(t, "[]", rec.Body.String())
			default:
				assert.Equal(t, http.StatusNotFound, rec.Code)
			}

			rec = do(t, h, http.MethodDelete, item, nil, withKey())
			assert.Equal(t, http.StatusNotFound, rec.Code)
		})
	}
}
