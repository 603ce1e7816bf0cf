package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skillBody(proficiency any) map[string]any {
	return map[string]any{
		"name":        "Go",
		"category":    "backend",
		"icon":        "https://x/icon.svg",
		"proficiency": proficiency,
	}
}

func TestSkills_CreateThenList(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	rec := env.do(t, http.MethodPost, "/api/skills", skillBody(85))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decodeBody[models.Skill](t, rec)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.False(t, created.UpdatedAt.IsZero())
	assert.Equal(t, 85, created.Proficiency)

	raw := decodeBody[map[string]any](t, rec)
	assert.Contains(t, raw, "createdAt")
	assert.Contains(t, raw, "updatedAt")

	time.Sleep(2 * time.Millisecond)
	second := skillBody(70)
	second["name"] = "Rust"
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/api/skills", second).Code)

	rec = env.do(t, http.MethodGet, "/api/skills", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	skills := decodeBody[[]models.Skill](t, rec)
	require.Len(t, skills, 2)
	assert.Equal(t, "Rust", skills[0].Name, "newest first")
	assert.Equal(t, created.ID, skills[1].ID)
}

func TestSkills_ProficiencyBounds(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	tests := []struct {
		proficiency any
		wantStatus  int
		wantError   string
	}{
		{0, http.StatusBadRequest, `"proficiency" must be greater than or equal to 1`},
		{1, http.StatusCreated, ""},
		{100, http.StatusCreated, ""},
		{101, http.StatusBadRequest, `"proficiency" must be less than or equal to 100`},
		{nil, http.StatusBadRequest, `"proficiency" is required`},
	}

	for _, tt := range tests {
		rec := env.do(t, http.MethodPost, "/api/skills", skillBody(tt.proficiency))
		require.Equal(t, tt.wantStatus, rec.Code, "proficiency=%v: %s", tt.proficiency, rec.Body.String())
		if tt.wantError != "" {
			body := decodeBody[ErrorResponse](t, rec)
			assert.Equal(t, tt.wantError, body.Error)
			assert.Equal(t, "proficiency", body.Field)
			assert.Equal(t, "error", body.Status)
		}
	}
}

func TestSkills_RejectsUnknownCategoryAndBadIcon(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	body := skillBody(50)
	body["category"] = "mobile"
	rec := env.do(t, http.MethodPost, "/api/skills", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, `"category" must be one of [frontend, backend, database, devops, other]`, decodeBody[ErrorResponse](t, rec).Error)

	body = skillBody(50)
	body["icon"] = "not a uri"
	rec = env.do(t, http.MethodPost, "/api/skills", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, `"icon" must be a valid uri`, decodeBody[ErrorResponse](t, rec).Error)

	rec = env.do(t, http.MethodGet, "/api/skills", nil)
	assert.Empty(t, decodeBody[[]models.Skill](t, rec), "nothing is stored on validation failure")
}

func TestSkills_UpdateAndDelete(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	created := decodeBody[models.Skill](t, env.do(t, http.MethodPost, "/api/skills", skillBody(60)))

	rec := env.do(t, http.MethodPut, "/api/skills/"+created.ID.String(), skillBody(95))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeBody[models.Skill](t, rec)
	assert.Equal(t, 95, updated.Proficiency)
	assert.Equal(t, created.ID, updated.ID)

	rec = env.do(t, http.MethodDelete, "/api/skills/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, DeleteResponse{Status: "success", Message: "Skill deleted successfully"}, decodeBody[DeleteResponse](t, rec))

	rec = env.do(t, http.MethodDelete, "/api/skills/"+created.ID.String(), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Skill not found", decodeBody[ErrorResponse](t, rec).Error)
}

func TestSkills_UnknownOrMalformedID(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	rec := env.do(t, http.MethodPut, "/api/skills/"+uuid.NewString(), skillBody(50))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/skills/not-a-uuid", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Skill not found", decodeBody[ErrorResponse](t, rec).Error)
}
