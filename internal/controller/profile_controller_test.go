package controller_test

import (
	"net/http"
	"testing"

	"ai-workspace-be/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profileData struct {
	Id       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Bio      string `json:"bio"`
	JobTitle string `json:"jobTitle"`
	Stats    struct {
		Workspaces int64 `json:"workspaces"`
		Notes      int64 `json:"notes"`
		Documents  int64 `json:"documents"`
		Cards      int64 `json:"cards"`
	} `json:"stats"`
}

func TestProfileStatsAndUpdate(t *testing.T) {
	env := testutil.NewEnv(t)
	ann := env.Signup(t, "Ann")

	env.CreateWorkspace(t, ann, "Home")
	createNote(t, env, ann, map[string]interface{}{"title": "One"})
	createNote(t, env, ann, map[string]interface{}{"title": "Two"})
	createCard(t, env, ann, map[string]interface{}{"title": "Card"})

	status, res := env.Do(t, http.MethodGet, "/api/profile", nil, ann.Token)
	require.Equal(t, http.StatusOK, status)
	var p profileData
	res.Decode(t, &p)
	assert.Equal(t, ann.Email, p.Email)
	assert.Equal(t, int64(1), p.Stats.Workspaces)
	assert.Equal(t, int64(2), p.Stats.Notes)
	assert.Equal(t, int64(0), p.Stats.Documents)
	assert.Equal(t, int64(1), p.Stats.Cards)

	status, res = env.Do(t, http.MethodPut, "/api/profile", map[string]interface{}{"bio": "Hiker", "jobTitle": " Editor "}, ann.Token)
	require.Equal(t, http.StatusOK, status, res.Error)
	res.Decode(t, &p)
	assert.Equal(t, "Ann", p.Name)
	assert.Equal(t, "Hiker", p.Bio)
	assert.Equal(t, "Editor", p.JobTitle)

	status, _ = env.Do(t, http.MethodPut, "/api/profile", map[string]interface{}{"name": "A"}, ann.Token)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestProfileChangePassword(t *testing.T) {
	env := testutil.NewEnv(t)
	ann := env.Signup(t, "Ann")

	status, res := env.Do(t, http.MethodPut, "/api/profile/password", map[string]string{
		"currentPassword": "wrong", "newPassword": "another1",
	}, ann.Token)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_PASSWORD", res.Code)

	status, _ = env.Do(t, http.MethodPut, "/api/profile/password", map[string]string{
		"currentPassword": "secret1", "newPassword": "another1",
	}, ann.Token)
	require.Equal(t, http.StatusOK, status)

	status, _ = env.Do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": ann.Email, "password": "secret1"}, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = env.Do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": ann.Email, "password": "another1"}, "")
	assert.Equal(t, http.StatusOK, status)
}
