package controller_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-workspace-be/internal/dto"
	"ai-workspace-be/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getHealth(t *testing.T, env *testutil.Env) (int, dto.HealthResponse) {
	t.Helper()
	resp, err := env.App.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body dto.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestHealthReportsDependencies(t *testing.T) {
	env := testutil.NewEnv(t)

	status, body := getHealth(t, env)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, dto.CheckOK, body.Checks.Database.Status)
	assert.Equal(t, dto.CheckDisabled, body.Checks.Redis.Status)
	assert.Equal(t, dto.CheckDisabled, body.Checks.Nats.Status)
	assert.Equal(t, dto.CheckOK, body.Checks.Config.JwtSecret)
	assert.Equal(t, dto.CheckOK, body.Checks.Config.AiKey)
	assert.False(t, body.Timestamp.IsZero())
}

func TestHealthDegradesWithoutDatabase(t *testing.T) {
	env := testutil.NewEnv(t)

	sqlDB, err := env.DB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	status, body := getHealth(t, env)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, dto.CheckError, body.Checks.Database.Status)
	assert.NotEmpty(t, body.Checks.Database.Error)
}
