package controller_test

import (
	"net/http"
	"testing"

	"ai-workspace-be/internal/pkg/token"
	"ai-workspace-be/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authData struct {
	Token string `json:"token"`
	User  struct {
		Id    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
}

func TestSignupLoginProfileScenario(t *testing.T) {
	env := testutil.NewEnv(t)

	status, res := env.Do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"name": "Ann", "email": "ann@x.com", "password": "secret1",
	}, "")
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, res.Success)

	var signup authData
	res.Decode(t, &signup)
	assert.Equal(t, "ann@x.com", signup.User.Email)

	claims, err := token.NewManager(testutil.TestSecret, 0).Verify(signup.Token)
	require.NoError(t, err)
	assert.Equal(t, signup.User.Id, claims.UserID)

	status, res = env.Do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"name": "Ann", "email": "ann@x.com", "password": "secret1",
	}, "")
	assert.Equal(t, http.StatusConflict, status)
	assert.False(t, res.Success)
	assert.Equal(t, "EMAIL_EXISTS", res.Code)

	status, res = env.Do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "ann@x.com", "password": "wrong-password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_PASSWORD", res.Code)

	status, res = env.Do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "ann@x.com", "password": "secret1",
	}, "")
	require.Equal(t, http.StatusOK, status)
	var login authData
	res.Decode(t, &login)
	require.NotEmpty(t, login.Token)

	status, res = env.Do(t, http.MethodGet, "/api/profile", nil, login.Token)
	require.Equal(t, http.StatusOK, status)
	var profile struct {
		Email string `json:"email"`
	}
	res.Decode(t, &profile)
	assert.Equal(t, "ann@x.com", profile.Email)
}

func TestSignupNormalizesEmail(t *testing.T) {
	env := testutil.NewEnv(t)

	status, _ := env.Do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"name": "Bob", "email": "  Bob@Example.COM ", "password": "secret1",
	}, "")
	require.Equal(t, http.StatusCreated, status)

	status, res := env.Do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"name": "Bob", "email": "bob@example.com", "password": "secret1",
	}, "")
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "EMAIL_EXISTS", res.Code)

	status, res = env.Do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email": " BOB@example.com", "password": "secret1",
	}, "")
	require.Equal(t, http.StatusOK, status)
	var login authData
	res.Decode(t, &login)
	assert.Equal(t, "bob@example.com", login.User.Email)
}

func TestSignupValidation(t *testing.T) {
	env := testutil.NewEnv(t)

	t.Run("missing fields", func(t *testing.T) {
		status, res := env.Do(t, http.MethodPost, "/api/auth/signup", map[string]string{"name": "Ann"}, "")
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "MISSING_FIELDS", res.Code)
		assert.False(t, res.Success)
	})

	t.Run("short password", func(t *testing.T) {
		status, res := env.Do(t, http.MethodPost, "/api/auth/signup", map[string]string{
			"name": "Ann", "email": "short@x.com", "password": "123",
		}, "")
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "VALIDATION_ERROR", res.Code)
	})

	t.Run("invalid json", func(t *testing.T) {
		req := newRawRequest(http.MethodPost, "/api/auth/signup", "{not json", "application/json")
		status, res := env.Send(t, req, "")
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "INVALID_BODY", res.Code)
	})
}

func TestLoginUnknownEmail(t *testing.T) {
	env := testutil.NewEnv(t)

	status, res := env.Do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "nobody@x.com", "password": "secret1",
	}, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", res.Code)
}

func TestLoginThrottle(t *testing.T) {
	env := testutil.NewEnv(t)
	user := env.Signup(t, "Ann")

	for i := 0; i < env.Config.Auth.MaxLoginAttempts; i++ {
		status, _ := env.Do(t, http.MethodPost, "/api/auth/login", map[string]string{
			"email": user.Email, "password": "wrong-password",
		}, "")
		require.Equal(t, http.StatusUnauthorized, status)
	}

	status, res := env.Do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email": user.Email, "password": "secret1",
	}, "")
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "TOO_MANY_ATTEMPTS", res.Code)
}

func TestVerify(t *testing.T) {
	env := testutil.NewEnv(t)
	user := env.Signup(t, "Ann")

	status, res := env.Do(t, http.MethodGet, "/api/auth/verify", nil, user.Token)
	require.Equal(t, http.StatusOK, status)
	var me struct {
		Id string `json:"id"`
	}
	res.Decode(t, &me)
	assert.Equal(t, user.Id, me.Id)

	t.Run("token of a deleted user", func(t *testing.T) {
		orphan, err := token.NewManager(testutil.TestSecret, 0).Issue(uuid.New(), "gone@x.com")
		require.NoError(t, err)

		status, _ := env.Do(t, http.MethodGet, "/api/auth/verify", nil, orphan)
		assert.Equal(t, http.StatusUnauthorized, status)
	})
}

func TestMutationsRequireToken(t *testing.T) {
	env := testutil.NewEnv(t)

	cases := []struct {
		method string
		path   string
		body   interface{}
	}{
		{http.MethodPost, "/api/workspaces", map[string]string{"name": "W"}},
		{http.MethodPost, "/api/notes", map[string]string{"title": "N"}},
		{http.MethodPost, "/api/documents", map[string]string{"title": "D", "content": "x"}},
		{http.MethodPost, "/api/cards", map[string]string{"title": "C"}},
		{http.MethodPost, "/api/chats", map[string]string{}},
		{http.MethodPut, "/api/profile", map[string]string{"name": "Zed"}},
		{http.MethodDelete, "/api/notes/" + uuid.NewString(), nil},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			status, res := env.Do(t, tc.method, tc.path, tc.body, "")
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.False(t, res.Success)
		})
	}

	t.Run("garbage token", func(t *testing.T) {
		status, res := env.Do(t, http.MethodPost, "/api/notes", map[string]string{"title": "N"}, "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "INVALID_TOKEN", res.Code)
	})

	for _, table := range []string{"workspaces", "notes", "documents", "cards", "chats"} {
		assert.Zero(t, env.Count(t, table, "1 = 1"), table)
	}
}
