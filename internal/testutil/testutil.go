// Package testutil builds a complete server over a throwaway SQLite database
// and offers helpers to drive it through app.Test.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"ai-workspace-be/internal/bootstrap"
	"ai-workspace-be/internal/config"
	"ai-workspace-be/internal/model"
	"ai-workspace-be/internal/pkg/logger"
	"ai-workspace-be/internal/pkg/mailer"
	"ai-workspace-be/internal/pkg/metrics"
	"ai-workspace-be/internal/server"
	"ai-workspace-be/pkg/database"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const TestSecret = "test-secret-for-unit-tests"

// NewConfig returns a configuration that needs no external service.
func NewConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Port:               "0",
			BaseURL:            "http://localhost:3000",
			Environment:        "test",
			CorsAllowedOrigins: "http://localhost:5173",
			EventTopic:         "workspace.events",
			ShutdownTimeout:    time.Second,
		},
		Database: config.DatabaseConfig{Connection: "sqlite"},
		Auth: config.AuthConfig{
			JWTSecret:         TestSecret,
			TokenTTL:          time.Hour,
			BcryptCost:        4,
			MaxLoginAttempts:  5,
			LoginAttemptReset: time.Minute,
		},
		Ai: config.AIConfig{
			Provider: "openai",
			Model:    "test-model",
			APIKey:   "sk-test-key",
		},
	}
}

// NewDB opens a migrated SQLite database in a temp directory. Transactions
// take the write lock up front so concurrent writers wait instead of failing.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL&_txlock=immediate", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Env is a running server plus handles on what tests need to inspect.
type Env struct {
	App       *fiber.App
	DB        *gorm.DB
	LLM       *MockLLM
	Container *bootstrap.Container
	Config    *config.Config
}

// NewEnv wires the real container over SQLite with a mock LLM and no SMTP.
func NewEnv(t *testing.T) *Env {
	t.Helper()

	cfg := NewConfig()
	db := NewDB(t)
	llm := &MockLLM{}
	log := logger.NewNopLogger()

	infra := &bootstrap.Infrastructure{
		Gateway: database.NewGatewayFromDB(db),
		LLM:     llm,
		Mailer:  mailer.NewNoopEmailService(log),
		Logger:  log,
		Metrics: metrics.NewCollector(),
	}

	container, err := bootstrap.NewContainer(cfg, infra)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, container.Start(ctx))

	srv := server.New(cfg, container)
	return &Env{
		App:       srv.GetApp(),
		DB:        db,
		LLM:       llm,
		Container: container,
		Config:    cfg,
	}
}

// Envelope is the decoded body of any reply.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
}

// Decode unmarshals Data into out.
func (e Envelope) Decode(t *testing.T, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(e.Data, out))
}

// Do sends a JSON request and returns the status and the decoded envelope.
func (e *Env) Do(t *testing.T, method, path string, body interface{}, token string) (int, Envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return e.Send(t, req, token)
}

// Send runs a prepared request through the app.
func (e *Env) Send(t *testing.T, req *http.Request, token string) (int, Envelope) {
	t.Helper()

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.App.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env Envelope
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

var userSeq atomic.Int64

// User is an account created through the signup route.
type User struct {
	Id    string
	Name  string
	Email string
	Token string
}

// Signup registers a fresh user and returns its token.
func (e *Env) Signup(t *testing.T, name string) User {
	t.Helper()

	email := fmt.Sprintf("user%d@example.com", userSeq.Add(1))
	status, env := e.Do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"name":     name,
		"email":    email,
		"password": "secret1",
	}, "")
	require.Equal(t, http.StatusCreated, status, env.Error)

	var res struct {
		Token string `json:"token"`
		User  struct {
			Id string `json:"id"`
		} `json:"user"`
	}
	env.Decode(t, &res)
	return User{Id: res.User.Id, Name: name, Email: email, Token: res.Token}
}

// CreateWorkspace creates a workspace owned by owner and returns its id.
func (e *Env) CreateWorkspace(t *testing.T, owner User, name string) string {
	t.Helper()

	status, env := e.Do(t, http.MethodPost, "/api/workspaces", map[string]string{"name": name}, owner.Token)
	require.Equal(t, http.StatusCreated, status, env.Error)

	var res struct {
		Id string `json:"id"`
	}
	env.Decode(t, &res)
	return res.Id
}

// AddMember adds member to a workspace with the given role.
func (e *Env) AddMember(t *testing.T, by User, workspaceId string, member User, role string) {
	t.Helper()

	status, env := e.Do(t, http.MethodPost, "/api/members", map[string]string{
		"workspaceId": workspaceId,
		"email":       member.Email,
		"role":        role,
	}, by.Token)
	require.Equal(t, http.StatusCreated, status, env.Error)
}

// Count returns the number of rows of a table matching the condition.
func (e *Env) Count(t *testing.T, table string, query string, args ...interface{}) int64 {
	t.Helper()

	var n int64
	require.NoError(t, e.DB.Table(table).Where(query, args...).Count(&n).Error)
	return n
}
