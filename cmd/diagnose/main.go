package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"ai-workspace-be/internal/config"
	"ai-workspace-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
)

type report struct {
	failed int
}

func (r *report) pass(format string, args ...interface{}) {
	color.Green("  ✔ "+format, args...)
}

func (r *report) warn(format string, args ...interface{}) {
	color.Yellow("  ! "+format, args...)
}

func (r *report) fail(format string, args ...interface{}) {
	r.failed++
	color.Red("  ✘ "+format, args...)
}

func main() {
	baseURL := flag.String("base-url", "", "base URL of a running server, e.g. http://localhost:3000")
	smoke := flag.Bool("smoke", false, "run a signup/login round trip against -base-url")
	flag.Parse()

	cfg := config.Load()
	r := &report{}

	color.Cyan("AI Workspace diagnostics\n")

	color.Yellow("\n[1] Configuration")
	checkConfig(r, cfg)

	color.Yellow("\n[2] Database")
	checkDatabase(r, cfg)

	color.Yellow("\n[3] Redis")
	checkRedis(r, cfg)

	color.Yellow("\n[4] NATS")
	checkNats(r, cfg)

	if *baseURL != "" {
		client := &http.Client{Timeout: 10 * time.Second}
		api := strings.TrimRight(*baseURL, "/") + "/api"

		color.Yellow("\n[5] Health endpoint")
		checkHealth(r, client, api)

		if *smoke {
			color.Yellow("\n[6] Auth round trip")
			smokeAuth(r, client, api)
		}
	} else if *smoke {
		r.warn("-smoke needs -base-url, skipped")
	}

	fmt.Println()
	if r.failed > 0 {
		color.Red("%d check(s) failed", r.failed)
		os.Exit(1)
	}
	color.Green("All checks passed")
}

func checkConfig(r *report, cfg *config.Config) {
	if config.IsPlaceholder(cfg.Auth.JWTSecret) {
		r.fail("JWT_SECRET is a placeholder")
	} else {
		r.pass("JWT_SECRET set")
	}

	switch {
	case cfg.Ai.Provider == "ollama":
		r.pass("LLM provider ollama at %s", cfg.Ai.OllamaBaseURL)
	case config.IsPlaceholder(cfg.Ai.APIKey):
		r.warn("OPENAI_API_KEY is a placeholder, AI routes will fail")
	default:
		r.pass("LLM provider %s (%s)", cfg.Ai.Provider, cfg.Ai.Model)
	}

	if cfg.SMTP.Host == "" {
		r.warn("SMTP not configured, invite emails disabled")
	} else {
		r.pass("SMTP %s:%d", cfg.SMTP.Host, cfg.SMTP.Port)
	}
}

func checkDatabase(r *report, cfg *config.Config) {
	if cfg.Database.Connection == "" {
		r.fail("DB_CONNECTION_STRING is not set")
		return
	}
	gateway := database.NewGateway(cfg.Database.Connection, database.DefaultPoolConfig())
	defer gateway.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	if err := gateway.Ping(ctx); err != nil {
		r.fail("database: %v", err)
		return
	}
	r.pass("database reachable (%s)", time.Since(start).Round(time.Millisecond))
}

func checkRedis(r *report, cfg *config.Config) {
	if cfg.App.RedisURL == "" {
		r.warn("REDIS_URL not set, realtime stays single instance")
		return
	}
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)
	defer rdb.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		r.fail("redis: %v", err)
		return
	}
	r.pass("redis reachable")
}

func checkNats(r *report, cfg *config.Config) {
	if cfg.App.NatsURL == "" {
		r.warn("NATS_URL not set, events stay in process")
		return
	}
	nc, err := nats.Connect(cfg.App.NatsURL, nats.Timeout(3*time.Second))
	if err != nil {
		r.fail("nats: %v", err)
		return
	}
	defer nc.Close()
	r.pass("nats connected to %s", nc.ConnectedUrl())
}

func checkHealth(r *report, client *http.Client, api string) {
	resp, err := client.Get(api + "/health")
	if err != nil {
		r.fail("GET /health: %v", err)
		return
	}
	defer resp.Body.Close()

	var body struct {
		Status string `json:"status"`
		Checks map[string]json.RawMessage `json:"checks"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		r.fail("GET /health: unreadable body: %v", err)
		return
	}
	if resp.StatusCode != http.StatusOK {
		r.fail("GET /health: %d %s", resp.StatusCode, body.Status)
		return
	}
	r.pass("GET /health: %s", body.Status)
	for name, raw := range body.Checks {
		fmt.Printf("      %s: %s\n", name, string(raw))
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
}

func smokeAuth(r *report, client *http.Client, api string) {
	email := fmt.Sprintf("diagnose-%s@example.com", uuid.NewString()[:8])
	password := uuid.NewString()

	status, env, err := postJSON(client, api+"/auth/signup", map[string]string{
		"name":     "Diagnose",
		"email":    email,
		"password": password,
	}, "")
	if err != nil || status != http.StatusCreated {
		r.fail("signup: status=%d err=%v %s", status, err, env.Error)
		return
	}
	r.pass("signup %s", email)

	status, env, err = postJSON(client, api+"/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	if err != nil || status != http.StatusOK {
		r.fail("login: status=%d err=%v %s", status, err, env.Error)
		return
	}
	var auth struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &auth); err != nil || auth.Token == "" {
		r.fail("login: no token in response")
		return
	}
	r.pass("login returned a token")

	req, _ := http.NewRequest(http.MethodGet, api+"/auth/verify", nil)
	req.Header.Set("Authorization", "Bearer "+auth.Token)
	resp, err := client.Do(req)
	if err != nil {
		r.fail("verify: %v", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		r.fail("verify: status=%d", resp.StatusCode)
		return
	}
	r.pass("verify accepted the token")
}

func postJSON(client *http.Client, url string, payload interface{}, bearer string) (int, envelope, error) {
	var env envelope
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, env, err
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return 0, env, err
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, env, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, env, err
	}
	_ = json.Unmarshal(raw, &env)
	return resp.StatusCode, env, nil
}
