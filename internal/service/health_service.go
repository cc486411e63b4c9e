package service

import (
	"context"
	"time"

	"ai-workspace-be/internal/config"
	"ai-workspace-be/internal/dto"

	"github.com/redis/go-redis/v9"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// ConnectionState is satisfied by the NATS publisher.
type ConnectionState interface {
	Connected() bool
}

type redisPinger struct {
	rdb *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.rdb.Ping(ctx).Err()
}

// RedisPinger adapts a Redis client, nil when Redis is not configured.
func RedisPinger(rdb *redis.Client) Pinger {
	if rdb == nil {
		return nil
	}
	return redisPinger{rdb: rdb}
}

type HealthDependencies struct {
	Database Pinger
	Redis    Pinger
	Nats     ConnectionState
	Config   *config.Config
}

type IHealthService interface {
	// Check reports ok only when the database answers.
	Check(ctx context.Context) *dto.HealthResponse
}

type healthService struct {
	deps    HealthDependencies
	timeout time.Duration
}

func NewHealthService(deps HealthDependencies) IHealthService {
	return &healthService{deps: deps, timeout: 2 * time.Second}
}

func (s *healthService) Check(ctx context.Context) *dto.HealthResponse {
	checks := dto.HealthChecks{
		Database: s.ping(ctx, s.deps.Database),
		Redis:    s.ping(ctx, s.deps.Redis),
		Nats:     dto.CheckResult{Status: dto.CheckDisabled},
		Config:   s.configChecks(),
	}
	if s.deps.Nats != nil {
		if s.deps.Nats.Connected() {
			checks.Nats.Status = dto.CheckOK
		} else {
			checks.Nats = dto.CheckResult{Status: dto.CheckError, Error: "not connected"}
		}
	}

	status := "ok"
	if checks.Database.Status != dto.CheckOK {
		status = "degraded"
	}
	return &dto.HealthResponse{
		Status:    status,
		Checks:    checks,
		Timestamp: time.Now().UTC(),
	}
}

func (s *healthService) ping(ctx context.Context, p Pinger) dto.CheckResult {
	if p == nil {
		return dto.CheckResult{Status: dto.CheckDisabled}
	}

	pingCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	if err := p.Ping(pingCtx); err != nil {
		return dto.CheckResult{Status: dto.CheckError, Error: err.Error()}
	}
	return dto.CheckResult{Status: dto.CheckOK, LatencyMs: time.Since(start).Milliseconds()}
}

func (s *healthService) configChecks() dto.ConfigChecks {
	cfg := s.deps.Config
	if cfg == nil {
		return dto.ConfigChecks{JwtSecret: dto.CheckPlaceholder, AiKey: dto.CheckPlaceholder, DatabaseUri: dto.CheckPlaceholder}
	}

	state := func(v string) string {
		if config.IsPlaceholder(v) {
			return dto.CheckPlaceholder
		}
		return dto.CheckOK
	}

	aiKey := state(cfg.Ai.APIKey)
	if cfg.Ai.Provider == "ollama" {
		aiKey = dto.CheckDisabled
	}
	return dto.ConfigChecks{
		JwtSecret:   state(cfg.Auth.JWTSecret),
		AiKey:       aiKey,
		DatabaseUri: state(cfg.Database.Connection),
	}
}
