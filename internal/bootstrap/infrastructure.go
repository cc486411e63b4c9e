package bootstrap

import (
	"context"
	"time"

	"ai-workspace-be/internal/config"
	"ai-workspace-be/internal/pkg/logger"
	"ai-workspace-be/internal/pkg/mailer"
	"ai-workspace-be/internal/pkg/metrics"
	"ai-workspace-be/pkg/database"
	"ai-workspace-be/pkg/llm"
	pktNats "ai-workspace-be/pkg/nats"

	"github.com/redis/go-redis/v9"
)

// Infrastructure holds the process wide clients. Redis and Nats stay nil
// when they are not configured or unreachable; the server runs without them.
// LLM and Mailer may be injected, otherwise they are built from config.
type Infrastructure struct {
	Gateway *database.Gateway
	Redis   *redis.Client
	Nats    *pktNats.Publisher
	LLM     llm.LLMProvider
	Mailer  mailer.IEmailService
	Logger  logger.ILogger
	Metrics *metrics.Collector
}

// Connect builds the infrastructure from config. Only the database gateway is
// mandatory and it connects lazily.
func Connect(cfg *config.Config, log logger.ILogger) *Infrastructure {
	infra := &Infrastructure{
		Gateway: database.NewGateway(cfg.Database.Connection, database.DefaultPoolConfig()),
		Logger:  log,
		Metrics: metrics.NewCollector(),
	}

	if cfg.App.RedisURL != "" {
		infra.Redis = connectRedis(cfg.App.RedisURL, log)
	}

	if cfg.App.NatsURL != "" {
		pub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Warn("BOOTSTRAP", "NATS unavailable, events stay in process", map[string]interface{}{"error": err.Error()})
		} else {
			infra.Nats = pub
		}
	}

	return infra
}

func connectRedis(url string, log logger.ILogger) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Warn("BOOTSTRAP", "Failed to parse Redis URL, using it as address", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("BOOTSTRAP", "Redis unavailable, running single instance", map[string]interface{}{"error": err.Error()})
		_ = rdb.Close()
		return nil
	}
	return rdb
}

// Close releases every client. Safe on partially built infrastructure.
func (i *Infrastructure) Close() {
	if i.Nats != nil {
		i.Nats.Close()
	}
	if i.Redis != nil {
		if err := i.Redis.Close(); err != nil {
			i.Logger.Warn("BOOTSTRAP", "Failed to close Redis", map[string]interface{}{"error": err.Error()})
		}
	}
	if i.Gateway != nil {
		if err := i.Gateway.Close(); err != nil {
			i.Logger.Warn("BOOTSTRAP", "Failed to close database", map[string]interface{}{"error": err.Error()})
		}
	}
}
