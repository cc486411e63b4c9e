package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrUnavailable is returned when the store cannot be reached. Callers map it
// to 503 instead of a generic failure.
var ErrUnavailable = errors.New("database unavailable")

type PoolConfig struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxIdleConns:    10,
		MaxOpenConns:    100,
		ConnMaxLifetime: time.Hour,
	}
}

type Dialer func(dsn string) (*gorm.DB, error)

// Gateway owns the single pooled connection of the process. It connects on
// first use and hands out the same handle afterwards. A failed attempt is not
// cached, so the next request tries again.
type Gateway struct {
	dsn    string
	pool   PoolConfig
	dial   Dialer
	mu     sync.Mutex
	db     *gorm.DB
	closed bool
}

func getLogger() logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  true,
		},
	)
}

func configureConnectionPool(db *gorm.DB, pool PoolConfig) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)

	return nil
}

func openPostgres(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         getLogger(),
		TranslateError: true,
	})
}

func NewGateway(dsn string, pool PoolConfig) *Gateway {
	return &Gateway{dsn: dsn, pool: pool, dial: openPostgres}
}

// NewGatewayWithDialer lets callers pick another driver.
func NewGatewayWithDialer(dsn string, pool PoolConfig, dial Dialer) *Gateway {
	return &Gateway{dsn: dsn, pool: pool, dial: dial}
}

// NewGatewayFromDB wraps an already open handle.
func NewGatewayFromDB(db *gorm.DB) *Gateway {
	return &Gateway{db: db}
}

// DB returns the shared handle, connecting if this is the first call.
func (g *Gateway) DB(ctx context.Context) (*gorm.DB, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return nil, fmt.Errorf("%w: gateway closed", ErrUnavailable)
	}
	if g.db != nil {
		return g.db, nil
	}
	if g.dsn == "" {
		return nil, fmt.Errorf("%w: DB_CONNECTION_STRING is not set", ErrUnavailable)
	}

	db, err := g.dial(g.dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := configureConnectionPool(db, g.pool); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	g.db = db
	return g.db, nil
}

// Ping checks connectivity, connecting first if needed.
func (g *Gateway) Ping(ctx context.Context) error {
	db, err := g.DB(ctx)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Migrate creates or updates the tables of the given models.
func (g *Gateway) Migrate(ctx context.Context, models ...interface{}) error {
	db, err := g.DB(ctx)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).AutoMigrate(models...)
}

func (g *Gateway) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.closed = true
	if g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	g.db = nil
	return sqlDB.Close()
}
