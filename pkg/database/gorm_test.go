package database

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func sqliteDialer(dsn string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
}

func TestGatewayConnectsLazilyAndReuses(t *testing.T) {
	calls := 0
	dial := func(dsn string) (*gorm.DB, error) {
		calls++
		return sqliteDialer(dsn)
	}

	g := NewGatewayWithDialer("file:gateway_reuse?mode=memory&cache=shared", DefaultPoolConfig(), dial)
	assert.Equal(t, 0, calls)

	first, err := g.DB(context.Background())
	require.NoError(t, err)
	second, err := g.DB(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
	require.NoError(t, g.Ping(context.Background()))
	require.NoError(t, g.Close())
}

func TestGatewayReportsUnavailable(t *testing.T) {
	attempts := 0
	dial := func(string) (*gorm.DB, error) {
		attempts++
		return nil, errors.New("connection refused")
	}

	g := NewGatewayWithDialer("postgres://nowhere", DefaultPoolConfig(), dial)

	_, err := g.DB(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)

	// Failures are not cached.
	_, err = g.DB(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 2, attempts)
}

func TestGatewayWithoutDSN(t *testing.T) {
	g := NewGateway("", DefaultPoolConfig())
	_, err := g.DB(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGatewayClosed(t *testing.T) {
	db, err := sqliteDialer("file:gateway_closed?mode=memory&cache=shared")
	require.NoError(t, err)

	g := NewGatewayFromDB(db)
	require.NoError(t, g.Close())

	_, err = g.DB(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}
