package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginAttemptRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewLoginAttemptRepository()

	n, err := repo.Failures(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	for i := 1; i <= 3; i++ {
		n, err = repo.RecordFailure(ctx, "ann@x.com", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}

	n, _ = repo.Failures(ctx, "ann@x.com")
	assert.Equal(t, 3, n)

	require.NoError(t, repo.Reset(ctx, "ann@x.com"))
	n, _ = repo.Failures(ctx, "ann@x.com")
	assert.Equal(t, 0, n)
}

func TestLoginAttemptWindowExpires(t *testing.T) {
	ctx := context.Background()
	repo := NewLoginAttemptRepository()

	_, err := repo.RecordFailure(ctx, "bob@x.com", 20*time.Millisecond)
	require.NoError(t, err)
	time.Sleep(40 * time.Millisecond)

	n, err := repo.Failures(ctx, "bob@x.com")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
