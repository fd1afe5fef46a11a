package repository

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/geoexplorer/backend/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRefreshTokenFindAndRevoke(t *testing.T) {
	repo := NewRefreshTokenRepository(newTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, repo.Create(ctx, &model.RefreshToken{
		UserID:    userID,
		TokenHash: "digest-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	got, err := repo.FindUserIDByHash(ctx, "digest-1", time.Now())
	require.NoError(t, err)
	require.Equal(t, userID, got)

	ok, err := repo.Revoke(ctx, "digest-1")
	require.NoError(t, err)
	require.True(t, ok)

	// Revocation is final: no lookup, no second revoke
	_, err = repo.FindUserIDByHash(ctx, "digest-1", time.Now())
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	ok, err = repo.Revoke(ctx, "digest-1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRefreshTokenRevokeConcurrent(t *testing.T) {
	repo := NewRefreshTokenRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.RefreshToken{
		UserID:    uuid.New(),
		TokenHash: "contested",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	const callers = 16
	var (
		winners int32
		wg      sync.WaitGroup
		errs    = make(chan error, callers)
	)
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			ok, err := repo.Revoke(ctx, "contested")
			if err != nil {
				errs <- err
				return
			}
			if ok {
				atomic.AddInt32(&winners, 1)
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	require.Equal(t, int32(1), winners)
}

func TestRefreshTokenExpiredNotFound(t *testing.T) {
	repo := NewRefreshTokenRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.RefreshToken{
		UserID:    uuid.New(),
		TokenHash: "digest-expired",
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	_, err := repo.FindUserIDByHash(ctx, "digest-expired", time.Now())
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestRefreshTokenRevokeAllForUser(t *testing.T) {
	repo := NewRefreshTokenRepository(newTestDB(t))
	ctx := context.Background()
	userID := uuid.New()
	otherID := uuid.New()

	for _, hash := range []string{"u1-a", "u1-b", "u1-c"} {
		require.NoError(t, repo.Create(ctx, &model.RefreshToken{
			UserID:    userID,
			TokenHash: hash,
			ExpiresAt: time.Now().Add(time.Hour),
		}))
	}
	require.NoError(t, repo.Create(ctx, &model.RefreshToken{
		UserID:    otherID,
		TokenHash: "u2-a",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	// One already revoked, so only two transitions remain
	ok, err := repo.Revoke(ctx, "u1-c")
	require.NoError(t, err)
	require.True(t, ok)

	count, err := repo.RevokeAllForUser(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)

	// The other user's session is untouched
	got, err := repo.FindUserIDByHash(ctx, "u2-a", time.Now())
	require.NoError(t, err)
	require.Equal(t, otherID, got)
}

func TestRefreshTokenDeleteExpired(t *testing.T) {
	repo := NewRefreshTokenRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.RefreshToken{
		UserID:    uuid.New(),
		TokenHash: "old",
		ExpiresAt: time.Now().Add(-time.Hour),
	}))
	require.NoError(t, repo.Create(ctx, &model.RefreshToken{
		UserID:    uuid.New(),
		TokenHash: "live",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	count, err := repo.DeleteExpired(ctx, time.Now())
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}
