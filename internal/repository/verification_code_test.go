package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/geoexplorer/backend/internal/model"
	"github.com/stretchr/testify/require"
)

func newCode(target, code, purpose string, expiresAt time.Time) *model.VerificationCode {
	return &model.VerificationCode{
		Target:    target,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: expiresAt,
	}
}

func TestVerificationCodeRedeemOnce(t *testing.T) {
	repo := NewVerificationCodeRepository(newTestDB(t))
	ctx := context.Background()
	expiry := time.Now().Add(5 * time.Minute)

	require.NoError(t, repo.Create(ctx, newCode("user@example.com", "123456", model.CodePurposeRegister, expiry)))

	ok, err := repo.Redeem(ctx, "user@example.com", "123456", model.CodePurposeRegister, time.Now())
	require.NoError(t, err)
	require.True(t, ok)

	// Second redemption of the same code must lose
	ok, err = repo.Redeem(ctx, "user@example.com", "123456", model.CodePurposeRegister, time.Now())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerificationCodeRedeemConcurrent(t *testing.T) {
	repo := NewVerificationCodeRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx,
		newCode("user@example.com", "123456", model.CodePurposeLogin, time.Now().Add(5*time.Minute))))

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
			ok, err := repo.Redeem(ctx, "user@example.com", "123456", model.CodePurposeLogin, time.Now())
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

func TestVerificationCodeRedeemChecksAllFields(t *testing.T) {
	repo := NewVerificationCodeRepository(newTestDB(t))
	ctx := context.Background()
	expiry := time.Now().Add(5 * time.Minute)

	require.NoError(t, repo.Create(ctx, newCode("user@example.com", "123456", model.CodePurposeRegister, expiry)))

	cases := []struct {
		name    string
		target  string
		code    string
		purpose string
	}{
		{"wrong code", "user@example.com", "654321", model.CodePurposeRegister},
		{"wrong target", "other@example.com", "123456", model.CodePurposeRegister},
		{"wrong purpose", "user@example.com", "123456", model.CodePurposeLogin},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := repo.Redeem(ctx, tc.target, tc.code, tc.purpose, time.Now())
			require.NoError(t, err)
			require.False(t, ok)
		})
	}

	// The real code is still redeemable afterwards
	ok, err := repo.Redeem(ctx, "user@example.com", "123456", model.CodePurposeRegister, time.Now())
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerificationCodeRedeemExpired(t *testing.T) {
	repo := NewVerificationCodeRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx,
		newCode("user@example.com", "123456", model.CodePurposeLogin, time.Now().Add(-time.Minute))))

	ok, err := repo.Redeem(ctx, "user@example.com", "123456", model.CodePurposeLogin, time.Now())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerificationCodeInvalidateUnused(t *testing.T) {
	repo := NewVerificationCodeRepository(newTestDB(t))
	ctx := context.Background()
	expiry := time.Now().Add(5 * time.Minute)

	// Codes for both purposes on one target, plus a bystander target
	require.NoError(t, repo.Create(ctx, newCode("user@example.com", "111111", model.CodePurposeRegister, expiry)))
	require.NoError(t, repo.Create(ctx, newCode("user@example.com", "222222", model.CodePurposeLogin, expiry)))
	require.NoError(t, repo.Create(ctx, newCode("other@example.com", "333333", model.CodePurposeLogin, expiry)))

	count, err := repo.InvalidateUnused(ctx, "user@example.com")
	require.NoError(t, err)
	require.Equal(t, int64(2), count)

	ok, err := repo.Redeem(ctx, "user@example.com", "111111", model.CodePurposeRegister, time.Now())
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = repo.Redeem(ctx, "other@example.com", "333333", model.CodePurposeLogin, time.Now())
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerificationCodeDeleteExpired(t *testing.T) {
	repo := NewVerificationCodeRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx,
		newCode("a@example.com", "111111", model.CodePurposeLogin, time.Now().Add(-time.Hour))))
	require.NoError(t, repo.Create(ctx,
		newCode("b@example.com", "222222", model.CodePurposeLogin, time.Now().Add(time.Hour))))

	count, err := repo.DeleteExpired(ctx, time.Now())
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	ok, err := repo.Redeem(ctx, "b@example.com", "222222", model.CodePurposeLogin, time.Now())
	require.NoError(t, err)
	require.True(t, ok)
}
