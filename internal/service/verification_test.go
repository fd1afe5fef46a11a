package service

import (
	"context"
	"testing"
	"time"

	"github.com/geoexplorer/backend/internal/model"
	"github.com/geoexplorer/backend/internal/repository"
	"github.com/stretchr/testify/require"
)

func newVerificationService(t *testing.T) (*VerificationService, *captureNotifier) {
	t.Helper()
	codes := repository.NewVerificationCodeRepository(newTestDB(t))
	notifier := &captureNotifier{}
	return NewVerificationService(codes, notifier, 5*time.Minute, 6), notifier
}

func TestVerificationIssueAndRedeem(t *testing.T) {
	svc, notifier := newVerificationService(t)
	ctx := context.Background()

	code, err := svc.Issue(ctx, "user@example.com", model.CodePurposeRegister)
	require.NoError(t, err)
	require.Len(t, code, 6)
	require.Regexp(t, `^\d{6}$`, code)

	require.Equal(t, "user@example.com", notifier.target)
	require.Equal(t, code, notifier.code)
	require.Equal(t, model.CodePurposeRegister, notifier.purpose)

	ok, err := svc.Redeem(ctx, "user@example.com", code, model.CodePurposeRegister)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.Redeem(ctx, "user@example.com", code, model.CodePurposeRegister)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerificationReissueKillsPriorCode(t *testing.T) {
	svc, _ := newVerificationService(t)
	ctx := context.Background()

	old, err := svc.Issue(ctx, "user@example.com", model.CodePurposeLogin)
	require.NoError(t, err)

	// A newer register code invalidates the older login code too
	fresh, err := svc.Issue(ctx, "user@example.com", model.CodePurposeRegister)
	require.NoError(t, err)

	ok, err := svc.Redeem(ctx, "user@example.com", old, model.CodePurposeLogin)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = svc.Redeem(ctx, "user@example.com", fresh, model.CodePurposeRegister)
	require.NoError(t, err)
	require.True(t, ok)
}
