package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	apperrors "github.com/geoexplorer/backend/internal/errors"
	"github.com/geoexplorer/backend/internal/model"
	"github.com/geoexplorer/backend/internal/notifier"
	"github.com/geoexplorer/backend/internal/repository"
	"github.com/geoexplorer/backend/pkg/logger"
	"go.uber.org/zap"
)

// VerificationService issues and redeems one-time verification codes.
type VerificationService struct {
	codes      *repository.VerificationCodeRepository
	notifier   notifier.Notifier
	codeTTL    time.Duration
	codeLength int
}

func NewVerificationService(
	codes *repository.VerificationCodeRepository,
	n notifier.Notifier,
	codeTTL time.Duration,
	codeLength int,
) *VerificationService {
	return &VerificationService{
		codes:      codes,
		notifier:   n,
		codeTTL:    codeTTL,
		codeLength: codeLength,
	}
}

// generateCode draws a uniformly random numeric code of the configured length.
func (s *VerificationService) generateCode() (string, error) {
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(s.codeLength)), nil)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%0*d", s.codeLength, n), nil
}

// Issue invalidates every outstanding unused code for the target, persists a
// fresh code with an absolute expiry, and hands it to the notifier. Prior
// codes die regardless of purpose: a register code for a target is killed by
// a later login code and vice versa.
func (s *VerificationService) Issue(ctx context.Context, target, purpose string) (string, error) {
	code, err := s.generateCode()
	if err != nil {
		return "", apperrors.WrapError(apperrors.ErrInternal, err)
	}

	invalidated, err := s.codes.InvalidateUnused(ctx, target)
	if err != nil {
		return "", apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if invalidated > 0 {
		logger.GetLogger().Debug("Invalidated outstanding verification codes",
			zap.String("target", target),
			zap.Int64("count", invalidated),
		)
	}

	record := &model.VerificationCode{
		Target:    target,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(s.codeTTL),
	}
	if err := s.codes.Create(ctx, record); err != nil {
		return "", apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.notifier.SendCode(ctx, target, code, purpose); err != nil {
		logger.GetLogger().Error("Failed to deliver verification code",
			zap.String("target", target),
			zap.String("purpose", purpose),
			zap.Error(err),
		)
		return "", apperrors.WrapError(apperrors.ErrServiceUnavailable, err)
	}

	return code, nil
}

// Redeem consumes a matching code exactly once. Wrong code, wrong purpose,
// expired, or already used all come back as a plain false.
func (s *VerificationService) Redeem(ctx context.Context, target, code, purpose string) (bool, error) {
	ok, err := s.codes.Redeem(ctx, target, code, purpose, time.Now())
	if err != nil {
		return false, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return ok, nil
}

// CleanupExpired deletes codes past their expiry; returns the number removed.
func (s *VerificationService) CleanupExpired(ctx context.Context) (int64, error) {
	count, err := s.codes.DeleteExpired(ctx, time.Now())
	if err != nil {
		return 0, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return count, nil
}
