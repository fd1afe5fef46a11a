package notifier

import (
	"context"

	"github.com/geoexplorer/backend/internal/dto"
	"go.uber.org/zap"
)

// Notifier delivers a verification code to its target. Implementations may
// send email, SMS, or just log in development.
type Notifier interface {
	SendCode(ctx context.Context, target, code, purpose string) error
}

// LogNotifier writes codes to the application log. This is the development
// delivery channel; production deployments plug in a real email/SMS sender.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) SendCode(ctx context.Context, target, code, purpose string) error {
	channel := "sms"
	if dto.IsEmailTarget(target) {
		channel = "email"
	}
	n.log.Info("Verification code issued",
		zap.String("target", target),
		zap.String("code", code),
		zap.String("purpose", purpose),
		zap.String("channel", channel),
	)
	return nil
}
