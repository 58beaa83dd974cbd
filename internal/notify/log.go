package notify

import (
	"context"
	"recipe-manager/internal/logger"

	"go.uber.org/zap"
)

// LogNotifier writes the reset link to the operational log instead of
// delivering it.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) SendPasswordReset(_ context.Context, msg PasswordReset) error {
	logger.Info("Password reset link",
		zap.Int64("user_id", msg.UserID),
		zap.String("email", msg.Email),
		zap.String("reset_link", msg.Link),
		zap.Time("expires_at", msg.ExpiresAt),
		zap.String("event", "password_reset_link_logged"),
	)
	return nil
}
