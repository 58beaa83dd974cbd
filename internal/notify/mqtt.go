package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"recipe-manager/internal/logger"
	"recipe-manager/pkg/mqtt"

	"go.uber.org/zap"
)

// MQTTNotifier publishes reset messages for an external mailer to deliver.
type MQTTNotifier struct {
	publisher mqtt.Publisher
	topic     string
	qos       byte
}

func NewMQTTNotifier(publisher mqtt.Publisher, topic string, qos byte) *MQTTNotifier {
	return &MQTTNotifier{publisher: publisher, topic: topic, qos: qos}
}

func (n *MQTTNotifier) SendPasswordReset(ctx context.Context, msg PasswordReset) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode reset message: %w", err)
	}

	if err := n.publisher.Publish(n.topic, n.qos, false, payload); err != nil {
		return fmt.Errorf("failed to publish reset message: %w", err)
	}

	logger.Info("Password reset message published",
		zap.Int64("user_id", msg.UserID),
		zap.String("topic", n.topic),
		zap.String("event", "password_reset_published"),
	)
	return nil
}
