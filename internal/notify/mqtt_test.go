package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	topic   string
	qos     byte
	payload []byte
	err     error
}

func (f *fakePublisher) Publish(topic string, qos byte, _ bool, payload []byte) error {
	f.topic, f.qos, f.payload = topic, qos, payload
	return f.err
}

func TestMQTTNotifier_SendPasswordReset(t *testing.T) {
	pub := &fakePublisher{}
	n := NewMQTTNotifier(pub, "recipes/reset", 1)

	msg := PasswordReset{
		UserID:    4,
		Email:     "cook@example.com",
		Token:     "abc",
		Link:      "http://localhost/reset-password/abc",
		ExpiresAt: time.Date(2026, 1, 1, 12, 5, 0, 0, time.UTC),
	}
	require.NoError(t, n.SendPasswordReset(context.Background(), msg))

	assert.Equal(t, "recipes/reset", pub.topic)
	assert.Equal(t, byte(1), pub.qos)

	var decoded PasswordReset
	require.NoError(t, json.Unmarshal(pub.payload, &decoded))
	assert.Equal(t, msg, decoded)
}

func TestMQTTNotifier_PublishFailure(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	n := NewMQTTNotifier(pub, "t", 0)

	err := n.SendPasswordReset(context.Background(), PasswordReset{UserID: 1})
	assert.ErrorContains(t, err, "broker down")
}
