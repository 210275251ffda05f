package notification

import (
	"context"
	"errors"
	"fmt"

	"mentorship/utils"

	"firebase.google.com/go/v4/messaging"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ErrNoDeviceToken means the recipient never registered a device.
var ErrNoDeviceToken = errors.New("no FCM device token registered")

// DeviceTokenStore keeps the FCM token of each mentee. Mentor tokens live on
// the mentor profile.
type DeviceTokenStore interface {
	GetToken(ctx context.Context, userID string) (string, error)
	SetToken(ctx context.Context, userID, token string) error
}

// RedisDeviceTokenStore keeps tokens under "fcm:<userID>" without expiry.
type RedisDeviceTokenStore struct {
	client *redis.Client
}

func NewRedisDeviceTokenStore(client *redis.Client) *RedisDeviceTokenStore {
	return &RedisDeviceTokenStore{client: client}
}

func (s *RedisDeviceTokenStore) GetToken(ctx context.Context, userID string) (string, error) {
	token, err := s.client.Get(ctx, utils.DeviceTokenPrefix+userID).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoDeviceToken
	}
	if err != nil {
		return "", fmt.Errorf("failed to read device token: %w", err)
	}
	return token, nil
}

func (s *RedisDeviceTokenStore) SetToken(ctx context.Context, userID, token string) error {
	if err := s.client.Set(ctx, utils.DeviceTokenPrefix+userID, token, 0).Err(); err != nil {
		return fmt.Errorf("failed to store device token: %w", err)
	}
	return nil
}

// LogSender stands in for FCM when Firebase is not configured.
type LogSender struct {
	Logger *zap.Logger
}

func (s LogSender) Send(_ context.Context, msg *messaging.Message) (string, error) {
	title := ""
	if msg.Notification != nil {
		title = msg.Notification.Title
	}
	s.Logger.Info("Push notification (FCM disabled)", zap.String("title", title), zap.Any("data", msg.Data))
	return "logged", nil
}
