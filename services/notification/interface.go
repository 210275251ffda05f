package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mentorship/models"
	"mentorship/services/scheduling"
	"mentorship/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// Sender delivers one FCM message. *messaging.Client satisfies it.
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// NotificationService defines methods for sending FCM pushes.
type NotificationService interface {
	SendMentorPushNotification(ctx context.Context, mentorID, title, body string, data map[string]string) error
	SendMenteePushNotification(ctx context.Context, studentID, title, body string, data map[string]string) error
	NotifyAvailabilityUpdate(ctx context.Context, mentor *models.Mentor) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	mentors scheduling.MentorSource
	devices DeviceTokenStore
	sender  Sender
	logger  *zap.Logger
}

func NewDefaultNotificationService(
	mentors scheduling.MentorSource,
	devices DeviceTokenStore,
	sender Sender,
) (*DefaultNotificationService, error) {
	if mentors == nil || devices == nil || sender == nil {
		return nil, fmt.Errorf("notification service initialization error: mentor source, device store or sender is nil")
	}
	return &DefaultNotificationService{
		mentors: mentors,
		devices: devices,
		sender:  sender,
		logger:  utils.GetLogger(),
	}, nil
}

func withRole(data map[string]string, role string) map[string]string {
	out := make(map[string]string, len(data)+1)
	for k, v := range data {
		out[k] = v
	}
	if _, ok := out["role"]; !ok {
		out["role"] = role
	}
	return out
}

func buildMessage(token, title, body string, data map[string]string) *messaging.Message {
	return &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "sessions",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}
}

// SendMentorPushNotification looks up the mentor's FCM token and sends a push.
func (s *DefaultNotificationService) SendMentorPushNotification(
	ctx context.Context,
	mentorID, title, body string,
	data map[string]string,
) error {
	m, err := s.mentors.GetMentor(ctx, mentorID)
	if err != nil {
		return fmt.Errorf("SendMentorPushNotification: could not find mentor %s: %w", mentorID, err)
	}
	if m.FCMToken == "" {
		return fmt.Errorf("SendMentorPushNotification: mentor %s: %w", mentorID, ErrNoDeviceToken)
	}

	id, err := s.sender.Send(ctx, buildMessage(m.FCMToken, title, body, withRole(data, utils.RoleMentor)))
	if err != nil {
		return fmt.Errorf("SendMentorPushNotification: failed to send FCM message: %w", err)
	}
	s.logger.Debug("Mentor push sent", zap.String("mentorID", mentorID), zap.String("messageID", id))
	return nil
}

// SendMenteePushNotification sends to the device token the mentee registered.
func (s *DefaultNotificationService) SendMenteePushNotification(
	ctx context.Context,
	studentID, title, body string,
	data map[string]string,
) error {
	token, err := s.devices.GetToken(ctx, studentID)
	if err != nil {
		return fmt.Errorf("SendMenteePushNotification: student %s: %w", studentID, err)
	}

	id, err := s.sender.Send(ctx, buildMessage(token, title, body, withRole(data, utils.RoleMentee)))
	if err != nil {
		return fmt.Errorf("SendMenteePushNotification: failed to send FCM message: %w", err)
	}
	s.logger.Debug("Mentee push sent", zap.String("studentID", studentID), zap.String("messageID", id))
	return nil
}

// NotifyAvailabilityUpdate confirms a schedule change to the mentor. Mentors
// without a device are skipped silently.
func (s *DefaultNotificationService) NotifyAvailabilityUpdate(ctx context.Context, mentor *models.Mentor) error {
	if mentor.FCMToken == "" {
		return nil
	}

	var days []string
	for d := time.Sunday; d <= time.Saturday; d++ {
		if entry, ok := mentor.Availability.ScheduleFor(d); ok {
			days = append(days, fmt.Sprintf("%s %s-%s", d.String()[:3], entry.StartTime, entry.EndTime))
		}
	}

	title := "Your availability was updated"
	body := "You have no weekly hours set. Mentees cannot book you until you add some."
	if len(days) > 0 {
		body = fmt.Sprintf("Mentees can now book you on %d day%s: %s.", len(days), plural(len(days)), strings.Join(days, ", "))
	}

	return s.SendMentorPushNotification(ctx, mentor.ID, title, body, map[string]string{
		"type": "availability_update",
	})
}

// plural returns "s" if n is not 1, otherwise returns an empty string.
func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
