package notification

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentorship/database/repository"
	"mentorship/models"

	"firebase.google.com/go/v4/messaging"
)

type captureSender struct {
	mu   sync.Mutex
	sent []*messaging.Message
}

func (c *captureSender) Send(_ context.Context, msg *messaging.Message) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, msg)
	return "msg-1", nil
}

type mapDevices map[string]string

func (m mapDevices) GetToken(_ context.Context, userID string) (string, error) {
	token, ok := m[userID]
	if !ok {
		return "", ErrNoDeviceToken
	}
	return token, nil
}

func (m mapDevices) SetToken(_ context.Context, userID, token string) error {
	m[userID] = token
	return nil
}

func newTestService(t *testing.T) (*DefaultNotificationService, *captureSender) {
	t.Helper()
	mentors := repository.NewMemoryMentorRepo(repository.DemoMentors()...)
	require.NoError(t, mentors.SetFCMToken(context.Background(), "mentor-amina", "amina-device"))

	sender := &captureSender{}
	svc, err := NewDefaultNotificationService(mentors, mapDevices{"student-1": "student-device"}, sender)
	require.NoError(t, err)
	return svc, sender
}

func TestSendMentorPush(t *testing.T) {
	svc, sender := newTestService(t)

	data := map[string]string{"sessionId": "s-1"}
	require.NoError(t, svc.SendMentorPushNotification(context.Background(), "mentor-amina", "New session", "body", data))

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "amina-device", msg.Token)
	assert.Equal(t, "mentor", msg.Data["role"])
	assert.Equal(t, "s-1", msg.Data["sessionId"])
	_, mutated := data["role"]
	assert.False(t, mutated, "caller data is not modified")

	err := svc.SendMentorPushNotification(context.Background(), "mentor-lucas", "t", "b", nil)
	assert.ErrorIs(t, err, ErrNoDeviceToken)
}

func TestSendMenteePush(t *testing.T) {
	svc, sender := newTestService(t)

	require.NoError(t, svc.SendMenteePushNotification(context.Background(), "student-1", "Reminder", "body", nil))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "student-device", sender.sent[0].Token)
	assert.Equal(t, "mentee", sender.sent[0].Data["role"])

	err := svc.SendMenteePushNotification(context.Background(), "student-2", "Reminder", "body", nil)
	assert.ErrorIs(t, err, ErrNoDeviceToken)
}

func TestNotifyAvailabilityUpdate(t *testing.T) {
	svc, sender := newTestService(t)

	mentor, err := svc.mentors.GetMentor(context.Background(), "mentor-amina")
	require.NoError(t, err)
	require.NoError(t, svc.NotifyAvailabilityUpdate(context.Background(), mentor))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Mentees can now book you on 3 days: Mon 09:00-17:00, Wed 09:00-17:00, Fri 09:00-17:00.", sender.sent[0].Notification.Body)

	silent := &models.Mentor{ID: "mentor-lucas", Availability: models.MentorAvailability{
		WeeklySchedule: []models.WeeklyScheduleEntry{{DayOfWeek: time.Monday, StartTime: "09:00", EndTime: "10:00", IsAvailable: true}},
	}}
	require.NoError(t, svc.NotifyAvailabilityUpdate(context.Background(), silent))
	assert.Len(t, sender.sent, 1, "no token, no push")
}
