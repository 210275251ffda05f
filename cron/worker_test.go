package cron

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"mentorship/database/repository"
	"mentorship/models"
	"mentorship/services/notification"
	"mentorship/services/tasks"
	"mentorship/utils"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type sent struct{ role, id string }

type recordingNotifier struct {
	sent []sent
	err  error
}

func (r *recordingNotifier) SendMentorPushNotification(_ context.Context, id, _, _ string, _ map[string]string) error {
	r.sent = append(r.sent, sent{utils.RoleMentor, id})
	return r.err
}

func (r *recordingNotifier) SendMenteePushNotification(_ context.Context, id, _, _ string, _ map[string]string) error {
	r.sent = append(r.sent, sent{utils.RoleMentee, id})
	return r.err
}

func (r *recordingNotifier) NotifyAvailabilityUpdate(context.Context, *models.Mentor) error { return nil }

type stubCalendar struct {
	upserts, deletes int
}

func (s *stubCalendar) Upsert(context.Context, *models.Mentor, *models.Session) (string, error) {
	s.upserts++
	return "evt-1", nil
}

func (s *stubCalendar) Delete(context.Context, *models.Mentor, *models.Session) error {
	s.deletes++
	return nil
}

func (s *stubCalendar) Busy(context.Context, *models.Mentor, time.Time) ([]models.TimeSlot, error) {
	return nil, nil
}

func newWorker(t *testing.T) (*Worker, *recordingNotifier, *stubCalendar) {
	t.Helper()
	ctx := context.Background()

	mentors := repository.NewMemoryMentorRepo(models.Mentor{ID: "m-1", Name: "Amina", CalendarID: "cal"})
	sessions := repository.NewMemorySessionRepo()
	require.NoError(t, sessions.ReserveSlot(ctx, &models.Session{
		ID: "s-1", MentorID: "m-1", StudentID: "st-1", Date: "2026-03-04",
		StartTime: "10:00", EndTime: "10:30", Status: models.SessionStatusConfirmed,
	}))

	n := &recordingNotifier{}
	c := &stubCalendar{}
	return &Worker{Sessions: sessions, Mentors: mentors, Notifier: n, Calendar: c, Logger: zap.NewNop()}, n, c
}

func reminderTask(t *testing.T, target, id string) *asynq.Task {
	t.Helper()
	b, err := json.Marshal(models.ReminderPayload{SessionID: "s-1", ID: id, Target: target, Title: "t", Body: "b"})
	require.NoError(t, err)
	return asynq.NewTask(tasks.TypeSendReminder, b)
}

func calendarTask(t *testing.T, action string) *asynq.Task {
	t.Helper()
	task, _, err := tasks.NewCalendarSyncTask(models.CalendarSyncPayload{SessionID: "s-1", MentorID: "m-1", Action: action})
	require.NoError(t, err)
	return task
}

func TestHandleReminder(t *testing.T) {
	w, n, _ := newWorker(t)
	ctx := context.Background()

	require.NoError(t, w.HandleReminder(ctx, reminderTask(t, utils.RoleMentor, "m-1")))
	require.NoError(t, w.HandleReminder(ctx, reminderTask(t, utils.RoleMentee, "st-1")))
	require.NoError(t, w.HandleReminder(ctx, reminderTask(t, "admin", "x")))
	assert.Equal(t, []sent{{utils.RoleMentor, "m-1"}, {utils.RoleMentee, "st-1"}}, n.sent)
}

func TestHandleReminderSkipsCancelledSession(t *testing.T) {
	w, n, _ := newWorker(t)
	ctx := context.Background()
	require.NoError(t, w.Sessions.UpdateStatus(ctx, "s-1", models.SessionStatusCancelled))

	require.NoError(t, w.HandleReminder(ctx, reminderTask(t, utils.RoleMentor, "m-1")))
	assert.Empty(t, n.sent)
}

func TestHandleReminderWithoutDevice(t *testing.T) {
	w, n, _ := newWorker(t)
	n.err = notification.ErrNoDeviceToken

	assert.NoError(t, w.HandleReminder(context.Background(), reminderTask(t, utils.RoleMentee, "st-1")))
}

func TestHandleReminderBadPayload(t *testing.T) {
	w, _, _ := newWorker(t)

	err := w.HandleReminder(context.Background(), asynq.NewTask(tasks.TypeSendReminder, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleCalendarSync(t *testing.T) {
	w, _, c := newWorker(t)
	ctx := context.Background()

	require.NoError(t, w.HandleCalendarSync(ctx, calendarTask(t, tasks.CalendarActionUpsert)))
	assert.Equal(t, 1, c.upserts)

	s, err := w.Sessions.GetByID(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, "evt-1", s.CalendarEventID)

	require.NoError(t, w.Sessions.UpdateStatus(ctx, "s-1", models.SessionStatusCancelled))
	require.NoError(t, w.HandleCalendarSync(ctx, calendarTask(t, tasks.CalendarActionUpsert)))
	assert.Equal(t, 1, c.upserts, "cancelled sessions are not pushed")

	require.NoError(t, w.HandleCalendarSync(ctx, calendarTask(t, tasks.CalendarActionDelete)))
	assert.Equal(t, 1, c.deletes)
}

func TestMuxRoutesTasks(t *testing.T) {
	w, n, _ := newWorker(t)

	require.NoError(t, w.Mux().ProcessTask(context.Background(), reminderTask(t, utils.RoleMentor, "m-1")))
	assert.Len(t, n.sent, 1)
}
