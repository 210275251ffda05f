package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"mentorship/models"
	"mentorship/utils"

	"github.com/hibiken/asynq"
)

const (
	TypeSendReminder = "reminder:send"
	TypeCalendarSync = "calendar:sync"
)

// Enqueuer schedules tasks. *asynq.Client satisfies it.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID(fmt.Sprintf("reminder:%s:%s", payload.SessionID, payload.Target)),
		asynq.MaxRetry(3),
	}
	return task, opts, nil
}

// SessionReminders builds one reminder for each participant, firing lead
// before the session starts. Returns nil when that moment is already past.
func SessionReminders(s models.Session, mentorName string, lead time.Duration, now time.Time) []models.ReminderPayload {
	fireAt := s.StartsAt.Add(-lead)
	if !fireAt.After(now) {
		return nil
	}
	fire := fireAt.UTC().Format(time.RFC3339)
	when := fmt.Sprintf("%s at %s", s.Date, s.StartTime)

	return []models.ReminderPayload{
		{
			SessionID: s.ID,
			ID:        s.MentorID,
			Target:    utils.RoleMentor,
			Title:     "Upcoming mentorship session",
			Body:      fmt.Sprintf("Your session with a mentee starts %s.", when),
			FireDate:  fire,
		},
		{
			SessionID: s.ID,
			ID:        s.StudentID,
			Target:    utils.RoleMentee,
			Title:     "Upcoming mentorship session",
			Body:      fmt.Sprintf("Your session with %s starts %s.", mentorName, when),
			FireDate:  fire,
		},
	}
}

// ScheduleReminders enqueues every reminder payload at its fire date.
func ScheduleReminders(ctx context.Context, q Enqueuer, payloads []models.ReminderPayload) error {
	for _, p := range payloads {
		fireAt, err := time.Parse(time.RFC3339, p.FireDate)
		if err != nil {
			return fmt.Errorf("invalid reminder fire date %q: %w", p.FireDate, err)
		}
		task, opts, err := NewReminderTask(p, fireAt)
		if err != nil {
			return err
		}
		if _, err := q.EnqueueContext(ctx, task, opts...); err != nil {
			return fmt.Errorf("enqueue reminder for %s %s: %w", p.Target, p.ID, err)
		}
	}
	return nil
}
