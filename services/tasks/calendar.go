package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"mentorship/models"

	"github.com/hibiken/asynq"
)

const (
	CalendarActionUpsert = "upsert"
	CalendarActionDelete = "delete"
)

func NewCalendarSyncTask(payload models.CalendarSyncPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeCalendarSync, b)
	opts := []asynq.Option{asynq.MaxRetry(5), asynq.Queue("calendar")}
	return task, opts, nil
}

// EnqueueCalendarSync asks the worker to push or remove the session's event.
func EnqueueCalendarSync(ctx context.Context, q Enqueuer, session models.Session, action string) error {
	task, opts, err := NewCalendarSyncTask(models.CalendarSyncPayload{
		SessionID: session.ID,
		MentorID:  session.MentorID,
		Action:    action,
	})
	if err != nil {
		return err
	}
	if _, err := q.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("enqueue calendar %s for session %s: %w", action, session.ID, err)
	}
	return nil
}
