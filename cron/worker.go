package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mentorship/config"
	"mentorship/database/repository"
	"mentorship/models"
	"mentorship/services/calendar"
	"mentorship/services/notification"
	"mentorship/services/tasks"
	"mentorship/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Worker handles the background tasks enqueued by the booking service.
type Worker struct {
	Sessions repository.SessionRepository
	Mentors  repository.MentorRepository
	Notifier notification.NotificationService
	Calendar calendar.Syncer // nil disables calendar sync
	Logger   *zap.Logger
}

// RedisOpt points asynq at the task queue database.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	}
}

// Mux registers every task handler.
func (w *Worker) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, w.HandleReminder)
	mux.HandleFunc(tasks.TypeCalendarSync, w.HandleCalendarSync)
	return mux
}

// Start runs the asynq server in the background, retrying startup with backoff.
// The returned server must be shut down by the caller.
func (w *Worker) Start(opt asynq.RedisClientOpt) *asynq.Server {
	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			"default":  3,
			"calendar": 1,
		},
		Logger: w.Logger.Sugar(),
	})
	mux := w.Mux()

	go func() {
		w.Logger.Info("Starting task worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			w.Logger.Error("Task worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if errors.Is(err, asynq.ErrServerClosed) || attempts == maxAttempts {
				w.Logger.Error("Task worker gave up; reminders and calendar sync are disabled")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}

// activeSession loads the session and reports whether it still holds its slot.
// A missing session is treated as inactive so the task is dropped.
func (w *Worker) activeSession(ctx context.Context, id string) (*models.Session, bool, error) {
	session, err := w.Sessions.GetByID(ctx, id)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return session, session.Active(), nil
}

func (w *Worker) HandleReminder(ctx context.Context, task *asynq.Task) error {
	var p models.ReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		w.Logger.Error("Invalid reminder payload", zap.Error(err))
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	log := w.Logger.With(zap.String("sessionID", p.SessionID), zap.String("target", p.Target))

	_, active, err := w.activeSession(ctx, p.SessionID)
	if err != nil {
		return err
	}
	if !active {
		log.Info("Dropping reminder for inactive session")
		return nil
	}

	data := map[string]string{
		"type":      "session_reminder",
		"sessionId": p.SessionID,
		"fireDate":  p.FireDate,
	}

	switch p.Target {
	case utils.RoleMentor:
		err = w.Notifier.SendMentorPushNotification(ctx, p.ID, p.Title, p.Body, data)
	case utils.RoleMentee:
		err = w.Notifier.SendMenteePushNotification(ctx, p.ID, p.Title, p.Body, data)
	default:
		log.Warn("Unknown reminder target")
		return nil
	}

	if errors.Is(err, notification.ErrNoDeviceToken) {
		log.Info("Reminder skipped; no device registered")
		return nil
	}
	if err != nil {
		log.Error("Failed to send reminder", zap.Error(err))
	}
	return err
}

func (w *Worker) HandleCalendarSync(ctx context.Context, task *asynq.Task) error {
	var p models.CalendarSyncPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		w.Logger.Error("Invalid calendar payload", zap.Error(err))
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	if w.Calendar == nil {
		return nil
	}
	log := w.Logger.With(zap.String("sessionID", p.SessionID), zap.String("action", p.Action))

	session, err := w.Sessions.GetByID(ctx, p.SessionID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		log.Info("Dropping calendar sync for unknown session")
		return nil
	}
	if err != nil {
		return err
	}
	mentor, err := w.Mentors.GetMentor(ctx, p.MentorID)
	if err != nil {
		return err
	}

	switch p.Action {
	case tasks.CalendarActionUpsert:
		if !session.Active() {
			return nil
		}
		eventID, err := w.Calendar.Upsert(ctx, mentor, session)
		if errors.Is(err, calendar.ErrNoCalendar) {
			return nil
		}
		if err != nil {
			log.Warn("Calendar upsert failed", zap.Error(err))
			return err
		}
		if err := w.Sessions.SetCalendarEventID(ctx, session.ID, eventID); err != nil {
			return err
		}
		log.Info("Session pushed to calendar", zap.String("eventID", eventID))
	case tasks.CalendarActionDelete:
		err := w.Calendar.Delete(ctx, mentor, session)
		if err != nil && !errors.Is(err, calendar.ErrNoCalendar) {
			log.Warn("Calendar delete failed", zap.Error(err))
			return err
		}
	default:
		log.Warn("Unknown calendar action")
	}
	return nil
}
