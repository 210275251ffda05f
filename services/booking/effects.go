package booking

import (
	"context"
	"fmt"

	"mentorship/models"
	"mentorship/services/events"
	"mentorship/services/tasks"
	"mentorship/utils"

	"go.uber.org/zap"
)

func (s *DefaultBookingService) lookahead() int {
	if s.Engine != nil && s.Engine.Suggester != nil && s.Engine.Suggester.LookaheadDays > 0 {
		return s.Engine.Suggester.LookaheadDays
	}
	return 3
}

func (s *DefaultBookingService) invalidate(ctx context.Context, session models.Session) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx, session.MentorID, affectedDates(session.Date, s.lookahead())...); err != nil {
		s.logger().Warn("Availability cache invalidation failed", zap.String("sessionID", session.ID), zap.Error(err))
	}
}

// afterBooked runs the side effects of a new session. None of them can undo
// the booking; failures are only logged.
func (s *DefaultBookingService) afterBooked(ctx context.Context, mentor *models.Mentor, session models.Session) {
	log := s.logger().With(zap.String("sessionID", session.ID))
	s.invalidate(ctx, session)

	if s.Notifier != nil {
		body := fmt.Sprintf("A mentee booked %s at %s.", session.Date, session.StartTime)
		data := map[string]string{"type": "session_booked", "sessionId": session.ID}
		if err := s.Notifier.SendMentorPushNotification(ctx, mentor.ID, "New mentorship session", body, data); err != nil {
			log.Warn("Mentor push failed", zap.Error(err))
		}
	}

	if s.Tasks != nil {
		reminders := tasks.SessionReminders(session, mentor.Name, utils.ReminderLeadTime, s.clock().Now())
		if err := tasks.ScheduleReminders(ctx, s.Tasks, reminders); err != nil {
			log.Warn("Scheduling reminders failed", zap.Error(err))
		}
		if mentor.CalendarID != "" {
			if err := tasks.EnqueueCalendarSync(ctx, s.Tasks, session, tasks.CalendarActionUpsert); err != nil {
				log.Warn("Calendar sync enqueue failed", zap.Error(err))
			}
		}
	}

	if s.Events != nil {
		if err := s.Events.PublishSession(ctx, events.RoutingSessionBooked, events.SessionEventFrom(session)); err != nil {
			log.Warn("Publishing session.booked failed", zap.Error(err))
		}
	}
}

// afterCancelled tells the other participant and cleans up derived state.
// Reminder tasks stay queued; the worker drops them for cancelled sessions.
func (s *DefaultBookingService) afterCancelled(ctx context.Context, cancelledBy string, session models.Session) {
	log := s.logger().With(zap.String("sessionID", session.ID))
	s.invalidate(ctx, session)

	if s.Notifier != nil {
		title := "Mentorship session cancelled"
		body := fmt.Sprintf("The session on %s at %s was cancelled.", session.Date, session.StartTime)
		data := map[string]string{"type": "session_cancelled", "sessionId": session.ID}

		var err error
		if cancelledBy == session.MentorID {
			err = s.Notifier.SendMenteePushNotification(ctx, session.StudentID, title, body, data)
		} else {
			err = s.Notifier.SendMentorPushNotification(ctx, session.MentorID, title, body, data)
		}
		if err != nil {
			log.Warn("Cancellation push failed", zap.Error(err))
		}
	}

	if s.Tasks != nil && session.CalendarEventID != "" {
		if err := tasks.EnqueueCalendarSync(ctx, s.Tasks, session, tasks.CalendarActionDelete); err != nil {
			log.Warn("Calendar delete enqueue failed", zap.Error(err))
		}
	}

	if s.Events != nil {
		if err := s.Events.PublishSession(ctx, events.RoutingSessionCancelled, events.SessionEventFrom(session)); err != nil {
			log.Warn("Publishing session.cancelled failed", zap.Error(err))
		}
	}
}
