package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mentorship/database/repository"
	"mentorship/models"
	"mentorship/services/scheduling"
	"mentorship/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultBookingService) ValidateBooking(ctx context.Context, req models.BookingRequest) (*models.BookingValidation, error) {
	return s.Engine.Validator.Validate(ctx, req)
}

// GetAvailability serves from the cache when possible. Cache errors are
// logged and fall through to a fresh computation.
func (s *DefaultBookingService) GetAvailability(ctx context.Context, mentorID, date string) (*models.AvailabilityResponse, error) {
	if s.Cache != nil {
		cached, ok, err := s.Cache.Get(ctx, mentorID, date)
		if err != nil {
			s.logger().Warn("Availability cache read failed", zap.String("mentorID", mentorID), zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}

	resp, err := s.Engine.Responder.Respond(ctx, mentorID, date)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, resp); err != nil {
			s.logger().Warn("Availability cache write failed", zap.String("mentorID", mentorID), zap.Error(err))
		}
	}
	return resp, nil
}

// CreateBooking validates the request and then reserves the slot atomically.
// A request that fails validation returns *InvalidBookingError; losing a
// race to another booking returns repository.ErrSlotTaken.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, studentID string, req models.BookingRequest) (*models.Session, error) {
	req.StudentID = studentID

	mentor, err := s.Mentors.GetMentor(ctx, req.MentorID)
	if err != nil {
		return nil, err
	}

	validation, err := s.Engine.Validator.ValidateFor(ctx, mentor, req)
	if err != nil {
		return nil, err
	}
	if !validation.IsValid {
		return nil, &InvalidBookingError{Validation: validation}
	}

	day, window, err := s.Engine.Checker.ParseRequest(req, mentor.Location())
	if err != nil {
		return nil, err
	}

	now := s.clock().Now()
	session := &models.Session{
		ID:            uuid.NewString(),
		MentorID:      mentor.ID,
		StudentID:     studentID,
		Date:          req.Date,
		StartTime:     window.Start.String(),
		EndTime:       window.End.String(),
		StartsAt:      window.Start.On(day),
		SessionTypeID: req.SessionTypeID,
		Message:       req.Message,
		Agenda:        req.Agenda,
		Status:        models.SessionStatusConfirmed,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.Sessions.ReserveSlot(ctx, session); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			s.logger().Info("Slot lost to a concurrent booking",
				zap.String("mentorID", mentor.ID), zap.String("date", req.Date), zap.String("startTime", session.StartTime))
		}
		return nil, err
	}

	s.logger().Info("Session booked",
		zap.String("sessionID", session.ID),
		zap.String("mentorID", mentor.ID),
		zap.String("studentID", studentID),
		zap.Time("startsAt", session.StartsAt),
	)
	s.afterBooked(ctx, mentor, *session)
	return session, nil
}

// CancelBooking may be called by either participant. Cancelling twice is a no-op.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, userID, sessionID string) (*models.Session, error) {
	session, err := s.Sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if userID != session.MentorID && userID != session.StudentID {
		return nil, ErrForbidden
	}
	if !session.Active() {
		return session, nil
	}

	if err := s.Sessions.UpdateStatus(ctx, sessionID, models.SessionStatusCancelled); err != nil {
		return nil, fmt.Errorf("failed to cancel session %s: %w", sessionID, err)
	}
	session.Status = models.SessionStatusCancelled
	session.UpdatedAt = s.clock().Now()

	s.logger().Info("Session cancelled", zap.String("sessionID", sessionID), zap.String("by", userID))
	s.afterCancelled(ctx, userID, *session)
	return session, nil
}

func (s *DefaultBookingService) ListSessions(ctx context.Context, userID, role string) ([]models.Session, error) {
	switch role {
	case utils.RoleMentor:
		return s.Sessions.ListByMentor(ctx, userID)
	case utils.RoleMentee:
		return s.Sessions.ListByStudent(ctx, userID)
	}
	return nil, fmt.Errorf("unknown role %q", role)
}

func (s *DefaultBookingService) GetMentor(ctx context.Context, mentorID string) (*models.Mentor, error) {
	return s.Mentors.GetMentor(ctx, mentorID)
}

func (s *DefaultBookingService) ListMentors(ctx context.Context) ([]models.Mentor, error) {
	return s.Mentors.List(ctx)
}

// UpdateMentorAvailability rejects malformed schedules before they are stored.
func (s *DefaultBookingService) UpdateMentorAvailability(
	ctx context.Context,
	callerID, mentorID string,
	req models.UpdateAvailabilityRequest,
) (*models.Mentor, error) {
	if callerID != mentorID {
		return nil, ErrForbidden
	}
	if err := scheduling.ValidateAvailability(req.Availability); err != nil {
		return nil, err
	}
	if req.Timezone != "" {
		if _, err := time.LoadLocation(req.Timezone); err != nil {
			return nil, &scheduling.MalformedScheduleError{Field: "timezone", Value: req.Timezone, Reason: "unknown IANA timezone"}
		}
	}

	mentor, err := s.Mentors.UpdateAvailability(ctx, mentorID, req)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if err := s.Cache.InvalidateMentor(ctx, mentorID); err != nil {
			s.logger().Warn("Availability cache invalidation failed", zap.String("mentorID", mentorID), zap.Error(err))
		}
	}
	if s.Notifier != nil {
		if err := s.Notifier.NotifyAvailabilityUpdate(ctx, mentor); err != nil {
			s.logger().Warn("Availability update push failed", zap.String("mentorID", mentorID), zap.Error(err))
		}
	}
	return mentor, nil
}

// RegisterDevice stores the caller's FCM token where the notifier looks it up.
func (s *DefaultBookingService) RegisterDevice(ctx context.Context, userID, role, token string) error {
	switch role {
	case utils.RoleMentor:
		return s.Mentors.SetFCMToken(ctx, userID, token)
	case utils.RoleMentee:
		if s.Devices == nil {
			return errors.New("device registration is not configured")
		}
		return s.Devices.SetToken(ctx, userID, token)
	}
	return fmt.Errorf("unknown role %q", role)
}
