package booking

import (
	"context"

	"mentorship/database/repository"
	"mentorship/models"
	"mentorship/services/events"
	"mentorship/services/notification"
	"mentorship/services/scheduling"
	"mentorship/services/tasks"

	"go.uber.org/zap"
)

// BookingService is the entry point the HTTP layer talks to.
type BookingService interface {
	ValidateBooking(ctx context.Context, req models.BookingRequest) (*models.BookingValidation, error)
	GetAvailability(ctx context.Context, mentorID, date string) (*models.AvailabilityResponse, error)
	CreateBooking(ctx context.Context, studentID string, req models.BookingRequest) (*models.Session, error)
	CancelBooking(ctx context.Context, userID, sessionID string) (*models.Session, error)
	ListSessions(ctx context.Context, userID, role string) ([]models.Session, error)

	GetMentor(ctx context.Context, mentorID string) (*models.Mentor, error)
	ListMentors(ctx context.Context) ([]models.Mentor, error)
	UpdateMentorAvailability(ctx context.Context, callerID, mentorID string, req models.UpdateAvailabilityRequest) (*models.Mentor, error)
	RegisterDevice(ctx context.Context, userID, role, token string) error
}

// DefaultBookingService implements BookingService. Cache, Notifier, Devices,
// Tasks and Events are optional; a nil collaborator disables that side effect.
type DefaultBookingService struct {
	Mentors  repository.MentorRepository
	Sessions repository.SessionRepository
	Engine   *scheduling.Engine
	Clock    scheduling.Clock

	Cache    AvailabilityCache
	Notifier notification.NotificationService
	Devices  notification.DeviceTokenStore
	Tasks    tasks.Enqueuer
	Events   events.Publisher
	Logger   *zap.Logger
}

var _ BookingService = (*DefaultBookingService)(nil)

func (s *DefaultBookingService) clock() scheduling.Clock {
	if s.Clock == nil {
		return scheduling.SystemClock{}
	}
	return s.Clock
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
