package mentorRepo

import (
	"context"
	"time"

	"mentorship/models"
)

// MentorRepository is the single mentor store abstraction. Every backing
// implementation returns scheduling.ErrMentorNotFound (wrapped) for unknown ids.
type MentorRepository interface {
	GetMentor(ctx context.Context, mentorID string) (*models.Mentor, error)
	List(ctx context.Context) ([]models.Mentor, error)
	Create(ctx context.Context, mentor *models.Mentor) error
	UpdateAvailability(ctx context.Context, mentorID string, req models.UpdateAvailabilityRequest) (*models.Mentor, error)
	SetFCMToken(ctx context.Context, mentorID, token string) error
}

// applyAvailabilityUpdate copies the set fields of req onto m.
func applyAvailabilityUpdate(m *models.Mentor, req models.UpdateAvailabilityRequest, now time.Time) {
	m.Availability = req.Availability
	if req.MinimumNotice != nil {
		m.MinimumNotice = *req.MinimumNotice
	}
	if req.MaximumAdvanceBooking != nil {
		m.MaximumAdvanceBooking = *req.MaximumAdvanceBooking
	}
	if req.Timezone != "" {
		m.Timezone = req.Timezone
	}
	if req.CalendarID != "" {
		m.CalendarID = req.CalendarID
	}
	m.UpdatedAt = now
}
