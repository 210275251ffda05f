package scheduling

import (
	"context"

	"mentorship/models"
)

// MentorSource resolves a mentor profile. Implementations return
// ErrMentorNotFound (possibly wrapped) when the id does not exist.
type MentorSource interface {
	GetMentor(ctx context.Context, mentorID string) (*models.Mentor, error)
}

// BookedSlotSource lists the slots already held on a mentor's date.
type BookedSlotSource interface {
	GetBookedSlots(ctx context.Context, mentorID, date string) ([]models.TimeSlot, error)
}
