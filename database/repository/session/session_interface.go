package sessionRepo

import (
	"context"
	"errors"

	"mentorship/models"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	// ErrSlotTaken is returned by ReserveSlot when an active session already
	// overlaps the requested window.
	ErrSlotTaken = errors.New("slot already booked")
)

// SessionRepository persists booked sessions. It also serves as the
// scheduling.BookedSlotSource for availability and validation.
type SessionRepository interface {
	// ReserveSlot inserts session only if no active session for the same
	// mentor and date overlaps it. The check and the insert are atomic.
	ReserveSlot(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id string) (*models.Session, error)
	GetBookedSlots(ctx context.Context, mentorID, date string) ([]models.TimeSlot, error)
	ListByMentor(ctx context.Context, mentorID string) ([]models.Session, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.Session, error)
	UpdateStatus(ctx context.Context, id, status string) error
	SetCalendarEventID(ctx context.Context, id, eventID string) error
}

// overlaps compares zero-padded "HH:MM" strings, which order like the times they encode.
func overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && bStart < aEnd
}
