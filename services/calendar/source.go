package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mentorship/models"
	"mentorship/services/scheduling"

	"go.uber.org/zap"
)

// MergedSlotSource adds a mentor's external calendar busy time to the booked
// slots of the session store. Calendar failures are logged and skipped so an
// unreachable calendar never blocks bookings.
type MergedSlotSource struct {
	Sessions scheduling.BookedSlotSource
	Mentors  scheduling.MentorSource
	Syncer   Syncer
	Logger   *zap.Logger
}

func (m *MergedSlotSource) GetBookedSlots(ctx context.Context, mentorID, date string) ([]models.TimeSlot, error) {
	booked, err := m.Sessions.GetBookedSlots(ctx, mentorID, date)
	if err != nil {
		return nil, err
	}
	if m.Syncer == nil {
		return booked, nil
	}

	mentor, err := m.Mentors.GetMentor(ctx, mentorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load mentor %s: %w", mentorID, err)
	}
	if mentor.CalendarID == "" {
		return booked, nil
	}

	day, err := time.ParseInLocation(scheduling.DateLayout, date, mentor.Location())
	if err != nil {
		return nil, &scheduling.InvalidRequestError{Field: "date", Value: date}
	}
	busy, err := m.Syncer.Busy(ctx, mentor, day)
	if err != nil {
		if !errors.Is(err, ErrNoCalendar) {
			m.Logger.Warn("Calendar busy lookup failed; using session store only",
				zap.String("mentorID", mentorID), zap.String("date", date), zap.Error(err))
		}
		return booked, nil
	}

	merged := make([]models.TimeSlot, 0, len(booked)+len(busy))
	merged = append(merged, booked...)
	return append(merged, busy...), nil
}
