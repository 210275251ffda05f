package scheduling

import (
	"context"
	"fmt"
	"sort"
	"time"

	"mentorship/models"
)

// AvailabilityResponder answers "what's free on date X for mentor Y".
type AvailabilityResponder struct {
	Mentors   MentorSource
	Booked    BookedSlotSource
	Generator *Generator
	Suggester *AlternativeSuggester
}

// Respond returns ErrMentorNotFound (wrapped) for unknown mentors and
// *InvalidRequestError for an unparseable date.
func (r *AvailabilityResponder) Respond(ctx context.Context, mentorID, date string) (*models.AvailabilityResponse, error) {
	mentor, err := r.Mentors.GetMentor(ctx, mentorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load mentor %s: %w", mentorID, err)
	}

	day, err := time.ParseInLocation(DateLayout, date, mentor.Location())
	if err != nil {
		return nil, &InvalidRequestError{Field: "date", Value: date}
	}

	generated, err := r.Generator.Generate(mentor.Availability, day)
	if err != nil {
		return nil, err
	}

	booked, err := r.Booked.GetBookedSlots(ctx, mentor.ID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load booked slots: %w", err)
	}
	bookedSlots := make([]models.TimeSlot, len(booked))
	for i, b := range booked {
		b.IsBooked, b.IsAvailable = true, false
		bookedSlots[i] = b
	}
	sort.SliceStable(bookedSlots, func(i, j int) bool { return bookedSlots[i].StartTime < bookedSlots[j].StartTime })

	available, err := FreeSlots(generated, bookedSlots)
	if err != nil {
		return nil, err
	}

	alternatives, err := r.Suggester.Suggest(ctx, mentor, day)
	if err != nil {
		return nil, err
	}

	return &models.AvailabilityResponse{
		MentorID:              mentor.ID,
		Date:                  date,
		AvailableSlots:        available,
		BookedSlots:           bookedSlots,
		SuggestedAlternatives: alternatives,
	}, nil
}
