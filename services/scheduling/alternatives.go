package scheduling

import (
	"context"
	"fmt"
	"time"

	"mentorship/models"
)

const defaultLookaheadDays = 3

// AlternativeSuggester proposes the first slot on each of the next few days.
// When Booked is nil only the schedule is consulted, so a suggestion may
// already be taken.
type AlternativeSuggester struct {
	Generator     *Generator
	Booked        BookedSlotSource
	LookaheadDays int
}

func (s *AlternativeSuggester) Suggest(ctx context.Context, mentor *models.Mentor, date time.Time) ([]models.AlternativeSlot, error) {
	days := s.LookaheadDays
	if days <= 0 {
		days = defaultLookaheadDays
	}

	alternatives := make([]models.AlternativeSlot, 0, days)
	for i := 1; i <= days; i++ {
		next := date.AddDate(0, 0, i)
		key := next.Format(DateLayout)

		slots, err := s.Generator.Generate(mentor.Availability, next)
		if err != nil {
			return nil, err
		}
		if len(slots) > 0 && s.Booked != nil {
			booked, err := s.Booked.GetBookedSlots(ctx, mentor.ID, key)
			if err != nil {
				return nil, fmt.Errorf("failed to load booked slots for %s: %w", key, err)
			}
			if slots, err = FreeSlots(slots, booked); err != nil {
				return nil, err
			}
		}
		if len(slots) == 0 {
			continue
		}

		alternatives = append(alternatives, models.AlternativeSlot{
			Date:      key,
			StartTime: slots[0].StartTime,
			EndTime:   slots[0].EndTime,
			Reason:    fmt.Sprintf("Available %d day(s) later", i),
		})
	}
	return alternatives, nil
}
