package scheduling

import (
	"fmt"
	"math"
	"time"

	"mentorship/models"
)

const defaultSameDayAlternatives = 3

// ConflictChecker compares a requested slot against booked slots and the
// mentor's notice and advance-booking limits.
type ConflictChecker struct {
	Generator              *Generator
	Clock                  Clock
	SessionLength          time.Duration
	MaxSameDayAlternatives int
}

func NewConflictChecker(gen *Generator, clock Clock) *ConflictChecker {
	return &ConflictChecker{
		Generator:              gen,
		Clock:                  clock,
		SessionLength:          DefaultSlotLength,
		MaxSameDayAlternatives: defaultSameDayAlternatives,
	}
}

// ParseRequest resolves the request's date (midnight in loc) and its
// requested window. Unparseable fields return *InvalidRequestError.
func (c *ConflictChecker) ParseRequest(req models.BookingRequest, loc *time.Location) (time.Time, Window, error) {
	day, err := time.ParseInLocation(DateLayout, req.Date, loc)
	if err != nil {
		return time.Time{}, Window{}, &InvalidRequestError{Field: "date", Value: req.Date}
	}
	start, err := ParseTimeOfDay(req.StartTime)
	if err != nil || start >= 24*60 {
		return time.Time{}, Window{}, &InvalidRequestError{Field: "startTime", Value: req.StartTime}
	}
	return day, Window{Start: start, End: start.Add(c.sessionLength())}, nil
}

func (c *ConflictChecker) sessionLength() time.Duration {
	if c.SessionLength <= 0 {
		return DefaultSlotLength
	}
	return c.SessionLength
}

func (c *ConflictChecker) now() time.Time {
	if c.Clock == nil {
		return time.Now()
	}
	return c.Clock.Now()
}

// Check returns every applicable conflict, in a fixed order. An empty result
// means the request can be booked. Errors are returned only for requests or
// schedules that cannot be parsed.
func (c *ConflictChecker) Check(mentor *models.Mentor, req models.BookingRequest, booked []models.TimeSlot) ([]models.BookingConflict, error) {
	loc := mentor.Location()
	day, requested, err := c.ParseRequest(req, loc)
	if err != nil {
		return nil, err
	}

	taken := make([]Window, 0, len(booked))
	for _, b := range booked {
		w, err := slotWindow(b)
		if err != nil {
			return nil, fmt.Errorf("booked slot on %s: %w", req.Date, err)
		}
		taken = append(taken, w)
	}

	conflicts := make([]models.BookingConflict, 0)

	if overlapsAny(requested, taken) {
		alternatives, err := c.sameDayAlternatives(mentor.Availability, day, requested, booked)
		if err != nil {
			return nil, err
		}
		conflicts = append(conflicts, models.BookingConflict{
			Type:                  models.ConflictTimeConflict,
			Message:               "This time slot is already booked",
			SuggestedAlternatives: alternatives,
		})
	}

	if c.Generator.Options.RequireScheduleCoverage {
		covered, err := c.Generator.Covers(mentor.Availability, day, requested)
		if err != nil {
			return nil, err
		}
		if !covered {
			conflicts = append(conflicts, conflict(models.ConflictMentorUnavailable, "Mentor is not available at the requested time"))
		}
	}

	now := c.now().In(loc)
	startsAt := requested.Start.On(day)

	switch {
	case startsAt.Before(now):
		conflicts = append(conflicts, conflict(models.ConflictInsufficientNotice, "Requested time is in the past"))
	case startsAt.Sub(now) < time.Duration(mentor.MinimumNotice)*time.Hour:
		conflicts = append(conflicts, conflict(models.ConflictInsufficientNotice,
			fmt.Sprintf("Minimum %d hours notice required", mentor.MinimumNotice)))
	}

	if daysBetween(now, day) > mentor.MaximumAdvanceBooking {
		conflicts = append(conflicts, conflict(models.ConflictTooFarAdvance,
			fmt.Sprintf("Cannot book more than %d days in advance", mentor.MaximumAdvanceBooking)))
	}

	return conflicts, nil
}

// sameDayAlternatives lists free slots that start after the requested one.
func (c *ConflictChecker) sameDayAlternatives(avail models.MentorAvailability, day time.Time, requested Window, booked []models.TimeSlot) ([]models.AlternativeSlot, error) {
	generated, err := c.Generator.Generate(avail, day)
	if err != nil {
		return nil, err
	}
	free, err := FreeSlots(generated, booked)
	if err != nil {
		return nil, err
	}

	limit := c.MaxSameDayAlternatives
	if limit <= 0 {
		limit = defaultSameDayAlternatives
	}
	date := day.Format(DateLayout)
	alternatives := make([]models.AlternativeSlot, 0, limit)
	for _, slot := range free {
		if len(alternatives) == limit {
			break
		}
		start, err := ParseTimeOfDay(slot.StartTime)
		if err != nil {
			return nil, err
		}
		if start <= requested.Start {
			continue
		}
		alternatives = append(alternatives, models.AlternativeSlot{
			Date:      date,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Reason:    "Available later the same day",
		})
	}
	return alternatives, nil
}

func conflict(kind models.ConflictType, message string) models.BookingConflict {
	return models.BookingConflict{Type: kind, Message: message, SuggestedAlternatives: []models.AlternativeSlot{}}
}

// daysBetween counts calendar days from now's date to day, both in day's location.
func daysBetween(now, day time.Time) int {
	y, m, d := now.In(day.Location()).Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, day.Location())
	return int(math.Round(day.Sub(today).Hours() / 24))
}
