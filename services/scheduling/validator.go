package scheduling

import (
	"context"
	"errors"
	"fmt"

	"mentorship/models"
)

var lunchHour = Window{Start: 12 * 60, End: 13 * 60}

// BookingValidator produces a single verdict for a booking request.
type BookingValidator struct {
	Mentors   MentorSource
	Booked    BookedSlotSource
	Checker   *ConflictChecker
	Suggester *AlternativeSuggester
}

// Validate never reports a conflict as an error. A non-nil error means a
// backing store failed or the mentor's own schedule is malformed.
func (v *BookingValidator) Validate(ctx context.Context, req models.BookingRequest) (*models.BookingValidation, error) {
	mentor, err := v.Mentors.GetMentor(ctx, req.MentorID)
	if errors.Is(err, ErrMentorNotFound) {
		return invalid("Mentor not found"), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load mentor %s: %w", req.MentorID, err)
	}
	return v.ValidateFor(ctx, mentor, req)
}

// ValidateFor validates req against an already resolved mentor.
func (v *BookingValidator) ValidateFor(ctx context.Context, mentor *models.Mentor, req models.BookingRequest) (*models.BookingValidation, error) {
	day, requested, err := v.Checker.ParseRequest(req, mentor.Location())
	var invalidReq *InvalidRequestError
	if errors.As(err, &invalidReq) {
		return invalid(invalidReq.Error()), nil
	}
	if err != nil {
		return nil, err
	}

	booked, err := v.Booked.GetBookedSlots(ctx, mentor.ID, req.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to load booked slots: %w", err)
	}

	conflicts, err := v.Checker.Check(mentor, req, booked)
	if err != nil {
		return nil, err
	}

	result := &models.BookingValidation{
		IsValid:     len(conflicts) == 0,
		Errors:      make([]string, 0, len(conflicts)),
		Warnings:    []string{},
		Suggestions: []models.AlternativeSlot{},
		Conflicts:   conflicts,
	}
	for _, c := range conflicts {
		result.Errors = append(result.Errors, c.Message)
	}

	if !result.IsValid {
		suggestions, err := v.Suggester.Suggest(ctx, mentor, day)
		if err != nil {
			return nil, err
		}
		result.Suggestions = suggestions
	}

	if lunchHour.Start <= requested.Start && requested.Start < lunchHour.End {
		result.Warnings = append(result.Warnings, "Requested time falls within typical lunch hours (12:00-13:00)")
	}
	return result, nil
}

func invalid(msg string) *models.BookingValidation {
	return &models.BookingValidation{
		IsValid:     false,
		Errors:      []string{msg},
		Warnings:    []string{},
		Suggestions: []models.AlternativeSlot{},
	}
}
