package scheduling

import (
	"context"
	"errors"

	"mentorship/models"
)

type stubMentors map[string]*models.Mentor

func (s stubMentors) GetMentor(_ context.Context, id string) (*models.Mentor, error) {
	m, ok := s[id]
	if !ok {
		return nil, ErrMentorNotFound
	}
	return m, nil
}

type failingMentors struct{}

func (failingMentors) GetMentor(context.Context, string) (*models.Mentor, error) {
	return nil, errors.New("connection reset")
}

// stubBooked is keyed by mentorID + "|" + date.
type stubBooked map[string][]models.TimeSlot

func (s stubBooked) GetBookedSlots(_ context.Context, mentorID, date string) ([]models.TimeSlot, error) {
	return s[mentorID+"|"+date], nil
}

func (s stubBooked) book(mentorID, date, start, end string) {
	key := mentorID + "|" + date
	s[key] = append(s[key], models.TimeSlot{StartTime: start, EndTime: end, IsBooked: true})
}
