package scheduling

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentorship/models"
)

func newTestEngine(now time.Time, booked stubBooked, mentors ...*models.Mentor) *Engine {
	src := stubMentors{}
	for _, m := range mentors {
		src[m.ID] = m
	}
	return NewEngine(src, booked, FixedClock{At: now}, Options{})
}

func TestValidateMentorNotFound(t *testing.T) {
	engine := newTestEngine(monday, stubBooked{})

	result, err := engine.Validator.Validate(context.Background(), models.BookingRequest{MentorID: "ghost", Date: "2026-03-02", StartTime: "10:00"})
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	assert.Equal(t, []string{"Mentor not found"}, result.Errors)
}

func TestValidateStoreFailureIsNotNotFound(t *testing.T) {
	engine := NewEngine(failingMentors{}, stubBooked{}, FixedClock{At: monday}, Options{})

	result, err := engine.Validator.Validate(context.Background(), models.BookingRequest{MentorID: "m-1", Date: "2026-03-02", StartTime: "10:00"})
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestValidateInsufficientNoticeScenario(t *testing.T) {
	engine := newTestEngine(monday, stubBooked{}, weekdaysMentor())

	result, err := engine.Validator.Validate(context.Background(), models.BookingRequest{MentorID: "m-1", Date: "2026-03-02", StartTime: "10:00"})
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	assert.Equal(t, []string{"Minimum 24 hours notice required"}, result.Errors)
	assert.NotEmpty(t, result.Suggestions)
}

func TestValidateInsufficientNoticeReportsOnlyNotice(t *testing.T) {
	// Monday 20:00, every request below is under 24 hours away.
	engine := newTestEngine(monday.Add(20*time.Hour), stubBooked{}, weekdaysMentor())

	tests := []struct {
		name, date, start string
	}{
		{"before opening", "2026-03-03", "06:00"},
		{"inside schedule", "2026-03-03", "10:00"},
		{"last slot", "2026-03-03", "16:30"},
		{"after closing", "2026-03-03", "18:30"},
		{"same evening", "2026-03-02", "22:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.Validator.Validate(context.Background(), models.BookingRequest{MentorID: "m-1", Date: tt.date, StartTime: tt.start})
			require.NoError(t, err)
			assert.False(t, result.IsValid)
			assert.Equal(t, []string{"Minimum 24 hours notice required"}, result.Errors)
			assert.Equal(t, []models.ConflictType{models.ConflictInsufficientNotice}, types(result.Conflicts))
		})
	}
}

func TestValidateUnscheduledDayIsValid(t *testing.T) {
	mentor := weekdaysMentor()
	mentor.Availability = weekly(day(time.Monday, "09:00", "17:00"))
	engine := newTestEngine(monday, stubBooked{}, mentor)

	result, err := engine.Validator.Validate(context.Background(), models.BookingRequest{MentorID: "m-1", Date: "2026-03-03", StartTime: "10:00"})
	require.NoError(t, err)
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Conflicts)
}

func TestValidateTooFarAdvanceScenario(t *testing.T) {
	mentor := weekdaysMentor()
	engine := newTestEngine(monday, stubBooked{}, mentor)

	result, err := engine.Validator.Validate(context.Background(), models.BookingRequest{MentorID: "m-1", Date: "2026-04-16", StartTime: "10:00"})
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	assert.Contains(t, result.Errors, "Cannot book more than 30 days in advance")
}

func TestValidateValidIffNoConflicts(t *testing.T) {
	booked := stubBooked{}
	booked.book("m-1", "2026-03-04", "10:00", "11:00")
	engine := newTestEngine(monday, booked, weekdaysMentor())

	requests := []models.BookingRequest{
		{MentorID: "m-1", Date: "2026-03-04", StartTime: "09:00"},
		{MentorID: "m-1", Date: "2026-03-04", StartTime: "10:30"},
		{MentorID: "m-1", Date: "2026-03-04", StartTime: "18:00"},
		{MentorID: "m-1", Date: "2026-03-02", StartTime: "10:00"},
		{MentorID: "m-1", Date: "2026-03-05", StartTime: "12:30"},
	}
	for _, req := range requests {
		result, err := engine.Validator.Validate(context.Background(), req)
		require.NoError(t, err)

		mentor := weekdaysMentor()
		conflicts, err := engine.Checker.Check(mentor, req, booked[req.MentorID+"|"+req.Date])
		require.NoError(t, err)

		assert.Equal(t, len(conflicts) == 0, result.IsValid, req.Date+" "+req.StartTime)
		assert.Len(t, result.Errors, len(conflicts))
		if result.IsValid {
			assert.Empty(t, result.Suggestions)
		}
	}
}

func TestValidateLunchWarningDoesNotAffectValidity(t *testing.T) {
	engine := newTestEngine(monday, stubBooked{}, weekdaysMentor())

	result, err := engine.Validator.Validate(context.Background(), models.BookingRequest{MentorID: "m-1", Date: "2026-03-04", StartTime: "12:30"})
	require.NoError(t, err)
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Equal(t, []string{"Requested time falls within typical lunch hours (12:00-13:00)"}, result.Warnings)

	result, err = engine.Validator.Validate(context.Background(), models.BookingRequest{MentorID: "m-1", Date: "2026-03-04", StartTime: "13:00"})
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)
}

func TestValidateMalformedRequest(t *testing.T) {
	engine := newTestEngine(monday, stubBooked{}, weekdaysMentor())

	result, err := engine.Validator.Validate(context.Background(), models.BookingRequest{MentorID: "m-1", Date: "2026-03-04", StartTime: "noon"})
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Invalid start time")
}

func TestSuggestLooksThreeDaysAhead(t *testing.T) {
	mentor := weekdaysMentor()
	booked := stubBooked{}
	booked.book("m-1", "2026-03-03", "09:00", "09:30")

	t.Run("schedule only", func(t *testing.T) {
		s := &AlternativeSuggester{Generator: NewGenerator(Options{})}
		alts, err := s.Suggest(context.Background(), mentor, monday)
		require.NoError(t, err)

		require.Len(t, alts, 3)
		assert.Equal(t, models.AlternativeSlot{Date: "2026-03-03", StartTime: "09:00", EndTime: "09:30", Reason: "Available 1 day(s) later"}, alts[0])
		assert.Equal(t, "Available 3 day(s) later", alts[2].Reason)
	})

	t.Run("skips booked slots", func(t *testing.T) {
		s := &AlternativeSuggester{Generator: NewGenerator(Options{}), Booked: booked}
		alts, err := s.Suggest(context.Background(), mentor, monday)
		require.NoError(t, err)
		assert.Equal(t, "09:30", alts[0].StartTime)
	})

	t.Run("weekend gap", func(t *testing.T) {
		friday := monday.AddDate(0, 0, 4)
		s := &AlternativeSuggester{Generator: NewGenerator(Options{})}
		alts, err := s.Suggest(context.Background(), mentor, friday)
		require.NoError(t, err)

		require.Len(t, alts, 1)
		assert.Equal(t, "2026-03-09", alts[0].Date)
		assert.Equal(t, "Available 3 day(s) later", alts[0].Reason)
	})
}

func TestRespondExcludesOverlappingBookings(t *testing.T) {
	booked := stubBooked{}
	booked.book("m-1", "2026-03-02", "10:00", "11:00")
	engine := newTestEngine(monday, booked, weekdaysMentor())

	resp, err := engine.Responder.Respond(context.Background(), "m-1", "2026-03-02")
	require.NoError(t, err)

	available := starts(resp.AvailableSlots)
	assert.Len(t, available, 14)
	assert.NotContains(t, available, "10:00")
	assert.NotContains(t, available, "10:30")
	assert.Contains(t, available, "11:00")

	require.Len(t, resp.BookedSlots, 1)
	assert.True(t, resp.BookedSlots[0].IsBooked)
	assert.False(t, resp.BookedSlots[0].IsAvailable)
	assert.Len(t, resp.SuggestedAlternatives, 3)

	result, err := engine.Validator.Validate(context.Background(), models.BookingRequest{MentorID: "m-1", Date: "2026-03-04", StartTime: "10:15"})
	require.NoError(t, err)
	assert.True(t, result.IsValid, "no booking on wednesday")

	booked.book("m-1", "2026-03-04", "10:00", "11:00")
	result, err = engine.Validator.Validate(context.Background(), models.BookingRequest{MentorID: "m-1", Date: "2026-03-04", StartTime: "10:15"})
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	assert.Equal(t, models.ConflictTimeConflict, result.Conflicts[0].Type)
}

func TestRespondUnscheduledDay(t *testing.T) {
	mentor := weekdaysMentor()
	mentor.Availability = weekly(day(time.Monday, "09:00", "17:00"))
	engine := newTestEngine(monday, stubBooked{}, mentor)

	resp, err := engine.Responder.Respond(context.Background(), "m-1", "2026-03-03")
	require.NoError(t, err)
	assert.NotNil(t, resp.AvailableSlots)
	assert.Empty(t, resp.AvailableSlots)
	assert.Empty(t, resp.BookedSlots)

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"availableSlots":[]`)
}

func TestRespondIsIdempotent(t *testing.T) {
	booked := stubBooked{}
	booked.book("m-1", "2026-03-02", "15:00", "15:30")
	booked.book("m-1", "2026-03-02", "09:30", "10:00")
	engine := newTestEngine(monday, booked, weekdaysMentor())

	first, err := engine.Responder.Respond(context.Background(), "m-1", "2026-03-02")
	require.NoError(t, err)
	second, err := engine.Responder.Respond(context.Background(), "m-1", "2026-03-02")
	require.NoError(t, err)

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	assert.Equal(t, string(a), string(b))
	assert.Equal(t, "09:30", first.BookedSlots[0].StartTime, "booked slots are sorted")
}

func TestRespondErrors(t *testing.T) {
	engine := newTestEngine(monday, stubBooked{}, weekdaysMentor())

	_, err := engine.Responder.Respond(context.Background(), "ghost", "2026-03-02")
	assert.ErrorIs(t, err, ErrMentorNotFound)

	_, err = engine.Responder.Respond(context.Background(), "m-1", "tomorrow")
	var invalidReq *InvalidRequestError
	assert.ErrorAs(t, err, &invalidReq)
}
