package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentorship/models"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		input    string
		expected TimeOfDay
	}{
		{input: "00:00", expected: 0},
		{input: "09:00", expected: 540},
		{input: "09:05", expected: 545},
		{input: "14:35", expected: 875},
		{input: "23:59", expected: 1439},
		{input: "24:00", expected: 1440},
	}

	for _, c := range cases {
		got, err := ParseTimeOfDay(c.input)
		require.NoError(t, err, c.input)
		assert.Equal(t, c.expected, got, c.input)
		assert.Equal(t, c.input, got.String())
	}
}

func TestParseTimeOfDayRejectsMalformed(t *testing.T) {
	for _, input := range []string{"", "9:00", "09:0", "0900", "09-00", "ab:cd", "09:60", "25:00", "24:30", " 9:00", "09:00 "} {
		_, err := ParseTimeOfDay(input)

		var malformed *MalformedScheduleError
		require.ErrorAs(t, err, &malformed, input)
		assert.Equal(t, input, malformed.Value)
	}
}

func TestParseFieldRecordsField(t *testing.T) {
	_, err := parseField("endTime", "17h00")

	var malformed *MalformedScheduleError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "endTime", malformed.Field)
	assert.Contains(t, err.Error(), "endTime")
}

func TestTimeOfDayOn(t *testing.T) {
	nairobi, err := time.LoadLocation("Africa/Nairobi")
	require.NoError(t, err)

	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, nairobi)
	at := TimeOfDay(10*60 + 15).On(day)

	assert.Equal(t, time.Date(2026, time.March, 2, 10, 15, 0, 0, nairobi), at)
	assert.Equal(t, TimeOfDay(630), TimeOfDay(600).Add(30*time.Minute))
}

func TestWindowOverlapIsHalfOpen(t *testing.T) {
	ten := Window{Start: 600, End: 660}

	assert.True(t, ten.Overlaps(Window{Start: 615, End: 645}))
	assert.True(t, ten.Overlaps(Window{Start: 570, End: 601}))
	assert.False(t, ten.Overlaps(Window{Start: 660, End: 690}), "adjacent windows do not overlap")
	assert.False(t, ten.Overlaps(Window{Start: 570, End: 600}))

	assert.True(t, ten.Contains(Window{Start: 600, End: 630}))
	assert.False(t, ten.Contains(Window{Start: 645, End: 675}))
}

func TestValidateAvailability(t *testing.T) {
	valid := models.MentorAvailability{
		WeeklySchedule: []models.WeeklyScheduleEntry{{DayOfWeek: time.Monday, StartTime: "09:00", EndTime: "17:00", IsAvailable: true}},
		DateOverrides:  []models.DateOverride{{Date: "2026-03-09", IsAvailable: true, CustomSlots: []models.CustomSlot{{StartTime: "10:00", EndTime: "11:00"}}}},
	}
	require.NoError(t, ValidateAvailability(valid))

	cases := map[string]func(a *models.MentorAvailability){
		"bad start":     func(a *models.MentorAvailability) { a.WeeklySchedule[0].StartTime = "9" },
		"inverted":      func(a *models.MentorAvailability) { a.WeeklySchedule[0].EndTime = "08:00" },
		"bad weekday":   func(a *models.MentorAvailability) { a.WeeklySchedule[0].DayOfWeek = 7 },
		"override date": func(a *models.MentorAvailability) { a.DateOverrides[0].Date = "09/03/2026" },
		"custom slot":   func(a *models.MentorAvailability) { a.DateOverrides[0].CustomSlots[0].EndTime = "25:00" },
		"duplicate day": func(a *models.MentorAvailability) {
			a.WeeklySchedule = append(a.WeeklySchedule, a.WeeklySchedule[0])
		},
		"blocked period": func(a *models.MentorAvailability) {
			at := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
			a.BlockedPeriods = []models.BlockedPeriod{{Start: at, End: at}}
		},
	}
	for name, mutate := range cases {
		a := models.MentorAvailability{
			WeeklySchedule: append([]models.WeeklyScheduleEntry(nil), valid.WeeklySchedule...),
			DateOverrides: []models.DateOverride{{
				Date:        valid.DateOverrides[0].Date,
				IsAvailable: true,
				CustomSlots: append([]models.CustomSlot(nil), valid.DateOverrides[0].CustomSlots...),
			}},
		}
		mutate(&a)

		var malformed *MalformedScheduleError
		assert.ErrorAs(t, ValidateAvailability(a), &malformed, name)
	}
}
