package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentorship/models"
)

var (
	monday  = time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	tuesday = monday.AddDate(0, 0, 1)
)

func weekly(entries ...models.WeeklyScheduleEntry) models.MentorAvailability {
	return models.MentorAvailability{WeeklySchedule: entries}
}

func day(wd time.Weekday, start, end string) models.WeeklyScheduleEntry {
	return models.WeeklyScheduleEntry{DayOfWeek: wd, StartTime: start, EndTime: end, IsAvailable: true}
}

func starts(slots []models.TimeSlot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.StartTime
	}
	return out
}

func TestGenerateFullWorkingDay(t *testing.T) {
	gen := NewGenerator(Options{})

	slots, err := gen.Generate(weekly(day(time.Monday, "09:00", "17:00")), monday)
	require.NoError(t, err)

	require.Len(t, slots, 16)
	assert.Equal(t, models.TimeSlot{StartTime: "09:00", EndTime: "09:30", IsAvailable: true}, slots[0])
	assert.Equal(t, models.TimeSlot{StartTime: "16:30", EndTime: "17:00", IsAvailable: true}, slots[15])
	for _, s := range slots {
		assert.False(t, s.IsBooked)
	}
}

func TestGenerateNoScheduleForDay(t *testing.T) {
	gen := NewGenerator(Options{})

	unavailable := day(time.Tuesday, "09:00", "17:00")
	unavailable.IsAvailable = false

	cases := map[string]models.MentorAvailability{
		"no entry":        weekly(day(time.Monday, "09:00", "17:00")),
		"marked inactive": weekly(unavailable),
		"empty schedule":  {},
	}
	for name, avail := range cases {
		slots, err := gen.Generate(avail, tuesday)
		require.NoError(t, err, name)
		assert.NotNil(t, slots, name)
		assert.Empty(t, slots, name)
	}
}

func TestGenerateHonorsMinuteOffsets(t *testing.T) {
	gen := NewGenerator(Options{})

	slots, err := gen.Generate(weekly(day(time.Monday, "09:15", "10:30")), monday)
	require.NoError(t, err)

	assert.Equal(t, []string{"09:15", "09:45"}, starts(slots))
	assert.Equal(t, "10:15", slots[1].EndTime)
}

func TestGenerateRejectsMalformedSchedule(t *testing.T) {
	gen := NewGenerator(Options{})

	_, err := gen.Generate(weekly(day(time.Monday, "9am", "17:00")), monday)
	var malformed *MalformedScheduleError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "startTime", malformed.Field)

	_, err = gen.Generate(weekly(day(time.Monday, "17:00", "09:00")), monday)
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "endTime", malformed.Field)
}

func TestGenerateDateOverrides(t *testing.T) {
	avail := weekly(day(time.Monday, "09:00", "17:00"))
	avail.DateOverrides = []models.DateOverride{
		{Date: "2026-03-02", IsAvailable: false},
		{Date: "2026-03-09", IsAvailable: true, CustomSlots: []models.CustomSlot{
			{StartTime: "14:00", EndTime: "15:00"},
			{StartTime: "08:00", EndTime: "08:30"},
		}},
	}

	t.Run("ignored by default", func(t *testing.T) {
		slots, err := NewGenerator(Options{}).Generate(avail, monday)
		require.NoError(t, err)
		assert.Len(t, slots, 16)
	})

	t.Run("unavailable override empties the day", func(t *testing.T) {
		slots, err := NewGenerator(Options{ApplyDateOverrides: true}).Generate(avail, monday)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("custom slots replace the weekly window", func(t *testing.T) {
		slots, err := NewGenerator(Options{ApplyDateOverrides: true}).Generate(avail, monday.AddDate(0, 0, 7))
		require.NoError(t, err)
		assert.Equal(t, []string{"08:00", "14:00", "14:30"}, starts(slots))
	})
}

func TestGenerateBlockedPeriods(t *testing.T) {
	avail := weekly(day(time.Monday, "09:00", "12:00"))
	avail.BlockedPeriods = []models.BlockedPeriod{{
		Start:  time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC),
		End:    time.Date(2026, time.March, 2, 11, 15, 0, 0, time.UTC),
		Reason: "team offsite",
	}}

	slots, err := NewGenerator(Options{}).Generate(avail, monday)
	require.NoError(t, err)
	assert.Len(t, slots, 6)

	slots, err = NewGenerator(Options{ApplyBlockedPeriods: true}).Generate(avail, monday)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "11:30"}, starts(slots))
}

func TestFreeSlotsUsesIntervalOverlap(t *testing.T) {
	gen := NewGenerator(Options{})
	generated, err := gen.Generate(weekly(day(time.Monday, "09:00", "12:00")), monday)
	require.NoError(t, err)

	free, err := FreeSlots(generated, []models.TimeSlot{{StartTime: "10:00", EndTime: "11:00", IsBooked: true}})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "11:00", "11:30"}, starts(free))

	free, err = FreeSlots(generated, []models.TimeSlot{{StartTime: "10:15", EndTime: "10:45"}})
	require.NoError(t, err)
	assert.NotContains(t, starts(free), "10:00")
	assert.NotContains(t, starts(free), "10:30")

	_, err = FreeSlots(generated, []models.TimeSlot{{StartTime: "10", EndTime: "11:00"}})
	assert.Error(t, err)
}
