package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mentorship/database/repository"
	"mentorship/models"
)

func TestBusySlotsClipsToDay(t *testing.T) {
	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	at := func(d, h, m int) time.Time { return time.Date(2026, time.March, d, h, m, 0, 0, time.UTC) }

	slots := BusySlots([][2]time.Time{
		{at(1, 22, 0), at(2, 1, 0)},
		{at(2, 10, 0), at(2, 10, 45)},
		{at(2, 23, 0), at(3, 2, 0)},
		{at(3, 9, 0), at(3, 10, 0)},
		{at(2, 12, 0), at(2, 12, 0).Add(90 * time.Second)},
	}, day)

	require.Len(t, slots, 4)
	assert.Equal(t, models.TimeSlot{StartTime: "00:00", EndTime: "01:00", IsBooked: true}, slots[0])
	assert.Equal(t, "10:45", slots[1].EndTime)
	assert.Equal(t, "24:00", slots[2].EndTime)
	assert.Equal(t, "12:02", slots[3].EndTime, "partial minutes round outward")
}

func TestBusySlotsUsesWallClockAcrossDSTChanges(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// Clocks jump from 02:00 to 03:00 on 2026-03-29.
	springDay := time.Date(2026, time.March, 29, 0, 0, 0, 0, berlin)
	slots := BusySlots([][2]time.Time{
		{time.Date(2026, time.March, 29, 10, 0, 0, 0, berlin), time.Date(2026, time.March, 29, 11, 0, 0, 0, berlin)},
	}, springDay)
	require.Len(t, slots, 1)
	assert.Equal(t, "10:00", slots[0].StartTime)
	assert.Equal(t, "11:00", slots[0].EndTime)

	// Clocks fall back from 03:00 to 02:00 on 2026-10-25, so the day lasts 25 hours.
	fallDay := time.Date(2026, time.October, 25, 0, 0, 0, 0, berlin)
	slots = BusySlots([][2]time.Time{
		{time.Date(2026, time.October, 25, 22, 0, 0, 0, berlin), time.Date(2026, time.October, 26, 1, 0, 0, 0, berlin)},
		{time.Date(2026, time.October, 25, 14, 0, 0, 0, berlin), time.Date(2026, time.October, 25, 14, 30, 0, 0, berlin)},
	}, fallDay)
	require.Len(t, slots, 2)
	assert.Equal(t, models.TimeSlot{StartTime: "22:00", EndTime: "24:00", IsBooked: true}, slots[0])
	assert.Equal(t, "14:00", slots[1].StartTime)
	assert.Equal(t, "14:30", slots[1].EndTime)
}

func TestBuildEvent(t *testing.T) {
	mentor := &models.Mentor{ID: "m-1", Timezone: "Africa/Nairobi"}
	session := &models.Session{
		ID:       "s-1",
		StartsAt: time.Date(2026, time.March, 2, 7, 0, 0, 0, time.UTC),
		Agenda:   "Career planning",
	}

	event := BuildEvent(mentor, session, 30*time.Minute)
	assert.Equal(t, "2026-03-02T10:00:00+03:00", event.Start.DateTime)
	assert.Equal(t, "2026-03-02T10:30:00+03:00", event.End.DateTime)
	assert.Equal(t, "Africa/Nairobi", event.Start.TimeZone)
	assert.Contains(t, event.Description, "Career planning")
	assert.Equal(t, "s-1", event.ExtendedProperties.Private["sessionId"])
}

type fakeSyncer struct {
	busy []models.TimeSlot
	err  error
}

func (f fakeSyncer) Upsert(context.Context, *models.Mentor, *models.Session) (string, error) {
	return "evt", nil
}
func (f fakeSyncer) Delete(context.Context, *models.Mentor, *models.Session) error { return nil }
func (f fakeSyncer) Busy(context.Context, *models.Mentor, time.Time) ([]models.TimeSlot, error) {
	return f.busy, f.err
}

func TestMergedSlotSource(t *testing.T) {
	ctx := context.Background()
	mentors := repository.NewMemoryMentorRepo(models.Mentor{ID: "m-1", CalendarID: "cal@example.com"}, models.Mentor{ID: "m-2"})
	sessions := repository.NewMemorySessionRepo()
	require.NoError(t, sessions.ReserveSlot(ctx, &models.Session{
		ID: "s-1", MentorID: "m-1", Date: "2026-03-02", StartTime: "09:00", EndTime: "09:30", Status: models.SessionStatusConfirmed,
	}))

	busy := []models.TimeSlot{{StartTime: "13:00", EndTime: "14:00", IsBooked: true}}
	src := &MergedSlotSource{Sessions: sessions, Mentors: mentors, Syncer: fakeSyncer{busy: busy}, Logger: zap.NewNop()}

	slots, err := src.GetBookedSlots(ctx, "m-1", "2026-03-02")
	require.NoError(t, err)
	assert.Len(t, slots, 2)

	slots, err = src.GetBookedSlots(ctx, "m-2", "2026-03-02")
	require.NoError(t, err)
	assert.Empty(t, slots, "no calendar linked")

	src.Syncer = fakeSyncer{err: errors.New("quota exceeded")}
	slots, err = src.GetBookedSlots(ctx, "m-1", "2026-03-02")
	require.NoError(t, err)
	assert.Len(t, slots, 1, "calendar failures fall back to stored sessions")
}
