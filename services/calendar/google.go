package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"mentorship/models"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// ErrNoCalendar means the mentor has not linked a Google Calendar.
var ErrNoCalendar = errors.New("mentor has no calendar linked")

// Syncer pushes booked sessions into a mentor's external calendar.
type Syncer interface {
	Upsert(ctx context.Context, mentor *models.Mentor, session *models.Session) (eventID string, err error)
	Delete(ctx context.Context, mentor *models.Mentor, session *models.Session) error
	Busy(ctx context.Context, mentor *models.Mentor, date time.Time) ([]models.TimeSlot, error)
}

// GoogleSyncer talks to the Google Calendar v3 API with a service account.
type GoogleSyncer struct {
	svc *gcal.Service
}

func NewGoogleSyncer(ctx context.Context, credentialsFile string) (*GoogleSyncer, error) {
	svc, err := gcal.NewService(ctx, option.WithCredentialsFile(credentialsFile), option.WithScopes(gcal.CalendarScope))
	if err != nil {
		return nil, fmt.Errorf("calendar: error creating service: %w", err)
	}
	return &GoogleSyncer{svc: svc}, nil
}

// BuildEvent maps a session onto a calendar event in the mentor's timezone.
func BuildEvent(mentor *models.Mentor, session *models.Session, length time.Duration) *gcal.Event {
	loc := mentor.Location()
	start := session.StartsAt.In(loc)
	end := start.Add(length)

	description := "Mentorship session booked through the platform."
	if session.Agenda != "" {
		description += "\n\nAgenda: " + session.Agenda
	}
	if session.Message != "" {
		description += "\n\nMessage from mentee: " + session.Message
	}

	return &gcal.Event{
		Summary:     "Mentorship session",
		Description: description,
		Start:       &gcal.EventDateTime{DateTime: start.Format(time.RFC3339), TimeZone: loc.String()},
		End:         &gcal.EventDateTime{DateTime: end.Format(time.RFC3339), TimeZone: loc.String()},
		ExtendedProperties: &gcal.EventExtendedProperties{
			Private: map[string]string{"sessionId": session.ID},
		},
		Reminders: &gcal.EventReminders{
			UseDefault: false,
			Overrides:  []*gcal.EventReminder{{Method: "popup", Minutes: 15}},
			// UseDefault=false must be sent explicitly.
			ForceSendFields: []string{"UseDefault"},
		},
	}
}

func sessionLength(s *models.Session) time.Duration {
	start, err1 := time.Parse("15:04", s.StartTime)
	end, err2 := time.Parse("15:04", s.EndTime)
	if err1 != nil || err2 != nil || !end.After(start) {
		return 30 * time.Minute
	}
	return end.Sub(start)
}

func (g *GoogleSyncer) Upsert(ctx context.Context, mentor *models.Mentor, session *models.Session) (string, error) {
	if mentor.CalendarID == "" {
		return "", ErrNoCalendar
	}
	event := BuildEvent(mentor, session, sessionLength(session))

	if session.CalendarEventID != "" {
		updated, err := g.svc.Events.Update(mentor.CalendarID, session.CalendarEventID, event).Context(ctx).Do()
		if err == nil {
			return updated.Id, nil
		}
		if !isGone(err) {
			return "", fmt.Errorf("calendar: update event %s: %w", session.CalendarEventID, err)
		}
	}

	created, err := g.svc.Events.Insert(mentor.CalendarID, event).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("calendar: insert event: %w", err)
	}
	return created.Id, nil
}

// Delete removes the session's event. Events already gone count as deleted.
func (g *GoogleSyncer) Delete(ctx context.Context, mentor *models.Mentor, session *models.Session) error {
	if mentor.CalendarID == "" || session.CalendarEventID == "" {
		return nil
	}
	err := g.svc.Events.Delete(mentor.CalendarID, session.CalendarEventID).Context(ctx).Do()
	if err != nil && !isGone(err) {
		return fmt.Errorf("calendar: delete event %s: %w", session.CalendarEventID, err)
	}
	return nil
}

// Busy returns the mentor's busy periods on date as booked slots.
func (g *GoogleSyncer) Busy(ctx context.Context, mentor *models.Mentor, date time.Time) ([]models.TimeSlot, error) {
	if mentor.CalendarID == "" {
		return nil, ErrNoCalendar
	}
	loc := mentor.Location()
	y, m, d := date.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	req := &gcal.FreeBusyRequest{
		TimeMin:  dayStart.Format(time.RFC3339),
		TimeMax:  dayEnd.Format(time.RFC3339),
		TimeZone: loc.String(),
		Items:    []*gcal.FreeBusyRequestItem{{Id: mentor.CalendarID}},
	}
	resp, err := g.svc.Freebusy.Query(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("calendar: freebusy query: %w", err)
	}

	cal, ok := resp.Calendars[mentor.CalendarID]
	if !ok {
		return []models.TimeSlot{}, nil
	}
	if len(cal.Errors) > 0 {
		return nil, fmt.Errorf("calendar: freebusy for %s: %s", mentor.CalendarID, cal.Errors[0].Reason)
	}

	periods := make([][2]time.Time, 0, len(cal.Busy))
	for _, p := range cal.Busy {
		start, err := time.Parse(time.RFC3339, p.Start)
		if err != nil {
			return nil, fmt.Errorf("calendar: busy start %q: %w", p.Start, err)
		}
		end, err := time.Parse(time.RFC3339, p.End)
		if err != nil {
			return nil, fmt.Errorf("calendar: busy end %q: %w", p.End, err)
		}
		periods = append(periods, [2]time.Time{start, end})
	}
	return BusySlots(periods, dayStart), nil
}

// BusySlots clips absolute busy periods to the day starting at dayStart and
// renders them as booked wall-clock "HH:MM" slots in dayStart's location,
// rounding outward to whole minutes. A period running past midnight ends at
// "24:00".
func BusySlots(periods [][2]time.Time, dayStart time.Time) []models.TimeSlot {
	loc := dayStart.Location()
	dayEnd := dayStart.AddDate(0, 0, 1)
	slots := make([]models.TimeSlot, 0, len(periods))
	for _, p := range periods {
		start, end := p[0], p[1]
		if !start.Before(dayEnd) || !end.After(dayStart) {
			continue
		}

		startMin := 0
		if start.After(dayStart) {
			startMin = wallMinutes(start.In(loc), false)
		}
		endMin := 24 * 60
		if end.Before(dayEnd) {
			endMin = wallMinutes(end.In(loc), true)
		}
		if endMin <= startMin {
			continue
		}
		slots = append(slots, models.TimeSlot{
			StartTime: fmt.Sprintf("%02d:%02d", startMin/60, startMin%60),
			EndTime:   fmt.Sprintf("%02d:%02d", endMin/60, endMin%60),
			IsBooked:  true,
		})
	}
	return slots
}

// wallMinutes is t's clock reading in minutes from midnight.
func wallMinutes(t time.Time, roundUp bool) int {
	m := t.Hour()*60 + t.Minute()
	if roundUp && (t.Second() > 0 || t.Nanosecond() > 0) {
		m++
	}
	return m
}

func isGone(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone
	}
	return false
}
