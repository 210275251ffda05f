package scheduling

import (
	"errors"
	"fmt"
	"time"

	"mentorship/models"
)

// TimeOfDay is a wall-clock time expressed in minutes from midnight.
type TimeOfDay int

// DateLayout is the calendar date format used by requests and stores.
const DateLayout = "2006-01-02"

// ParseTimeOfDay parses a strict "HH:MM" string. "24:00" is accepted as an
// end-of-day bound; every other value must lie within 00:00-23:59.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' || !isDigits(s[:2]) || !isDigits(s[3:]) {
		return 0, &MalformedScheduleError{Value: s, Reason: "expected HH:MM"}
	}
	hours := int(s[0]-'0')*10 + int(s[1]-'0')
	minutes := int(s[3]-'0')*10 + int(s[4]-'0')

	if minutes > 59 || hours > 24 || (hours == 24 && minutes != 0) {
		return 0, &MalformedScheduleError{Value: s, Reason: "out of range"}
	}
	return TimeOfDay(hours*60 + minutes), nil
}

// parseField wraps ParseTimeOfDay and records which field was malformed.
func parseField(field, value string) (TimeOfDay, error) {
	t, err := ParseTimeOfDay(value)
	if err != nil {
		var malformed *MalformedScheduleError
		if errors.As(err, &malformed) {
			malformed.Field = field
		}
		return 0, err
	}
	return t, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Add shifts t by d, truncated to whole minutes.
func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	return t + TimeOfDay(d/time.Minute)
}

// On anchors t to the calendar date of day, in day's location.
func (t TimeOfDay) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, day.Location()).Add(time.Duration(t) * time.Minute)
}

// Window is the half-open interval [Start, End) within one day.
type Window struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Overlaps reports whether the two half-open windows intersect.
func (w Window) Overlaps(o Window) bool {
	return w.Start < o.End && o.Start < w.End
}

// Contains reports whether o lies entirely inside w.
func (w Window) Contains(o Window) bool {
	return o.Start >= w.Start && o.End <= w.End
}

// ValidateAvailability checks every schedule, override and blocked period
// before it is stored, so generation never meets a malformed entry.
func ValidateAvailability(avail models.MentorAvailability) error {
	seen := make(map[time.Weekday]bool, len(avail.WeeklySchedule))
	for _, entry := range avail.WeeklySchedule {
		if entry.DayOfWeek < time.Sunday || entry.DayOfWeek > time.Saturday {
			return &MalformedScheduleError{Field: "dayOfWeek", Value: fmt.Sprint(int(entry.DayOfWeek)), Reason: "expected 0-6"}
		}
		if entry.IsAvailable && seen[entry.DayOfWeek] {
			return &MalformedScheduleError{Field: "dayOfWeek", Value: entry.DayOfWeek.String(), Reason: "more than one available entry"}
		}
		seen[entry.DayOfWeek] = seen[entry.DayOfWeek] || entry.IsAvailable
		if _, err := parseWindow(entry.StartTime, entry.EndTime); err != nil {
			return err
		}
	}
	for _, o := range avail.DateOverrides {
		if _, err := time.Parse(DateLayout, o.Date); err != nil {
			return &MalformedScheduleError{Field: "date", Value: o.Date, Reason: "expected YYYY-MM-DD"}
		}
		for _, cs := range o.CustomSlots {
			if _, err := parseWindow(cs.StartTime, cs.EndTime); err != nil {
				return err
			}
		}
	}
	for _, b := range avail.BlockedPeriods {
		if !b.Start.Before(b.End) {
			return &MalformedScheduleError{Field: "blockedPeriods", Value: b.End.Format(time.RFC3339), Reason: "end must be after start"}
		}
	}
	return nil
}
