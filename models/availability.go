package models

import "time"

// WeeklyScheduleEntry holds one active day of a mentor's recurring week.
type WeeklyScheduleEntry struct {
	DayOfWeek   time.Weekday `bson:"dayOfWeek" json:"dayOfWeek" firestore:"dayOfWeek"` // 0 = Sunday
	StartTime   string       `bson:"startTime" json:"startTime" firestore:"startTime"` // "HH:MM"
	EndTime     string       `bson:"endTime" json:"endTime" firestore:"endTime"`       // "HH:MM", after StartTime
	IsAvailable bool         `bson:"isAvailable" json:"isAvailable" firestore:"isAvailable"`
}

// CustomSlot is a window declared on a DateOverride.
type CustomSlot struct {
	StartTime string `bson:"startTime" json:"startTime" firestore:"startTime"`
	EndTime   string `bson:"endTime" json:"endTime" firestore:"endTime"`
}

// DateOverride replaces the weekly schedule for one calendar date.
type DateOverride struct {
	Date        string       `bson:"date" json:"date" firestore:"date"` // "2006-01-02"
	IsAvailable bool         `bson:"isAvailable" json:"isAvailable" firestore:"isAvailable"`
	CustomSlots []CustomSlot `bson:"customSlots,omitempty" json:"customSlots,omitempty" firestore:"customSlots"`
}

// BlockedPeriod is an explicitly excluded interval (vacation, meeting).
type BlockedPeriod struct {
	Start  time.Time `bson:"start" json:"start" firestore:"start"`
	End    time.Time `bson:"end" json:"end" firestore:"end"`
	Reason string    `bson:"reason,omitempty" json:"reason,omitempty" firestore:"reason"`
}

// Overlaps reports whether the period intersects [start, end).
func (b BlockedPeriod) Overlaps(start, end time.Time) bool {
	return b.Start.Before(end) && b.End.After(start)
}

type MentorAvailability struct {
	WeeklySchedule []WeeklyScheduleEntry `bson:"weeklySchedule" json:"weeklySchedule" firestore:"weeklySchedule"`
	DateOverrides  []DateOverride        `bson:"dateOverrides,omitempty" json:"dateOverrides,omitempty" firestore:"dateOverrides"`
	BlockedPeriods []BlockedPeriod       `bson:"blockedPeriods,omitempty" json:"blockedPeriods,omitempty" firestore:"blockedPeriods"`
}

// ScheduleFor returns the available weekly entry for the given weekday.
func (a MentorAvailability) ScheduleFor(day time.Weekday) (WeeklyScheduleEntry, bool) {
	for _, entry := range a.WeeklySchedule {
		if entry.DayOfWeek == day && entry.IsAvailable {
			return entry, true
		}
	}
	return WeeklyScheduleEntry{}, false
}

// OverrideFor returns the override registered for a "2006-01-02" date.
func (a MentorAvailability) OverrideFor(date string) (DateOverride, bool) {
	for _, o := range a.DateOverrides {
		if o.Date == date {
			return o, true
		}
	}
	return DateOverride{}, false
}
