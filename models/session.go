package models

import "time"

const (
	SessionStatusConfirmed = "confirmed"
	SessionStatusCancelled = "cancelled"
)

// Session is a booked mentorship session.
type Session struct {
	ID              string    `bson:"id" json:"id"`
	MentorID        string    `bson:"mentorId" json:"mentorId"`
	StudentID       string    `bson:"studentId" json:"studentId"`
	Date            string    `bson:"date" json:"date"`           // "2006-01-02" in the mentor's timezone
	StartTime       string    `bson:"startTime" json:"startTime"` // "HH:MM"
	EndTime         string    `bson:"endTime" json:"endTime"`
	StartsAt        time.Time `bson:"startsAt" json:"startsAt"`
	SessionTypeID   string    `bson:"sessionTypeId,omitempty" json:"sessionTypeId,omitempty"`
	Message         string    `bson:"message,omitempty" json:"message,omitempty"`
	Agenda          string    `bson:"agenda,omitempty" json:"agenda,omitempty"`
	Status          string    `bson:"status" json:"status"`
	CalendarEventID string    `bson:"calendarEventId,omitempty" json:"calendarEventId,omitempty"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Slot returns the session's window as a booked TimeSlot.
func (s Session) Slot() TimeSlot {
	return TimeSlot{StartTime: s.StartTime, EndTime: s.EndTime, IsAvailable: false, IsBooked: true}
}

// Active reports whether the session still holds its slot.
func (s Session) Active() bool {
	return s.Status != SessionStatusCancelled
}
