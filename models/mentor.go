package models

import (
	"time"
	_ "time/tzdata" // mentor timezones must resolve on minimal images
)

// SessionType is one kind of session a mentor offers (e.g. "Career chat", 30 minutes).
type SessionType struct {
	ID              string  `bson:"id" json:"id" firestore:"id"`
	Name            string  `bson:"name" json:"name" firestore:"name"`
	DurationMinutes int     `bson:"durationMinutes" json:"durationMinutes" firestore:"durationMinutes"`
	Price           float64 `bson:"price" json:"price,omitempty" firestore:"price"`
	Currency        string  `bson:"currency,omitempty" json:"currency,omitempty" firestore:"currency"`
}

type Mentor struct {
	ID         string   `bson:"id" json:"id" firestore:"id"`
	Name       string   `bson:"name" json:"name" firestore:"name"`
	Email      string   `bson:"email" json:"email,omitempty" firestore:"email"`
	Headline   string   `bson:"headline,omitempty" json:"headline,omitempty" firestore:"headline"`
	Expertise  []string `bson:"expertise,omitempty" json:"expertise,omitempty" firestore:"expertise"`
	Timezone   string   `bson:"timezone,omitempty" json:"timezone,omitempty" firestore:"timezone"`       // IANA name, e.g. "Africa/Nairobi"
	CalendarID string   `bson:"calendarId,omitempty" json:"calendarId,omitempty" firestore:"calendarId"` // Google Calendar to push sessions into
	FCMToken   string   `bson:"fcmToken,omitempty" json:"-" firestore:"fcmToken"`

	Availability          MentorAvailability `bson:"availability" json:"availability" firestore:"availability"`
	MinimumNotice         int                `bson:"minimumNotice" json:"minimumNotice" firestore:"minimumNotice"`                         // hours
	MaximumAdvanceBooking int                `bson:"maximumAdvanceBooking" json:"maximumAdvanceBooking" firestore:"maximumAdvanceBooking"` // days
	SessionTypes          []SessionType      `bson:"sessionTypes,omitempty" json:"sessionTypes,omitempty" firestore:"sessionTypes"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt,omitzero" firestore:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt,omitzero" firestore:"updatedAt"`
}

// DefaultMaximumAdvanceBooking is the advance-booking limit, in days, of mentor
// records stored without one.
const DefaultMaximumAdvanceBooking = 90

// ApplyDefaults fills booking limits that a stored record left unset. Stores
// call it on every mentor they load, so the checker can apply the limits as-is.
func (m *Mentor) ApplyDefaults() {
	if m.MaximumAdvanceBooking <= 0 {
		m.MaximumAdvanceBooking = DefaultMaximumAdvanceBooking
	}
	if m.MinimumNotice < 0 {
		m.MinimumNotice = 0
	}
}

// Location resolves the mentor's timezone, falling back to UTC when unset or unknown.
func (m Mentor) Location() *time.Location {
	if m.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(m.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// UpdateAvailabilityRequest is the payload a mentor sends to replace their booking rules.
type UpdateAvailabilityRequest struct {
	Availability          MentorAvailability `json:"availability" binding:"required"`
	MinimumNotice         *int               `json:"minimumNotice" binding:"omitempty,min=0"`
	MaximumAdvanceBooking *int               `json:"maximumAdvanceBooking" binding:"omitempty,min=1"`
	Timezone              string             `json:"timezone"`
	CalendarID            string             `json:"calendarId"`
}
