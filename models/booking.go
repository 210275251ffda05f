package models

// ConflictType tags why a booking request cannot be accepted.
type ConflictType string

const (
	ConflictTimeConflict       ConflictType = "time_conflict"
	ConflictMentorUnavailable  ConflictType = "mentor_unavailable"
	ConflictInsufficientNotice ConflictType = "insufficient_notice"
	ConflictTooFarAdvance      ConflictType = "too_far_advance"
)

// BookingRequest is a requested single slot, not yet persisted.
type BookingRequest struct {
	MentorID      string `json:"mentorId" binding:"required"`
	Date          string `json:"date" binding:"required"`      // "2006-01-02"
	StartTime     string `json:"startTime" binding:"required"` // "HH:MM"
	StudentID     string `json:"studentId"`
	SessionTypeID string `json:"sessionTypeId,omitempty"`
	Message       string `json:"message,omitempty"`
	Agenda        string `json:"agenda,omitempty"`
}

type BookingConflict struct {
	Type                  ConflictType      `json:"type"`
	Message               string            `json:"message"`
	SuggestedAlternatives []AlternativeSlot `json:"suggestedAlternatives"`
}

// BookingValidation is recomputed on every call and never persisted.
type BookingValidation struct {
	IsValid     bool              `json:"isValid"`
	Errors      []string          `json:"errors"`
	Warnings    []string          `json:"warnings"`
	Suggestions []AlternativeSlot `json:"suggestions"`
	Conflicts   []BookingConflict `json:"conflicts,omitempty"`
}
