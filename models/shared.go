package models

// ReminderPayload is the asynq payload for an upcoming-session reminder.
type ReminderPayload struct {
	SessionID string `json:"sessionId"`
	ID        string `json:"id"`     // mentorId or studentId
	Target    string `json:"target"` // "mentor" or "mentee"
	Title     string `json:"title"`
	Body      string `json:"body"`
	FireDate  string `json:"fireDate"`
}

// CalendarSyncPayload is the asynq payload for pushing a session to Google Calendar.
type CalendarSyncPayload struct {
	SessionID string `json:"sessionId"`
	MentorID  string `json:"mentorId"`
	Action    string `json:"action"` // "upsert" or "delete"
}

// SessionEvent is published on the events exchange when a session changes.
type SessionEvent struct {
	SessionID string `json:"sessionId"`
	MentorID  string `json:"mentorId"`
	StudentID string `json:"studentId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`
}
