package models

// TimeSlot is a half-open window on one date, in "HH:MM" form.
type TimeSlot struct {
	StartTime   string `bson:"startTime" json:"startTime"`
	EndTime     string `bson:"endTime" json:"endTime"`
	IsAvailable bool   `bson:"isAvailable" json:"isAvailable"`
	IsBooked    bool   `bson:"isBooked" json:"isBooked"`
}

// AlternativeSlot is a bookable slot proposed on a different date.
type AlternativeSlot struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Reason    string `json:"reason"`
}

// AvailabilityResponse answers "what's free on date X for mentor Y".
type AvailabilityResponse struct {
	MentorID              string            `json:"mentorId"`
	Date                  string            `json:"date"`
	AvailableSlots        []TimeSlot        `json:"availableSlots"`
	BookedSlots           []TimeSlot        `json:"bookedSlots"`
	SuggestedAlternatives []AlternativeSlot `json:"suggestedAlternatives"`
}
