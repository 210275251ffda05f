package mentorRepo

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"mentorship/models"
	"mentorship/services/scheduling"
)

// MemoryMentorRepo keeps mentors in process. It backs local demos and tests.
type MemoryMentorRepo struct {
	mu      sync.RWMutex
	mentors map[string]models.Mentor
}

func NewMemoryMentorRepo(seed ...models.Mentor) *MemoryMentorRepo {
	r := &MemoryMentorRepo{mentors: make(map[string]models.Mentor, len(seed))}
	for _, m := range seed {
		m.ApplyDefaults()
		r.mentors[m.ID] = m
	}
	return r
}

func (r *MemoryMentorRepo) GetMentor(_ context.Context, mentorID string) (*models.Mentor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.mentors[mentorID]
	if !ok {
		return nil, fmt.Errorf("mentor %s: %w", mentorID, scheduling.ErrMentorNotFound)
	}
	return &m, nil
}

func (r *MemoryMentorRepo) List(context.Context) ([]models.Mentor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mentors := make([]models.Mentor, 0, len(r.mentors))
	for _, m := range r.mentors {
		mentors = append(mentors, m)
	}
	sort.Slice(mentors, func(i, j int) bool { return mentors[i].Name < mentors[j].Name })
	return mentors, nil
}

func (r *MemoryMentorRepo) Create(_ context.Context, mentor *models.Mentor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.mentors[mentor.ID]; exists {
		return fmt.Errorf("mentor %s already exists", mentor.ID)
	}
	now := time.Now()
	mentor.CreatedAt, mentor.UpdatedAt = now, now
	mentor.ApplyDefaults()
	r.mentors[mentor.ID] = *mentor
	return nil
}

func (r *MemoryMentorRepo) UpdateAvailability(_ context.Context, mentorID string, req models.UpdateAvailabilityRequest) (*models.Mentor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.mentors[mentorID]
	if !ok {
		return nil, fmt.Errorf("mentor %s: %w", mentorID, scheduling.ErrMentorNotFound)
	}
	applyAvailabilityUpdate(&m, req, time.Now())
	m.ApplyDefaults()
	r.mentors[mentorID] = m
	return &m, nil
}

func (r *MemoryMentorRepo) SetFCMToken(_ context.Context, mentorID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.mentors[mentorID]
	if !ok {
		return fmt.Errorf("mentor %s: %w", mentorID, scheduling.ErrMentorNotFound)
	}
	m.FCMToken = token
	r.mentors[mentorID] = m
	return nil
}

func weekdays(start, end string, days ...time.Weekday) []models.WeeklyScheduleEntry {
	entries := make([]models.WeeklyScheduleEntry, 0, len(days))
	for _, d := range days {
		entries = append(entries, models.WeeklyScheduleEntry{DayOfWeek: d, StartTime: start, EndTime: end, IsAvailable: true})
	}
	return entries
}

// DemoMentors is the seed used when MENTOR_STORE=memory.
func DemoMentors() []models.Mentor {
	return []models.Mentor{
		{
			ID:        "mentor-amina",
			Name:      "Amina Odhiambo",
			Headline:  "Staff engineer, distributed systems",
			Expertise: []string{"go", "system design", "career growth"},
			Timezone:  "Africa/Nairobi",
			Availability: models.MentorAvailability{
				WeeklySchedule: weekdays("09:00", "17:00", time.Monday, time.Wednesday, time.Friday),
			},
			MinimumNotice:         24,
			MaximumAdvanceBooking: 30,
			SessionTypes: []models.SessionType{
				{ID: "intro", Name: "Intro call", DurationMinutes: 30},
			},
		},
		{
			ID:        "mentor-lucas",
			Name:      "Lucas Meyer",
			Headline:  "Product designer",
			Expertise: []string{"ux research", "portfolio review"},
			Timezone:  "Europe/Berlin",
			Availability: models.MentorAvailability{
				WeeklySchedule: weekdays("13:00", "18:30", time.Tuesday, time.Thursday),
			},
			MinimumNotice:         12,
			MaximumAdvanceBooking: 60,
			SessionTypes: []models.SessionType{
				{ID: "review", Name: "Portfolio review", DurationMinutes: 30, Price: 40, Currency: "EUR"},
			},
		},
	}
}
