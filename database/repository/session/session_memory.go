package sessionRepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"mentorship/models"
)

// MemorySessionRepo keeps sessions in process. A single mutex makes
// ReserveSlot's check-and-insert atomic.
type MemorySessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

func NewMemorySessionRepo() *MemorySessionRepo {
	return &MemorySessionRepo{sessions: make(map[string]models.Session)}
}

func (r *MemorySessionRepo) ReserveSlot(_ context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.sessions {
		if s.MentorID != session.MentorID || s.Date != session.Date || !s.Active() {
			continue
		}
		if overlaps(s.StartTime, s.EndTime, session.StartTime, session.EndTime) {
			return ErrSlotTaken
		}
	}
	r.sessions[session.ID] = *session
	return nil
}

func (r *MemorySessionRepo) GetByID(_ context.Context, id string) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &s, nil
}

func (r *MemorySessionRepo) GetBookedSlots(_ context.Context, mentorID, date string) ([]models.TimeSlot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slots := make([]models.TimeSlot, 0)
	for _, s := range r.sessions {
		if s.MentorID == mentorID && s.Date == date && s.Active() {
			slots = append(slots, s.Slot())
		}
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].StartTime < slots[j].StartTime })
	return slots, nil
}

func (r *MemorySessionRepo) filter(keep func(models.Session) bool) []models.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Session, 0)
	for _, s := range r.sessions {
		if keep(s) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out
}

func (r *MemorySessionRepo) ListByMentor(_ context.Context, mentorID string) ([]models.Session, error) {
	return r.filter(func(s models.Session) bool { return s.MentorID == mentorID }), nil
}

func (r *MemorySessionRepo) ListByStudent(_ context.Context, studentID string) ([]models.Session, error) {
	return r.filter(func(s models.Session) bool { return s.StudentID == studentID }), nil
}

func (r *MemorySessionRepo) update(id string, apply func(*models.Session)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	apply(&s)
	s.UpdatedAt = time.Now()
	r.sessions[id] = s
	return nil
}

func (r *MemorySessionRepo) UpdateStatus(_ context.Context, id, status string) error {
	return r.update(id, func(s *models.Session) { s.Status = status })
}

func (r *MemorySessionRepo) SetCalendarEventID(_ context.Context, id, eventID string) error {
	return r.update(id, func(s *models.Session) { s.CalendarEventID = eventID })
}
