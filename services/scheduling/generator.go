package scheduling

import (
	"sort"
	"time"

	"mentorship/models"
)

// DefaultSlotLength is the length of every generated slot and of a booked session.
const DefaultSlotLength = 30 * time.Minute

// Options switch on the parts of MentorAvailability that the weekly-only
// generator ignores, and the schedule-coverage conflict. All default to off.
type Options struct {
	ApplyDateOverrides  bool
	ApplyBlockedPeriods bool
	// RequireScheduleCoverage makes the checker report mentor_unavailable
	// when the requested window is outside every generated slot.
	RequireScheduleCoverage bool
}

// Generator derives bookable slots for one date from a mentor's availability.
type Generator struct {
	SlotLength time.Duration
	Options    Options
}

func NewGenerator(opts Options) *Generator {
	return &Generator{SlotLength: DefaultSlotLength, Options: opts}
}

func (g *Generator) slotLength() time.Duration {
	if g == nil || g.SlotLength <= 0 {
		return DefaultSlotLength
	}
	return g.SlotLength
}

// Windows returns the schedule windows that apply to date, sorted by start.
// A date with no available weekly entry (or an unavailable override) yields
// no windows.
func (g *Generator) Windows(avail models.MentorAvailability, date time.Time) ([]Window, error) {
	if g.Options.ApplyDateOverrides {
		if override, ok := avail.OverrideFor(date.Format(DateLayout)); ok {
			if !override.IsAvailable {
				return nil, nil
			}
			if len(override.CustomSlots) > 0 {
				windows := make([]Window, 0, len(override.CustomSlots))
				for _, cs := range override.CustomSlots {
					w, err := parseWindow(cs.StartTime, cs.EndTime)
					if err != nil {
						return nil, err
					}
					windows = append(windows, w)
				}
				sort.Slice(windows, func(i, j int) bool { return windows[i].Start < windows[j].Start })
				return windows, nil
			}
		}
	}

	entry, ok := avail.ScheduleFor(date.Weekday())
	if !ok {
		return nil, nil
	}
	w, err := parseWindow(entry.StartTime, entry.EndTime)
	if err != nil {
		return nil, err
	}
	return []Window{w}, nil
}

// Generate walks each window in SlotLength steps and emits whole slots only.
// The result is never nil.
func (g *Generator) Generate(avail models.MentorAvailability, date time.Time) ([]models.TimeSlot, error) {
	windows, err := g.Windows(avail, date)
	if err != nil {
		return nil, err
	}

	step := g.slotLength()
	slots := make([]models.TimeSlot, 0)
	for _, w := range windows {
		for start := w.Start; start.Add(step) <= w.End; start = start.Add(step) {
			slot := Window{Start: start, End: start.Add(step)}
			if g.blocked(avail, date, slot) {
				continue
			}
			slots = append(slots, models.TimeSlot{
				StartTime:   slot.Start.String(),
				EndTime:     slot.End.String(),
				IsAvailable: true,
			})
		}
	}
	return slots, nil
}

// Covers reports whether w lies entirely inside the availability for date.
func (g *Generator) Covers(avail models.MentorAvailability, date time.Time, w Window) (bool, error) {
	windows, err := g.Windows(avail, date)
	if err != nil {
		return false, err
	}
	for _, candidate := range windows {
		if candidate.Contains(w) {
			return !g.blocked(avail, date, w), nil
		}
	}
	return false, nil
}

func (g *Generator) blocked(avail models.MentorAvailability, date time.Time, w Window) bool {
	if !g.Options.ApplyBlockedPeriods {
		return false
	}
	start, end := w.Start.On(date), w.End.On(date)
	for _, period := range avail.BlockedPeriods {
		if period.Overlaps(start, end) {
			return true
		}
	}
	return false
}

func parseWindow(start, end string) (Window, error) {
	s, err := parseField("startTime", start)
	if err != nil {
		return Window{}, err
	}
	e, err := parseField("endTime", end)
	if err != nil {
		return Window{}, err
	}
	if s >= e {
		return Window{}, &MalformedScheduleError{Field: "endTime", Value: end, Reason: "must be after " + start}
	}
	return Window{Start: s, End: e}, nil
}

// slotWindow parses a TimeSlot's bounds. A slot without an end time is taken
// to last one default slot.
func slotWindow(slot models.TimeSlot) (Window, error) {
	s, err := parseField("startTime", slot.StartTime)
	if err != nil {
		return Window{}, err
	}
	if slot.EndTime == "" {
		return Window{Start: s, End: s.Add(DefaultSlotLength)}, nil
	}
	e, err := parseField("endTime", slot.EndTime)
	if err != nil {
		return Window{}, err
	}
	if s >= e {
		return Window{}, &MalformedScheduleError{Field: "endTime", Value: slot.EndTime, Reason: "must be after " + slot.StartTime}
	}
	return Window{Start: s, End: e}, nil
}

// FreeSlots removes every generated slot that overlaps a booked slot.
func FreeSlots(generated, booked []models.TimeSlot) ([]models.TimeSlot, error) {
	taken := make([]Window, 0, len(booked))
	for _, b := range booked {
		w, err := slotWindow(b)
		if err != nil {
			return nil, err
		}
		taken = append(taken, w)
	}

	free := make([]models.TimeSlot, 0, len(generated))
	for _, slot := range generated {
		w, err := slotWindow(slot)
		if err != nil {
			return nil, err
		}
		if overlapsAny(w, taken) {
			continue
		}
		free = append(free, slot)
	}
	return free, nil
}

func overlapsAny(w Window, others []Window) bool {
	for _, o := range others {
		if w.Overlaps(o) {
			return true
		}
	}
	return false
}
