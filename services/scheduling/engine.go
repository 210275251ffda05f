package scheduling

// Engine bundles the scheduling components over one pair of data sources.
type Engine struct {
	Generator *Generator
	Checker   *ConflictChecker
	Suggester *AlternativeSuggester
	Validator *BookingValidator
	Responder *AvailabilityResponder
}

func NewEngine(mentors MentorSource, booked BookedSlotSource, clock Clock, opts Options) *Engine {
	if clock == nil {
		clock = SystemClock{}
	}
	gen := NewGenerator(opts)
	checker := NewConflictChecker(gen, clock)
	suggester := &AlternativeSuggester{Generator: gen, Booked: booked, LookaheadDays: defaultLookaheadDays}

	return &Engine{
		Generator: gen,
		Checker:   checker,
		Suggester: suggester,
		Validator: &BookingValidator{
			Mentors:   mentors,
			Booked:    booked,
			Checker:   checker,
			Suggester: suggester,
		},
		Responder: &AvailabilityResponder{
			Mentors:   mentors,
			Booked:    booked,
			Generator: gen,
			Suggester: suggester,
		},
	}
}
