package thermo

// DefaultDropThreshold is the fall in °C from the baseline at which a
// reading is treated as lost skin contact.
const DefaultDropThreshold = 2.0

// State is the filter's memory: the last accepted temperature.
// The zero value has no baseline.
type State struct {
	lastValid float64
	hasValid  bool
}

// LastValid returns the baseline, if any reading has been accepted.
func (s State) LastValid() (float64, bool) {
	return s.lastValid, s.hasValid
}

// Decision is what the filter did with one reading.
type Decision struct {
	Accepted bool
	Celsius  float64
	// Baseline is the last valid value after the decision.
	Baseline float64
	Drop     float64
}

// Filter rejects sudden drops and never filters rises, so a fever onset
// is never suppressed.
type Filter struct {
	DropThreshold float64
}

func NewFilter(threshold float64) Filter {
	return Filter{DropThreshold: threshold}
}

// Apply decides on celsius given s and returns the next state.
func (f Filter) Apply(s State, celsius float64) (State, Decision) {
	if !s.hasValid {
		return State{lastValid: celsius, hasValid: true}, Decision{Accepted: true, Celsius: celsius, Baseline: celsius}
	}

	drop := s.lastValid - celsius
	if drop >= f.DropThreshold {
		return s, Decision{Celsius: celsius, Baseline: s.lastValid, Drop: drop}
	}
	return State{lastValid: celsius, hasValid: true}, Decision{Accepted: true, Celsius: celsius, Baseline: celsius, Drop: drop}
}
