package thermo

import "time"

// Kind says what happened in one acquisition cycle.
type Kind string

const (
	KindAccepted         Kind = "accepted"
	KindRejected         Kind = "rejected"
	KindIntegrityPending Kind = "integrity_pending"
)

// Outcome is published to observers once per cycle.
type Outcome struct {
	Kind Kind `json:"kind"`
	// Celsius is the measured value; nil when the CRC check failed.
	Celsius  *float64 `json:"celsius,omitempty"`
	Baseline *float64 `json:"baseline_celsius,omitempty"`
	// Fahrenheit and Band describe the baseline, i.e. the reported value.
	Fahrenheit *float64  `json:"baseline_fahrenheit,omitempty"`
	Band       Band      `json:"band,omitempty"`
	Time       time.Time `json:"time"`
}

// Observer receives every outcome. Observe runs on the loop goroutine and
// must not block for long.
type Observer interface {
	Observe(Outcome)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(Outcome)

func (f ObserverFunc) Observe(o Outcome) { f(o) }

func newOutcome(kind Kind, at time.Time, state State, measured *float64) Outcome {
	o := Outcome{Kind: kind, Celsius: measured, Time: at}
	if baseline, ok := state.LastValid(); ok {
		f := Fahrenheit(baseline)
		o.Baseline = &baseline
		o.Fahrenheit = &f
		o.Band = Classify(baseline)
	}
	return o
}
