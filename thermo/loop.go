package thermo

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// DefaultReadInterval is the pause between acquisition cycles.
const DefaultReadInterval = 2 * time.Second

// LineReader returns the device's current readout, one string per line.
type LineReader interface {
	ReadLines() ([]string, error)
}

// Loop runs read, parse, filter, report and sleep on a single goroutine.
type Loop struct {
	reader    LineReader
	filter    Filter
	reporter  *Reporter
	clock     Clock
	interval  time.Duration
	logger    *slog.Logger
	observers []Observer

	state State
}

// Option configures a Loop.
type Option func(*Loop)

func WithClock(c Clock) Option {
	return func(l *Loop) { l.clock = c }
}

func WithInterval(d time.Duration) Option {
	return func(l *Loop) { l.interval = d }
}

func WithDropThreshold(threshold float64) Option {
	return func(l *Loop) { l.filter = NewFilter(threshold) }
}

func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) { l.logger = logger }
}

func WithObservers(observers ...Observer) Option {
	return func(l *Loop) { l.observers = append(l.observers, observers...) }
}

// NewLoop builds a loop reading from reader and reporting to out.
func NewLoop(reader LineReader, out io.Writer, opts ...Option) *Loop {
	l := &Loop{
		reader:   reader,
		filter:   NewFilter(DefaultDropThreshold),
		reporter: NewReporter(out),
		clock:    SystemClock{},
		interval: DefaultReadInterval,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// State returns the filter state as of the last completed cycle.
func (l *Loop) State() State {
	return l.state
}

// Run cycles until ctx is cancelled, then prints the farewell and returns
// nil. A read error or a malformed readout stops the loop and is returned.
func (l *Loop) Run(ctx context.Context) error {
	l.logger.Info("acquisition loop started", "interval", l.interval, "drop_threshold", l.filter.DropThreshold)

	for {
		if ctx.Err() != nil {
			break
		}
		if _, err := l.Step(); err != nil {
			return err
		}
		if err := l.clock.Sleep(ctx, l.interval); err != nil {
			break
		}
	}

	l.logger.Info("acquisition loop stopped")
	l.reporter.Farewell()
	return nil
}

// Step performs one read, parse, filter and report cycle.
func (l *Loop) Step() (Outcome, error) {
	lines, err := l.reader.ReadLines()
	if err != nil {
		return Outcome{}, fmt.Errorf("read sensor: %w", err)
	}

	now := l.clock.Now()
	reading := Parse(lines)

	var outcome Outcome
	switch reading.Status {
	case StatusIntegrityPending:
		l.logger.Debug("crc not ready", "line", firstLine(lines))
		l.reporter.Unreadable()
		outcome = newOutcome(KindIntegrityPending, now, l.state, nil)

	case StatusParseFailed:
		l.logger.Error("malformed readout", "lines", lines, "err", reading.Err)
		return Outcome{}, reading.Err

	case StatusOK:
		measured := reading.Celsius
		next, decision := l.filter.Apply(l.state, measured)
		l.state = next
		if decision.Accepted {
			l.reporter.Accepted(measured)
			outcome = newOutcome(KindAccepted, now, l.state, &measured)
		} else {
			l.logger.Warn("sudden drop ignored", "measured", measured, "last_valid", decision.Baseline, "drop", decision.Drop)
			l.reporter.Rejected(measured, decision.Baseline, l.filter.DropThreshold)
			outcome = newOutcome(KindRejected, now, l.state, &measured)
		}
	}

	for _, o := range l.observers {
		o.Observe(outcome)
	}
	return outcome, nil
}

func firstLine(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return lines[0]
}
