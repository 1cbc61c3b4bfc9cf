package thermo

import (
	"fmt"
	"io"
)

// Band is a coarse classification of a body temperature.
type Band string

const (
	BandNormal Band = "Normal body temperature"
	BandFever  Band = "Fever detected"
	BandLow    Band = "Below normal (sensor may not be in contact)"
)

const (
	lowerNormal = 35.0
	feverAt     = 38.0
)

// Classify maps °C onto a band. 35.0 itself is below normal; 38.0 is fever.
func Classify(celsius float64) Band {
	switch {
	case celsius > lowerNormal && celsius < feverAt:
		return BandNormal
	case celsius >= feverAt:
		return BandFever
	default:
		return BandLow
	}
}

func Fahrenheit(celsius float64) float64 {
	return celsius*9.0/5.0 + 32.0
}

// Format renders a temperature in both units with its band.
func Format(celsius float64) string {
	return fmt.Sprintf("Temperature: %.3f °C / %.3f °F  -> %s", celsius, Fahrenheit(celsius), Classify(celsius))
}

// Reporter writes the user-facing status lines.
type Reporter struct {
	w io.Writer
}

func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

func (r *Reporter) Accepted(celsius float64) {
	fmt.Fprintln(r.w, Format(celsius))
}

func (r *Reporter) Rejected(measured, lastValid, threshold float64) {
	fmt.Fprintf(r.w, "Ignored sudden drop: measured %.3f °C but last valid was %.3f °C (drop >= %.1f °C).\n", measured, lastValid, threshold)
	fmt.Fprintln(r.w, "Using last valid value -> "+Format(lastValid))
}

func (r *Reporter) Unreadable() {
	fmt.Fprintln(r.w, "Could not read temperature (CRC not OK). Retrying...")
}

func (r *Reporter) Farewell() {
	fmt.Fprintln(r.w, "\nExiting.")
}
