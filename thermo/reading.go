// Package thermo turns raw DS18B20 readouts into filtered body temperature
// reports. Parsing, filtering and formatting are pure; Loop ties them to a
// device and a clock.
package thermo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	crcOKMarker       = "YES"
	temperatureMarker = "t="
	millidegrees      = 1000.0
)

// ErrParse marks a readout that passed the CRC check but has no usable
// temperature. It points at a hardware or protocol fault.
var ErrParse = errors.New("malformed sensor readout")

// Status tags the result of parsing one readout.
type Status int

const (
	StatusOK Status = iota
	// StatusIntegrityPending means the CRC line did not end in YES yet.
	StatusIntegrityPending
	StatusParseFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusIntegrityPending:
		return "integrity_pending"
	case StatusParseFailed:
		return "parse_failed"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Reading is a single sensor observation.
type Reading struct {
	RawLines    []string
	IntegrityOK bool
	Status      Status
	Celsius     float64
	// Err is set when Status is StatusParseFailed.
	Err error
}

// Value returns the temperature in °C if one was extracted.
func (r Reading) Value() (float64, bool) {
	return r.Celsius, r.Status == StatusOK
}

// Parse checks the CRC marker on the first line and extracts the
// millidegree value after the last "t=" on the second.
func Parse(lines []string) Reading {
	r := Reading{RawLines: lines}

	if len(lines) == 0 || !strings.HasSuffix(strings.TrimSpace(lines[0]), crcOKMarker) {
		r.Status = StatusIntegrityPending
		return r
	}
	r.IntegrityOK = true

	if len(lines) < 2 {
		return parseFailed(r, "missing data line")
	}

	data := lines[1]
	idx := strings.LastIndex(data, temperatureMarker)
	if idx < 0 {
		return parseFailed(r, fmt.Sprintf("no %q in %q", temperatureMarker, data))
	}

	raw := strings.TrimSpace(data[idx+len(temperatureMarker):])
	milli, err := strconv.Atoi(raw)
	if err != nil {
		return parseFailed(r, fmt.Sprintf("bad temperature %q", raw))
	}

	r.Status = StatusOK
	r.Celsius = float64(milli) / millidegrees
	return r
}

func parseFailed(r Reading, detail string) Reading {
	r.Status = StatusParseFailed
	r.Err = fmt.Errorf("%w: %s", ErrParse, detail)
	return r
}
