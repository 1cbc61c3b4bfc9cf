package server

import (
	"sync"

	"github.com/Uranury/bodytemp/sensors"
	"github.com/Uranury/bodytemp/thermo"
)

// Snapshot is the body of GET /api/temperature.
type Snapshot struct {
	Latest  *thermo.Outcome                `json:"latest"`
	Counts  map[thermo.Kind]int            `json:"counts"`
	Ambient map[string]*sensors.SensorData `json:"ambient,omitempty"`
}

// Status keeps the latest outcome for HTTP readers. The loop writes, gin
// handlers read.
type Status struct {
	mu      sync.RWMutex
	latest  *thermo.Outcome
	counts  map[thermo.Kind]int
	ambient map[string]*sensors.SensorData
}

func NewStatus() *Status {
	return &Status{
		counts:  make(map[thermo.Kind]int),
		ambient: make(map[string]*sensors.SensorData),
	}
}

func (s *Status) Observe(o thermo.Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = &o
	s.counts[o.Kind]++
}

func (s *Status) SetAmbient(d *sensors.SensorData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ambient[d.SensorType] = d
}

// Snapshot copies the current state; ok is false before the first cycle.
func (s *Status) Snapshot() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Counts:  make(map[thermo.Kind]int, len(s.counts)),
		Ambient: make(map[string]*sensors.SensorData, len(s.ambient)),
	}
	for k, v := range s.counts {
		snap.Counts[k] = v
	}
	for k, v := range s.ambient {
		snap.Ambient[k] = v
	}
	if s.latest == nil {
		return snap, false
	}
	latest := *s.latest
	snap.Latest = &latest
	return snap, true
}
