// Package metrics exposes acquisition loop counters in Prometheus format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Uranury/bodytemp/sensors"
	"github.com/Uranury/bodytemp/thermo"
)

const namespace = "bodytemp"

type Metrics struct {
	registry *prometheus.Registry

	readings *prometheus.CounterVec
	measured prometheus.Gauge
	baseline prometheus.Gauge
	lastRead prometheus.Gauge
	ambient  *prometheus.GaugeVec
}

// New registers every collector on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		readings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "readings_total",
			Help:      "Acquisition cycles by outcome.",
		}, []string{"outcome"}),
		measured: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "measured_celsius",
			Help:      "Most recent value read from the probe, accepted or not.",
		}),
		baseline: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "baseline_celsius",
			Help:      "Last accepted body temperature.",
		}),
		lastRead: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_read_timestamp_seconds",
			Help:      "Unix time of the last acquisition cycle.",
		}),
		ambient: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ambient",
			Help:      "Latest auxiliary sensor fields.",
		}, []string{"sensor", "field"}),
	}

	m.registry.MustRegister(m.readings, m.measured, m.baseline, m.lastRead, m.ambient)
	for _, k := range []thermo.Kind{thermo.KindAccepted, thermo.KindRejected, thermo.KindIntegrityPending} {
		m.readings.WithLabelValues(string(k))
	}
	return m
}

func (m *Metrics) Observe(o thermo.Outcome) {
	m.readings.WithLabelValues(string(o.Kind)).Inc()
	m.lastRead.Set(float64(o.Time.Unix()))
	if o.Celsius != nil {
		m.measured.Set(*o.Celsius)
	}
	if o.Baseline != nil {
		m.baseline.Set(*o.Baseline)
	}
}

func (m *Metrics) ObserveAmbient(d *sensors.SensorData) {
	for field, v := range d.Fields {
		m.ambient.WithLabelValues(d.SensorType, field).Set(v)
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
