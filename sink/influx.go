// Package sink writes loop outcomes and ambient samples to InfluxDB.
package sink

import (
	"log/slog"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/Uranury/bodytemp/sensors"
	"github.com/Uranury/bodytemp/thermo"
)

const (
	bodyMeasurement    = "body_temperature"
	ambientMeasurement = "sensor_data"
)

// Influx batches points through the client's non-blocking write API, so
// Observe never stalls the acquisition loop.
type Influx struct {
	client   influxdb2.Client
	writeAPI api.WriteAPI
	logger   *slog.Logger
}

func NewInflux(url, token, org, bucket string, logger *slog.Logger) *Influx {
	client := influxdb2.NewClient(url, token)
	i := &Influx{
		client:   client,
		writeAPI: client.WriteAPI(org, bucket),
		logger:   logger.With("sink", "influxdb", "url", url, "bucket", bucket),
	}
	go i.logErrors()
	return i
}

func (i *Influx) logErrors() {
	for err := range i.writeAPI.Errors() {
		i.logger.Warn("write failed", "err", err)
	}
}

// Observe writes accepted and rejected readings. CRC misses carry no
// value and are skipped.
func (i *Influx) Observe(o thermo.Outcome) {
	if p := OutcomePoint(o); p != nil {
		i.writeAPI.WritePoint(p)
	}
}

func (i *Influx) WriteAmbient(d *sensors.SensorData) {
	i.writeAPI.WritePoint(AmbientPoint(d))
}

// Close flushes pending points and releases the client.
func (i *Influx) Close() {
	i.writeAPI.Flush()
	i.client.Close()
}

func OutcomePoint(o thermo.Outcome) *write.Point {
	if o.Celsius == nil {
		return nil
	}

	p := influxdb2.NewPointWithMeasurement(bodyMeasurement).
		AddTag("outcome", string(o.Kind)).
		AddField("measured_celsius", *o.Celsius).
		SetTime(o.Time)

	if o.Baseline != nil {
		p.AddField("baseline_celsius", *o.Baseline)
		p.AddTag("band", string(o.Band))
	}
	return p
}

func AmbientPoint(d *sensors.SensorData) *write.Point {
	p := influxdb2.NewPointWithMeasurement(ambientMeasurement).
		AddTag("sensor", d.SensorType).
		SetTime(d.Timestamp)

	for key, value := range d.Fields {
		p.AddField(key, value)
	}
	return p
}
