package sink

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Uranury/bodytemp/sensors"
	"github.com/Uranury/bodytemp/thermo"
)

func ptr(v float64) *float64 { return &v }

func TestOutcomePoint(t *testing.T) {
	at := time.Unix(1700000000, 0)

	assert.Nil(t, OutcomePoint(thermo.Outcome{Kind: thermo.KindIntegrityPending, Baseline: ptr(37), Time: at}))

	p := OutcomePoint(thermo.Outcome{
		Kind:     thermo.KindRejected,
		Celsius:  ptr(34.5),
		Baseline: ptr(37),
		Band:     thermo.BandNormal,
		Time:     at,
	})
	require.NotNil(t, p)
	line := write.PointToLineProtocol(p, time.Second)
	assert.True(t, strings.HasPrefix(line, "body_temperature,"))
	assert.Contains(t, line, "outcome=rejected")
	assert.Contains(t, line, "measured_celsius=34.5")
	assert.Contains(t, line, "baseline_celsius=37")
	assert.Contains(t, line, "1700000000")
}

func TestAmbientPoint(t *testing.T) {
	p := AmbientPoint(&sensors.SensorData{
		SensorType: "dht22",
		Fields:     map[string]float64{"temperature": 22.5, "humidity": 40},
		Timestamp:  time.Unix(1700000000, 0),
	})
	line := write.PointToLineProtocol(p, time.Second)
	assert.Contains(t, line, "sensor_data,sensor=dht22")
	assert.Contains(t, line, "temperature=22.5")
	assert.Contains(t, line, "humidity=40")
}

func TestInfluxWritesOnClose(t *testing.T) {
	var (
		mu   sync.Mutex
		body strings.Builder
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		body.Write(b)
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	i := NewInflux(srv.URL, "token", "home", "vitals", slog.New(slog.NewTextHandler(io.Discard, nil)))
	i.Observe(thermo.Outcome{Kind: thermo.KindAccepted, Celsius: ptr(36.8), Baseline: ptr(36.8), Band: thermo.BandNormal, Time: time.Now()})
	i.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, body.String(), "measured_celsius=36.8")
}
