package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Uranury/bodytemp/sensors"
	"github.com/Uranury/bodytemp/thermo"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func ptr(v float64) *float64 { return &v }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEngine(t *testing.T) (*gin.Engine, *Status, *Hub) {
	t.Helper()
	status := NewStatus()
	hub := NewHub(quietLogger())
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "bodytemp_readings_total 1\n")
	})
	return New(status, hub, metrics, quietLogger()), status, hub
}

func TestHealthz(t *testing.T) {
	r, _, _ := newTestEngine(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestTemperatureEndpoint(t *testing.T) {
	r, status, _ := newTestEngine(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/temperature", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	status.Observe(thermo.Outcome{Kind: thermo.KindAccepted, Celsius: ptr(37), Baseline: ptr(37), Band: thermo.BandNormal, Time: time.Unix(1700000000, 0).UTC()})
	status.Observe(thermo.Outcome{Kind: thermo.KindRejected, Celsius: ptr(34.9), Baseline: ptr(37), Band: thermo.BandNormal, Time: time.Unix(1700000002, 0).UTC()})
	status.SetAmbient(&sensors.SensorData{SensorType: "dht22", Fields: map[string]float64{"temperature": 22}})

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/temperature", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	require.NotNil(t, snap.Latest)
	assert.Equal(t, thermo.KindRejected, snap.Latest.Kind)
	assert.Equal(t, 34.9, *snap.Latest.Celsius)
	assert.Equal(t, 37.0, *snap.Latest.Baseline)
	assert.Equal(t, 1, snap.Counts[thermo.KindAccepted])
	assert.Equal(t, 1, snap.Counts[thermo.KindRejected])
	assert.Equal(t, 22.0, snap.Ambient["dht22"].Fields["temperature"])
}

func TestMetricsRoute(t *testing.T) {
	r, _, _ := newTestEngine(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bodytemp_readings_total")
}

func TestLiveFeed(t *testing.T) {
	r, _, hub := newTestEngine(t)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	assert.Eventually(t, func() bool { return hub.Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Observe(thermo.Outcome{Kind: thermo.KindIntegrityPending, Time: time.Now()})
	hub.PublishAmbient(&sensors.SensorData{SensorType: "dht22", Fields: map[string]float64{"humidity": 40}})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var first map[string]any
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, "temperature", first["type"])
	assert.Equal(t, "integrity_pending", first["data"].(map[string]any)["kind"])

	var second Message
	require.NoError(t, conn.ReadJSON(&second))
	assert.Equal(t, "ambient", second.Type)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
}
