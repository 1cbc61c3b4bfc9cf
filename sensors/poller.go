package sensors

import (
	"context"
	"log/slog"
	"time"
)

// Poll reads every sensor once per interval and hands successful samples
// to publish. It returns when ctx is done.
func Poll(ctx context.Context, interval time.Duration, logger *slog.Logger, publish func(*SensorData), sensors ...Sensor) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		for _, sensor := range sensors {
			data, err := sensor.Read()
			if err != nil {
				logger.Warn("sensor read failed", "sensor", sensor.Name(), "err", err)
				continue
			}

			logger.Debug("sensor sample", "sensor", sensor.Name(), "fields", data.Fields)
			publish(data)
		}
	}
}
