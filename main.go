package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Uranury/bodytemp/config"
	"github.com/Uranury/bodytemp/logger"
	"github.com/Uranury/bodytemp/metrics"
	"github.com/Uranury/bodytemp/sensors"
	"github.com/Uranury/bodytemp/server"
	"github.com/Uranury/bodytemp/sink"
	"github.com/Uranury/bodytemp/thermo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg := logger.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(lg)

	if err := run(cfg, lg); err != nil {
		lg.Error("stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	probe, err := sensors.LocateDS18B20(cfg.W1BaseDir, cfg.DevicePrefix, cfg.DeviceFile)
	if err != nil {
		return err
	}
	logger.Info("probe found", "path", probe.Path)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	status := server.NewStatus()
	hub := server.NewHub(logger)
	observers := []thermo.Observer{status, hub, m}
	ambientSinks := []func(*sensors.SensorData){status.SetAmbient, hub.PublishAmbient, m.ObserveAmbient}

	if cfg.InfluxURL != "" {
		influx := sink.NewInflux(cfg.InfluxURL, cfg.InfluxToken, cfg.InfluxOrg, cfg.InfluxBucket, logger)
		defer influx.Close()
		observers = append(observers, influx)
		ambientSinks = append(ambientSinks, influx.WriteAmbient)
		logger.Info("writing to influxdb", "url", cfg.InfluxURL, "bucket", cfg.InfluxBucket)
	}

	if cfg.HTTPAddr != "" {
		gin.SetMode(gin.ReleaseMode)
		srv := &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: server.New(status, hub, m.Handler(), logger),
		}
		go func() {
			logger.Info("http server starting", "addr", cfg.HTTPAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server failed", "err", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
	}

	if cfg.DHTPin != "" {
		ambient, err := sensors.NewDHT22(cfg.DHTPin)
		if err != nil {
			logger.Warn("ambient sensor disabled", "pin", cfg.DHTPin, "err", err)
		} else {
			publish := func(d *sensors.SensorData) {
				for _, s := range ambientSinks {
					s(d)
				}
			}
			go sensors.Poll(ctx, cfg.ReadInterval, logger, publish, ambient)
			logger.Info("ambient sensor enabled", "sensor", ambient.Name(), "pin", cfg.DHTPin)
		}
	}

	loop := thermo.NewLoop(probe, os.Stdout,
		thermo.WithInterval(cfg.ReadInterval),
		thermo.WithDropThreshold(cfg.DropThreshold),
		thermo.WithLogger(logger),
		thermo.WithObservers(observers...),
	)
	return loop.Run(ctx)
}
