// Package config reads process settings from the environment, after
// loading an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	W1BaseDir    string `env:"W1_BASE_DIR" envDefault:"/sys/bus/w1/devices"`
	DevicePrefix string `env:"W1_DEVICE_PREFIX" envDefault:"28"`
	DeviceFile   string `env:"W1_DEVICE_FILE" envDefault:"w1_slave"`

	ReadInterval  time.Duration `env:"READ_INTERVAL" envDefault:"2s"`
	DropThreshold float64       `env:"DROP_THRESHOLD" envDefault:"2.0"`

	// HTTPAddr enables the API and live feed when set, e.g. ":8080".
	HTTPAddr string `env:"HTTP_ADDR"`

	// InfluxURL enables the time-series sink when set.
	InfluxURL    string `env:"INFLUX_URL"`
	InfluxToken  string `env:"INFLUX_TOKEN"`
	InfluxOrg    string `env:"INFLUX_ORG"`
	InfluxBucket string `env:"INFLUX_BUCKET"`

	// DHTPin enables the ambient DHT22, e.g. "GPIO4".
	DHTPin string `env:"DHT_PIN"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads the given .env files (or ".env" when none are named) if they
// exist, then parses the environment.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.ReadInterval <= 0 {
		return fmt.Errorf("READ_INTERVAL must be positive, got %s", c.ReadInterval)
	}
	if c.DropThreshold <= 0 {
		return fmt.Errorf("DROP_THRESHOLD must be positive, got %v", c.DropThreshold)
	}
	if c.InfluxURL != "" && (c.InfluxOrg == "" || c.InfluxBucket == "") {
		return errors.New("INFLUX_ORG and INFLUX_BUCKET are required when INFLUX_URL is set")
	}
	return nil
}
