package sensors

import (
	"fmt"
	"time"

	"github.com/MichaelS11/go-dht"
)

const dhtReadRetries = 11

// DHT22 samples room temperature and humidity next to the probe.
type DHT22 struct {
	Pin string
	Dht *dht.DHT
}

func NewDHT22(pin string) (*DHT22, error) {
	if err := dht.HostInit(); err != nil {
		return nil, fmt.Errorf("init gpio host: %w", err)
	}

	d := &DHT22{Pin: pin}

	var err error
	d.Dht, err = dht.NewDHT(pin, dht.Celsius, "")
	if err != nil {
		return nil, fmt.Errorf("dht22 on %s: %w", pin, err)
	}

	return d, nil
}

func (d *DHT22) Name() string {
	return "DHT22"
}

func (d *DHT22) Read() (*SensorData, error) {
	humidity, temperature, err := d.Dht.ReadRetry(dhtReadRetries)
	if err != nil {
		return nil, err
	}

	return &SensorData{
		SensorType: "dht22",
		Fields: map[string]float64{
			"temperature": temperature,
			"humidity":    humidity,
		},
		Timestamp: time.Now(),
	}, nil
}
