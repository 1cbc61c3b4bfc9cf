package sensors

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// W1DevicesDir is where the kernel w1 bus exposes its slaves.
	W1DevicesDir = "/sys/bus/w1/devices"
	// DS18B20Family is the w1 family code every DS18B20 directory starts with.
	DS18B20Family = "28"
	// DS18B20File holds the two-line CRC/temperature readout.
	DS18B20File = "w1_slave"
)

// ErrDeviceNotFound is returned when no probe directory matches the family prefix.
var ErrDeviceNotFound = errors.New("no DS18B20 sensor found")

// DS18B20 is a 1-Wire temperature probe exposed through sysfs.
type DS18B20 struct {
	Path string
}

// LocateDS18B20 resolves the probe's data file once. The first directory
// under baseDir whose name starts with prefix wins.
func LocateDS18B20(baseDir, prefix, file string) (*DS18B20, error) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w under %s: %w", ErrDeviceNotFound, baseDir, err)
	}

	// sysfs entries are symlinks, so IsDir is not checked here
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), prefix) {
			return &DS18B20{Path: filepath.Join(baseDir, entry.Name(), file)}, nil
		}
	}
	return nil, fmt.Errorf("%w under %s (looked for %s*)", ErrDeviceNotFound, baseDir, prefix)
}

func (d *DS18B20) Name() string {
	return "DS18B20"
}

// ReadLines opens the data file, reads every line and closes it again.
// Nothing is cached between calls.
func (d *DS18B20) ReadLines() ([]string, error) {
	f, err := os.Open(d.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.Path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", d.Path, err)
	}
	return lines, nil
}
