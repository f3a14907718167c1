package sensors

import (
	"context"
	"errors"
	"fmt"

	"github.com/markusressel/coolctl/internal/configuration"
	cmap "github.com/orcaman/concurrent-map/v2"
)

// ErrUnavailable marks a transient sensor failure. A reading affected
// by it is treated as absent for the cycle, it never aborts the cycle.
var ErrUnavailable = errors.New("sensor unavailable")

var (
	SensorMap = cmap.New[Sensor]()
)

type Sensor interface {
	GetId() string

	GetConfig() configuration.SensorConfig

	// Read returns the current temperature of this sensor in °C
	Read(ctx context.Context) (float64, error)

	// GetLastValue returns the most recent raw reading
	GetLastValue() float64
	SetLastValue(value float64)
}

func NewSensor(config configuration.SensorConfig) (Sensor, error) {
	if config.HwMon != nil {
		return &HwmonSensor{
			Index:  config.HwMon.Index,
			Input:  config.HwMon.TempInput,
			Config: config,
		}, nil
	}

	if config.File != nil {
		return &FileSensor{
			Config: config,
		}, nil
	}

	if config.Cmd != nil {
		return &CmdSensor{
			Config: config,
		}, nil
	}

	return nil, fmt.Errorf("no matching sensor type for sensor: %s", config.ID)
}
