package sensors

import (
	"context"
	"fmt"
	"sync"

	"github.com/markusressel/coolctl/internal/configuration"
	"github.com/markusressel/coolctl/internal/util"
)

type HwmonSensor struct {
	valueMu sync.Mutex

	Label     string                     `json:"label"`
	Index     int                        `json:"index"`
	Input     string                     `json:"input"`
	Config    configuration.SensorConfig `json:"configuration"`
	LastValue float64                    `json:"lastValue"`
}

func (sensor *HwmonSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor *HwmonSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

// Read reads the temp input of this sensor. hwmon reports
// milli-degrees, the result is converted to °C.
func (sensor *HwmonSensor) Read(ctx context.Context) (float64, error) {
	integer, err := util.ReadIntFromFile(sensor.Input)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %s", ErrUnavailable, sensor.GetId(), err)
	}
	return float64(integer) / 1000.0, nil
}

func (sensor *HwmonSensor) GetLastValue() float64 {
	sensor.valueMu.Lock()
	defer sensor.valueMu.Unlock()
	return sensor.LastValue
}

func (sensor *HwmonSensor) SetLastValue(value float64) {
	sensor.valueMu.Lock()
	defer sensor.valueMu.Unlock()
	sensor.LastValue = value
}
