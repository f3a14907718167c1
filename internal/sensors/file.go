package sensors

import (
	"context"
	"fmt"
	"os/user"
	"path/filepath"
	"strings"
	"sync"

	"github.com/markusressel/coolctl/internal/configuration"
	"github.com/markusressel/coolctl/internal/util"
)

type FileSensor struct {
	valueMu sync.Mutex

	Config    configuration.SensorConfig `json:"configuration"`
	LastValue float64                    `json:"lastValue"`
}

func (sensor *FileSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor *FileSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

// Read reads the temperature in °C from the configured file.
func (sensor *FileSensor) Read(ctx context.Context) (float64, error) {
	filePath := sensor.Config.File.Path
	// resolve home dir path
	if strings.HasPrefix(filePath, "~") {
		currentUser, err := user.Current()
		if err != nil {
			return 0, err
		}

		filePath = filepath.Join(currentUser.HomeDir, filePath[1:])
	}

	value, err := util.ReadFloatFromFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %s", ErrUnavailable, sensor.GetId(), err)
	}
	return value, nil
}

func (sensor *FileSensor) GetLastValue() float64 {
	sensor.valueMu.Lock()
	defer sensor.valueMu.Unlock()
	return sensor.LastValue
}

func (sensor *FileSensor) SetLastValue(value float64) {
	sensor.valueMu.Lock()
	defer sensor.valueMu.Unlock()
	sensor.LastValue = value
}
