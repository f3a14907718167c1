package sensors

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/markusressel/coolctl/internal/configuration"
	"github.com/markusressel/coolctl/internal/util"
)

const cmdSensorTimeout = 2 * time.Second

type CmdSensor struct {
	valueMu sync.Mutex

	Config    configuration.SensorConfig `json:"configuration"`
	LastValue float64                    `json:"lastValue"`
}

func (sensor *CmdSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor *CmdSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

// Read executes the configured command and parses its output as a
// temperature in °C.
func (sensor *CmdSensor) Read(ctx context.Context) (float64, error) {
	timeout := cmdSensorTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}

	exec := sensor.Config.Cmd.Exec
	args := sensor.Config.Cmd.Args
	result, err := util.SafeCmdExecution(exec, args, timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %s", ErrUnavailable, sensor.GetId(), err)
	}

	temp, err := strconv.ParseFloat(result, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: unable to parse command output: %s", ErrUnavailable, sensor.GetId(), err)
	}

	return temp, nil
}

func (sensor *CmdSensor) GetLastValue() float64 {
	sensor.valueMu.Lock()
	defer sensor.valueMu.Unlock()
	return sensor.LastValue
}

func (sensor *CmdSensor) SetLastValue(value float64) {
	sensor.valueMu.Lock()
	defer sensor.valueMu.Unlock()
	sensor.LastValue = value
}
