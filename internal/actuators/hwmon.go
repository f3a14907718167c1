package actuators

import (
	"fmt"
	"math"
	"sync"

	"github.com/markusressel/coolctl/internal/configuration"
	"github.com/markusressel/coolctl/internal/util"
)

const (
	MaxPwmValue = 255
	MinPwmValue = 0
)

type HwMonActuator struct {
	dutyMu sync.Mutex

	Label    string                       `json:"label"`
	Config   configuration.ActuatorConfig `json:"configuration"`
	LastDuty map[string]int               `json:"lastDuty"`
}

func (actuator *HwMonActuator) GetId() string {
	return actuator.Config.ID
}

func (actuator *HwMonActuator) GetConfig() configuration.ActuatorConfig {
	return actuator.Config
}

func (actuator *HwMonActuator) GetChannels() []string {
	return actuator.Config.Channels
}

// SetDuty writes the duty to the pwm attribute of the given channel.
// The percentage is scaled to the [0..255] range used by hwmon.
func (actuator *HwMonActuator) SetDuty(channel string, percent int) (err error) {
	pwmPath, ok := actuator.Config.HwMon.PwmOutputs[channel]
	if !ok {
		return fmt.Errorf("%w: %s: no pwm output for channel %s", ErrDispatch, actuator.GetId(), channel)
	}

	pwm := dutyToPwm(percent)
	err = util.WriteIntToFile(pwm, pwmPath)
	if err != nil {
		return fmt.Errorf("%w: %s: %s", ErrDispatch, actuator.GetId(), err)
	}
	actuator.dutyMu.Lock()
	actuator.LastDuty[channel] = percent
	actuator.dutyMu.Unlock()
	return nil
}

// GetDuty reads the pwm attribute of the given channel and converts
// it back to percent.
func (actuator *HwMonActuator) GetDuty(channel string) (int, error) {
	pwmPath, ok := actuator.Config.HwMon.PwmOutputs[channel]
	if !ok {
		return 0, fmt.Errorf("no pwm output for channel %s", channel)
	}

	pwm, err := util.ReadIntFromFile(pwmPath)
	if err != nil {
		return 0, err
	}
	return int(math.Round(float64(pwm) / MaxPwmValue * 100.0)), nil
}

func (actuator *HwMonActuator) GetLastDuty(channel string) (int, bool) {
	actuator.dutyMu.Lock()
	defer actuator.dutyMu.Unlock()
	duty, ok := actuator.LastDuty[channel]
	return duty, ok
}

func dutyToPwm(percent int) int {
	pwm := int(math.Round(float64(percent) / 100.0 * MaxPwmValue))
	return int(util.Coerce(float64(pwm), MinPwmValue, MaxPwmValue))
}
