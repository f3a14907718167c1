package actuators

import (
	"fmt"
	"sync"

	"github.com/markusressel/coolctl/internal/configuration"
	"github.com/markusressel/coolctl/internal/util"
)

type FileActuator struct {
	dutyMu sync.Mutex

	Config   configuration.ActuatorConfig `json:"configuration"`
	LastDuty map[string]int               `json:"lastDuty"`
}

func (actuator *FileActuator) GetId() string {
	return actuator.Config.ID
}

func (actuator *FileActuator) GetConfig() configuration.ActuatorConfig {
	return actuator.Config
}

func (actuator *FileActuator) GetChannels() []string {
	return actuator.Config.Channels
}

// SetDuty writes the duty in percent to the file configured for the
// given channel.
func (actuator *FileActuator) SetDuty(channel string, percent int) (err error) {
	filePath, ok := actuator.Config.File.Paths[channel]
	if !ok {
		return fmt.Errorf("%w: %s: no file path for channel %s", ErrDispatch, actuator.GetId(), channel)
	}

	err = util.WriteIntToFileAtomic(percent, filePath)
	if err != nil {
		return fmt.Errorf("%w: %s: %s", ErrDispatch, actuator.GetId(), err)
	}
	actuator.dutyMu.Lock()
	actuator.LastDuty[channel] = percent
	actuator.dutyMu.Unlock()
	return nil
}

func (actuator *FileActuator) GetDuty(channel string) (int, error) {
	filePath, ok := actuator.Config.File.Paths[channel]
	if !ok {
		return 0, fmt.Errorf("no file path for channel %s", channel)
	}
	return util.ReadIntFromFile(filePath)
}

func (actuator *FileActuator) GetLastDuty(channel string) (int, bool) {
	actuator.dutyMu.Lock()
	defer actuator.dutyMu.Unlock()
	duty, ok := actuator.LastDuty[channel]
	return duty, ok
}
