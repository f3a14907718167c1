package actuators

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/markusressel/coolctl/internal/configuration"
	"github.com/markusressel/coolctl/internal/util"
)

const cmdActuatorTimeout = 2 * time.Second

type CmdActuator struct {
	dutyMu sync.Mutex

	Config   configuration.ActuatorConfig `json:"configuration"`
	LastDuty map[string]int               `json:"lastDuty"`
}

func (actuator *CmdActuator) GetId() string {
	return actuator.Config.ID
}

func (actuator *CmdActuator) GetConfig() configuration.ActuatorConfig {
	return actuator.Config
}

func (actuator *CmdActuator) GetChannels() []string {
	return actuator.Config.Channels
}

// SetDuty executes the configured command. The placeholders %channel%
// and %duty% in the argument list are replaced before execution.
func (actuator *CmdActuator) SetDuty(channel string, percent int) (err error) {
	conf := actuator.Config.Cmd.SetDuty

	dutyString := strconv.Itoa(percent)
	args := make([]string, 0, len(conf.Args))
	for _, arg := range conf.Args {
		replaced := strings.ReplaceAll(arg, "%channel%", channel)
		replaced = strings.ReplaceAll(replaced, "%duty%", dutyString)
		args = append(args, replaced)
	}

	_, err = util.SafeCmdExecution(conf.Exec, args, cmdActuatorTimeout)
	if err != nil {
		return fmt.Errorf("%w: %s: %s", ErrDispatch, actuator.GetId(), err)
	}
	actuator.dutyMu.Lock()
	actuator.LastDuty[channel] = percent
	actuator.dutyMu.Unlock()
	return nil
}

// GetDuty executes the configured getDuty command if there is one,
// otherwise it falls back to the last duty commanded in this process.
func (actuator *CmdActuator) GetDuty(channel string) (int, error) {
	conf := actuator.Config.Cmd.GetDuty
	if conf == nil {
		duty, ok := actuator.GetLastDuty(channel)
		if !ok {
			return 0, fmt.Errorf("no getDuty command configured for %s and no duty commanded yet", actuator.GetId())
		}
		return duty, nil
	}

	args := make([]string, 0, len(conf.Args))
	for _, arg := range conf.Args {
		args = append(args, strings.ReplaceAll(arg, "%channel%", channel))
	}

	result, err := util.SafeCmdExecution(conf.Exec, args, cmdActuatorTimeout)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(result))
}

func (actuator *CmdActuator) GetLastDuty(channel string) (int, bool) {
	actuator.dutyMu.Lock()
	defer actuator.dutyMu.Unlock()
	duty, ok := actuator.LastDuty[channel]
	return duty, ok
}
