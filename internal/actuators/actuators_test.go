package actuators

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/markusressel/coolctl/internal/configuration"
	"github.com/stretchr/testify/assert"
)

func TestDutyToPwmScaling(t *testing.T) {
	// GIVEN
	// WHEN
	// THEN
	assert.Equal(t, 0, dutyToPwm(0))
	assert.Equal(t, 128, dutyToPwm(50))
	assert.Equal(t, 255, dutyToPwm(100))
	assert.Equal(t, 255, dutyToPwm(120))
	assert.Equal(t, 0, dutyToPwm(-5))
}

func TestHwMonActuatorWritesPwmValue(t *testing.T) {
	// GIVEN
	pwmPath := filepath.Join(t.TempDir(), "pwm1")
	err := os.WriteFile(pwmPath, []byte("0"), 0644)
	assert.NoError(t, err)

	actuator := &HwMonActuator{
		Config: configuration.ActuatorConfig{
			ID:       configuration.ActuatorPump,
			Channels: []string{"pump"},
			HwMon: &configuration.HwMonActuatorConfig{
				Platform:   "nct6798",
				Outputs:    map[string]int{"pump": 1},
				PwmOutputs: map[string]string{"pump": pwmPath},
			},
		},
		LastDuty: map[string]int{},
	}

	// WHEN
	err = actuator.SetDuty("pump", 60)

	// THEN
	assert.NoError(t, err)
	content, err := os.ReadFile(pwmPath)
	assert.NoError(t, err)
	assert.Equal(t, "153", string(content))

	duty, ok := actuator.GetLastDuty("pump")
	assert.True(t, ok)
	assert.Equal(t, 60, duty)
}

func TestHwMonActuatorUnknownChannel(t *testing.T) {
	// GIVEN
	actuator := &HwMonActuator{
		Config: configuration.ActuatorConfig{
			ID:       configuration.ActuatorPump,
			Channels: []string{"pump"},
			HwMon: &configuration.HwMonActuatorConfig{
				PwmOutputs: map[string]string{},
			},
		},
		LastDuty: map[string]int{},
	}

	// WHEN
	err := actuator.SetDuty("pump", 60)

	// THEN
	assert.ErrorIs(t, err, ErrDispatch)
	_, ok := actuator.GetLastDuty("pump")
	assert.False(t, ok)
}

func TestHwMonActuatorGetDutyReadsPwmValue(t *testing.T) {
	// GIVEN
	pwmPath := filepath.Join(t.TempDir(), "pwm1")
	err := os.WriteFile(pwmPath, []byte("153"), 0644)
	assert.NoError(t, err)

	actuator := &HwMonActuator{
		Config: configuration.ActuatorConfig{
			ID:       configuration.ActuatorPump,
			Channels: []string{"pump"},
			HwMon: &configuration.HwMonActuatorConfig{
				PwmOutputs: map[string]string{"pump": pwmPath},
			},
		},
		LastDuty: map[string]int{},
	}

	// WHEN
	duty, err := actuator.GetDuty("pump")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 60, duty)
}

func TestCmdActuatorGetDutyFallsBackToLastDuty(t *testing.T) {
	// GIVEN
	actuator := &CmdActuator{
		Config: configuration.ActuatorConfig{
			ID:       configuration.ActuatorPump,
			Channels: []string{"pump"},
			Cmd: &configuration.CmdActuatorConfig{
				SetDuty: &configuration.CmdConfig{
					Exec: "/usr/bin/liquidctl",
					Args: []string{"set", "%channel%", "speed", "%duty%"},
				},
			},
		},
		LastDuty: map[string]int{"pump": 40},
	}

	// WHEN
	duty, err := actuator.GetDuty("pump")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 40, duty)
}

func TestFileActuatorWritesDutyInPercent(t *testing.T) {
	// GIVEN
	frontPath := filepath.Join(t.TempDir(), "front")

	actuator := &FileActuator{
		Config: configuration.ActuatorConfig{
			ID:       configuration.ActuatorRadiator,
			Channels: []string{"front"},
			File: &configuration.FileActuatorConfig{
				Paths: map[string]string{"front": frontPath},
			},
		},
		LastDuty: map[string]int{},
	}

	// WHEN
	err := actuator.SetDuty("front", 45)

	// THEN
	assert.NoError(t, err)
	content, err := os.ReadFile(frontPath)
	assert.NoError(t, err)
	assert.Equal(t, "45", string(content))
}

func TestFileActuatorDispatchFailureKeepsLastDuty(t *testing.T) {
	// GIVEN
	actuator := &FileActuator{
		Config: configuration.ActuatorConfig{
			ID:       configuration.ActuatorRadiator,
			Channels: []string{"front"},
			File: &configuration.FileActuatorConfig{
				Paths: map[string]string{"front": "/proc/does/not/exist"},
			},
		},
		LastDuty: map[string]int{"front": 30},
	}

	// WHEN
	err := actuator.SetDuty("front", 45)

	// THEN
	assert.ErrorIs(t, err, ErrDispatch)
	duty, ok := actuator.GetLastDuty("front")
	assert.True(t, ok)
	assert.Equal(t, 30, duty)
}

func TestLastDutyAccessIsConcurrencySafe(t *testing.T) {
	// GIVEN
	frontPath := filepath.Join(t.TempDir(), "front")
	actuator := &FileActuator{
		Config: configuration.ActuatorConfig{
			ID:       configuration.ActuatorRadiator,
			Channels: []string{"front"},
			File: &configuration.FileActuatorConfig{
				Paths: map[string]string{"front": frontPath},
			},
		},
		LastDuty: map[string]int{},
	}

	// WHEN
	// dispatch on one goroutine while collectors read on another
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(duty int) {
			defer wg.Done()
			_ = actuator.SetDuty("front", duty)
		}(i)
		go func() {
			defer wg.Done()
			_, _ = actuator.GetLastDuty("front")
		}()
	}
	wg.Wait()

	// THEN
	duty, ok := actuator.GetLastDuty("front")
	assert.True(t, ok)
	assert.GreaterOrEqual(t, duty, 0)
	assert.Less(t, duty, 50)
}

func TestNewActuatorDispatchesOnBackend(t *testing.T) {
	// GIVEN
	fileConfig := configuration.ActuatorConfig{
		ID:       configuration.ActuatorMotherboard,
		Channels: []string{"chassis"},
		File: &configuration.FileActuatorConfig{
			Paths: map[string]string{"chassis": "/tmp/chassis"},
		},
	}
	cmdConfig := configuration.ActuatorConfig{
		ID:       configuration.ActuatorPump,
		Channels: []string{"pump"},
		Cmd: &configuration.CmdActuatorConfig{
			SetDuty: &configuration.CmdConfig{
				Exec: "/usr/bin/liquidctl",
				Args: []string{"set", "%channel%", "speed", "%duty%"},
			},
		},
	}

	// WHEN
	fileActuator, fileErr := NewActuator(fileConfig)
	cmdActuator, cmdErr := NewActuator(cmdConfig)

	// THEN
	assert.NoError(t, fileErr)
	assert.IsType(t, &FileActuator{}, fileActuator)
	assert.NoError(t, cmdErr)
	assert.IsType(t, &CmdActuator{}, cmdActuator)
}

func TestNewActuatorWithoutBackend(t *testing.T) {
	// GIVEN
	config := configuration.ActuatorConfig{
		ID: configuration.ActuatorPump,
	}

	// WHEN
	_, err := NewActuator(config)

	// THEN
	assert.Error(t, err)
}
