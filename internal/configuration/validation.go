package configuration

import (
	"errors"
	"fmt"

	"github.com/markusressel/coolctl/internal/ui"
	"github.com/markusressel/coolctl/internal/util"
	"golang.org/x/exp/slices"
)

func Validate(configPath string) error {
	return validateConfig(&CurrentConfig, configPath)
}

func validateConfig(config *Configuration, path string) error {
	if err := validateMonitoring(config); err != nil {
		return err
	}
	if err := validateSensors(config); err != nil {
		return err
	}
	if err := validateCurves(config); err != nil {
		return err
	}
	if err := validateActuators(config); err != nil {
		return err
	}
	if err := validateLimits(config); err != nil {
		return err
	}

	if containsCmdCollaborators(config) {
		if _, err := util.CheckFilePermissionsForExecution(path); err != nil {
			return fmt.Errorf("config file '%s' has invalid permissions: %s", path, err)
		}
	}

	return nil
}

func validateMonitoring(config *Configuration) error {
	if config.Interval <= 0 {
		return errors.New("interval must be > 0")
	}
	if config.HistorySize < 1 {
		return errors.New("historySize must be >= 1")
	}
	if config.SmoothingFactor <= 0 || config.SmoothingFactor > 1 {
		return errors.New("smoothingFactor must be in (0..1]")
	}
	if config.DegradedThreshold < 1 {
		return errors.New("degradedThreshold must be >= 1")
	}
	if config.ReadTimeout <= 0 || config.ReadTimeout >= config.Interval {
		return errors.New("readTimeout must be > 0 and smaller than the interval")
	}
	return nil
}

func validateSensors(config *Configuration) error {
	var seen []string
	for _, sensorConfig := range config.Sensors {
		if !slices.Contains(Signals, sensorConfig.ID) {
			return fmt.Errorf("sensor %s: unknown signal id, use one of: %v", sensorConfig.ID, Signals)
		}
		if slices.Contains(seen, sensorConfig.ID) {
			return fmt.Errorf("sensor %s: duplicate sensor definition", sensorConfig.ID)
		}
		seen = append(seen, sensorConfig.ID)

		subConfigs := 0
		if sensorConfig.HwMon != nil {
			subConfigs++
		}
		if sensorConfig.File != nil {
			subConfigs++
		}
		if sensorConfig.Cmd != nil {
			subConfigs++
		}
		if subConfigs > 1 {
			return fmt.Errorf("sensor %s: only one sensor type can be used per sensor definition block", sensorConfig.ID)
		}
		if subConfigs <= 0 {
			return fmt.Errorf("sensor %s: sub-configuration for sensor is missing, use one of: hwmon | file | cmd", sensorConfig.ID)
		}

		if sensorConfig.HwMon != nil {
			if sensorConfig.HwMon.Index <= 0 {
				return fmt.Errorf("sensor %s: invalid index, must be >= 1", sensorConfig.ID)
			}
		}
		if sensorConfig.File != nil {
			if len(sensorConfig.File.Path) <= 0 {
				return fmt.Errorf("sensor %s: no file path provided", sensorConfig.ID)
			}
		}
		if sensorConfig.Cmd != nil {
			if len(sensorConfig.Cmd.Exec) <= 0 {
				return fmt.Errorf("sensor %s: sensor executable is missing", sensorConfig.ID)
			}
		}
	}

	return nil
}

func validateCurves(config *Configuration) error {
	for _, curveConfig := range config.Curves {
		if len(curveConfig.Points) < 2 {
			return fmt.Errorf("curve %s: at least 2 points are required", curveConfig.ID)
		}

		for i, point := range curveConfig.Points {
			if point.Duty < 0 || point.Duty > 100 {
				return fmt.Errorf("curve %s: duty %f is outside of [0..100]", curveConfig.ID, point.Duty)
			}
			if i > 0 && curveConfig.Points[i-1].Temperature >= point.Temperature {
				return fmt.Errorf("curve %s: point temperatures must be strictly increasing", curveConfig.ID)
			}
		}

		if !isCurveConfigInUse(curveConfig, config.Actuators) {
			ui.Warning("Unused curve configuration: %s", curveConfig.ID)
		}
	}

	return nil
}

func isCurveConfigInUse(config CurveConfig, actuators []ActuatorConfig) bool {
	for _, actuatorConfig := range actuators {
		if actuatorConfig.Curve == config.ID {
			return true
		}
	}
	return false
}

func validateActuators(config *Configuration) error {
	var seen []string
	for _, actuatorConfig := range config.Actuators {
		if !slices.Contains(ActuatorRoles, actuatorConfig.ID) {
			return fmt.Errorf("actuator %s: unknown actuator role, use one of: %v", actuatorConfig.ID, ActuatorRoles)
		}
		if slices.Contains(seen, actuatorConfig.ID) {
			return fmt.Errorf("actuator %s: duplicate actuator definition", actuatorConfig.ID)
		}
		seen = append(seen, actuatorConfig.ID)

		subConfigs := 0
		if actuatorConfig.HwMon != nil {
			subConfigs++
		}
		if actuatorConfig.File != nil {
			subConfigs++
		}
		if actuatorConfig.Cmd != nil {
			subConfigs++
		}
		if subConfigs > 1 {
			return fmt.Errorf("actuator %s: only one actuator type can be used per actuator definition block", actuatorConfig.ID)
		}
		if subConfigs <= 0 {
			return fmt.Errorf("actuator %s: sub-configuration for actuator is missing, use one of: hwmon | file | cmd", actuatorConfig.ID)
		}

		if len(actuatorConfig.Channels) <= 0 {
			return fmt.Errorf("actuator %s: at least one channel is required", actuatorConfig.ID)
		}

		if len(actuatorConfig.Curve) <= 0 {
			return fmt.Errorf("actuator %s: missing curve definition in configuration entry", actuatorConfig.ID)
		}
		if !curveIdExists(actuatorConfig.Curve, config) {
			return fmt.Errorf("actuator %s: no curve definition with id '%s' found", actuatorConfig.ID, actuatorConfig.Curve)
		}

		if actuatorConfig.HwMon != nil {
			for _, channel := range actuatorConfig.Channels {
				index, ok := actuatorConfig.HwMon.Outputs[channel]
				if !ok {
					return fmt.Errorf("actuator %s: no pwm output mapped for channel '%s'", actuatorConfig.ID, channel)
				}
				if index <= 0 {
					return fmt.Errorf("actuator %s: invalid pwm index for channel '%s', must be >= 1", actuatorConfig.ID, channel)
				}
			}
		}
		if actuatorConfig.File != nil {
			for _, channel := range actuatorConfig.Channels {
				if len(actuatorConfig.File.Paths[channel]) <= 0 {
					return fmt.Errorf("actuator %s: no file path mapped for channel '%s'", actuatorConfig.ID, channel)
				}
			}
		}
		if actuatorConfig.Cmd != nil {
			cmdConfig := actuatorConfig.Cmd
			if cmdConfig.SetDuty == nil {
				return fmt.Errorf("actuator %s: missing setDuty configuration", actuatorConfig.ID)
			}
			if len(cmdConfig.SetDuty.Exec) <= 0 {
				return fmt.Errorf("actuator %s: setDuty executable is missing", actuatorConfig.ID)
			}
			if cmdConfig.GetDuty != nil && len(cmdConfig.GetDuty.Exec) <= 0 {
				return fmt.Errorf("actuator %s: getDuty executable is missing", actuatorConfig.ID)
			}
		}
	}

	return nil
}

func validateLimits(config *Configuration) error {
	for signal, limit := range config.Limits {
		if !slices.Contains(Signals, signal) {
			return fmt.Errorf("limit %s: unknown signal id, use one of: %v", signal, Signals)
		}
		if limit <= 0 {
			return fmt.Errorf("limit %s: must be > 0", signal)
		}
	}
	return nil
}

func curveIdExists(curveId string, config *Configuration) bool {
	for _, curve := range config.Curves {
		if curve.ID == curveId {
			return true
		}
	}
	return false
}

func containsCmdCollaborators(config *Configuration) bool {
	for _, sensorConfig := range config.Sensors {
		if sensorConfig.Cmd != nil {
			return true
		}
	}
	for _, actuatorConfig := range config.Actuators {
		if actuatorConfig.Cmd != nil {
			return true
		}
	}
	return false
}
