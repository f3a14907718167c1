package configuration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() Configuration {
	return Configuration{
		Interval:          2 * time.Second,
		ReadTimeout:       1 * time.Second,
		HistorySize:       10,
		SmoothingFactor:   0.2,
		DegradedThreshold: 5,
		Sensors: []SensorConfig{
			{
				ID:   SignalCoolant,
				File: &FileSensorConfig{Path: "/tmp/coolant"},
			},
		},
		Actuators: []ActuatorConfig{
			{
				ID:       ActuatorRadiator,
				Curve:    "radiator",
				Channels: []string{"fan1", "fan2"},
				File: &FileActuatorConfig{
					Paths: map[string]string{
						"fan1": "/tmp/fan1",
						"fan2": "/tmp/fan2",
					},
				},
			},
		},
		Curves: []CurveConfig{
			{
				ID: "radiator",
				Points: ProfilePoints{
					{Temperature: 20, Duty: 20},
					{Temperature: 45, Duty: 100},
				},
			},
		},
		Limits: LimitsConfig{
			SignalCoolant: 50.0,
		},
	}
}

func TestValidateValidConfig(t *testing.T) {
	// GIVEN
	config := validConfig()

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.NoError(t, err)
}

func TestValidateZeroInterval(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Interval = 0

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.Error(t, err)
}

func TestValidateSmoothingFactorOutOfRange(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.SmoothingFactor = 1.5

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.Error(t, err)
}

func TestValidateUnknownSensorId(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Sensors[0].ID = "psu"

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.Error(t, err)
}

func TestValidateSensorWithoutBackend(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Sensors[0].File = nil

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.Error(t, err)
}

func TestValidateCurveWithSingleKnot(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Curves[0].Points = ProfilePoints{
		{Temperature: 20, Duty: 20},
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.Error(t, err)
}

func TestValidateCurveWithNonIncreasingTemperature(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Curves[0].Points = ProfilePoints{
		{Temperature: 20, Duty: 20},
		{Temperature: 20, Duty: 40},
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.Error(t, err)
}

func TestValidateCurveWithDutyOutOfRange(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Curves[0].Points = ProfilePoints{
		{Temperature: 20, Duty: 20},
		{Temperature: 45, Duty: 110},
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.Error(t, err)
}

func TestValidateActuatorWithUnknownCurve(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Actuators[0].Curve = "does-not-exist"

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.Error(t, err)
}

func TestValidateActuatorWithUnmappedChannel(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Actuators[0].File.Paths = map[string]string{
		"fan1": "/tmp/fan1",
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.Error(t, err)
}

func TestValidateUnknownLimitSignal(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Limits = LimitsConfig{"psu": 60.0}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.Error(t, err)
}
