package hwmon

import (
	"testing"

	"github.com/markusressel/coolctl/internal/configuration"
	"github.com/markusressel/coolctl/internal/sensors"
	"github.com/md14454/gosensors"
	"github.com/stretchr/testify/assert"
)

func TestComputeIdentifierIsa(t *testing.T) {
	// GIVEN
	c := gosensors.Chip{
		Prefix: "nct6798",
		Bus: gosensors.Bus{
			Type: BusTypeIsa,
			Nr:   1,
		},
		Path: "/sys/class/hwmon/hwmon7",
	}
	expected := "nct6798-isa-1"

	// WHEN
	result := computeIdentifier(c)

	// THEN
	assert.Equal(t, expected, result)
}

func TestComputeIdentifierPci(t *testing.T) {
	// GIVEN
	c := gosensors.Chip{
		Prefix: "nvme",
		Bus: gosensors.Bus{
			Type: BusTypePci,
			Nr:   1,
		},
		Path: "/sys/class/hwmon/hwmon4",
	}
	expected := "nvme-pci-1"

	// WHEN
	result := computeIdentifier(c)

	// THEN
	assert.Equal(t, expected, result)
}

func TestFindPlatform(t *testing.T) {
	// GIVEN
	devicePath := "/sys/devices/platform/nct6775.656/hwmon/hwmon3"

	// WHEN
	platform := findPlatform(devicePath)

	// THEN
	assert.Equal(t, "nct6775.656", platform)
}

func TestFindPlatformWithoutPlatformDevice(t *testing.T) {
	// GIVEN
	devicePath := "/sys/devices/pci0000:00/0000:00:18.3/hwmon/hwmon2"

	// WHEN
	platform := findPlatform(devicePath)

	// THEN
	assert.Equal(t, "", platform)
}

func TestParseChannel(t *testing.T) {
	// GIVEN
	// WHEN
	// THEN
	assert.Equal(t, 3, parseChannel("temp3_input"))
	assert.Equal(t, 2, parseChannel("pwm2"))
	assert.Equal(t, -1, parseChannel("name"))
}

func TestUpdateSensorConfigFromHwMonControllers(t *testing.T) {
	var tests = []struct {
		tn            string
		hwmonSensors  map[int]*sensors.HwmonSensor
		hwMonPlatform string
		configConfig  configuration.HwMonSensorConfig
		wantTempInput string
		wantErr       string
	}{{
		tn: "match by index",
		hwmonSensors: map[int]*sensors.HwmonSensor{
			3: {Index: 1, Input: "/sys/hwmon1/temp3_input"},
		},
		configConfig: configuration.HwMonSensorConfig{
			Index: 1,
		},
		wantTempInput: "/sys/hwmon1/temp3_input",
	}, {
		tn: "no hwmon sensors",
		configConfig: configuration.HwMonSensorConfig{
			Index: 1,
		},
		wantErr: "no hwmon sensor matched sensor config",
	}, {
		tn: "no matching index",
		hwmonSensors: map[int]*sensors.HwmonSensor{
			3: {Index: 2, Input: "/sys/hwmon1/temp3_input"},
		},
		configConfig: configuration.HwMonSensorConfig{
			Index: 1,
		},
		wantErr: "no hwmon sensor matched sensor config",
	}, {
		tn: "no matching platform",
		hwmonSensors: map[int]*sensors.HwmonSensor{
			3: {Index: 1, Input: "/sys/hwmon1/temp3_input"},
		},
		hwMonPlatform: "abc[",
		configConfig: configuration.HwMonSensorConfig{
			Index: 1,
		},
		wantErr: "no hwmon sensor matched sensor config",
	}}

	for _, tt := range tests {
		t.Run(tt.tn, func(t *testing.T) {
			// GIVEN
			if tt.hwMonPlatform == "" {
				tt.hwMonPlatform = "platform"
			}
			controllers := []*HwMonController{
				{
					Platform: tt.hwMonPlatform,
					Sensors:  tt.hwmonSensors,
				},
			}
			if tt.configConfig.Platform == "" {
				tt.configConfig.Platform = "platform"
			}
			config := configuration.SensorConfig{
				ID:    configuration.SignalCpu,
				HwMon: &tt.configConfig,
			}

			// WHEN
			err := UpdateSensorConfigFromHwMonControllers(controllers, &config)

			// THEN
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantTempInput, config.HwMon.TempInput)
			}
		})
	}
}

func TestUpdateActuatorConfigFromHwMonControllers(t *testing.T) {
	var tests = []struct {
		tn             string
		pwmOutputs     map[int]string
		hwMonPlatform  string
		configConfig   configuration.HwMonActuatorConfig
		wantPwmOutputs map[string]string
		wantErr        string
	}{{
		tn: "resolve all channels",
		pwmOutputs: map[int]string{
			1: "/sys/hwmon1/pwm1",
			2: "/sys/hwmon1/pwm2",
		},
		configConfig: configuration.HwMonActuatorConfig{
			Outputs: map[string]int{"front": 1, "rear": 2},
		},
		wantPwmOutputs: map[string]string{
			"front": "/sys/hwmon1/pwm1",
			"rear":  "/sys/hwmon1/pwm2",
		},
	}, {
		tn: "missing pwm channel",
		pwmOutputs: map[int]string{
			1: "/sys/hwmon1/pwm1",
		},
		configConfig: configuration.HwMonActuatorConfig{
			Outputs: map[string]int{"front": 1, "rear": 2},
		},
		wantErr: "no pwm output 2",
	}, {
		tn: "no matching platform",
		pwmOutputs: map[int]string{
			1: "/sys/hwmon1/pwm1",
		},
		hwMonPlatform: "other",
		configConfig: configuration.HwMonActuatorConfig{
			Outputs: map[string]int{"front": 1},
		},
		wantErr: "no hwmon chip matched actuator config",
	}}

	for _, tt := range tests {
		t.Run(tt.tn, func(t *testing.T) {
			// GIVEN
			if tt.hwMonPlatform == "" {
				tt.hwMonPlatform = "platform"
			}
			controllers := []*HwMonController{
				{
					Platform:   tt.hwMonPlatform,
					PwmOutputs: tt.pwmOutputs,
				},
			}
			if tt.configConfig.Platform == "" {
				tt.configConfig.Platform = "platform"
			}
			config := configuration.ActuatorConfig{
				ID:    configuration.ActuatorRadiator,
				HwMon: &tt.configConfig,
			}

			// WHEN
			err := UpdateActuatorConfigFromHwMonControllers(controllers, &config)

			// THEN
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantPwmOutputs, config.HwMon.PwmOutputs)
			}
		})
	}
}
