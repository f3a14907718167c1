package hwmon

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/markusressel/coolctl/internal/configuration"
	"github.com/markusressel/coolctl/internal/sensors"
	"github.com/markusressel/coolctl/internal/util"
	"github.com/md14454/gosensors"
)

const (
	BusTypeIsa  = 1
	BusTypePci  = 2
	BusTypeAcpi = 5
)

type HwMonController struct {
	Name     string
	DType    string
	Modalias string
	Platform string
	Path     string

	// Sensors maps the temp channel number to the detected sensor
	Sensors map[int]*sensors.HwmonSensor
	// PwmOutputs maps the pwm channel number to the sysfs attribute path
	PwmOutputs map[int]string
}

// GetChips detects all hwmon chips on the system via libsensors.
func GetChips() []*HwMonController {
	gosensors.Init()
	defer gosensors.Cleanup()
	chips := gosensors.GetDetectedChips()

	var list []*HwMonController

	for i := 0; i < len(chips); i++ {
		chip := chips[i]

		var identifier = computeIdentifier(chip)
		dType := util.GetDeviceType(chip.Path)
		modalias := util.GetDeviceModalias(chip.Path)
		platform := findPlatform(chip.Path)
		if len(platform) <= 0 {
			platform = identifier
		}

		sensorMap := GetTempSensors(chip)
		pwmOutputs := GetPwmOutputs(chip.Path)

		if len(sensorMap) <= 0 && len(pwmOutputs) <= 0 {
			continue
		}

		c := &HwMonController{
			Name:       identifier,
			DType:      dType,
			Modalias:   modalias,
			Platform:   platform,
			Path:       chip.Path,
			Sensors:    sensorMap,
			PwmOutputs: pwmOutputs,
		}
		list = append(list, c)
	}

	return list
}

// GetTempSensors returns the temp inputs of the given chip, keyed by
// their channel number.
func GetTempSensors(chip gosensors.Chip) map[int]*sensors.HwmonSensor {
	result := map[int]*sensors.HwmonSensor{}

	features := chip.GetFeatures()
	index := 1
	for j := 0; j < len(features); j++ {
		feature := features[j]

		if feature.Type != gosensors.FeatureTypeTemp {
			continue
		}

		subfeatures := feature.GetSubFeatures()

		if containsSubFeature(subfeatures, gosensors.SubFeatureTypeTempInput) {
			inputSubFeature := getSubFeature(subfeatures, gosensors.SubFeatureTypeTempInput)
			sensorInputPath := fmt.Sprintf("%s/%s", chip.Path, inputSubFeature.Name)

			label := getLabel(chip.Path, inputSubFeature.Name)
			channel := parseChannel(inputSubFeature.Name)

			result[channel] = &sensors.HwmonSensor{
				Label: label,
				Index: index,
				Input: sensorInputPath,
			}
			index++
		}
	}

	return result
}

// GetPwmOutputs scans the chip path for writable pwmN attributes.
func GetPwmOutputs(chipPath string) map[int]string {
	result := map[int]string{}

	entries, err := os.ReadDir(chipPath)
	if err != nil {
		return result
	}

	pwmRegex := regexp.MustCompile(`^pwm(\d+)$`)
	for _, entry := range entries {
		matches := pwmRegex.FindStringSubmatch(entry.Name())
		if matches == nil {
			continue
		}
		channel := parseChannel(entry.Name())
		result[channel] = filepath.Join(chipPath, entry.Name())
	}

	return result
}

// UpdateSensorConfigFromHwMonControllers resolves the temp input path
// of the given sensor config from the detected chips.
func UpdateSensorConfigFromHwMonControllers(controllers []*HwMonController, config *configuration.SensorConfig) error {
	for _, controller := range controllers {
		if !platformMatches(controller.Platform, config.HwMon.Platform) {
			continue
		}
		for _, sensor := range controller.Sensors {
			if sensor.Index == config.HwMon.Index {
				config.HwMon.TempInput = sensor.Input
				return nil
			}
		}
	}

	return fmt.Errorf("no hwmon sensor matched sensor config: %s", config.ID)
}

// UpdateActuatorConfigFromHwMonControllers resolves the pwm output
// paths of all channels of the given actuator config from the
// detected chips.
func UpdateActuatorConfigFromHwMonControllers(controllers []*HwMonController, config *configuration.ActuatorConfig) error {
	for _, controller := range controllers {
		if !platformMatches(controller.Platform, config.HwMon.Platform) {
			continue
		}

		pwmOutputs := map[string]string{}
		for channel, pwmChannel := range config.HwMon.Outputs {
			path, ok := controller.PwmOutputs[pwmChannel]
			if !ok {
				return fmt.Errorf("no pwm output %d on platform %s for channel %s", pwmChannel, controller.Platform, channel)
			}
			pwmOutputs[channel] = path
		}
		config.HwMon.PwmOutputs = pwmOutputs
		return nil
	}

	return fmt.Errorf("no hwmon chip matched actuator config: %s", config.ID)
}

func platformMatches(platform string, pattern string) bool {
	if platform == pattern {
		return true
	}
	platformRegex, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	return platformRegex.MatchString(platform)
}

func getSubFeature(subfeatures []gosensors.SubFeature, input gosensors.SubFeatureType) gosensors.SubFeature {
	for _, a := range subfeatures {
		if a.Type == input {
			return a
		}
	}
	panic(fmt.Errorf("no such element: %v", input))
}

func containsSubFeature(s []gosensors.SubFeature, e gosensors.SubFeatureType) bool {
	for _, a := range s {
		if a.Type == e {
			return true
		}
	}
	return false
}

// getLabel read the label of a in/output of a device
func getLabel(devicePath string, input string) string {
	labelPath := strings.TrimSuffix(devicePath+"/"+input, "input") + "label"

	content, _ := os.ReadFile(labelPath)
	label := string(content)
	if len(label) <= 0 {
		_, label = filepath.Split(devicePath)
	}
	return strings.TrimSpace(label)
}

// parseChannel extracts the channel number from an attribute name
// like "temp3_input" or "pwm2".
func parseChannel(attribute string) int {
	channelRegex := regexp.MustCompile(`\d+`)
	match := channelRegex.FindString(attribute)
	if len(match) <= 0 {
		return -1
	}
	var channel int
	_, err := fmt.Sscanf(match, "%d", &channel)
	if err != nil {
		return -1
	}
	return channel
}

func computeIdentifier(chip gosensors.Chip) (name string) {
	name = chip.Prefix

	devicePath := chip.Path
	if len(name) <= 0 {
		name = util.GetDeviceName(devicePath)
	}

	if len(name) <= 0 {
		_, name = filepath.Split(devicePath)
	}

	identifier := name
	switch chip.Bus.Type {
	case BusTypeIsa:
		identifier = fmt.Sprintf("%s-isa-%d", identifier, chip.Bus.Nr)
	case BusTypePci:
		identifier = fmt.Sprintf("%s-pci-%d", identifier, chip.Bus.Nr)
	case BusTypeAcpi:
		identifier = fmt.Sprintf("%s-acpi-%d", identifier, chip.Bus.Nr)
	}

	return identifier
}

func findPlatform(devicePath string) string {
	platformRegex := regexp.MustCompile("platform/([^/]+)")
	matches := platformRegex.FindStringSubmatch(devicePath)
	if matches == nil {
		return ""
	}
	return matches[1]
}
