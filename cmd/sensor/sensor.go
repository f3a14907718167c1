package sensor

import (
	"context"
	"fmt"

	"github.com/markusressel/coolctl/internal/configuration"
	"github.com/markusressel/coolctl/internal/hwmon"
	"github.com/markusressel/coolctl/internal/sensors"
	"github.com/markusressel/coolctl/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var sensorId string

var Command = &cobra.Command{
	Use:              "sensor",
	Short:            "Sensor related commands",
	Long:             ``,
	TraverseChildren: true,
	Args:             cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()

		sensor, err := getSensor(sensorId)
		if err != nil {
			return err
		}

		value, err := sensor.Read(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("%.1f", value)
		return nil
	},
}

func init() {
	Command.PersistentFlags().StringVarP(
		&sensorId,
		"id", "i",
		"",
		"Sensor ID as specified in the config",
	)
	_ = Command.MarkPersistentFlagRequired("id")
}

func getSensor(id string) (sensors.Sensor, error) {
	configPath := configuration.DetectAndReadConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()
	err := configuration.Validate(configPath)
	if err != nil {
		ui.FatalWithoutStacktrace("%v", err)
	}

	controllers := hwmon.GetChips()

	availableSensorIds := []string{}
	for _, config := range configuration.CurrentConfig.Sensors {
		availableSensorIds = append(availableSensorIds, config.ID)
		if config.ID == id {
			if config.HwMon != nil {
				err := hwmon.UpdateSensorConfigFromHwMonControllers(controllers, &config)
				if err != nil {
					return nil, err
				}
			}

			sensor, err := sensors.NewSensor(config)
			if err != nil {
				return nil, err
			}

			return sensor, nil
		}
	}

	return nil, fmt.Errorf("no sensor with id found: %s, options: %s", id, availableSensorIds)
}
