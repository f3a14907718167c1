package actuator

import (
	"fmt"

	"github.com/markusressel/coolctl/internal/actuators"
	"github.com/markusressel/coolctl/internal/configuration"
	"github.com/markusressel/coolctl/internal/hwmon"
	"github.com/markusressel/coolctl/internal/ui"
	"github.com/spf13/cobra"
)

var actuatorId string

var Command = &cobra.Command{
	Use:              "actuator",
	Short:            "Actuator related commands",
	Long:             ``,
	TraverseChildren: true,
}

func init() {
	Command.PersistentFlags().StringVarP(
		&actuatorId,
		"id", "i",
		"",
		"Actuator role as specified in the config (pump, radiator, motherboard)",
	)
	_ = Command.MarkPersistentFlagRequired("id")
}

func getActuator(id string) (actuators.Actuator, error) {
	configPath := configuration.DetectAndReadConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()
	err := configuration.Validate(configPath)
	if err != nil {
		ui.FatalWithoutStacktrace("%v", err)
	}

	controllers := hwmon.GetChips()

	availableActuatorIds := []string{}
	for _, config := range configuration.CurrentConfig.Actuators {
		availableActuatorIds = append(availableActuatorIds, config.ID)
		if config.ID == id {
			if config.HwMon != nil {
				err := hwmon.UpdateActuatorConfigFromHwMonControllers(controllers, &config)
				if err != nil {
					return nil, err
				}
			}

			actuator, err := actuators.NewActuator(config)
			if err != nil {
				return nil, err
			}

			return actuator, nil
		}
	}

	return nil, fmt.Errorf("no actuator with id found: %s, options: %s", id, availableActuatorIds)
}
