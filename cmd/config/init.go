package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/markusressel/coolctl/internal/ui"
	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
)

var outputPath string

const defaultConfig = `# Monitoring
interval: 2s
readTimeout: 1s
historySize: 10
smoothingFactor: 0.2
degradedThreshold: 5

# Temperature sensors, one per signal (cpu, gpu, coolant, motherboard)
sensors:
  - id: cpu
    hwmon:
      platform: coretemp
      index: 1
  - id: coolant
    file:
      path: /tmp/coolant_temp

# Curve profiles, points given as a flat [temp, duty, ...] list
curves:
  - id: pump_profile
    points: [30, 30, 40, 50, 50, 70, 60, 85, 70, 100]
  - id: radiator_profile
    points: [20, 20, 30, 40, 35, 60, 40, 80, 45, 100]
  - id: motherboard_profile
    points: [30, 30, 40, 50, 50, 70, 60, 85, 70, 100]

# Actuators, fixed roles pump / radiator / motherboard
actuators:
  - id: pump
    curve: pump_profile
    channels: [pump]
    hwmon:
      platform: nct6798
      outputs:
        pump: 2
  - id: radiator
    curve: radiator_profile
    channels: [front, rear]
    hwmon:
      platform: nct6798
      outputs:
        front: 1
        rear: 3

# Safety limits in °C, checked against raw readings
limits:
  cpu: 95
  gpu: 90
  coolant: 50
  motherboard: 80

#statistics:
#  enabled: true
#  port: 9000

#api:
#  enabled: true
#  port: 9001
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write an example configuration file",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("refusing to overwrite existing file: %s", outputPath)
		}

		err := atomic.WriteFile(outputPath, strings.NewReader(defaultConfig))
		if err != nil {
			return err
		}

		ui.Success("Wrote example configuration to: %s", outputPath)
		return nil
	},
}

func init() {
	initCmd.Flags().StringVarP(
		&outputPath,
		"output", "o",
		"coolctl.yaml",
		"Path to write the example configuration to",
	)

	Command.AddCommand(initCmd)
}
