package actuator

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var channelsCmd = &cobra.Command{
	Use:   "channels",
	Short: "Print the output channels of an actuator",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()

		actuator, err := getActuator(actuatorId)
		if err != nil {
			return err
		}

		for _, channel := range actuator.GetChannels() {
			fmt.Println(channel)
		}
		return nil
	},
}

func init() {
	Command.AddCommand(channelsCmd)
}
