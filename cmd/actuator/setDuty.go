package actuator

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var setDutyCmd = &cobra.Command{
	Use:   "setDuty",
	Short: "Set the duty of all channels of an actuator to the given value in percent ([0..100])",
	Long:  ``,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		duty, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		if duty < 0 || duty > 100 {
			return fmt.Errorf("duty must be in [0..100]: %d", duty)
		}

		actuator, err := getActuator(actuatorId)
		if err != nil {
			return err
		}

		for _, channel := range actuator.GetChannels() {
			err = actuator.SetDuty(channel, duty)
			if err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	Command.AddCommand(setDutyCmd)
}
