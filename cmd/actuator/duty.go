package actuator

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	channel string
	duty    int
)

var dutyCmd = &cobra.Command{
	Use:   "duty",
	Short: "Get or set the duty of a single actuator channel",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		set := cmd.Flags().Changed("duty")
		if set && (duty < 0 || duty > 100) {
			return fmt.Errorf("duty must be in [0..100]: %d", duty)
		}

		if !set {
			pterm.DisableOutput()
		}

		actuator, err := getActuator(actuatorId)
		if err != nil {
			return err
		}

		if set {
			return actuator.SetDuty(channel, duty)
		}

		current, err := actuator.GetDuty(channel)
		if err != nil {
			return err
		}
		fmt.Printf("%d", current)
		return nil
	},
}

func init() {
	dutyCmd.Flags().StringVarP(
		&channel,
		"channel", "n",
		"",
		"Channel name as specified in the config",
	)
	_ = dutyCmd.MarkFlagRequired("channel")

	dutyCmd.Flags().IntVarP(
		&duty,
		"duty", "d",
		0,
		"Duty in percent to set ([0..100]), omit to print the current duty",
	)

	Command.AddCommand(dutyCmd)
}
