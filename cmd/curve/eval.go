package curve

import (
	"fmt"

	"github.com/markusressel/coolctl/internal/configuration"
	"github.com/markusressel/coolctl/internal/curves"
	"github.com/markusressel/coolctl/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var temperature float64

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate a curve at the given temperature",
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()

		configPath := configuration.DetectAndReadConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()

		err := configuration.Validate(configPath)
		if err != nil {
			ui.FatalWithoutStacktrace("%v", err)
		}

		curveConf, err := getCurveConfig(curveId, configuration.CurrentConfig.Curves)
		if err != nil {
			return err
		}

		profile, err := curves.NewProfile(*curveConf)
		if err != nil {
			return err
		}

		fmt.Printf("%d", profile.Evaluate(temperature))
		return nil
	},
}

func init() {
	evalCmd.Flags().Float64VarP(
		&temperature,
		"temperature", "t",
		0,
		"Temperature in °C to evaluate the curve at",
	)
	_ = evalCmd.MarkFlagRequired("temperature")

	Command.AddCommand(evalCmd)
}
