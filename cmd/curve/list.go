package curve

import (
	"bytes"
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/coolctl/cmd/global"
	"github.com/markusressel/coolctl/internal/configuration"
	"github.com/markusressel/coolctl/internal/curves"
	"github.com/markusressel/coolctl/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the curve profile(s) to console",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		configPath := configuration.DetectAndReadConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()

		err = configuration.Validate(configPath)
		if err != nil {
			ui.Fatal(err.Error())
		}

		for idx, curveConf := range configuration.CurrentConfig.Curves {
			if idx > 0 {
				ui.Printfln("")
				ui.Printfln("")
			}

			profile, err := curves.NewProfile(curveConf)
			if err != nil {
				return err
			}

			knots := profile.GetKnots()
			knotRange := fmt.Sprintf("%.0f°C .. %.0f°C",
				knots[0].Temperature,
				knots[len(knots)-1].Temperature,
			)

			// print table
			tab := table.Table{
				Headers: []string{"ID", "Knots", "Range"},
				Rows: [][]string{
					{profile.GetId(), fmt.Sprintf("%d", len(knots)), knotRange},
				},
			}
			var buf bytes.Buffer
			tableErr := tab.WriteTable(&buf, &table.Config{
				ShowIndex:       false,
				Color:           !global.NoColor,
				AlternateColors: true,
				TitleColorCode:  ansi.ColorCode("white+buf"),
				AltColorCodes: []string{
					ansi.ColorCode("white"),
					ansi.ColorCode("white:236"),
				},
			})
			if tableErr != nil {
				panic(tableErr)
			}
			tableString := buf.String()
			ui.Printfln(tableString)

			start := int(knots[0].Temperature)
			stop := int(knots[len(knots)-1].Temperature)

			values := make([]float64, 0, stop-start+1)
			for t := start; t <= stop; t++ {
				values = append(values, float64(profile.Evaluate(float64(t))))
			}

			caption := "Duty % / °C"
			graph := asciigraph.Plot(values, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption(caption))
			ui.Printfln(graph)
		}

		return nil
	},
}

func init() {
	Command.AddCommand(listCmd)
}
