package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/markusressel/coolctl/cmd/global"
	"github.com/markusressel/coolctl/internal/configuration"
	"github.com/markusressel/coolctl/internal/hwmon"
	"github.com/markusressel/coolctl/internal/ui"
	"github.com/markusressel/coolctl/internal/util"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect devices",
	Long:  `Detects all pwm outputs and temperature sensors and prints them as a list`,
	Run: func(cmd *cobra.Command, args []string) {
		configuration.LoadConfig()

		controllers := hwmon.GetChips()

		// === Print detected devices ===
		tableConfig := &table.Config{
			ShowIndex:       false,
			Color:           !global.NoColor,
			AlternateColors: true,
			TitleColorCode:  ansi.ColorCode("white+buf"),
			AltColorCodes: []string{
				ansi.ColorCode("white"),
				ansi.ColorCode("white:236"),
			},
		}

		for _, controller := range controllers {
			if len(controller.Name) <= 0 {
				continue
			}

			sensorMap := controller.Sensors
			pwmOutputs := controller.PwmOutputs

			if len(sensorMap) <= 0 && len(pwmOutputs) <= 0 {
				continue
			}

			ui.Printfln("> %s (platform: %s)", controller.Name, controller.Platform)

			pwmOutputKeys := make([]int, 0, len(pwmOutputs))
			for k := range pwmOutputs {
				pwmOutputKeys = append(pwmOutputKeys, k)
			}
			sort.Ints(pwmOutputKeys)

			var outputRows [][]string
			for _, channel := range pwmOutputKeys {
				pwmPath := pwmOutputs[channel]

				pwmText := "N/A"
				pwm, err := util.ReadIntFromFile(pwmPath)
				if err == nil {
					pwmText = strconv.Itoa(pwm)
				}

				_, file := filepath.Split(pwmPath)
				outputRows = append(outputRows, []string{
					"", strconv.Itoa(channel), file, pwmText,
				})
			}
			var outputHeaders = []string{"Outputs", "Channel", "Attribute", "PWM"}

			outputTable := table.Table{
				Headers: outputHeaders,
				Rows:    outputRows,
			}

			sensorMapKeys := make([]int, 0, len(sensorMap))
			for k := range sensorMap {
				sensorMapKeys = append(sensorMapKeys, k)
			}
			sort.Ints(sensorMapKeys)

			var sensorRows [][]string
			for _, channel := range sensorMapKeys {
				sensor := sensorMap[channel]

				valueText := "N/A"
				value, err := util.ReadIntFromFile(sensor.Input)
				if err == nil {
					valueText = strconv.Itoa(value / 1000)
				}

				_, file := filepath.Split(sensor.Input)
				labelAndFile := fmt.Sprintf("%s (%s)", sensor.Label, file)

				sensorRows = append(sensorRows, []string{
					"", strconv.Itoa(sensor.Index), labelAndFile, valueText,
				})
			}
			var sensorHeaders = []string{"Sensors", "Index", "Label", "Value"}

			sensorTable := table.Table{
				Headers: sensorHeaders,
				Rows:    sensorRows,
			}

			tables := []table.Table{outputTable, sensorTable}

			for idx, tab := range tables {
				if tab.Rows == nil {
					continue
				}
				var buf bytes.Buffer
				tableErr := tab.WriteTable(&buf, tableConfig)
				if tableErr != nil {
					ui.Fatal("Error printing table: %v", tableErr)
				}
				tableString := buf.String()
				if idx < (len(tables) - 1) {
					ui.Printf(tableString)
				} else {
					ui.Printfln(tableString)
				}
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
