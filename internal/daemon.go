package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/markusressel/coolctl/internal/actuators"
	"github.com/markusressel/coolctl/internal/api"
	"github.com/markusressel/coolctl/internal/configuration"
	"github.com/markusressel/coolctl/internal/controller"
	"github.com/markusressel/coolctl/internal/curves"
	"github.com/markusressel/coolctl/internal/hwmon"
	"github.com/markusressel/coolctl/internal/persistence"
	"github.com/markusressel/coolctl/internal/sensors"
	"github.com/markusressel/coolctl/internal/statistics"
	"github.com/markusressel/coolctl/internal/ui"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RunDaemon() {
	if getProcessOwner() != "root" {
		ui.Fatal("Loop control requires root permissions to be able to modify pump and fan speeds, please run coolctl as root")
	}

	pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
	if err := pers.Init(); err != nil {
		ui.Fatal("Unable to initialize persistence: %v", err)
	}

	sensorMap, actuatorList, profileByRole := InitializeObjects()

	loop := controller.NewControlLoop(
		pers,
		sensorMap,
		actuatorList,
		profileByRole,
		configuration.CurrentConfig,
	)
	statistics.Register(statistics.NewControllerCollector(loop))
	statistics.Register(statistics.NewSignalCollector(loop.Filter()))

	ctx, cancel := context.WithCancel(context.Background())

	var g run.Group
	{
		enabled := configuration.CurrentConfig.Statistics.Enabled
		if enabled {
			// === Prometheus Exporter
			g.Add(func() error {
				port := configuration.CurrentConfig.Statistics.Port
				if port <= 0 || port >= 65535 {
					port = 9000
				}
				addr := fmt.Sprintf(":%d", port)
				server := &http.Server{Addr: addr, Handler: promhttp.Handler()}
				if err := server.ListenAndServe(); err != nil {
					ui.Error("Cannot start prometheus metrics endpoint (%s)", err.Error())
				}

				<-ctx.Done()
				ui.Info("Stopping statistics server...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer timeoutCancel()
				return server.Shutdown(timeoutCtx)
			}, func(err error) {
				if err != nil {
					ui.Warning("Error stopping statistics server: " + err.Error())
				} else {
					ui.Info("Statistics server stopped.")
				}
			})
		}
	}
	{
		enabled := configuration.CurrentConfig.Api.Enabled
		if enabled {
			// === REST api
			restService := api.CreateRestService(loop)
			g.Add(func() error {
				port := configuration.CurrentConfig.Api.Port
				if port <= 0 || port >= 65535 {
					port = 9001
				}
				addr := fmt.Sprintf(":%d", port)
				if err := restService.Start(addr); err != nil {
					ui.Error("Cannot start rest api endpoint (%s)", err.Error())
				}

				<-ctx.Done()
				ui.Info("Stopping rest api...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer timeoutCancel()
				return restService.Shutdown(timeoutCtx)
			}, func(err error) {
				if err != nil {
					ui.Warning("Error stopping rest api: " + err.Error())
				} else {
					ui.Info("Rest api stopped.")
				}
			})
		}
	}
	{
		// === control loop
		g.Add(func() error {
			err := loop.Run(ctx)
			ui.Info("Control loop stopped.")
			return err
		}, func(err error) {
			if err != nil {
				ui.Warning("Error running control loop: %v", err)
			}
		})
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			<-sig
			ui.Info("Received SIGTERM signal, exiting...")
			return nil
		}, func(err error) {
			defer close(sig)
			cancel()
		})
	}

	if err := g.Run(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	} else {
		ui.Info("Done.")
		os.Exit(0)
	}
}

// InitializeObjects builds sensors, curve profiles and actuators from
// the current configuration, resolves hwmon paths from the detected
// chips and registers the statistics collectors.
func InitializeObjects() (map[string]sensors.Sensor, []actuators.Actuator, map[string]*curves.Profile) {
	chips := hwmon.GetChips()

	sensorMap := map[string]sensors.Sensor{}
	var sensorList []sensors.Sensor
	for _, config := range configuration.CurrentConfig.Sensors {
		if config.HwMon != nil {
			err := hwmon.UpdateSensorConfigFromHwMonControllers(chips, &config)
			if err != nil {
				ui.Fatal("Couldn't resolve hwmon device for sensor %s: %v. Run 'coolctl detect' and correct any mistake.", config.ID, err)
			}
		}

		sensor, err := sensors.NewSensor(config)
		if err != nil {
			ui.Fatal("Unable to process sensor configuration: %s", config.ID)
		}
		sensorMap[config.ID] = sensor
		sensorList = append(sensorList, sensor)

		sensors.SensorMap.Set(config.ID, sensor)
	}

	statistics.Register(statistics.NewSensorCollector(sensorList))

	var profileList []*curves.Profile
	for _, config := range configuration.CurrentConfig.Curves {
		profile, err := curves.NewProfile(config)
		if err != nil {
			ui.Fatal("Unable to process curve configuration: %s: %v", config.ID, err)
		}
		profileList = append(profileList, profile)
		curves.ProfileMap.Set(config.ID, profile)
	}

	statistics.Register(statistics.NewCurveCollector(profileList))

	var actuatorList []actuators.Actuator
	profileByRole := map[string]*curves.Profile{}
	for _, config := range configuration.CurrentConfig.Actuators {
		if config.HwMon != nil {
			err := hwmon.UpdateActuatorConfigFromHwMonControllers(chips, &config)
			if err != nil {
				ui.Fatal("Couldn't resolve hwmon device for actuator %s: %v. Run 'coolctl detect' and correct any mistake.", config.ID, err)
			}
		}

		actuator, err := actuators.NewActuator(config)
		if err != nil {
			ui.Fatal("Unable to process actuator configuration: %s", config.ID)
		}
		actuatorList = append(actuatorList, actuator)
		actuators.ActuatorMap.Set(config.ID, actuator)

		profile, ok := curves.ProfileMap.Get(config.Curve)
		if !ok {
			ui.Fatal("Actuator %s references unknown curve: %s", config.ID, config.Curve)
		}
		profileByRole[config.ID] = profile
	}

	if len(actuatorList) == 0 {
		ui.Fatal("No valid actuator configurations, exiting.")
	}

	statistics.Register(statistics.NewActuatorCollector(actuatorList))

	return sensorMap, actuatorList, profileByRole
}

func getProcessOwner() string {
	stdout, err := exec.Command("ps", "-o", "user=", "-p", strconv.Itoa(os.Getpid())).Output()
	if err != nil {
		ui.Fatal("Error checking process owner: %v", err)
		os.Exit(1)
	}
	return strings.TrimSpace(string(stdout))
}
