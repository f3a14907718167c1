package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/coolctl/internal/configuration"
	"github.com/markusressel/coolctl/internal/sensors"
	"github.com/qdm12/reprint"
)

type sensorDetails struct {
	Config    configuration.SensorConfig `json:"configuration"`
	LastValue float64                    `json:"lastValue"`
}

func registerSensorEndpoints(rest *echo.Echo) {
	group := rest.Group("/sensor")

	group.GET("/", getSensors)
	group.GET("/:"+urlParamId+"/", getSensor)
}

// sensorToDetails snapshots the sensor through its accessors, the live
// object keeps being written by the control loop.
func sensorToDetails(sensor sensors.Sensor) sensorDetails {
	return sensorDetails{
		Config:    reprint.This(sensor.GetConfig()).(configuration.SensorConfig),
		LastValue: sensor.GetLastValue(),
	}
}

func getSensors(c echo.Context) error {
	data := map[string]sensorDetails{}
	for id, sensor := range sensors.SensorMap.Items() {
		data[id] = sensorToDetails(sensor)
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getSensor(c echo.Context) error {
	id := c.Param(urlParamId)

	sensor, exists := sensors.SensorMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	} else {
		return c.JSONPretty(http.StatusOK, sensorToDetails(sensor), indentationChar)
	}
}
