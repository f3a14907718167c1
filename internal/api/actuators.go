package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/coolctl/internal/actuators"
	"github.com/markusressel/coolctl/internal/configuration"
	"github.com/qdm12/reprint"
)

type actuatorDetails struct {
	Config   configuration.ActuatorConfig `json:"configuration"`
	LastDuty map[string]int               `json:"lastDuty"`
}

func registerActuatorEndpoints(rest *echo.Echo) {
	group := rest.Group("/actuator")

	group.GET("/", getActuators)
	group.GET("/:"+urlParamId+"/", getActuator)
}

// actuatorToDetails snapshots the actuator through its accessors, the
// live object keeps being written by the control loop.
func actuatorToDetails(actuator actuators.Actuator) actuatorDetails {
	lastDuty := map[string]int{}
	for _, channel := range actuator.GetChannels() {
		if duty, ok := actuator.GetLastDuty(channel); ok {
			lastDuty[channel] = duty
		}
	}
	return actuatorDetails{
		Config:   reprint.This(actuator.GetConfig()).(configuration.ActuatorConfig),
		LastDuty: lastDuty,
	}
}

func getActuators(c echo.Context) error {
	data := map[string]actuatorDetails{}
	for id, actuator := range actuators.ActuatorMap.Items() {
		data[id] = actuatorToDetails(actuator)
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getActuator(c echo.Context) error {
	id := c.Param(urlParamId)

	actuator, exists := actuators.ActuatorMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	} else {
		return c.JSONPretty(http.StatusOK, actuatorToDetails(actuator), indentationChar)
	}
}
