package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/coolctl/internal/configuration"
	"github.com/markusressel/coolctl/internal/curves"
	"github.com/qdm12/reprint"
)

type curveDetails struct {
	Config configuration.CurveConfig `json:"config"`
	Value  int                       `json:"value"`
}

func registerCurveEndpoints(rest *echo.Echo) {
	group := rest.Group("/curve")

	group.GET("/", getCurves)
	group.GET("/:"+urlParamId+"/", getCurve)
}

func curveToDetails(profile *curves.Profile) curveDetails {
	return curveDetails{
		Config: reprint.This(profile.Config).(configuration.CurveConfig),
		Value:  profile.CurrentValue(),
	}
}

func getCurves(c echo.Context) error {
	data := map[string]curveDetails{}
	for id, profile := range curves.ProfileMap.Items() {
		data[id] = curveToDetails(profile)
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getCurve(c echo.Context) error {
	id := c.Param(urlParamId)
	profile, exists := curves.ProfileMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	} else {
		return c.JSONPretty(http.StatusOK, curveToDetails(profile), indentationChar)
	}
}
