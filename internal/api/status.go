package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/coolctl/internal/configuration"
	"github.com/markusressel/coolctl/internal/controller"
	"github.com/markusressel/coolctl/internal/governor"
)

type (
	RoleStatus struct {
		Degraded bool               `json:"degraded"`
		Override *governor.Override `json:"override,omitempty"`
	}

	Status struct {
		Cycles uint64                `json:"cycles"`
		Roles  map[string]RoleStatus `json:"roles"`
	}
)

func registerStatusEndpoints(rest *echo.Echo, loop controller.CycleController) {
	group := rest.Group("/status")

	group.GET("/", func(c echo.Context) error {
		return getStatus(c, loop)
	})
}

func getStatus(c echo.Context, loop controller.CycleController) error {
	overrides := loop.ActiveOverrides()

	roles := map[string]RoleStatus{}
	for _, role := range configuration.ActuatorRoles {
		status := RoleStatus{
			Degraded: loop.Degraded(role),
		}
		if override, ok := overrides[role]; ok {
			status.Override = &override
		}
		roles[role] = status
	}

	return c.JSONPretty(http.StatusOK, &Status{
		Cycles: loop.CycleCount(),
		Roles:  roles,
	}, indentationChar)
}
