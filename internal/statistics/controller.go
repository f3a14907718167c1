package statistics

import (
	"github.com/markusressel/coolctl/internal/configuration"
	"github.com/markusressel/coolctl/internal/controller"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemController = "controller"

type ControllerCollector struct {
	controller controller.CycleController

	degraded       *prometheus.Desc
	overrideActive *prometheus.Desc
	cycles         *prometheus.Desc
}

func NewControllerCollector(controller controller.CycleController) *ControllerCollector {
	return &ControllerCollector{
		controller: controller,
		degraded: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemController, "degraded"),
			"Whether commands for the actuator are currently withheld due to stale sensor data",
			[]string{"id"}, nil,
		),
		overrideActive: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemController, "override_active"),
			"Whether a safety override is currently engaged for the actuator",
			[]string{"id"}, nil,
		),
		cycles: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemController, "cycles_total"),
			"Number of completed control cycles",
			nil, nil,
		),
	}
}

func (collector *ControllerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.degraded
	ch <- collector.overrideActive
	ch <- collector.cycles
}

// Collect implements required collect function for all prometheus collectors
func (collector *ControllerCollector) Collect(ch chan<- prometheus.Metric) {
	overrides := collector.controller.ActiveOverrides()

	for _, role := range configuration.ActuatorRoles {
		degraded := 0.0
		if collector.controller.Degraded(role) {
			degraded = 1.0
		}
		ch <- prometheus.MustNewConstMetric(collector.degraded, prometheus.GaugeValue, degraded, role)

		overrideActive := 0.0
		if _, ok := overrides[role]; ok {
			overrideActive = 1.0
		}
		ch <- prometheus.MustNewConstMetric(collector.overrideActive, prometheus.GaugeValue, overrideActive, role)
	}

	ch <- prometheus.MustNewConstMetric(collector.cycles, prometheus.CounterValue, float64(collector.controller.CycleCount()))
}
