package statistics

import (
	"github.com/markusressel/coolctl/internal/actuators"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemActuator = "actuator"

type ActuatorCollector struct {
	actuators []actuators.Actuator
	duty      *prometheus.Desc
}

func NewActuatorCollector(actuators []actuators.Actuator) *ActuatorCollector {
	return &ActuatorCollector{
		actuators: actuators,
		duty: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemActuator, "duty"),
			"Last duty in percent applied to the channel",
			[]string{"id", "channel"}, nil,
		),
	}
}

func (collector *ActuatorCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.duty
}

// Collect implements required collect function for all prometheus collectors
func (collector *ActuatorCollector) Collect(ch chan<- prometheus.Metric) {
	for _, actuator := range collector.actuators {
		actuatorId := actuator.GetId()
		for _, channel := range actuator.GetChannels() {
			duty, ok := actuator.GetLastDuty(channel)
			if !ok {
				continue
			}
			ch <- prometheus.MustNewConstMetric(collector.duty, prometheus.GaugeValue, float64(duty), actuatorId, channel)
		}
	}
}
