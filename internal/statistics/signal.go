package statistics

import (
	"github.com/markusressel/coolctl/internal/configuration"
	"github.com/markusressel/coolctl/internal/signals"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemSignal = "signal"

type SignalCollector struct {
	filter *signals.Filter

	smoothed     *prometheus.Desc
	absentCycles *prometheus.Desc
}

func NewSignalCollector(filter *signals.Filter) *SignalCollector {
	return &SignalCollector{
		filter: filter,
		smoothed: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSignal, "smoothed"),
			"Current smoothed value of the signal in °C",
			[]string{"id"}, nil,
		),
		absentCycles: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSignal, "absent_cycles"),
			"Number of consecutive cycles the signal has been without a valid reading",
			[]string{"id"}, nil,
		),
	}
}

func (collector *SignalCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.smoothed
	ch <- collector.absentCycles
}

// Collect implements required collect function for all prometheus collectors
func (collector *SignalCollector) Collect(ch chan<- prometheus.Metric) {
	for _, signal := range configuration.Signals {
		if smoothed, ok := collector.filter.Smoothed(signal); ok {
			ch <- prometheus.MustNewConstMetric(collector.smoothed, prometheus.GaugeValue, smoothed, signal)
		}
		absent := collector.filter.AbsentCycles(signal)
		ch <- prometheus.MustNewConstMetric(collector.absentCycles, prometheus.GaugeValue, float64(absent), signal)
	}
}
