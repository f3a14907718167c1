package signals

import (
	"github.com/markusressel/coolctl/internal/configuration"
	"github.com/markusressel/coolctl/internal/util"
)

// GoverningSignals maps an actuator role to the signals that drive it.
// This mapping encodes the physical wiring of the cooling loop and is
// deliberately not user configurable: the pump moves the coolant that
// cools cpu and gpu, the radiator fans remove heat from the coolant,
// the motherboard fan follows the motherboard temperature.
var GoverningSignals = map[string][]string{
	configuration.ActuatorPump:        {configuration.SignalCpu, configuration.SignalGpu},
	configuration.ActuatorRadiator:    {configuration.SignalCoolant},
	configuration.ActuatorMotherboard: {configuration.SignalMotherboard},
}

// Aggregator derives the control signal per actuator role from the
// smoothed signal values.
type Aggregator struct {
	filter *Filter
}

func NewAggregator(filter *Filter) *Aggregator {
	return &Aggregator{
		filter: filter,
	}
}

// ControlValue computes the derived control signal for the given
// actuator role. The pump signal is the maximum of the available cpu
// and gpu values, if only one of them is available that one is used.
// If no governing signal is available the result is absent and the
// actuator must keep its last commanded duty.
func (a *Aggregator) ControlValue(role string) (float64, bool) {
	governing, ok := GoverningSignals[role]
	if !ok {
		return 0, false
	}

	available := make([]float64, 0, len(governing))
	for _, signal := range governing {
		smoothed, ok := a.filter.Smoothed(signal)
		if !ok {
			continue
		}
		available = append(available, smoothed)
	}

	if len(available) == 0 {
		return 0, false
	}
	return util.Max(available), true
}
