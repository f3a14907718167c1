package governor

import (
	"github.com/markusressel/coolctl/internal/configuration"
	"github.com/markusressel/coolctl/internal/signals"
)

// MaxDuty is the duty forced onto an actuator while one of its
// governing signals exceeds its safety limit.
const MaxDuty = 100

// Override describes the safety override of a single actuator role for
// the current cycle.
type Override struct {
	Role   string  `json:"role"`
	Signal string  `json:"signal"`
	Value  float64 `json:"value"`
	Limit  float64 `json:"limit"`
}

// Governor evaluates raw readings against the configured safety
// limits. Checks run on raw readings, not smoothed ones: safety has to
// react to true instantaneous excursions, not a lagged average.
type Governor struct {
	limits configuration.LimitsConfig
}

func NewGovernor(limits configuration.LimitsConfig) *Governor {
	return &Governor{
		limits: limits,
	}
}

// Check computes the overrides for the given raw readings of a cycle,
// keyed by actuator role. An actuator is overridden if any of its
// governing signals exceeds its limit. Overrides are re-evaluated every
// cycle, they are not sticky: once the raw reading drops back under the
// limit, curve-mapped control resumes on the next cycle.
func (g *Governor) Check(readings map[string]signals.Reading) map[string]Override {
	overrides := map[string]Override{}

	for role, governing := range signals.GoverningSignals {
		for _, signal := range governing {
			reading, ok := readings[signal]
			if !ok || !reading.Valid {
				continue
			}
			limit, ok := g.limits[signal]
			if !ok {
				continue
			}
			if reading.Value <= limit {
				continue
			}

			current, exists := overrides[role]
			if !exists || reading.Value-limit > current.Value-current.Limit {
				overrides[role] = Override{
					Role:   role,
					Signal: signal,
					Value:  reading.Value,
					Limit:  limit,
				}
			}
		}
	}

	return overrides
}
