package controller

import (
	"context"
	"sync"
	"time"

	"github.com/markusressel/coolctl/internal/actuators"
	"github.com/markusressel/coolctl/internal/configuration"
	"github.com/markusressel/coolctl/internal/curves"
	"github.com/markusressel/coolctl/internal/governor"
	"github.com/markusressel/coolctl/internal/persistence"
	"github.com/markusressel/coolctl/internal/sensors"
	"github.com/markusressel/coolctl/internal/signals"
	"github.com/markusressel/coolctl/internal/ui"
)

type CycleController interface {
	Run(ctx context.Context) error
	RunCycle(ctx context.Context)

	Degraded(role string) bool
	ActiveOverrides() map[string]governor.Override
	CycleCount() uint64
	Filter() *signals.Filter
}

type controlLoop struct {
	mu sync.Mutex

	persistence persistence.Persistence
	sensors     map[string]sensors.Sensor
	actuators   []actuators.Actuator
	profiles    map[string]*curves.Profile

	filter     *signals.Filter
	aggregator *signals.Aggregator
	governor   *governor.Governor

	interval          time.Duration
	readTimeout       time.Duration
	degradedThreshold int

	degraded        map[string]bool
	activeOverrides map[string]governor.Override
	cycleCount      uint64
}

func NewControlLoop(
	pers persistence.Persistence,
	sensorMap map[string]sensors.Sensor,
	actuatorList []actuators.Actuator,
	profileMap map[string]*curves.Profile,
	config configuration.Configuration,
) CycleController {
	filter := signals.NewFilter(config.SmoothingFactor, config.HistorySize)
	return &controlLoop{
		persistence:       pers,
		sensors:           sensorMap,
		actuators:         actuatorList,
		profiles:          profileMap,
		filter:            filter,
		aggregator:        signals.NewAggregator(filter),
		governor:          governor.NewGovernor(config.Limits),
		interval:          config.Interval,
		readTimeout:       config.ReadTimeout,
		degradedThreshold: config.DegradedThreshold,
		degraded:          map[string]bool{},
		activeOverrides:   map[string]governor.Override{},
	}
}

func (c *controlLoop) Run(ctx context.Context) error {
	c.restoreDuties()

	ui.Info("Starting control loop...")

	tick := time.Tick(c.interval)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
			c.RunCycle(ctx)
		}
	}
}

// restoreDuties reapplies the duty that was commanded before the last
// shutdown, so a daemon restart does not leave channels on whatever
// the hardware booted with.
func (c *controlLoop) restoreDuties() {
	for _, actuator := range c.actuators {
		duties, err := c.persistence.LoadDuties(actuator.GetId())
		if err != nil {
			continue
		}
		for channel, duty := range duties {
			err = actuator.SetDuty(channel, duty)
			if err != nil {
				ui.Warning("Unable to restore duty of %s/%s: %v", actuator.GetId(), channel, err)
			}
		}
	}
}

// RunCycle executes a single sample -> smooth -> govern -> dispatch
// cycle. Dispatch for the current cycle completes before the next
// cycle starts.
func (c *controlLoop) RunCycle(ctx context.Context) {
	readings := c.readSensors(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, signal := range configuration.Signals {
		reading, ok := readings[signal]
		if !ok {
			continue
		}
		c.filter.Update(reading)
	}

	overrides := c.governor.Check(readings)

	for _, actuator := range c.actuators {
		role := actuator.GetId()

		override, overridden := overrides[role]

		// degradation only withholds curve-mapped commands. A limit
		// violation comes from a fresh valid reading, so the override
		// is dispatched even while the role is degraded.
		if c.updateDegraded(role) && !overridden {
			continue
		}

		duty, ok := c.computeDuty(role, override, overridden)
		if !ok {
			// no governing signal has delivered a reading yet,
			// keep the last commanded duty
			continue
		}

		c.dispatch(actuator, duty)
	}

	c.cycleCount++
}

// readSensors reads all configured sensors concurrently. A slow or
// failing sensor produces an absent reading instead of stalling the
// cycle: reads that miss the timeout are abandoned, the goroutine
// finishes in the background and its result is discarded.
func (c *controlLoop) readSensors(ctx context.Context) map[string]signals.Reading {
	readCtx, cancel := context.WithTimeout(ctx, c.readTimeout)
	defer cancel()

	type readResult struct {
		signal string
		value  float64
		err    error
	}

	// buffered so abandoned reads never block on delivery
	results := make(chan readResult, len(c.sensors))
	pending := 0
	for _, signal := range configuration.Signals {
		sensor, ok := c.sensors[signal]
		if !ok {
			continue
		}

		pending++
		go func(signal string, sensor sensors.Sensor) {
			value, err := sensor.Read(readCtx)
			results <- readResult{signal: signal, value: value, err: err}
		}(signal, sensor)
	}

	readings := map[string]signals.Reading{}
	for i := 0; i < pending; i++ {
		select {
		case result := <-results:
			reading := signals.Reading{Signal: result.signal}
			if result.err != nil {
				ui.Warning("Sensor %s unavailable: %v", result.signal, result.err)
			} else {
				sensor := c.sensors[result.signal]
				sensor.SetLastValue(result.value)
				reading.Value = result.value
				reading.Valid = true
			}
			readings[result.signal] = reading
		case <-readCtx.Done():
			for _, signal := range configuration.Signals {
				if _, ok := c.sensors[signal]; !ok {
					continue
				}
				if _, ok := readings[signal]; !ok {
					ui.Warning("Sensor %s did not respond within %v", signal, c.readTimeout)
					readings[signal] = signals.Reading{Signal: signal}
				}
			}
			return readings
		}
	}
	return readings
}

// updateDegraded recomputes the degraded state of the given role and
// returns true when curve-mapped commands for it must be withheld.
func (c *controlLoop) updateDegraded(role string) bool {
	degraded := false
	for _, signal := range signals.GoverningSignals[role] {
		if _, ok := c.sensors[signal]; !ok {
			continue
		}
		if c.filter.AbsentCycles(signal) > c.degradedThreshold {
			degraded = true
			break
		}
	}

	wasDegraded := c.degraded[role]
	c.degraded[role] = degraded

	if degraded && !wasDegraded {
		ui.WarningAndNotify("Degraded", "Withholding commands for %s, sensor data is stale", role)
	}
	if !degraded && wasDegraded {
		ui.Info("Sensor data for %s recovered, resuming control", role)
	}

	return degraded
}

// computeDuty determines the duty for the given role, either from an
// engaged safety override or from the curve profile applied to the
// smoothed control value.
func (c *controlLoop) computeDuty(role string, override governor.Override, overridden bool) (int, bool) {
	if overridden {
		_, wasActive := c.activeOverrides[role]
		c.activeOverrides[role] = override
		if !wasActive {
			ui.WarningAndNotify(
				"Safety override",
				"%s exceeded limit (%.1f > %.1f), forcing %s to %d%%",
				override.Signal, override.Value, override.Limit, role, governor.MaxDuty,
			)
		}
		return governor.MaxDuty, true
	}

	if _, wasActive := c.activeOverrides[role]; wasActive {
		delete(c.activeOverrides, role)
		ui.Info("Safety override for %s released", role)
	}

	value, ok := c.aggregator.ControlValue(role)
	if !ok {
		return 0, false
	}

	profile, ok := c.profiles[role]
	if !ok {
		return 0, false
	}

	return profile.Evaluate(value), true
}

// dispatch applies the duty to all channels of the actuator. Channels
// already at the target duty are skipped, failed channels are retried
// next cycle with a freshly computed duty.
func (c *controlLoop) dispatch(actuator actuators.Actuator, duty int) {
	changed := false
	for _, channel := range actuator.GetChannels() {
		lastDuty, ok := actuator.GetLastDuty(channel)
		if ok && lastDuty == duty {
			continue
		}

		err := actuator.SetDuty(channel, duty)
		if err != nil {
			ui.Error("Unable to set duty of %s/%s to %d: %v", actuator.GetId(), channel, duty, err)
			continue
		}
		changed = true
	}

	if changed {
		duties := map[string]int{}
		for _, channel := range actuator.GetChannels() {
			if lastDuty, ok := actuator.GetLastDuty(channel); ok {
				duties[channel] = lastDuty
			}
		}
		err := c.persistence.SaveDuties(actuator.GetId(), duties)
		if err != nil {
			ui.Warning("Unable to persist duties of %s: %v", actuator.GetId(), err)
		}
	}
}

// Degraded returns whether commands for the given role are currently
// withheld.
func (c *controlLoop) Degraded(role string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.degraded[role]
}

// ActiveOverrides returns a snapshot of the currently engaged safety
// overrides, keyed by role.
func (c *controlLoop) ActiveOverrides() map[string]governor.Override {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := map[string]governor.Override{}
	for role, override := range c.activeOverrides {
		result[role] = override
	}
	return result
}

// Filter returns the smoothing filter, for diagnostic readers. The
// loop remains its sole writer.
func (c *controlLoop) Filter() *signals.Filter {
	return c.filter
}

// CycleCount returns the number of completed cycles.
func (c *controlLoop) CycleCount() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cycleCount
}
