package signals

import (
	"sync"

	"github.com/asecurityteam/rolling"
	"github.com/markusressel/coolctl/internal/configuration"
	"github.com/markusressel/coolctl/internal/util"
)

// Reading is a single temperature sample for a signal. A sensor that
// failed to respond produces a Reading with Valid set to false, absence
// is propagated instead of being treated as zero.
type Reading struct {
	Signal string  `json:"signal"`
	Value  float64 `json:"value"`
	Valid  bool    `json:"valid"`
}

// cpu and gpu temperatures are driven by compute load and jump around a
// lot, an additional dampening on their smoothing factor avoids
// oscillating pump commands
const loadSignalDampening = 0.5

type signalState struct {
	smoothed     float64
	seeded       bool
	absentCycles int
	history      *rolling.PointPolicy
}

// Filter holds the exponentially-weighted smoothed value and a bounded
// history of raw readings per signal. It is the only state that
// survives across monitoring cycles. The control loop is the sole
// writer, the mutex exists for concurrent readers (statistics, api).
type Filter struct {
	mu sync.Mutex

	alpha       float64
	historySize int
	states      map[string]*signalState
}

func NewFilter(alpha float64, historySize int) *Filter {
	return &Filter{
		alpha:       alpha,
		historySize: historySize,
		states:      map[string]*signalState{},
	}
}

// Update feeds one reading into the filter. The first valid reading of
// a signal seeds the smoothed value directly so there is no smoothing
// lag on cold start. An invalid reading leaves the smoothed value
// untouched and increments the consecutive-absence counter.
func (f *Filter) Update(reading Reading) {
	f.mu.Lock()
	defer f.mu.Unlock()

	state := f.state(reading.Signal)

	if !reading.Valid {
		state.absentCycles++
		return
	}
	state.absentCycles = 0

	state.history.Append(reading.Value)

	if !state.seeded {
		state.smoothed = reading.Value
		state.seeded = true
		return
	}

	alpha := f.effectiveAlpha(reading.Signal)
	state.smoothed = alpha*reading.Value + (1-alpha)*state.smoothed
}

// Smoothed returns the current smoothed value of the given signal and
// whether the signal has been seeded by at least one valid reading.
func (f *Filter) Smoothed(signal string) (float64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	state, ok := f.states[signal]
	if !ok || !state.seeded {
		return 0, false
	}
	return state.smoothed, true
}

// AbsentCycles returns the number of consecutive cycles the given
// signal has been without a valid reading.
func (f *Filter) AbsentCycles(signal string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	state, ok := f.states[signal]
	if !ok {
		return 0
	}
	return state.absentCycles
}

// History returns a copy of the most recent raw readings of the given
// signal, for diagnostic inspection only. Smoothing does not replay it.
func (f *Filter) History(signal string) []float64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	state, ok := f.states[signal]
	if !ok {
		return nil
	}
	return util.GetWindowValues(state.history)
}

func (f *Filter) state(signal string) *signalState {
	state, ok := f.states[signal]
	if !ok {
		state = &signalState{
			history: util.CreateRollingWindow(f.historySize),
		}
		f.states[signal] = state
	}
	return state
}

func (f *Filter) effectiveAlpha(signal string) float64 {
	if signal == configuration.SignalCpu || signal == configuration.SignalGpu {
		return f.alpha * loadSignalDampening
	}
	return f.alpha
}
