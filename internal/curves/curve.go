package curves

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/markusressel/coolctl/internal/configuration"
	"github.com/markusressel/coolctl/internal/util"
	cmap "github.com/orcaman/concurrent-map/v2"
)

var (
	ErrInvalidProfile = errors.New("invalid curve profile")

	ProfileMap = cmap.New[*Profile]()
)

// Profile is a piecewise-linear mapping from a temperature to a duty
// percentage, defined by a list of knots strictly increasing in
// temperature. Profiles are validated once at load time, Evaluate
// assumes a valid knot list.
type Profile struct {
	valueMu sync.Mutex

	Config configuration.CurveConfig `json:"config"`
	// Value is the duty computed by the last call to Evaluate
	Value int `json:"value"`
}

// NewProfile validates the given curve configuration and creates a
// Profile from it.
func NewProfile(config configuration.CurveConfig) (*Profile, error) {
	points := config.Points
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: curve %s needs at least 2 points", ErrInvalidProfile, config.ID)
	}
	for i, point := range points {
		if point.Duty < 0 || point.Duty > 100 {
			return nil, fmt.Errorf("%w: curve %s duty %f outside of [0..100]", ErrInvalidProfile, config.ID, point.Duty)
		}
		if i > 0 && points[i-1].Temperature >= point.Temperature {
			return nil, fmt.Errorf("%w: curve %s temperatures must be strictly increasing", ErrInvalidProfile, config.ID)
		}
	}

	return &Profile{
		Config: config,
	}, nil
}

func (c *Profile) GetId() string {
	return c.Config.ID
}

func (c *Profile) GetKnots() configuration.ProfilePoints {
	return c.Config.Points
}

// Evaluate computes the duty for the given temperature in °C.
// Temperatures outside of the knot range are clamped to the first/last
// knot duty, in between the duty is interpolated linearly. The result
// is rounded to the nearest integer percent, the resolution supported
// by the actuators.
func (c *Profile) Evaluate(temperature float64) int {
	knots := c.Config.Points
	first := knots[0]
	last := knots[len(knots)-1]

	var duty float64
	switch {
	case temperature <= first.Temperature:
		duty = first.Duty
	case temperature >= last.Temperature:
		duty = last.Duty
	default:
		for i := 0; i < len(knots)-1; i++ {
			t0 := knots[i]
			t1 := knots[i+1]
			if temperature > t1.Temperature {
				continue
			}
			ratio := util.Ratio(temperature, t0.Temperature, t1.Temperature)
			duty = t0.Duty + ratio*(t1.Duty-t0.Duty)
			break
		}
	}

	value := int(math.Round(util.Coerce(duty, 0, 100)))
	c.SetValue(value)
	return value
}

func (c *Profile) SetValue(value int) {
	c.valueMu.Lock()
	defer c.valueMu.Unlock()
	c.Value = value
}

func (c *Profile) CurrentValue() int {
	c.valueMu.Lock()
	defer c.valueMu.Unlock()
	return c.Value
}
