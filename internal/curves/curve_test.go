package curves

import (
	"sync"
	"testing"

	"github.com/markusressel/coolctl/internal/configuration"
	"github.com/stretchr/testify/assert"
)

// helper function to create a curve configuration from a flat point list
func createCurveConfig(id string, points ...float64) configuration.CurveConfig {
	knots := configuration.ProfilePoints{}
	for i := 0; i < len(points); i += 2 {
		knots = append(knots, configuration.ProfilePoint{
			Temperature: points[i],
			Duty:        points[i+1],
		})
	}
	return configuration.CurveConfig{
		ID:     id,
		Points: knots,
	}
}

func TestEvaluateInterpolatesBetweenKnots(t *testing.T) {
	// GIVEN
	profile, err := NewProfile(createCurveConfig(
		"radiator",
		20, 20, 30, 40, 35, 60, 40, 80, 45, 100,
	))
	assert.NoError(t, err)

	// WHEN
	duty := profile.Evaluate(32.5)

	// THEN
	assert.Equal(t, 50, duty)
}

func TestEvaluateExactAtKnots(t *testing.T) {
	// GIVEN
	profile, err := NewProfile(createCurveConfig(
		"radiator",
		20, 20, 30, 40, 35, 60, 40, 80, 45, 100,
	))
	assert.NoError(t, err)

	// WHEN
	first := profile.Evaluate(20)
	middle := profile.Evaluate(35)
	last := profile.Evaluate(45)

	// THEN
	assert.Equal(t, 20, first)
	assert.Equal(t, 60, middle)
	assert.Equal(t, 100, last)
}

func TestEvaluateConstantOutsideKnotRange(t *testing.T) {
	// GIVEN
	profile, err := NewProfile(createCurveConfig(
		"pump",
		30, 30, 70, 100,
	))
	assert.NoError(t, err)

	// WHEN
	below := profile.Evaluate(10)
	above := profile.Evaluate(90)

	// THEN
	assert.Equal(t, 30, below)
	assert.Equal(t, 100, above)
}

func TestEvaluateIsMonotonicallyNonDecreasing(t *testing.T) {
	// GIVEN
	profile, err := NewProfile(createCurveConfig(
		"radiator",
		20, 20, 30, 40, 35, 60, 40, 80, 45, 100,
	))
	assert.NoError(t, err)

	// WHEN / THEN
	last := -1
	for temperature := 0.0; temperature <= 60.0; temperature += 0.5 {
		duty := profile.Evaluate(temperature)
		assert.GreaterOrEqual(t, duty, last)
		last = duty
	}
}

func TestProfilesEvaluateIndependently(t *testing.T) {
	// GIVEN
	pump, err := NewProfile(createCurveConfig("pump", 30, 30, 50, 70))
	assert.NoError(t, err)
	radiator, err := NewProfile(createCurveConfig("radiator", 20, 20, 45, 100))
	assert.NoError(t, err)

	// WHEN
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			pump.Evaluate(40)
		}()
		go func() {
			defer wg.Done()
			radiator.Evaluate(32.5)
		}()
	}
	wg.Wait()

	// THEN
	assert.Equal(t, 50, pump.CurrentValue())
	assert.Equal(t, 60, radiator.CurrentValue())
}

func TestNewProfileWithSingleKnot(t *testing.T) {
	// GIVEN
	config := createCurveConfig("broken", 20, 20)

	// WHEN
	_, err := NewProfile(config)

	// THEN
	assert.ErrorIs(t, err, ErrInvalidProfile)
}

func TestNewProfileWithNonIncreasingTemperatures(t *testing.T) {
	// GIVEN
	config := createCurveConfig("broken", 30, 20, 30, 40)

	// WHEN
	_, err := NewProfile(config)

	// THEN
	assert.ErrorIs(t, err, ErrInvalidProfile)
}

func TestNewProfileWithDutyOutOfRange(t *testing.T) {
	// GIVEN
	config := createCurveConfig("broken", 20, 20, 30, 120)

	// WHEN
	_, err := NewProfile(config)

	// THEN
	assert.ErrorIs(t, err, ErrInvalidProfile)
}
