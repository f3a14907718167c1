package configuration

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func decodePoints(t *testing.T, data interface{}) ProfilePoints {
	hook := profilePointsHookFunc()
	result, err := hook(reflect.TypeOf(data), reflect.TypeOf(ProfilePoints{}), data)
	assert.NoError(t, err)
	points, ok := result.(ProfilePoints)
	assert.True(t, ok)
	return points
}

func TestProfilePointsFromFlatList(t *testing.T) {
	// GIVEN
	data := []interface{}{20, 20, 30, 40, 35, 60, 40, 80, 45, 100}

	// WHEN
	points := decodePoints(t, data)

	// THEN
	assert.Equal(t, ProfilePoints{
		{Temperature: 20, Duty: 20},
		{Temperature: 30, Duty: 40},
		{Temperature: 35, Duty: 60},
		{Temperature: 40, Duty: 80},
		{Temperature: 45, Duty: 100},
	}, points)
}

func TestProfilePointsFromMap(t *testing.T) {
	// GIVEN
	data := map[string]interface{}{
		"35": 60,
		"20": 20,
		"45": 100,
	}

	// WHEN
	points := decodePoints(t, data)

	// THEN
	assert.Equal(t, ProfilePoints{
		{Temperature: 20, Duty: 20},
		{Temperature: 35, Duty: 60},
		{Temperature: 45, Duty: 100},
	}, points)
}

func TestProfilePointsFromOddFlatList(t *testing.T) {
	// GIVEN
	data := []interface{}{20, 20, 30}

	// WHEN
	hook := profilePointsHookFunc()
	_, err := hook(reflect.TypeOf(data), reflect.TypeOf(ProfilePoints{}), data)

	// THEN
	assert.Error(t, err)
}
