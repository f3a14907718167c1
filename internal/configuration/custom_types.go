package configuration

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"

	"github.com/mitchellh/mapstructure"
)

// profilePointsHookFunc returns a mapstructure decode hook that handles
// the two supported curve point formats:
//  1. A flat list [t1, d1, t2, d2, ...], the format used by the original
//     liquidctl profiles.
//  2. A temperature -> duty map. Map entries are sorted by temperature
//     since YAML maps carry no order.
func profilePointsHookFunc() mapstructure.DecodeHookFuncType {
	pointsType := reflect.TypeOf(ProfilePoints{})

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != pointsType {
			return data, nil
		}

		switch v := data.(type) {
		case []interface{}:
			return parseFlatPointList(v)
		case map[string]interface{}:
			return parsePointMap(v)
		case map[interface{}]interface{}:
			converted := make(map[string]interface{}, len(v))
			for key, value := range v {
				converted[fmt.Sprintf("%v", key)] = value
			}
			return parsePointMap(converted)
		}

		return data, nil
	}
}

func parseFlatPointList(data []interface{}) (ProfilePoints, error) {
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("curve points: flat list must have an even number of values, got %d", len(data))
	}

	points := make(ProfilePoints, 0, len(data)/2)
	for i := 0; i < len(data); i += 2 {
		temperature, err := anyToFloat(data[i])
		if err != nil {
			return nil, fmt.Errorf("curve points: invalid temperature %v: %w", data[i], err)
		}
		duty, err := anyToFloat(data[i+1])
		if err != nil {
			return nil, fmt.Errorf("curve points: invalid duty %v: %w", data[i+1], err)
		}
		points = append(points, ProfilePoint{Temperature: temperature, Duty: duty})
	}
	return points, nil
}

func parsePointMap(data map[string]interface{}) (ProfilePoints, error) {
	points := make(ProfilePoints, 0, len(data))
	for key, value := range data {
		temperature, err := strconv.ParseFloat(key, 64)
		if err != nil {
			return nil, fmt.Errorf("curve points: cannot parse temperature %q: %w", key, err)
		}
		duty, err := anyToFloat(value)
		if err != nil {
			return nil, fmt.Errorf("curve points: invalid duty %v: %w", value, err)
		}
		points = append(points, ProfilePoint{Temperature: temperature, Duty: duty})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Temperature < points[j].Temperature
	})
	return points, nil
}

// anyToFloat converts numeric and string values to float64.
func anyToFloat(v interface{}) (float64, error) {
	switch val := v.(type) {
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case float32:
		return float64(val), nil
	case float64:
		return val, nil
	case string:
		n, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot parse %q as float: %w", val, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("cannot convert %T to float", v)
	}
}
