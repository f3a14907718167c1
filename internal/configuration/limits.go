package configuration

// LimitsConfig maps a signal id to its maximum allowed raw temperature.
// A raw reading above the limit forces the governed actuator to max duty.
type LimitsConfig map[string]float64
