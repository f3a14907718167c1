package configuration

type CurveConfig struct {
	ID string `json:"id"`
	// Points is the list of knots defining the piecewise-linear profile,
	// strictly increasing in temperature
	Points ProfilePoints `json:"points"`
}

// ProfilePoints is an ordered list of (temperature, duty) knot pairs.
// In the config file it can be given either as a flat list
// [t1, d1, t2, d2, ...] or as a temperature -> duty map.
type ProfilePoints []ProfilePoint

type ProfilePoint struct {
	Temperature float64 `json:"temperature"`
	Duty        float64 `json:"duty"`
}
