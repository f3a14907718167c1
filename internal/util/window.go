package util

import "github.com/asecurityteam/rolling"

func CreateRollingWindow(size int) *rolling.PointPolicy {
	return rolling.NewPointPolicy(rolling.NewWindow(size))
}

// GetWindowValues returns a copy of all values currently in the window
func GetWindowValues(window *rolling.PointPolicy) []float64 {
	values := make([]float64, 0)
	window.Reduce(func(w rolling.Window) float64 {
		for _, bucket := range w {
			for _, value := range bucket {
				values = append(values, value)
			}
		}
		return 0
	})
	return values
}
