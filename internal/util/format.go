package util

import (
	"fmt"
	"math"
)

// FormatPercent formats a [0,1] ratio as a whole percentage, e.g. "42%".
func FormatPercent(ratio float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(Clamp01(ratio)*100)))
}

// Clamp01 limits v to [0,1]. NaN maps to 0.
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Clamp limits v to [lo,hi]. NaN maps to lo.
func Clamp(v, lo, hi float64) float64 {
	if v != v || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
