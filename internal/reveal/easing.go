package reveal

import (
	"fmt"
	"math"
	"strings"
)

// Easing maps linear time in [0,1] to animation progress in [0,1].
type Easing func(t float64) float64

var easings = map[string]Easing{
	"linear":         func(t float64) float64 { return t },
	"ease-out-cubic": func(t float64) float64 { return 1 - math.Pow(1-t, 3) },
	"ease-out-quart": func(t float64) float64 { return 1 - math.Pow(1-t, 4) },
	"ease-in-out-quad": func(t float64) float64 {
		if t < 0.5 {
			return 2 * t * t
		}
		return 1 - math.Pow(-2*t+2, 2)/2
	},
}

// LookupEasing returns the named easing curve.
func LookupEasing(name string) (Easing, error) {
	e, ok := easings[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEasing, name)
	}
	return e, nil
}
