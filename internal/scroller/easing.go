package scroller

import (
	"math"
	"strings"
)

// Easing maps linear progress in [0,1] to eased progress.
type Easing func(p float64) float64

var easings = map[string]Easing{
	"begin":     func(float64) float64 { return 0 },
	"end":       func(float64) float64 { return 1 },
	"linear":    func(p float64) float64 { return p },
	"quadratic": func(p float64) float64 { return p * p },
	"cubic":     func(p float64) float64 { return p * p * p },
	"swing":     func(p float64) float64 { return -math.Cos(p*math.Pi)/2 + 0.5 },
	"sqrt":      math.Sqrt,
	"outcubic":  func(p float64) float64 { return math.Pow(p-1, 3) + 1 },
	"bounce":    bounce,
}

func bounce(p float64) float64 {
	var a float64
	switch {
	case p <= 0.5083:
		a = 3
	case p <= 0.8489:
		a = 9
	case p <= 0.96208:
		a = 27
	case p <= 0.99981:
		a = 91
	default:
		return 1
	}
	return 1 - math.Abs(3*math.Cos(p*a*1.028)/a)
}

// LookupEasing returns the named easing, falling back to linear for
// unknown names.
func LookupEasing(name string) (Easing, bool) {
	e, ok := easings[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return easings["linear"], false
	}
	return e, true
}
