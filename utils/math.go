package utils

import (
	"math"
)

type Fl = float32

func MinF(x, y Fl) Fl {
	if x < y {
		return x
	}
	return y
}

func MaxF(x, y Fl) Fl {
	if x > y {
		return x
	}
	return y
}

func Maxs(values ...Fl) Fl {
	max := values[0]
	for _, w := range values {
		if w > max {
			max = w
		}
	}
	return max
}

// RoundPrec rounds f with n digits precision
func RoundPrec(f Fl, n int) Fl {
	n10 := math.Pow10(n)
	return Fl(math.Round(float64(f)*n10) / n10)
}

// IsFinite returns false for NaN and infinite values.
func IsFinite(f Fl) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}
