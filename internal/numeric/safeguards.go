// Package numeric provides the shared epsilon and overflow safeguards used by
// every preference form. All singularity-prone computation (log of non-positive,
// division by zero, exponential overflow) routes through here so every form
// degrades the same way at the boundaries.
package numeric

import "math"

// Epsilon is the smallest distance an argument is allowed to sit from a
// singularity (zero inventory, subsistence boundary) before logs or
// reciprocals are taken.
const Epsilon = 1e-9

// LogCap bounds the magnitude of a log-utility before exponentiation.
// math.Exp overflows float64 just past 709; 700 leaves headroom.
const LogCap = 700.0

// Floor shifts x away from zero: returns x, or Epsilon when x < Epsilon.
func Floor(x float64) float64 {
	if x < Epsilon {
		return Epsilon
	}
	return x
}

// FloorAbove shifts x away from a lower boundary: returns x−lo, or Epsilon
// when x sits at or below lo. Used for subsistence-shifted logs.
func FloorAbove(x, lo float64) float64 {
	d := x - lo
	if d < Epsilon {
		return Epsilon
	}
	return d
}

// ClampLog bounds a log-space value to ±LogCap so that exponentiating it
// stays finite.
func ClampLog(x float64) float64 {
	if x > LogCap {
		return LogCap
	}
	if x < -LogCap {
		return -LogCap
	}
	return x
}

// NearZero reports whether x is within Epsilon of zero. Used for "at target"
// comparisons such as sitting exactly on a bliss point.
func NearZero(x float64) bool {
	return math.Abs(x) < Epsilon
}
