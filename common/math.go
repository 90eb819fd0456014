package common

import "math"

// Lerp linearly interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Approach moves cur toward target by at most maxDelta, without overshoot.
func Approach(cur, target, maxDelta float64) float64 {
	if maxDelta < 0 {
		maxDelta = 0
	}
	d := target - cur
	if math.Abs(d) <= maxDelta {
		return target
	}
	if d > 0 {
		return cur + maxDelta
	}
	return cur - maxDelta
}

// WrapAngle normalizes an angle in radians to (-pi, pi].
func WrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// AngleDiff returns the shortest signed delta from a to b in radians.
func AngleDiff(a, b float64) float64 {
	return WrapAngle(b - a)
}

// RotateToward turns cur toward target by at most maxDelta radians along the
// shortest arc. Interpolating raw angles snaps at the -pi/pi seam; always go
// through the signed difference instead.
func RotateToward(cur, target, maxDelta float64) float64 {
	if maxDelta < 0 {
		maxDelta = 0
	}
	d := AngleDiff(cur, target)
	if math.Abs(d) <= maxDelta {
		return WrapAngle(target)
	}
	if d > 0 {
		return WrapAngle(cur + maxDelta)
	}
	return WrapAngle(cur - maxDelta)
}
