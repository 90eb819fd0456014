package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApproach(t *testing.T) {
	require.Equal(t, 1.0, Approach(0, 1, 2))
	require.Equal(t, 0.5, Approach(0, 1, 0.5))
	require.Equal(t, -0.5, Approach(0, -1, 0.5))
	require.Equal(t, 0.0, Approach(0, 1, -1))
}

func TestWrapAngle(t *testing.T) {
	require.InDelta(t, 0, WrapAngle(2*math.Pi), 1e-9)
	require.InDelta(t, -math.Pi/2, WrapAngle(3*math.Pi/2), 1e-9)
	require.InDelta(t, math.Pi, WrapAngle(math.Pi), 1e-9)
	require.InDelta(t, math.Pi, WrapAngle(-math.Pi), 1e-9)
}

func TestRotateTowardShortestArc(t *testing.T) {
	// Crossing the seam: from just under pi to just over -pi should be a
	// tiny rotation, not a full turn back through zero.
	cur := math.Pi - 0.05
	target := -math.Pi + 0.05
	got := RotateToward(cur, target, 0.2)
	require.InDelta(t, WrapAngle(target), got, 1e-9)

	// Limited step still moves in the seam-crossing direction.
	got = RotateToward(cur, target, 0.04)
	require.InDelta(t, WrapAngle(cur+0.04), got, 1e-9)
}
