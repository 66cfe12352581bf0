package engine

// step advances the sweep one degree in the current direction, clamping and
// reversing at the arc bounds. The result is a deterministic triangle wave
// with no overshoot: the angle never leaves [minAngle, maxAngle].
func step(angle, direction, minAngle, maxAngle int) (int, int) {
	angle += direction

	if angle >= maxAngle {
		return maxAngle, -1
	}

	if angle <= minAngle {
		return minAngle, 1
	}

	return angle, direction
}
