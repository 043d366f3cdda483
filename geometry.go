package thumbstick

import "math"

// exceedsSlop reports whether a displacement of (dx, dy) from the down point
// is far enough to count as a deliberate drag. Axis-constrained sticks only
// measure travel along their free axis.
func exceedsSlop(dx, dy, slop float64, c MotionConstraint) bool {
	switch c {
	case ConstraintHorizontal:
		return math.Abs(dx) > slop
	case ConstraintVertical:
		return math.Abs(dy) > slop
	default:
		return dx*dx+dy*dy > slop*slop
	}
}

// computeOutput maps a displacement (dx, dy) from the down point to the stick
// translation and the listener signal.
func computeOutput(touch ActiveTouch, dx, dy float64, g Geometry, c MotionConstraint, mode OutputMode) DragOutput {
	x := touch.DownX + dx - g.CenterX
	y := touch.DownY + dy - g.CenterY

	switch c {
	case ConstraintHorizontal:
		y = 0
	case ConstraintVertical:
		x = 0
	}

	out := DragOutput{Mode: mode}
	r := g.Radius

	if mode == OutputRect {
		x = clampAbs(x, r)
		y = clampAbs(y, r)
		out.X, out.Y = x, y
		if r > 0 {
			out.XOffset = x / r
			out.YOffset = y / r
		}
		return out
	}

	mag := math.Sqrt(x*x + y*y)
	if x*x+y*y > r*r {
		// mag > r >= 0 here.
		x = r * x / mag
		y = r * y / mag
		mag = r
	}
	out.X, out.Y = x, y
	out.Angle = degrees(math.Atan2(-y, x))
	if r > 0 {
		out.Offset = mag / r
	}
	return out
}

// degrees converts radians from math.Atan2 to degrees in (-180, 180].
func degrees(rad float64) float64 {
	d := rad * 180 / math.Pi
	if d <= -180 {
		d += 360
	}
	if d == 0 {
		// Normalizes -0.
		return 0
	}
	return d
}

func clampAbs(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}
