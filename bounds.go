package thumbstick

import "math"

// ComputeRadius returns the maximum stick displacement for a control of size
// (width, height) hosting a stick with the given half extents. Pass zero half
// extents when no stick is bound. A container too small for its stick yields 0.
func ComputeRadius(width, height, stickHalfWidth, stickHalfHeight float64, c MotionConstraint) float64 {
	var r float64
	switch c {
	case ConstraintHorizontal:
		r = width/2 - stickHalfWidth
	case ConstraintVertical:
		r = height/2 - stickHalfHeight
	default:
		r = math.Min(width, height)/2 - math.Max(stickHalfWidth, stickHalfHeight)
	}
	if r < 0 || math.IsNaN(r) {
		return 0
	}
	return r
}
