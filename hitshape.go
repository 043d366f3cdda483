package thumbstick

// HitShape limits where a press is accepted, in the control's local coordinates.
type HitShape interface {
	Contains(x, y float64) bool
}

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// ZoneFor returns the hit area covering a control of the given size: the
// inscribed circle for OutputPolar, the full bounds for OutputRect.
func ZoneFor(width, height float64, mode OutputMode) HitShape {
	if mode == OutputRect {
		return HitRect{Width: width, Height: height}
	}
	r := width
	if height < r {
		r = height
	}
	return HitCircle{CenterX: width / 2, CenterY: height / 2, Radius: r / 2}
}
