package thumbstick

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	// SettleDuration is how long the stick takes to return home after an
	// unlocked release.
	SettleDuration = 100 * time.Millisecond
)

// SettleEasing decelerates into the rest position.
var SettleEasing ease.TweenFunc = ease.OutQuad

// Stick is the draggable element a Controller moves. Positions are
// translations relative to the stick's rest position at the control center.
type Stick interface {
	SetPosition(x, y float64)
	// CancelSettle stops an in-flight settle animation, leaving the stick
	// wherever the animation last put it.
	CancelSettle()
	// StartSettle animates the stick to (toX, toY) over d using fn.
	StartSettle(toX, toY float64, d time.Duration, fn ease.TweenFunc)
}

// TweenGroup animates up to 2 float64 fields simultaneously. Create one via
// TweenPosition and call Update(dt) each frame. The group writes values to the
// target fields as it advances.
//
// There is no global animation manager; owners call Update themselves.
type TweenGroup struct {
	tweens [2]*gween.Tween
	count  int
	fields [2]*float64
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenPosition creates a TweenGroup that animates p.X and p.Y to the given
// target coordinates over duration seconds using the easing function.
func TweenPosition(p *Vec2, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2}
	g.tweens[0] = gween.New(float32(p.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(p.Y), float32(toY), duration, fn)
	g.fields[0] = &p.X
	g.fields[1] = &p.Y
	return g
}

// TweenStick is a Stick that keeps its translation in memory and settles with
// a gween tween. Hosts read Pos when drawing and call Update once per frame.
type TweenStick struct {
	Pos Vec2

	// OnMove, if set, is called whenever Pos changes.
	OnMove func(x, y float64)

	settle *TweenGroup
}

// NewTweenStick returns a stick at rest.
func NewTweenStick() *TweenStick {
	return &TweenStick{}
}

// SetPosition moves the stick immediately.
func (s *TweenStick) SetPosition(x, y float64) {
	s.Pos = Vec2{X: x, Y: y}
	s.moved()
}

// CancelSettle drops the in-flight settle animation, if any.
func (s *TweenStick) CancelSettle() {
	s.settle = nil
}

// StartSettle begins animating toward (toX, toY). A non-positive duration
// jumps straight to the target. A nil fn animates linearly.
func (s *TweenStick) StartSettle(toX, toY float64, d time.Duration, fn ease.TweenFunc) {
	if d <= 0 {
		s.settle = nil
		s.SetPosition(toX, toY)
		return
	}
	if fn == nil {
		fn = ease.Linear
	}
	s.settle = TweenPosition(&s.Pos, toX, toY, float32(d.Seconds()), fn)
}

// Settling reports whether a settle animation is in flight.
func (s *TweenStick) Settling() bool {
	return s.settle != nil
}

// Update advances the settle animation by dt seconds.
func (s *TweenStick) Update(dt float32) {
	if s.settle == nil {
		return
	}
	s.settle.Update(dt)
	if s.settle.Done {
		s.settle = nil
	}
	s.moved()
}

func (s *TweenStick) moved() {
	if s.OnMove != nil {
		s.OnMove(s.Pos.X, s.Pos.Y)
	}
}
