package thumbstick

import (
	"math"
	"time"

	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// Controller turns raw pointer events into joystick output. It tracks one
// pointer at a time, waits for the pointer to leave the slop (unless
// StartOnFirstTouch is set), then moves the bound Stick and reports the
// clamped displacement to its listener until the pointer lifts.
//
// A Controller is driven from a single goroutine and is not safe for
// concurrent use. All callbacks run synchronously inside Feed.
type Controller struct {
	cfg  Config
	geom Geometry

	// Last size reported through NotifyGeometry.
	width, height          float64
	stickHalfW, stickHalfH float64
	sized                  bool

	stick   Stick
	dragged Stick // non-nil while dragging
	state   GestureState
	touch   ActiveTouch
	locked  bool
	enabled bool
	zone    HitShape

	settleDuration time.Duration
	settleEasing   ease.TweenFunc

	listener Listener
	handlers handlerRegistry
	sink     EventSink

	logger *zap.Logger
	debug  bool
}

// NewController creates an idle, enabled controller with DefaultConfig.
func NewController() *Controller {
	return &Controller{
		cfg:            DefaultConfig(),
		touch:          ActiveTouch{PointerID: NoPointer},
		enabled:        true,
		settleDuration: SettleDuration,
		settleEasing:   SettleEasing,
	}
}

// --- Collaborators ---

// BindStick attaches the draggable element. A controller hosts one stick;
// binding a second returns ErrStickAlreadyBound.
func (c *Controller) BindStick(s Stick) error {
	if s == nil {
		panic("thumbstick: cannot bind nil stick")
	}
	if c.stick != nil {
		return ErrStickAlreadyBound
	}
	c.stick = s
	return nil
}

// Stick returns the bound stick, or nil.
func (c *Controller) Stick() Stick {
	return c.stick
}

// SetListener sets the listener notified of presses, drags and releases.
// Pass nil to stop notifications.
func (c *Controller) SetListener(l Listener) {
	c.listener = l

	if l != nil && c.stick == nil {
		c.log().Warn("controller has no stick, and is therefore not functional; bind one with BindStick")
	}
}

// SetEventSink sets the optional ECS bridge.
func (c *Controller) SetEventSink(sink EventSink) {
	c.sink = sink
}

// SetLogger replaces the diagnostic logger. Nil restores the shared default.
func (c *Controller) SetLogger(l *zap.Logger) {
	c.logger = l
}

// SetDebug enables per-transition debug records. When no logger was set, a
// debug-level logger is installed.
func (c *Controller) SetDebug(on bool) {
	c.debug = on
	if on && c.logger == nil {
		c.logger = NewLogger(true)
	}
}

func (c *Controller) log() *zap.Logger {
	if c.logger != nil {
		return c.logger
	}
	return sharedLogger()
}

// --- Configuration ---

// Configure replaces the whole configuration. The radius is recomputed when
// the constraint or fixed radius changes.
func (c *Controller) Configure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Radius != nil {
		cfg.Radius = FixedRadius(*cfg.Radius)
	}
	c.cfg = cfg
	c.recomputeRadius()
	return nil
}

// Config returns a copy of the current configuration.
func (c *Controller) Config() Config {
	cfg := c.cfg
	if cfg.Radius != nil {
		cfg.Radius = FixedRadius(*cfg.Radius)
	}
	return cfg
}

// Slop returns the distance in pixels a press can wander before the
// controller treats it as a drag.
func (c *Controller) Slop() float64 { return c.cfg.Slop }

// SetSlop sets the drag threshold in pixels. Negative values are treated as 0.
func (c *Controller) SetSlop(pixels float64) {
	c.cfg.Slop = math.Max(0, pixels)
}

func (c *Controller) MotionConstraint() MotionConstraint { return c.cfg.MotionConstraint }

// SetMotionConstraint restricts drags to one axis and recomputes the radius.
func (c *Controller) SetMotionConstraint(m MotionConstraint) {
	c.cfg.MotionConstraint = m
	c.recomputeRadius()
}

func (c *Controller) StartOnFirstTouch() bool { return c.cfg.StartOnFirstTouch }

// SetStartOnFirstTouch makes the stick activate on the initial press. When
// false the pointer must first travel past the slop.
func (c *Controller) SetStartOnFirstTouch(on bool) {
	c.cfg.StartOnFirstTouch = on
}

func (c *Controller) OutputMode() OutputMode { return c.cfg.OutputMode }

func (c *Controller) SetOutputMode(m OutputMode) {
	c.cfg.OutputMode = m
}

// Radius returns the maximum offset in pixels the stick may move from center.
func (c *Controller) Radius() float64 { return c.geom.Radius }

// SetRadius fixes the maximum stick offset. Size changes no longer affect it
// until ClearFixedRadius is called.
func (c *Controller) SetRadius(r float64) {
	c.cfg.Radius = FixedRadius(math.Max(0, r))
	c.recomputeRadius()
}

// ClearFixedRadius returns to deriving the radius from the control size.
func (c *Controller) ClearFixedRadius() {
	c.cfg.Radius = nil
	c.recomputeRadius()
}

// HasFixedRadius reports whether the radius was set explicitly.
func (c *Controller) HasFixedRadius() bool { return c.cfg.Radius != nil }

// SetSettle overrides the settle animation used on unlocked releases.
func (c *Controller) SetSettle(d time.Duration, fn ease.TweenFunc) {
	c.settleDuration = d
	c.settleEasing = fn
}

// SetZone limits accepted presses to a hit area. Nil accepts any press.
func (c *Controller) SetZone(zone HitShape) {
	c.zone = zone
}

// SetEnabled toggles input. A disabled controller ignores every event.
func (c *Controller) SetEnabled(on bool) {
	c.enabled = on
}

func (c *Controller) Enabled() bool { return c.enabled }

// NotifyGeometry reports the control size and the stick's half extents.
// The center moves to the middle of the control and the radius is recomputed
// unless fixed.
func (c *Controller) NotifyGeometry(width, height, stickHalfWidth, stickHalfHeight float64) {
	c.width, c.height = width, height
	c.stickHalfW, c.stickHalfH = stickHalfWidth, stickHalfHeight
	c.sized = true
	c.geom.CenterX = width / 2
	c.geom.CenterY = height / 2
	c.recomputeRadius()
}

// Geometry returns the current center and radius.
func (c *Controller) Geometry() Geometry { return c.geom }

func (c *Controller) recomputeRadius() {
	if c.cfg.Radius != nil {
		c.geom.Radius = *c.cfg.Radius
		return
	}
	if !c.sized {
		return
	}
	c.geom.Radius = ComputeRadius(c.width, c.height, c.stickHalfW, c.stickHalfH, c.cfg.MotionConstraint)
	if c.debug {
		c.log().Debug("radius recomputed",
			zap.Float64("width", c.width), zap.Float64("height", c.height),
			zap.Stringer("constraint", c.cfg.MotionConstraint), zap.Float64("radius", c.geom.Radius))
	}
}

// --- Lock ---

// Lock keeps the stick where it is when the user next releases it.
// The listener's OnUp is not called for that release. The flag resets after
// the release.
func (c *Controller) Lock() {
	c.locked = true
}

// Locked reports whether the next release is locked.
func (c *Controller) Locked() bool { return c.locked }

// --- State ---

// State returns the current gesture state.
func (c *Controller) State() GestureState { return c.state }

// ActiveTouch returns the tracked pointer. PointerID is NoPointer when idle.
func (c *Controller) ActiveTouch() ActiveTouch { return c.touch }

// --- Event handling ---

// Feed runs the gesture state machine for one host event and reports whether
// the controller consumed it. Presses are consumed when accepted, moves while
// dragging (including the move that starts a drag), and releases that end a
// gesture.
func (c *Controller) Feed(ev PointerEvent) bool {
	if !c.enabled {
		return false
	}

	switch ev.Kind {
	case PointerPress:
		return c.press(ev)
	case PointerMove:
		return c.move(ev)
	case PointerLifted:
		if c.touch.PointerID == NoPointer || ev.PointerID != c.touch.PointerID {
			return false
		}
		return c.release()
	case PointersEnded, PointerCancelled:
		if c.state == StateIdle {
			return false
		}
		return c.release()
	}
	return false
}

func (c *Controller) press(ev PointerEvent) bool {
	if c.state != StateIdle || c.stick == nil {
		return false
	}
	p, ok := ev.Sample(ev.PointerID)
	if !ok {
		return false
	}
	if c.zone != nil && !c.zone.Contains(p.X, p.Y) {
		return false
	}

	c.touch = ActiveTouch{PointerID: p.ID, DownX: p.X, DownY: p.Y}
	c.setState(StateDetecting)
	c.fireDown()

	if c.cfg.StartOnFirstTouch {
		c.startDrag()
	}
	return true
}

func (c *Controller) move(ev PointerEvent) bool {
	if c.state == StateIdle {
		return false
	}
	p, ok := ev.Sample(c.touch.PointerID)
	if !ok {
		return false
	}
	dx := p.X - c.touch.DownX
	dy := p.Y - c.touch.DownY

	if c.state == StateDetecting {
		if !exceedsSlop(dx, dy, c.cfg.Slop, c.cfg.MotionConstraint) {
			return false
		}
		c.startDrag()
	}
	c.drag(dx, dy)
	return true
}

// startDrag takes ownership of the stick and reports the output for the
// down point itself.
func (c *Controller) startDrag() {
	c.setState(StateDragging)
	c.dragged = c.stick
	c.dragged.CancelSettle()
	c.fire(EventDragStart, DragOutput{})
	c.drag(0, 0)
}

func (c *Controller) drag(dx, dy float64) {
	out := computeOutput(c.touch, dx, dy, c.geom, c.cfg.MotionConstraint, c.cfg.OutputMode)
	c.dragged.SetPosition(out.X, out.Y)

	if c.listener != nil {
		c.listener.OnDrag(out.Primary(), out.Secondary())
	}
	c.fire(EventDrag, out)
}

// release ends the gesture in flight. The lock flag is consumed here.
func (c *Controller) release() bool {
	wasDragging := c.state == StateDragging
	locked := c.locked
	touch := c.touch

	c.touch = ActiveTouch{PointerID: NoPointer}
	c.locked = false
	c.setState(StateIdle)

	if wasDragging {
		if !locked {
			c.dragged.StartSettle(0, 0, c.settleDuration, c.settleEasing)
		}
		c.dragged = nil
	}

	if locked {
		if c.debug {
			c.log().Debug("locked release", zap.Int("pointer", touch.PointerID))
		}
		return true
	}
	if c.listener != nil {
		c.listener.OnUp()
	}
	c.fireWith(EventUp, touch, DragOutput{})
	return true
}

func (c *Controller) setState(s GestureState) {
	if c.debug && s != c.state {
		c.log().Debug("gesture state",
			zap.Stringer("from", c.state), zap.Stringer("to", s),
			zap.Int("pointer", c.touch.PointerID))
	}
	c.state = s
}

// --- Event dispatch ---

func (c *Controller) fireDown() {
	if c.listener != nil {
		c.listener.OnDown()
	}
	c.fire(EventDown, DragOutput{})
}

func (c *Controller) fire(t EventType, out DragOutput) {
	c.fireWith(t, c.touch, out)
}

func (c *Controller) fireWith(t EventType, touch ActiveTouch, out DragOutput) {
	handlers := c.handlers.list(t)
	if len(handlers) == 0 && c.sink == nil {
		return
	}
	ev := GestureEvent{
		Type:      t,
		PointerID: touch.PointerID,
		DownX:     touch.DownX,
		DownY:     touch.DownY,
		Output:    out,
	}
	for _, h := range handlers {
		h.fn(ev)
	}
	if c.sink != nil {
		c.sink.EmitEvent(ev)
	}
}
