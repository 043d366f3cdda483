package thumbstick

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// --- Test doubles ---

type settleCall struct {
	toX, toY float64
	d        time.Duration
	fn       ease.TweenFunc
}

type fakeStick struct {
	x, y    float64
	sets    int
	cancels int
	settles []settleCall
}

func (s *fakeStick) SetPosition(x, y float64) {
	s.x, s.y = x, y
	s.sets++
}

func (s *fakeStick) CancelSettle() { s.cancels++ }

func (s *fakeStick) StartSettle(toX, toY float64, d time.Duration, fn ease.TweenFunc) {
	s.settles = append(s.settles, settleCall{toX, toY, d, fn})
}

type recorder struct {
	calls []string
	drags [][2]float64
}

func (r *recorder) OnDown() { r.calls = append(r.calls, "down") }

func (r *recorder) OnDrag(primary, secondary float64) {
	r.calls = append(r.calls, "drag")
	r.drags = append(r.drags, [2]float64{primary, secondary})
}

func (r *recorder) OnUp() { r.calls = append(r.calls, "up") }

func (r *recorder) count(name string) int {
	n := 0
	for _, c := range r.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (r *recorder) lastDrag(t *testing.T) [2]float64 {
	t.Helper()
	if len(r.drags) == 0 {
		t.Fatal("no drag recorded")
	}
	return r.drags[len(r.drags)-1]
}

// newTestController returns a 100x100 control (center (50, 50), radius 40)
// with slop 10 that waits for movement before dragging.
func newTestController(t *testing.T) (*Controller, *fakeStick, *recorder) {
	t.Helper()
	c := NewController()
	c.SetLogger(zap.NewNop())
	stick := &fakeStick{}
	if err := c.BindStick(stick); err != nil {
		t.Fatalf("BindStick: %v", err)
	}
	c.NotifyGeometry(100, 100, 10, 10)
	c.SetSlop(10)
	c.SetStartOnFirstTouch(false)
	rec := &recorder{}
	c.SetListener(rec)
	return c, stick, rec
}

func press(id int, x, y float64) PointerEvent {
	return PointerEvent{Kind: PointerPress, PointerID: id, Pointers: []PointerSample{{ID: id, X: x, Y: y}}}
}

func move(id int, x, y float64) PointerEvent {
	return PointerEvent{Kind: PointerMove, PointerID: id, Pointers: []PointerSample{{ID: id, X: x, Y: y}}}
}

func end(id int) PointerEvent {
	return PointerEvent{Kind: PointersEnded, PointerID: id}
}

// --- Scenarios ---

func TestControllerDragScenario(t *testing.T) {
	c, stick, rec := newTestController(t)

	if !c.Feed(press(0, 50, 50)) {
		t.Error("press should be handled")
	}
	if c.State() != StateDetecting {
		t.Errorf("State = %v, want detecting", c.State())
	}
	if at := c.ActiveTouch(); at.PointerID != 0 || at.DownX != 50 || at.DownY != 50 {
		t.Errorf("ActiveTouch = %+v", at)
	}

	if c.Feed(move(0, 50, 45)) {
		t.Error("move within slop should not be handled")
	}
	if c.State() != StateDetecting || rec.count("drag") != 0 {
		t.Fatalf("drag started within slop: state %v, calls %v", c.State(), rec.calls)
	}

	if !c.Feed(move(0, 50, 20)) {
		t.Error("move past slop should be handled")
	}
	if c.State() != StateDragging {
		t.Errorf("State = %v, want dragging", c.State())
	}
	if stick.cancels != 1 {
		t.Errorf("CancelSettle calls = %d, want 1", stick.cancels)
	}

	// Start-of-drag output for the down point, then the crossing move.
	if len(rec.drags) != 2 {
		t.Fatalf("drags = %v, want 2", rec.drags)
	}
	if rec.drags[0] != [2]float64{0, 0} {
		t.Errorf("start drag = %v, want (0, 0)", rec.drags[0])
	}
	d := rec.lastDrag(t)
	if !approxEqual(d[0], 90, epsilon) || !approxEqual(d[1], 0.75, epsilon) {
		t.Errorf("drag = %v, want (90, 0.75)", d)
	}
	if stick.x != 0 || stick.y != -30 {
		t.Errorf("stick = (%v, %v), want (0, -30)", stick.x, stick.y)
	}

	// Clamp beyond the radius.
	c.Feed(move(0, 90, 90))
	d = rec.lastDrag(t)
	if !approxEqual(d[0], -45, epsilon) || !approxEqual(d[1], 1, epsilon) {
		t.Errorf("clamped drag = %v, want (-45, 1)", d)
	}
	want := 40 / math.Sqrt2
	if !approxEqual(stick.x, want, 1e-6) || !approxEqual(stick.y, want, 1e-6) {
		t.Errorf("stick = (%v, %v), want (%v, %v)", stick.x, stick.y, want, want)
	}

	if !c.Feed(end(0)) {
		t.Error("release should be handled")
	}
	if c.State() != StateIdle || c.ActiveTouch().PointerID != NoPointer {
		t.Errorf("after release: state %v, touch %+v", c.State(), c.ActiveTouch())
	}
	if len(stick.settles) != 1 {
		t.Fatalf("settles = %d, want 1", len(stick.settles))
	}
	s := stick.settles[0]
	if s.toX != 0 || s.toY != 0 || s.d != SettleDuration || s.fn == nil {
		t.Errorf("settle = %+v", s)
	}
	if got := rec.calls[len(rec.calls)-1]; got != "up" {
		t.Errorf("last call = %q, want up", got)
	}
}

func TestControllerTapWithinSlop(t *testing.T) {
	c, stick, rec := newTestController(t)

	c.Feed(press(0, 50, 50))
	c.Feed(move(0, 53, 54))
	c.Feed(end(0))

	if rec.count("drag") != 0 {
		t.Errorf("drag fired for a tap: %v", rec.calls)
	}
	if rec.count("down") != 1 || rec.count("up") != 1 {
		t.Errorf("calls = %v, want down and up", rec.calls)
	}
	if len(stick.settles) != 0 || stick.sets != 0 {
		t.Error("stick should be untouched by a tap")
	}
}

func TestControllerCallbackOrder(t *testing.T) {
	c, _, rec := newTestController(t)

	c.Feed(press(0, 50, 50))
	c.Feed(move(0, 80, 50))
	c.Feed(end(0))

	want := []string{"down", "drag", "drag", "up"}
	if len(rec.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", rec.calls, want)
	}
	for i := range want {
		if rec.calls[i] != want[i] {
			t.Errorf("calls[%d] = %q, want %q", i, rec.calls[i], want[i])
		}
	}
}

func TestControllerMoveIdempotent(t *testing.T) {
	c, _, rec := newTestController(t)
	c.Feed(press(0, 50, 50))
	c.Feed(move(0, 70, 30))

	c.Feed(move(0, 61, 77))
	first := rec.lastDrag(t)
	c.Feed(move(0, 61, 77))
	second := rec.lastDrag(t)

	if first != second {
		t.Errorf("identical moves gave %v then %v", first, second)
	}
}

func TestControllerLock(t *testing.T) {
	c, stick, rec := newTestController(t)

	c.Feed(press(0, 50, 50))
	c.Feed(move(0, 80, 50))
	c.Lock()
	if !c.Locked() {
		t.Error("Locked should be true after Lock")
	}
	if !c.Feed(end(0)) {
		t.Error("locked release should still be handled")
	}

	if rec.count("up") != 0 {
		t.Errorf("OnUp fired on a locked release: %v", rec.calls)
	}
	if rec.count("down") != 1 || rec.count("drag") < 1 {
		t.Errorf("calls = %v", rec.calls)
	}
	if len(stick.settles) != 0 {
		t.Error("locked release should not settle the stick")
	}
	if stick.x != 30 || stick.y != 0 {
		t.Errorf("stick = (%v, %v), want it left at (30, 0)", stick.x, stick.y)
	}
	if c.Locked() {
		t.Error("lock should reset after the release")
	}

	// The next gesture releases normally.
	c.Feed(press(0, 50, 50))
	c.Feed(move(0, 20, 50))
	c.Feed(end(0))
	if rec.count("up") != 1 {
		t.Errorf("OnUp count = %d, want 1", rec.count("up"))
	}
	if len(stick.settles) != 1 {
		t.Errorf("settles = %d, want 1", len(stick.settles))
	}
}

func TestControllerLockWhileDetecting(t *testing.T) {
	c, _, rec := newTestController(t)

	c.Feed(press(0, 50, 50))
	c.Lock()
	c.Feed(PointerEvent{Kind: PointerCancelled, PointerID: 0})

	if rec.count("up") != 0 {
		t.Errorf("OnUp fired on a locked cancel: %v", rec.calls)
	}
	if c.Locked() {
		t.Error("lock should be consumed by the cancel")
	}
}

func TestControllerHorizontalSlop(t *testing.T) {
	c, _, rec := newTestController(t)
	c.SetMotionConstraint(ConstraintHorizontal)

	c.Feed(press(0, 50, 50))
	if c.Feed(move(0, 53, 100)) {
		t.Error("vertical travel should not exceed a horizontal slop")
	}
	if c.State() != StateDetecting || rec.count("drag") != 0 {
		t.Errorf("state %v, calls %v", c.State(), rec.calls)
	}

	if !c.Feed(move(0, 61, 100)) {
		t.Error("horizontal travel past slop should start the drag")
	}
	d := rec.lastDrag(t)
	// Radius is 50 - 10 = 40 along the width; y is ignored.
	if d[0] != 0 || !approxEqual(d[1], 11.0/40, epsilon) {
		t.Errorf("drag = %v, want (0, 0.275)", d)
	}
}

func TestControllerStartOnFirstTouch(t *testing.T) {
	c, stick, rec := newTestController(t)
	c.SetStartOnFirstTouch(true)

	if !c.Feed(press(0, 70, 50)) {
		t.Error("press should be handled")
	}
	if c.State() != StateDragging {
		t.Errorf("State = %v, want dragging", c.State())
	}
	if len(rec.calls) != 2 || rec.calls[0] != "down" || rec.calls[1] != "drag" {
		t.Fatalf("calls = %v, want [down drag]", rec.calls)
	}
	d := rec.lastDrag(t)
	if d[0] != 0 || !approxEqual(d[1], 0.5, epsilon) {
		t.Errorf("drag = %v, want (0, 0.5)", d)
	}
	if stick.cancels != 1 || stick.x != 20 {
		t.Errorf("stick cancels %d x %v", stick.cancels, stick.x)
	}

	// Moves within the slop still update the stick once dragging.
	if !c.Feed(move(0, 72, 50)) {
		t.Error("move while dragging should be handled")
	}
	if stick.x != 22 {
		t.Errorf("stick x = %v, want 22", stick.x)
	}
}

func TestControllerNewDragCancelsSettle(t *testing.T) {
	c, stick, _ := newTestController(t)
	c.SetStartOnFirstTouch(true)

	c.Feed(press(0, 60, 50))
	c.Feed(end(0))
	if len(stick.settles) != 1 {
		t.Fatalf("settles = %d, want 1", len(stick.settles))
	}
	c.Feed(press(0, 40, 50))
	if stick.cancels != 2 {
		t.Errorf("CancelSettle calls = %d, want 2", stick.cancels)
	}
}

func TestControllerMultiPointer(t *testing.T) {
	c, _, rec := newTestController(t)

	c.Feed(press(0, 50, 50))
	two := PointerEvent{Kind: PointerPress, PointerID: 1, Pointers: []PointerSample{
		{ID: 0, X: 50, Y: 50}, {ID: 1, X: 10, Y: 10},
	}}
	if c.Feed(two) {
		t.Error("second press should be rejected")
	}
	if rec.count("down") != 1 || c.ActiveTouch().PointerID != 0 {
		t.Errorf("second press changed the gesture: %v %+v", rec.calls, c.ActiveTouch())
	}

	// Only the second pointer travels.
	moved := PointerEvent{Kind: PointerMove, PointerID: 1, Pointers: []PointerSample{
		{ID: 0, X: 50, Y: 50}, {ID: 1, X: 90, Y: 90},
	}}
	if c.Feed(moved) {
		t.Error("movement of an untracked pointer should not start a drag")
	}

	lift := PointerEvent{Kind: PointerLifted, PointerID: 1, Pointers: moved.Pointers}
	if c.Feed(lift) {
		t.Error("lifting an untracked pointer should be ignored")
	}
	if c.State() != StateDetecting {
		t.Errorf("State = %v, want detecting", c.State())
	}

	c.Feed(move(0, 50, 10))
	liftTracked := PointerEvent{Kind: PointerLifted, PointerID: 0, Pointers: []PointerSample{{ID: 0, X: 50, Y: 10}}}
	if !c.Feed(liftTracked) {
		t.Error("lifting the tracked pointer should end the gesture")
	}
	if c.State() != StateIdle || rec.count("up") != 1 {
		t.Errorf("state %v calls %v", c.State(), rec.calls)
	}
}

func TestControllerMoveWithoutTrackedPointer(t *testing.T) {
	c, _, rec := newTestController(t)
	c.Feed(press(3, 50, 50))
	c.Feed(move(3, 80, 50))
	n := len(rec.calls)

	if c.Feed(move(7, 10, 10)) {
		t.Error("move lacking the tracked pointer should be ignored")
	}
	if len(rec.calls) != n || c.State() != StateDragging {
		t.Errorf("state %v calls %v", c.State(), rec.calls)
	}
}

func TestControllerIgnoresEventsWhenIdle(t *testing.T) {
	c, stick, rec := newTestController(t)

	for _, ev := range []PointerEvent{
		move(0, 10, 10),
		{Kind: PointerLifted, PointerID: 0},
		end(0),
		{Kind: PointerCancelled},
	} {
		if c.Feed(ev) {
			t.Errorf("%v while idle should not be handled", ev.Kind)
		}
	}
	if len(rec.calls) != 0 || stick.sets != 0 {
		t.Errorf("idle events produced calls %v", rec.calls)
	}
}

func TestControllerRequiresStick(t *testing.T) {
	c := NewController()
	c.SetLogger(zap.NewNop())
	rec := &recorder{}
	c.SetListener(rec)
	c.NotifyGeometry(100, 100, 0, 0)

	if c.Feed(press(0, 50, 50)) {
		t.Error("press without a stick should not be handled")
	}
	if c.State() != StateIdle || len(rec.calls) != 0 {
		t.Errorf("state %v calls %v", c.State(), rec.calls)
	}
}

func TestControllerBindStickTwice(t *testing.T) {
	c := NewController()
	if err := c.BindStick(&fakeStick{}); err != nil {
		t.Fatalf("first BindStick: %v", err)
	}
	err := c.BindStick(&fakeStick{})
	if !errors.Is(err, ErrStickAlreadyBound) {
		t.Errorf("second BindStick = %v, want ErrStickAlreadyBound", err)
	}
}

func TestControllerBindNilStickPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic binding a nil stick")
		}
	}()
	NewController().BindStick(nil)
}

func TestControllerDisabled(t *testing.T) {
	c, _, rec := newTestController(t)
	c.SetEnabled(false)

	if c.Feed(press(0, 50, 50)) {
		t.Error("disabled controller should not handle a press")
	}
	if c.State() != StateIdle || len(rec.calls) != 0 {
		t.Errorf("state %v calls %v", c.State(), rec.calls)
	}

	c.SetEnabled(true)
	c.Feed(press(0, 50, 50))
	c.Feed(move(0, 80, 50))
	c.SetEnabled(false)
	if c.Feed(end(0)) || c.State() != StateDragging {
		t.Error("disabled controller should ignore the release")
	}
	c.SetEnabled(true)
	if !c.Feed(end(0)) || rec.count("up") != 1 {
		t.Errorf("release after re-enable: calls %v", rec.calls)
	}
}

func TestControllerCancelWhileDragging(t *testing.T) {
	c, stick, rec := newTestController(t)
	c.Feed(press(0, 50, 50))
	c.Feed(move(0, 50, 80))

	if !c.Feed(PointerEvent{Kind: PointerCancelled, PointerID: 0}) {
		t.Error("cancel should be handled")
	}
	if len(stick.settles) != 1 || rec.count("up") != 1 {
		t.Errorf("settles %d calls %v", len(stick.settles), rec.calls)
	}
}

func TestControllerZone(t *testing.T) {
	c, _, rec := newTestController(t)
	c.SetZone(ZoneFor(100, 100, OutputPolar))

	if c.Feed(press(0, 2, 2)) {
		t.Error("press outside the zone should be rejected")
	}
	if !c.Feed(press(0, 50, 95)) {
		t.Error("press inside the zone should be accepted")
	}
	if rec.count("down") != 1 {
		t.Errorf("calls = %v", rec.calls)
	}
}

func TestControllerRectOutput(t *testing.T) {
	c, stick, rec := newTestController(t)
	c.SetOutputMode(OutputRect)

	c.Feed(press(0, 50, 50))
	c.Feed(move(0, 80, 100))

	d := rec.lastDrag(t)
	if !approxEqual(d[0], 0.75, epsilon) || !approxEqual(d[1], 1, epsilon) {
		t.Errorf("rect drag = %v, want (0.75, 1)", d)
	}
	if stick.x != 30 || stick.y != 40 {
		t.Errorf("stick = (%v, %v), want (30, 40)", stick.x, stick.y)
	}
}

func TestControllerSetSlopNegative(t *testing.T) {
	c := NewController()
	c.SetSlop(-3)
	if c.Slop() != 0 {
		t.Errorf("Slop = %v, want 0", c.Slop())
	}
}

// --- Handlers, sink, logging ---

type sliceSink struct {
	events []GestureEvent
}

func (s *sliceSink) EmitEvent(e GestureEvent) { s.events = append(s.events, e) }

func TestControllerHandlersAndSink(t *testing.T) {
	c, _, _ := newTestController(t)
	sink := &sliceSink{}
	c.SetEventSink(sink)

	var types []EventType
	collect := func(e GestureEvent) { types = append(types, e.Type) }
	hDown := c.OnDown(collect)
	c.OnDragStart(collect)
	hDrag := c.OnDrag(collect)
	c.OnUp(collect)

	c.Feed(press(2, 50, 50))
	c.Feed(move(2, 50, 20))
	c.Feed(end(2))

	want := []EventType{EventDown, EventDragStart, EventDrag, EventDrag, EventUp}
	if len(types) != len(want) {
		t.Fatalf("handler events = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("event[%d] = %v, want %v", i, types[i], want[i])
		}
	}
	if len(sink.events) != len(want) {
		t.Fatalf("sink events = %d, want %d", len(sink.events), len(want))
	}
	last := sink.events[len(sink.events)-1]
	if last.Type != EventUp || last.PointerID != 2 || last.DownX != 50 {
		t.Errorf("up event = %+v", last)
	}
	drag := sink.events[3]
	if !approxEqual(drag.Output.Angle, 90, epsilon) || !approxEqual(drag.Output.Offset, 0.75, epsilon) {
		t.Errorf("drag event output = %+v", drag.Output)
	}

	hDown.Remove()
	hDrag.Remove()
	types = nil
	c.Feed(press(0, 50, 50))
	c.Feed(move(0, 50, 20))
	for _, et := range types {
		if et == EventDown || et == EventDrag {
			t.Errorf("removed handler fired for %v", et)
		}
	}
}

func TestCallbackHandleZeroValueRemove(t *testing.T) {
	var h CallbackHandle
	h.Remove() // must not panic
}

func TestSetListenerWithoutStickWarns(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	c := NewController()
	c.SetLogger(zap.New(core))

	c.SetListener(&recorder{})
	if logs.Len() != 1 {
		t.Fatalf("warnings = %d, want 1", logs.Len())
	}

	c.BindStick(&fakeStick{})
	c.SetListener(&recorder{})
	if logs.Len() != 1 {
		t.Errorf("warnings after binding = %d, want 1", logs.Len())
	}
}

func TestControllerDebugLogsTransitions(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c, _, _ := newTestController(t)
	c.SetLogger(zap.New(core))
	c.SetDebug(true)

	c.Feed(press(0, 50, 50))
	c.Feed(move(0, 50, 20))
	c.Feed(end(0))

	if n := logs.FilterMessage("gesture state").Len(); n != 3 {
		t.Errorf("state transition records = %d, want 3", n)
	}
}

func TestControllerConfigure(t *testing.T) {
	c, _, _ := newTestController(t)

	err := c.Configure(Config{Slop: -1})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Configure negative slop = %v, want ErrInvalidConfig", err)
	}

	r := 12.0
	cfg := Config{
		Slop:             4,
		MotionConstraint: ConstraintVertical,
		Radius:           &r,
		OutputMode:       OutputRect,
	}
	if err := c.Configure(cfg); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	r = 99 // the controller keeps its own copy
	if c.Radius() != 12 || !c.HasFixedRadius() {
		t.Errorf("Radius = %v fixed %v", c.Radius(), c.HasFixedRadius())
	}
	if c.Slop() != 4 || c.MotionConstraint() != ConstraintVertical || c.OutputMode() != OutputRect {
		t.Errorf("config not applied: %+v", c.Config())
	}
	if c.StartOnFirstTouch() {
		t.Error("StartOnFirstTouch should be false")
	}
}
