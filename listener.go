package thumbstick

// Listener observes the joystick. OnDrag receives (angle, offset) in polar
// mode and (xOffset, yOffset) in rect mode; see DragOutput.Primary.
type Listener interface {
	OnDown()
	OnDrag(primary, secondary float64)
	OnUp()
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	Down func()
	Drag func(primary, secondary float64)
	Up   func()
}

func (l ListenerFuncs) OnDown() {
	if l.Down != nil {
		l.Down()
	}
}

func (l ListenerFuncs) OnDrag(primary, secondary float64) {
	if l.Drag != nil {
		l.Drag(primary, secondary)
	}
}

func (l ListenerFuncs) OnUp() {
	if l.Up != nil {
		l.Up()
	}
}

// GestureEvent carries gesture data to registered handlers and the event sink.
type GestureEvent struct {
	Type      EventType
	PointerID int
	DownX     float64
	DownY     float64
	// Output is valid for EventDrag.
	Output DragOutput
}

// EventSink is the interface for optional ECS integration.
// When set on a Controller, gesture events are forwarded to it.
type EventSink interface {
	EmitEvent(event GestureEvent)
}

// --- Handler registry ---

type gestureHandler struct {
	id uint32
	fn func(GestureEvent)
}

type handlerRegistry struct {
	down      []gestureHandler
	dragStart []gestureHandler
	drag      []gestureHandler
	up        []gestureHandler
	nextID    uint32
}

func (r *handlerRegistry) add(event EventType, fn func(GestureEvent)) CallbackHandle {
	r.nextID++
	h := gestureHandler{id: r.nextID, fn: fn}
	switch event {
	case EventDown:
		r.down = append(r.down, h)
	case EventDragStart:
		r.dragStart = append(r.dragStart, h)
	case EventDrag:
		r.drag = append(r.drag, h)
	case EventUp:
		r.up = append(r.up, h)
	}
	return CallbackHandle{id: h.id, reg: r, event: event}
}

func (r *handlerRegistry) list(event EventType) []gestureHandler {
	switch event {
	case EventDown:
		return r.down
	case EventDragStart:
		return r.dragStart
	case EventDrag:
		return r.drag
	case EventUp:
		return r.up
	}
	return nil
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventDown:
		h.reg.down = removeHandler(h.reg.down, h.id)
	case EventDragStart:
		h.reg.dragStart = removeHandler(h.reg.dragStart, h.id)
	case EventDrag:
		h.reg.drag = removeHandler(h.reg.drag, h.id)
	case EventUp:
		h.reg.up = removeHandler(h.reg.up, h.id)
	}
}

func removeHandler(s []gestureHandler, id uint32) []gestureHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = gestureHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// OnDown registers a callback for accepted presses.
func (c *Controller) OnDown(fn func(GestureEvent)) CallbackHandle {
	return c.handlers.add(EventDown, fn)
}

// OnDragStart registers a callback fired once when the stick starts following
// the pointer, before the first drag output.
func (c *Controller) OnDragStart(fn func(GestureEvent)) CallbackHandle {
	return c.handlers.add(EventDragStart, fn)
}

// OnDrag registers a callback for every drag output.
func (c *Controller) OnDrag(fn func(GestureEvent)) CallbackHandle {
	return c.handlers.add(EventDrag, fn)
}

// OnUp registers a callback for unlocked releases.
func (c *Controller) OnUp(fn func(GestureEvent)) CallbackHandle {
	return c.handlers.add(EventUp, fn)
}
