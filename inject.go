package thumbstick

// EventQueue builds host-shaped pointer events from synthetic actions and
// feeds them to a Controller one at a time. It tracks every pointer that is
// down so each queued event carries the coordinates of all live pointers,
// the way a touch host reports them.
type EventQueue struct {
	pending []PointerEvent
	live    []PointerSample
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	return len(q.pending)
}

// Live returns the pointers currently down, in press order.
func (q *EventQueue) Live() []PointerSample {
	return append([]PointerSample(nil), q.live...)
}

// InjectPress queues a press of pointer id at (x, y). Pressing a pointer that
// is already down moves it instead.
func (q *EventQueue) InjectPress(id int, x, y float64) {
	if i := q.index(id); i >= 0 {
		q.InjectMove(id, x, y)
		return
	}
	q.live = append(q.live, PointerSample{ID: id, X: x, Y: y})
	q.push(PointerPress, id)
}

// InjectMove queues a move of pointer id to (x, y). Moves of pointers that
// are not down are dropped.
func (q *EventQueue) InjectMove(id int, x, y float64) {
	i := q.index(id)
	if i < 0 {
		return
	}
	q.live[i].X, q.live[i].Y = x, y
	q.push(PointerMove, id)
}

// InjectLift queues pointer id going up. The event is PointerLifted while
// other pointers remain down and PointersEnded for the last one.
func (q *EventQueue) InjectLift(id int) {
	i := q.index(id)
	if i < 0 {
		return
	}
	kind := PointerLifted
	if len(q.live) == 1 {
		kind = PointersEnded
	}
	// The lifted pointer is still reported in its own event.
	q.push(kind, id)
	q.live = append(q.live[:i], q.live[i+1:]...)
}

// InjectRelease queues every live pointer going up at once.
func (q *EventQueue) InjectRelease() {
	if len(q.live) == 0 {
		return
	}
	q.push(PointersEnded, q.live[len(q.live)-1].ID)
	q.live = q.live[:0]
}

// InjectCancel queues a host cancellation and forgets all live pointers.
func (q *EventQueue) InjectCancel() {
	id := NoPointer
	if len(q.live) > 0 {
		id = q.live[0].ID
	}
	q.push(PointerCancelled, id)
	q.live = q.live[:0]
}

// InjectDrag queues a full drag of pointer id: press at (fromX, fromY),
// steps linearly interpolated moves ending at (toX, toY), and a lift.
// Steps below 1 are treated as 1.
func (q *EventQueue) InjectDrag(id int, fromX, fromY, toX, toY float64, steps int) {
	if steps < 1 {
		steps = 1
	}
	q.InjectPress(id, fromX, fromY)
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		q.InjectMove(id, fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	q.InjectLift(id)
}

// Step pops one event and feeds it to c. ok is false when the queue is empty.
func (q *EventQueue) Step(c *Controller) (handled, ok bool) {
	if len(q.pending) == 0 {
		return false, false
	}
	ev := q.pending[0]
	copy(q.pending, q.pending[1:])
	q.pending = q.pending[:len(q.pending)-1]
	return c.Feed(ev), true
}

// Drain feeds every queued event to c and returns the handled flags in order.
func (q *EventQueue) Drain(c *Controller) []bool {
	out := make([]bool, 0, len(q.pending))
	for {
		handled, ok := q.Step(c)
		if !ok {
			return out
		}
		out = append(out, handled)
	}
}

func (q *EventQueue) push(kind PointerKind, id int) {
	q.pending = append(q.pending, PointerEvent{
		Kind:      kind,
		PointerID: id,
		Pointers:  append([]PointerSample(nil), q.live...),
	})
}

func (q *EventQueue) index(id int) int {
	for i := range q.live {
		if q.live[i].ID == id {
			return i
		}
	}
	return -1
}
