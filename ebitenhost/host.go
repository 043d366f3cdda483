// Package ebitenhost feeds a thumbstick.Controller from Ebitengine input.
//
// Call [Host.Update] from your game's Update. The host polls the mouse as
// pointer 0 and up to nine touches as pointers 1-9, turns frame-to-frame
// changes into pointer events in the control's local space, and advances the
// bound stick's settle animation.
package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/thumbstick"
)

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// Input is the subset of Ebitengine's polling API the host reads.
type Input interface {
	CursorPosition() (x, y int)
	MousePressed() bool
	AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID
	TouchPosition(id ebiten.TouchID) (x, y int)
}

type ebitenInput struct{}

func (ebitenInput) CursorPosition() (int, int) { return ebiten.CursorPosition() }

func (ebitenInput) MousePressed() bool {
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

func (ebitenInput) AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID {
	return ebiten.AppendTouchIDs(ids)
}

func (ebitenInput) TouchPosition(id ebiten.TouchID) (int, int) { return ebiten.TouchPosition(id) }

type pointerState struct {
	down bool
	x, y float64
}

// updater is implemented by sticks that animate, such as *thumbstick.TweenStick.
type updater interface {
	Update(dt float32)
}

// Host polls input once per frame and feeds the controller.
type Host struct {
	ctrl  *thumbstick.Controller
	input Input

	// OriginX and OriginY are the control's top-left corner in screen space.
	// Pointer coordinates are translated by them before reaching the controller.
	OriginX, OriginY float64

	// TPS overrides the tick rate used to advance the stick. Zero uses ebiten.TPS().
	TPS int

	pointers  [maxPointers]pointerState
	touchUsed [maxPointers]bool
	touchMap  [maxPointers]ebiten.TouchID
	touchIDs  []ebiten.TouchID

	consumed bool
}

// New returns a host that reads Ebitengine's live input.
func New(ctrl *thumbstick.Controller) *Host {
	if ctrl == nil {
		panic("ebitenhost: nil controller")
	}
	return &Host{ctrl: ctrl, input: ebitenInput{}}
}

// SetInput replaces the input source. Tests use it to drive the host headless.
func (h *Host) SetInput(in Input) {
	h.input = in
}

// Controller returns the controller this host feeds.
func (h *Host) Controller() *thumbstick.Controller {
	return h.ctrl
}

// SetBounds places the control on screen and reports its size and the stick's
// full extents to the controller.
func (h *Host) SetBounds(x, y, width, height, stickWidth, stickHeight float64) {
	h.OriginX, h.OriginY = x, y
	h.ctrl.NotifyGeometry(width, height, stickWidth/2, stickHeight/2)
}

// Consumed reports whether the controller handled any event during the last Update.
func (h *Host) Consumed() bool {
	return h.consumed
}

// Update polls input, feeds the resulting events and advances the stick.
// It returns an error so it can be called directly from ebiten.Game.Update.
func (h *Host) Update() error {
	var next [maxPointers]pointerState
	h.pollMouse(&next)
	h.pollTouches(&next)

	h.consumed = false
	h.dispatch(&next)

	if u, ok := h.ctrl.Stick().(updater); ok {
		u.Update(h.dt())
	}
	return nil
}

func (h *Host) dt() float32 {
	tps := h.TPS
	if tps <= 0 {
		tps = ebiten.TPS()
	}
	if tps <= 0 {
		return 0
	}
	return 1 / float32(tps)
}

func (h *Host) pollMouse(next *[maxPointers]pointerState) {
	mx, my := h.input.CursorPosition()
	next[0] = pointerState{
		down: h.input.MousePressed(),
		x:    float64(mx) - h.OriginX,
		y:    float64(my) - h.OriginY,
	}
}

func (h *Host) pollTouches(next *[maxPointers]pointerState) {
	h.touchIDs = h.input.AppendTouchIDs(h.touchIDs[:0])

	var active [maxPointers]bool
	for _, tid := range h.touchIDs {
		slot := h.touchSlot(tid)
		if slot < 0 {
			continue
		}
		active[slot] = true
		tx, ty := h.input.TouchPosition(tid)
		next[slot] = pointerState{down: true, x: float64(tx) - h.OriginX, y: float64(ty) - h.OriginY}
	}

	// Free slots whose touches ended.
	for i := 1; i < maxPointers; i++ {
		if h.touchUsed[i] && !active[i] {
			h.touchUsed[i] = false
			h.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (h *Host) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if h.touchUsed[i] && h.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !h.touchUsed[i] {
			h.touchUsed[i] = true
			h.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// dispatch diffs next against the previous frame. Moves are reported first as
// one event, then lifts, then presses, so a lift and a fresh press in the same
// frame reach the controller in that order.
func (h *Host) dispatch(next *[maxPointers]pointerState) {
	movedID := thumbstick.NoPointer
	for i := range next {
		prev := h.pointers[i]
		if prev.down && next[i].down {
			if prev.x != next[i].x || prev.y != next[i].y {
				h.pointers[i].x, h.pointers[i].y = next[i].x, next[i].y
				if movedID == thumbstick.NoPointer {
					movedID = i
				}
			}
		}
	}
	if movedID != thumbstick.NoPointer {
		h.feed(thumbstick.PointerMove, movedID)
	}

	for i := range next {
		if h.pointers[i].down && !next[i].down {
			kind := thumbstick.PointersEnded
			if h.downCount() > 1 {
				kind = thumbstick.PointerLifted
			}
			h.feed(kind, i)
			h.pointers[i].down = false
		}
	}

	for i := range next {
		if !h.pointers[i].down && next[i].down {
			h.pointers[i] = next[i]
			h.feed(thumbstick.PointerPress, i)
		}
	}
}

func (h *Host) downCount() int {
	n := 0
	for i := range h.pointers {
		if h.pointers[i].down {
			n++
		}
	}
	return n
}

func (h *Host) feed(kind thumbstick.PointerKind, id int) {
	samples := make([]thumbstick.PointerSample, 0, maxPointers)
	for i := range h.pointers {
		if h.pointers[i].down {
			samples = append(samples, thumbstick.PointerSample{ID: i, X: h.pointers[i].x, Y: h.pointers[i].y})
		}
	}
	ev := thumbstick.PointerEvent{Kind: kind, PointerID: id, Pointers: samples}
	if h.ctrl.Feed(ev) {
		h.consumed = true
	}
}
