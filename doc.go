// Package thumbstick is a virtual joystick for pointer and touch input.
//
// A [Controller] turns raw pointer events over a circular or rectangular
// control into a continuous directional signal, and moves a draggable
// [Stick] to follow the finger. It does not draw anything and does not read
// input devices: the host forwards events through [Controller.Feed] and
// reports its size through [Controller.NotifyGeometry].
//
// # Quick start
//
//	ctrl := thumbstick.NewController()
//	stick := thumbstick.NewTweenStick()
//	if err := ctrl.BindStick(stick); err != nil {
//		log.Fatal(err)
//	}
//	ctrl.NotifyGeometry(200, 200, 30, 30)
//	ctrl.SetListener(thumbstick.ListenerFuncs{
//		Drag: func(angle, offset float64) { player.Steer(angle, offset) },
//	})
//
//	// From the host's input loop:
//	ctrl.Feed(thumbstick.PointerEvent{
//		Kind:      thumbstick.PointerPress,
//		PointerID: 0,
//		Pointers:  []thumbstick.PointerSample{{ID: 0, X: 120, Y: 80}},
//	})
//
//	// Once per frame, so the stick can settle home after release:
//	stick.Update(dt)
//
// For Ebitengine games, package ebitenhost polls the mouse and touches and
// feeds a controller for you.
//
// # Gestures
//
// A press starts detecting a drag. The drag begins once the pointer leaves
// the slop ([Controller.SetSlop]), or on the press itself when
// [Controller.SetStartOnFirstTouch] is enabled. Only the pointer that pressed
// first is tracked; other pointers are ignored until it lifts.
//
// With [ConstraintHorizontal] or [ConstraintVertical] the stick moves along
// one axis and the slop is measured along that axis only.
//
// # Output
//
// In [OutputPolar] mode (the default) the listener receives the angle in
// degrees, (-180, 180] with up positive, and the offset normalized to [0, 1].
// In [OutputRect] mode it receives independent X and Y offsets in [-1, 1].
//
// [Controller.Lock] keeps the stick in place on the next release and
// suppresses that release's OnUp.
//
// # Scripts
//
// [LoadScript] reads YAML or JSON gesture scripts and [Runner] replays them
// into a controller, recording every callback into a [Trace]. The stickctl
// command wraps this for the terminal.
package thumbstick
