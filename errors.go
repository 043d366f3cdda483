package thumbstick

import "errors"

var (
	// ErrStickAlreadyBound is returned by BindStick when a stick is already bound.
	// A controller drives exactly one stick.
	ErrStickAlreadyBound = errors.New("thumbstick: controller can host only one stick")

	// ErrInvalidConfig wraps every configuration validation failure.
	ErrInvalidConfig = errors.New("thumbstick: invalid config")

	// ErrEmptyScript is returned when a gesture script has no steps.
	ErrEmptyScript = errors.New("thumbstick: script has no steps")
)
