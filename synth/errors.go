package synth

import "errors"

var (
	// ErrBadLength is returned when a series length is below 1.
	ErrBadLength = errors.New("synth: length must be >= 1")

	// ErrBadDims is returned when a channel count is below 1.
	ErrBadDims = errors.New("synth: dims must be >= 1")

	// ErrBadClasses is returned when GestureSet is asked for no classes or examples.
	ErrBadClasses = errors.New("synth: classes and examples per class must be >= 1")
)
