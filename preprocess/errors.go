package preprocess

import "errors"

var (
	// ErrEmptyInput is returned for a nil or empty matrix.
	ErrEmptyInput = errors.New("preprocess: empty input")

	// ErrRangesMismatch is returned when the number of ranges differs from the column count.
	ErrRangesMismatch = errors.New("preprocess: ranges do not match column count")

	// ErrBadSmoothingFactor is returned for a smoothing factor below 1.
	ErrBadSmoothingFactor = errors.New("preprocess: smoothing factor must be >= 1")
)
