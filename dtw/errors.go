package dtw

import "errors"

var (
	// ErrEmptyInput indicates a nil or empty series.
	ErrEmptyInput = errors.New("dtw: input series must be non-empty")

	// ErrDimensionMismatch indicates series with different channel counts.
	ErrDimensionMismatch = errors.New("dtw: series have different channel counts")

	// ErrUnknownDistanceMethod indicates a DistanceMethod outside the enumerated set.
	ErrUnknownDistanceMethod = errors.New("dtw: unknown distance method")

	// ErrBadRadius indicates a constrained alignment with a radius outside (0, 1].
	ErrBadRadius = errors.New("dtw: radius must be in (0, 1]")
)
