package timeseries

import "errors"

var (
	// ErrEmptySample is returned for a nil matrix or one without rows or columns.
	ErrEmptySample = errors.New("timeseries: sample has no data")

	// ErrDimensionMismatch is returned when a sample's column count differs from
	// the dataset dimensionality.
	ErrDimensionMismatch = errors.New("timeseries: dimension mismatch")

	// ErrNullClassLabel is returned when label 0 is added without enabling null samples.
	ErrNullClassLabel = errors.New("timeseries: class label 0 is reserved for the null class")

	// ErrInvalidLabel is returned for negative class labels.
	ErrInvalidLabel = errors.New("timeseries: class label must be >= 0")

	// ErrUnknownClass is returned when an operation names a label that has no samples.
	ErrUnknownClass = errors.New("timeseries: unknown class label")

	// ErrInvalidRanges is returned when external ranges do not match the dimensionality.
	ErrInvalidRanges = errors.New("timeseries: ranges do not match dimensionality")

	// ErrBadPercentage is returned for a split percentage outside [0, 100].
	ErrBadPercentage = errors.New("timeseries: percentage must be in [0, 100]")

	// ErrBadTrimParams is returned for trimmer settings outside their valid ranges.
	ErrBadTrimParams = errors.New("timeseries: invalid trim parameters")

	// ErrUntrimmable is returned when a sample cannot be trimmed.
	ErrUntrimmable = errors.New("timeseries: sample cannot be trimmed")

	// ErrMalformedDataset is returned by Load on an unexpected token.
	ErrMalformedDataset = errors.New("timeseries: malformed dataset file")
)
