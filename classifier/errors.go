package classifier

import "errors"

var (
	// ErrNotTrained is returned by prediction and template access before training.
	ErrNotTrained = errors.New("classifier: model not trained")

	// ErrDimensionMismatch is returned when the input width differs from the model's.
	ErrDimensionMismatch = errors.New("classifier: dimension mismatch")

	// ErrEmptyDataset is returned when training has no samples left to use.
	ErrEmptyDataset = errors.New("classifier: no training samples")

	// ErrInsufficientExamples is returned when a class has too few examples
	// for the configured rejection settings.
	ErrInsufficientExamples = errors.New("classifier: not enough examples in class")

	// ErrBadNullRejectionCoeff is returned for a coefficient that is not > 0.
	ErrBadNullRejectionCoeff = errors.New("classifier: null rejection coefficient must be > 0")

	// ErrBadLikelihoodThreshold is returned for a likelihood threshold outside [0, 1].
	ErrBadLikelihoodThreshold = errors.New("classifier: likelihood threshold must be in [0, 1]")

	// ErrUnknownRejectionMode is returned for a RejectionMode outside the enumerated set.
	ErrUnknownRejectionMode = errors.New("classifier: unknown rejection mode")

	// ErrBadSmoothingFactor is returned for a smoothing factor below 1.
	ErrBadSmoothingFactor = errors.New("classifier: smoothing factor must be >= 1")

	// ErrBadZNormThreshold is returned for a negative z-normalisation threshold.
	ErrBadZNormThreshold = errors.New("classifier: z-norm threshold must be >= 0")

	// ErrTemplateCount is returned by SetModels when the number of templates changes.
	ErrTemplateCount = errors.New("classifier: template count mismatch")

	// ErrMissingRanges is returned when scaling is enabled but no ranges are known.
	ErrMissingRanges = errors.New("classifier: scaling enabled without ranges")

	// ErrMalformedModel is returned by Load on any unexpected token.
	ErrMalformedModel = errors.New("classifier: malformed model file")

	// ErrUnknownKind is returned by New and ParseKind for unregistered kinds.
	ErrUnknownKind = errors.New("classifier: unknown classifier kind")
)
