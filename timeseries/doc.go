// Package timeseries holds labelled multi-dimensional time series and the
// datasets built from them.
//
// A Sample is a matrix with one row per time step and one column per
// feature dimension, tagged with an integer class label. A Dataset is an
// ordered collection of samples with a class tracker (one entry per label,
// created lazily in order of first appearance) and per-dimension value
// ranges used for min-max scaling.
//
// Class label 0 is reserved for the null (unknown) class and is refused by
// AddSample unless SetAllowNullClass(true) has been called.
//
// Besides the in-memory model the package provides:
//   - Trimmer: removes leading and trailing still segments from a sample
//     using a normalised motion-energy threshold.
//   - Save / Load: the labelled time-series dataset text format.
//   - ReadMatrix / WriteMatrix: plain tab-separated matrices, one row per line.
//
// Matrices are gonum *mat.Dense values. Every sample stored in a Dataset is
// a private copy; callers may keep mutating the matrix they passed in.
package timeseries
