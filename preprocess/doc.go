// Package preprocess implements the per-series transforms applied before a
// time series is aligned.
//
// Four stages exist and, when combined, always run in this order:
//
//	scale -> z-normalise -> smooth -> offset
//
// The stages:
//   - Scale: per-dimension min-max scaling into [lo, hi] using ranges taken
//     from the training data (or supplied externally).
//   - ZNormalize: per-column mean/standard-deviation normalisation of a
//     single series. With the constraint enabled a column whose standard
//     deviation is below the threshold is only mean-centred.
//   - Smooth: non-overlapping box-car averaging by a factor k. Remainder rows
//     are averaged into one extra trailing row.
//   - Offset: subtracts the first row from every row.
//
// Every function returns a new matrix and never mutates its input.
// Pipeline bundles the enabled stages so training and prediction share one
// configuration.
package preprocess
