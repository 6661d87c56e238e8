// Package classifier trains Dynamic Time Warping templates from labelled time
// series and classifies new series, either as whole matrices or as a stream
// of single samples.
//
// Training picks, for every class, the example with the smallest mean DTW
// distance to the other examples of that class. The mean (mu) and standard
// deviation (sigma) of those distances give the class rejection threshold
//
//	threshold = mu + NullRejectionCoeff * sigma
//
// Prediction aligns the (preprocessed) input against every template. The
// closest template is the candidate; with null rejection enabled one of three
// RejectionMode policies decides whether to accept it or report the null
// label 0.
//
// Streaming prediction pushes samples into a ring buffer sized to the
// average template length and classifies the buffer once it is full.
//
// Models are persisted in a versioned text format (Save / Load). Files in the
// older V1 layout can still be loaded.
//
// A DTW value is not safe for concurrent use.
package classifier
