// Package dtwgesture is a toolkit for recognising multivariate gestures and
// other time-series patterns with Dynamic Time Warping (DTW).
//
// What is inside
//
//	timeseries/   labelled datasets, min/max ranges, dataset files, trimming
//	preprocess/   scaling, z-normalisation, smoothing, offset
//	dtw/          cost grids, optional warping band, backtracking
//	classifier/   the DTW template classifier: train, predict, stream, persist
//	synth/        deterministic synthetic signals and gesture datasets
//	store/        SQLite model registry
//	render/       alignment plots
//	config/       viper configuration and zap logger construction
//	cmd/          the dtwgesture command-line tool
//
// A trained classifier keeps one template per class: the training example
// with the smallest mean DTW distance to its siblings. A query is assigned to
// the class of the closest template, and with null rejection enabled it is
// labelled 0 when that distance exceeds mu + coeff*sigma of the class.
//
// Quick start
//
//	g, _ := synth.GestureSet(3, 10, 50, 2, synth.WithNoise(0.1))
//	c := classifier.NewDTW(classifier.WithNullRejection(true, 3))
//	_ = c.Train(g.Data)
//	p, _ := c.Predict(g.Prototypes[1])
//	fmt.Println(p.Label) // 2
//
//	go install github.com/katalvlaran/dtwgesture/cmd/dtwgesture@latest
package dtwgesture
