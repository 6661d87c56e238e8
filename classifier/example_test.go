package classifier_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/dtwgesture/classifier"
	"github.com/katalvlaran/dtwgesture/timeseries"
)

// ExampleDTW trains two one-dimensional gestures and classifies a new
// recording of the first one.
func ExampleDTW() {
	ds := timeseries.NewDataset(1)
	up := [][]float64{{0, 1, 2, 3, 2, 1, 0}, {0, 1, 2, 3, 3, 2, 1, 0}, {0, 2, 3, 2, 0}}
	down := [][]float64{{3, 2, 1, 0, 1, 2, 3}, {3, 2, 0, 0, 2, 3}, {3, 3, 2, 1, 0, 1, 2, 3}}
	for _, x := range up {
		_ = ds.AddSample(1, mat.NewDense(len(x), 1, x))
	}
	for _, x := range down {
		_ = ds.AddSample(2, mat.NewDense(len(x), 1, x))
	}

	c := classifier.NewDTW(classifier.WithNullRejection(true, 3))
	if err := c.Train(ds); err != nil {
		fmt.Println(err)
		return
	}

	p, _ := c.Predict(mat.NewDense(6, 1, []float64{0, 1, 2, 3, 1, 0}))
	fmt.Println("templates:", c.NumTemplates())
	fmt.Println("label:", p.Label)
	// Output:
	// templates: 2
	// label: 1
}
