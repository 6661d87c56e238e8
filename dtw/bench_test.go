package dtw_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/dtwgesture/dtw"
)

// benchmarkAlign aligns two random walks of n and m rows with c channels.
func benchmarkAlign(b *testing.B, n, m, c int, opts dtw.Options) {
	rng := rand.New(rand.NewSource(1))
	x, y := walk(rng, n, c), walk(rng, m, c)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := dtw.Align(x, y, opts); err != nil {
			b.Fatalf("Align failed: %v", err)
		}
	}
}

// BenchmarkAlign_Small benchmarks unconstrained 50×50 three-channel series.
func BenchmarkAlign_Small(b *testing.B) {
	benchmarkAlign(b, 50, 50, 3, dtw.DefaultOptions())
}

// BenchmarkAlign_Medium benchmarks unconstrained 300×300 three-channel series.
func BenchmarkAlign_Medium(b *testing.B) {
	benchmarkAlign(b, 300, 300, 3, dtw.DefaultOptions())
}

// BenchmarkAlign_MediumBanded uses a 10% band on the same size.
func BenchmarkAlign_MediumBanded(b *testing.B) {
	opts := dtw.DefaultOptions()
	opts.Constrain, opts.Radius = true, 0.1
	benchmarkAlign(b, 300, 300, 3, opts)
}

// BenchmarkLocalCost isolates the local-cost matrix.
func BenchmarkLocalCost(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	x, y := walk(rng, 300, 3), walk(rng, 300, 3)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = dtw.LocalCost(x, y, dtw.Euclidean)
	}
}
