package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/dtwgesture/synth"
	"github.com/katalvlaran/dtwgesture/timeseries"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		out, protoDir                   string
		classes, perClass, length, dims int
		outliers                        int
		noise, stretch, offset          float64
		seed                            int64
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic labelled gesture dataset",
		Long: `Generate a dataset of random-walk gestures. Every class has its own
prototype; examples are noisy (and optionally time-stretched) copies of it.

With --prototypes the clean prototype of class N is written to
<dir>/class_N.tsv, ready for "dtwgesture predict".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Reject values the synth options would panic on.
			switch {
			case noise < 0:
				return fmt.Errorf("--noise must be >= 0, got %g", noise)
			case stretch < 0 || stretch >= 1:
				return fmt.Errorf("--stretch must be in [0,1), got %g", stretch)
			case outliers < 0:
				return fmt.Errorf("--outliers must be >= 0, got %d", outliers)
			}
			g, err := synth.GestureSet(classes, perClass, length, dims,
				synth.WithSeed(seed),
				synth.WithNoise(noise),
				synth.WithStretch(stretch),
				synth.WithOutliers(outliers, offset),
			)
			if err != nil {
				return err
			}
			g.Data.SetName("synthetic_gestures")
			g.Data.SetInfo(fmt.Sprintf("seed=%d noise=%g stretch=%g", seed, noise, stretch))
			if err := g.Data.SaveFile(out); err != nil {
				return err
			}

			if protoDir != "" {
				if err := os.MkdirAll(protoDir, 0o755); err != nil {
					return err
				}
				for k, p := range g.Prototypes {
					path := filepath.Join(protoDir, fmt.Sprintf("class_%d.tsv", k+1))
					if err := writeMatrixFile(path, p); err != nil {
						return err
					}
				}
			}

			a.log.Info("dataset written",
				zap.String("path", out),
				zap.Int("samples", g.Data.Len()),
				zap.Int("classes", g.Data.NumClasses()),
			)
			fmt.Fprint(cmd.OutOrStdout(), g.Data.Stats())
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&out, "out", "o", "gestures.grt", "dataset file to write")
	f.StringVar(&protoDir, "prototypes", "", "directory for per-class prototype matrices")
	f.IntVar(&classes, "classes", 3, "number of classes")
	f.IntVar(&perClass, "per-class", 10, "examples per class")
	f.IntVar(&length, "length", 50, "prototype length in samples")
	f.IntVar(&dims, "dims", 3, "channels per sample")
	f.IntVar(&outliers, "outliers", 0, "extra shifted examples per class")
	f.Float64Var(&offset, "outlier-offset", 5, "shift applied to outliers")
	f.Float64Var(&noise, "noise", 0.1, "per-sample Gaussian noise sigma")
	f.Float64Var(&stretch, "stretch", 0, "random length change as a fraction of --length, in [0,1)")
	f.Int64Var(&seed, "seed", 1, "random seed")
	return cmd
}

func writeMatrixFile(path string, m *mat.Dense) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := timeseries.WriteMatrix(f, m); err != nil {
		return err
	}
	return f.Close()
}
