package main

import (
	"fmt"
	"math/rand"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/dtwgesture/classifier"
	"github.com/katalvlaran/dtwgesture/timeseries"
)

func newTrainCmd(a *app) *cobra.Command {
	var (
		data, out, name string
		holdout         int
		seed            int64
	)
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a DTW classifier from a dataset file",
		Long: `Train one template per class and write the model file. With --name the
model is also added to the registry. With --holdout N, N percent of every
class is kept back and the accuracy on it is reported.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := timeseries.LoadFile(data)
			if err != nil {
				return err
			}

			var test *timeseries.Dataset
			if holdout > 0 {
				test, err = ds.Split(100-holdout, true, rand.New(rand.NewSource(seed)))
				if err != nil {
					return err
				}
			}

			c, err := a.newClassifier()
			if err != nil {
				return err
			}
			if err := c.Train(ds); err != nil {
				return err
			}
			if out != "" {
				if err := c.SaveFile(out); err != nil {
					return err
				}
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TEMPLATE\tCLASS\tLENGTH\tMU\tSIGMA\tTHRESHOLD")
			thr := c.Thresholds()
			for k, t := range c.Templates() {
				fmt.Fprintf(w, "%d\t%d\t%d\t%.4g\t%.4g\t%.4g\n", k+1, t.Label, t.Len(), t.Mu, t.Sigma, thr[k])
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if test != nil && test.Len() > 0 {
				acc, err := accuracy(c, test)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "holdout accuracy: %.2f%% (%d samples)\n", acc*100, test.Len())
			}

			if name != "" {
				st, err := a.openStore(cmd.Context())
				if err != nil {
					return err
				}
				defer st.Close()
				rec, err := st.Put(cmd.Context(), name, c)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "stored as %s\n", rec.ID)
			}
			a.log.Info("training finished", zap.String("data", data), zap.String("model", out))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&data, "data", "d", "gestures.grt", "dataset file")
	f.StringVarP(&out, "out", "o", "model.grt", "model file to write (empty to skip)")
	f.StringVar(&name, "name", "", "also store the model in the registry under this name")
	f.IntVar(&holdout, "holdout", 0, "percent of each class held out for evaluation")
	f.Int64Var(&seed, "seed", 1, "seed for the holdout split")
	addClassifierFlags(cmd)
	return cmd
}

// accuracy returns the share of test samples predicted with their own label.
func accuracy(c *classifier.DTW, test *timeseries.Dataset) (float64, error) {
	hits := 0
	for _, s := range test.Samples() {
		p, err := c.Predict(s.Data)
		if err != nil {
			return 0, err
		}
		if p.Label == s.Label {
			hits++
		}
	}
	return float64(hits) / float64(test.Len()), nil
}
