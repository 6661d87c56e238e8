package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newPredictCmd(a *app) *cobra.Command {
	var model, ref string
	cmd := &cobra.Command{
		Use:   "predict [flags] SERIES...",
		Short: "Classify whole series read from matrix files",
		Long: `Classify every SERIES file (one sample per line, channels separated by
whitespace, tabs or commas; "-" reads stdin). Label 0 means the series was
rejected.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadModel(cmd.Context(), model, ref)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SERIES\tLABEL\tCLOSEST\tDISTANCE\tLIKELIHOOD")
			for _, path := range args {
				m, err := readSeries(cmd, path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				p, err := c.Predict(m)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				fmt.Fprintf(w, "%s\t%d\t%d\t%.4g\t%.4f\n",
					path, p.Label, c.ClassLabels()[p.Closest], p.BestDistance, p.MaxLikelihood)
				a.log.Debug("predicted", zap.String("series", path), zap.Float64s("distances", p.Distances))
			}
			return w.Flush()
		},
	}
	f := cmd.Flags()
	f.StringVarP(&model, "model", "m", "model.grt", "model file")
	f.StringVar(&ref, "registry", "", "registry model name or id (overrides --model)")
	return cmd
}

func newStreamCmd(a *app) *cobra.Command {
	var (
		model, ref string
		every      int
		quiet      bool
	)
	cmd := &cobra.Command{
		Use:   "stream [flags] SERIES",
		Short: "Feed a series sample by sample through the streaming classifier",
		Long: `Push every row of SERIES into the streaming buffer. Once the buffer holds
the average template length, each new row yields a prediction over the most
recent window. Only label changes are printed unless --every is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadModel(cmd.Context(), model, ref)
			if err != nil {
				return err
			}
			m, err := readSeries(cmd, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rows, _ := m.Dims()
			last, ready := -1, 0
			counts := map[int]int{}
			for i := 0; i < rows; i++ {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				p, err := c.PredictSample(m.RawRowView(i))
				if err != nil {
					return fmt.Errorf("row %d: %w", i, err)
				}
				if !p.Ready {
					continue
				}
				ready++
				counts[p.Label]++
				if !quiet && (p.Label != last || (every > 0 && ready%every == 0)) {
					fmt.Fprintf(out, "row %d: label %d (distance %.4g, likelihood %.4f)\n",
						i, p.Label, p.BestDistance, p.MaxLikelihood)
				}
				last = p.Label
			}

			fmt.Fprintf(out, "%d rows, %d predictions, window %d\n", rows, ready, c.AverageTemplateLength())
			for _, label := range append([]int{0}, c.ClassLabels()...) {
				if n := counts[label]; n > 0 {
					fmt.Fprintf(out, "  label %d: %d\n", label, n)
				}
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&model, "model", "m", "model.grt", "model file")
	f.StringVar(&ref, "registry", "", "registry model name or id (overrides --model)")
	f.IntVar(&every, "every", 0, "also print every Nth prediction")
	f.BoolVarP(&quiet, "quiet", "q", false, "print only the summary")
	return cmd
}
