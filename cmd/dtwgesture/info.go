package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/dtwgesture/timeseries"
)

func newInfoCmd(a *app) *cobra.Command {
	var model, ref, data string
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Describe a model or dataset file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if data != "" {
				ds, err := timeseries.LoadFile(data)
				if err != nil {
					return err
				}
				fmt.Fprint(out, ds.Stats())
				return nil
			}

			c, err := a.loadModel(cmd.Context(), model, ref)
			if err != nil {
				return err
			}
			on, radius := c.WarpingConstraint()
			smooth, factor := c.Smoothing()
			fmt.Fprintf(out, "trained: %t\ndims: %d\ntemplates: %d\naverage length: %d\n",
				c.Trained(), c.Dims(), c.NumTemplates(), c.AverageTemplateLength())
			fmt.Fprintf(out, "distance: %s\nband: %t (radius %g)\nsmoothing: %t (factor %d)\n",
				c.DistanceMethod(), on, radius, smooth, factor)
			fmt.Fprintf(out, "scaling: %t\noffset: %t\nnull rejection: %t (coeff %g, %s)\n",
				c.Scaling(), c.Offset(), c.NullRejection(), c.NullRejectionCoeff(), c.RejectionMode())
			if !c.Trained() {
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TEMPLATE\tCLASS\tLENGTH\tAVG LENGTH\tMU\tSIGMA\tTHRESHOLD")
			thr := c.Thresholds()
			for k, t := range c.Templates() {
				fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%.4g\t%.4g\t%.4g\n",
					k+1, t.Label, t.Len(), t.AverageLength, t.Mu, t.Sigma, thr[k])
			}
			return w.Flush()
		},
	}
	f := cmd.Flags()
	f.StringVarP(&model, "model", "m", "model.grt", "model file")
	f.StringVar(&ref, "registry", "", "registry model name or id (overrides --model)")
	f.StringVarP(&data, "data", "d", "", "describe this dataset file instead of a model")
	return cmd
}
