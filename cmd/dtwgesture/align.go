package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/dtwgesture/dtw"
	"github.com/katalvlaran/dtwgesture/render"
)

func newAlignCmd(a *app) *cobra.Command {
	var (
		plotPath  string
		channel   int
		printPath bool
	)
	cmd := &cobra.Command{
		Use:   "align [flags] TEMPLATE QUERY",
		Short: "Align two series and report their DTW distance",
		Long: `Align two matrix files with the configured distance method and band.
With --plot the chosen channel and the warp path are rendered to a PNG, SVG
or PDF file (by extension).`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			method, err := dtw.ParseDistanceMethod(a.cfg.Classifier.DistanceMethod)
			if err != nil {
				return err
			}
			opts := dtw.Options{
				Method:    method,
				Constrain: a.cfg.Classifier.ConstrainWarpingPath,
				Radius:    a.cfg.Classifier.Radius,
			}

			tmpl, err := readSeries(cmd, args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			query, err := readSeries(cmd, args[1])
			if err != nil {
				return fmt.Errorf("%s: %w", args[1], err)
			}
			al, err := dtw.Align(tmpl, query, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "distance: %.6g\naccumulated: %.6g\npath length: %d\n",
				al.Distance, al.Accumulated, len(al.Path))
			if printPath {
				for _, s := range al.Path {
					fmt.Fprintf(out, "%d\t%d\t%.6g\n", s.Row, s.Col, s.Cost)
				}
			}
			if plotPath != "" {
				if err := render.SaveAlignment(plotPath, tmpl, query, al, channel); err != nil {
					return err
				}
				fmt.Fprintf(out, "plot written to %s\n", plotPath)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&plotPath, "plot", "", "write an alignment plot to this file")
	f.IntVar(&channel, "channel", 0, "channel to plot")
	f.BoolVar(&printPath, "path", false, "print the warp path (template row, query row, cost)")
	f.String("distance-method", "euclidean", "absolute, euclidean or norm_absolute")
	f.Bool("constrain", false, "restrict warp paths to a band")
	f.Float64("radius", 0.2, "band radius as a fraction of the series length")
	return cmd
}
