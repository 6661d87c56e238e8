package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/dtwgesture/classifier"
	"github.com/katalvlaran/dtwgesture/config"
	"github.com/katalvlaran/dtwgesture/store"
	"github.com/katalvlaran/dtwgesture/timeseries"
)

// app carries the state shared by every subcommand once the root
// pre-run has resolved configuration.
type app struct {
	cfgFile string
	v       *viper.Viper
	cfg     *config.Config
	log     *zap.Logger
}

// flagKeys maps CLI flag names onto configuration keys.
var flagKeys = map[string]string{
	"log-level":            "logging.level",
	"log-format":           "logging.format",
	"store":                "store.path",
	"scaling":              "classifier.scaling",
	"null-rejection":       "classifier.null_rejection",
	"null-rejection-coeff": "classifier.null_rejection_coeff",
	"likelihood-threshold": "classifier.likelihood_threshold",
	"rejection-mode":       "classifier.rejection_mode",
	"distance-method":      "classifier.distance_method",
	"constrain":            "classifier.constrain_warping_path",
	"radius":               "classifier.radius",
	"offset":               "classifier.offset_first_sample",
	"smoothing":            "classifier.smoothing",
	"smoothing-factor":     "classifier.smoothing_factor",
	"znorm":                "classifier.znorm",
	"trim":                 "classifier.trim",
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "dtwgesture",
		Short: "DTW gesture and time-series classification",
		Long: `dtwgesture trains Dynamic Time Warping template classifiers from labelled
time series and classifies new recordings, whole or streamed sample by sample.

It provides:
  - Synthetic gesture datasets for experiments
  - Training with null rejection and optional preprocessing
  - Batch and streaming prediction
  - Pairwise alignment with optional plots
  - A SQLite registry of trained models`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (YAML or TOML)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "console", "log format: console or json")
	pf.String("store", "dtwgesture.db", "model registry database path")

	root.AddCommand(
		newGenerateCmd(a),
		newTrainCmd(a),
		newPredictCmd(a),
		newStreamCmd(a),
		newAlignCmd(a),
		newInfoCmd(a),
		newModelsCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	v, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind --%s: %w", name, err)
			}
		}
	}
	cfg, err := config.Unmarshal(v)
	if err != nil {
		return err
	}
	log, err := config.NewLogger(v)
	if err != nil {
		return err
	}
	a.v, a.cfg, a.log = v, cfg, log
	return nil
}

// addClassifierFlags registers the classifier settings that can be
// overridden per invocation. Defaults mirror config.SetDefaults.
func addClassifierFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Bool("scaling", false, "scale every dimension to [0,1] with the training ranges")
	f.Bool("null-rejection", false, "reject predictions outside the class thresholds")
	f.Float64("null-rejection-coeff", classifier.DefaultNullRejectionCoeff, "threshold = mu + coeff*sigma")
	f.Float64("likelihood-threshold", classifier.DefaultLikelihoodThreshold, "minimum likelihood for likelihood-based rejection")
	f.String("rejection-mode", classifier.TemplateThresholds.String(), "template_thresholds, class_likelihoods or thresholds_and_likelihoods")
	f.String("distance-method", "euclidean", "absolute, euclidean or norm_absolute")
	f.Bool("constrain", false, "restrict warp paths to a band")
	f.Float64("radius", 0.2, "band radius as a fraction of the series length")
	f.Bool("offset", false, "subtract the first sample of every series")
	f.Bool("smoothing", false, "box-car smooth series before alignment")
	f.Int("smoothing-factor", classifier.DefaultSmoothingFactor, "smoothing window")
	f.Bool("znorm", false, "z-normalise every series")
	f.Bool("trim", false, "trim still segments from training samples")
}

// newClassifier builds an untrained classifier from the resolved config.
func (a *app) newClassifier() (*classifier.DTW, error) {
	return a.cfg.Classifier.NewClassifier(classifier.WithLogger(a.log))
}

// loadModel reads a classifier from a model file or, when ref is set, from
// the registry.
func (a *app) loadModel(ctx context.Context, path, ref string) (*classifier.DTW, error) {
	switch {
	case ref != "":
		st, err := a.openStore(ctx)
		if err != nil {
			return nil, err
		}
		defer st.Close()
		rec, err := st.Resolve(ctx, ref)
		if err != nil {
			return nil, err
		}
		c, err := store.Load(rec, classifier.WithLogger(a.log))
		if err != nil {
			return nil, err
		}
		d, ok := c.(*classifier.DTW)
		if !ok {
			return nil, fmt.Errorf("model %s is a %s classifier", rec.ID, rec.Kind)
		}
		return d, nil
	case path != "":
		d, err := a.newClassifier()
		if err != nil {
			return nil, err
		}
		if err := d.LoadFile(path); err != nil {
			return nil, err
		}
		return d, nil
	}
	return nil, fmt.Errorf("one of --model or --registry is required")
}

func (a *app) openStore(ctx context.Context) (*store.Store, error) {
	return store.Open(ctx, a.cfg.Store.Path, a.log)
}

// readSeries reads a matrix file, or stdin for "-".
func readSeries(cmd *cobra.Command, path string) (*mat.Dense, error) {
	if path == "-" {
		return timeseries.ReadMatrix(cmd.InOrStdin())
	}
	return timeseries.ReadMatrixFile(path)
}
