// Package config loads dtwgesture settings with Viper and turns them into a
// configured classifier and logger.
//
// Sources, lowest precedence first: built-in defaults, an optional YAML/TOML
// file, DTWGESTURE_* environment variables (dots become underscores, e.g.
// DTWGESTURE_CLASSIFIER_RADIUS), and flags bound by the CLI.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/katalvlaran/dtwgesture/classifier"
	"github.com/katalvlaran/dtwgesture/dtw"
	"github.com/katalvlaran/dtwgesture/preprocess"
	"github.com/katalvlaran/dtwgesture/timeseries"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "DTWGESTURE"

// Config is the full settings tree.
type Config struct {
	Classifier ClassifierConfig `mapstructure:"classifier"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Store      StoreConfig      `mapstructure:"store"`
}

// ClassifierConfig mirrors the DTW classifier settings.
type ClassifierConfig struct {
	Scaling              bool    `mapstructure:"scaling"`
	NullRejection        bool    `mapstructure:"null_rejection"`
	NullRejectionCoeff   float64 `mapstructure:"null_rejection_coeff"`
	LikelihoodThreshold  float64 `mapstructure:"likelihood_threshold"`
	RejectionMode        string  `mapstructure:"rejection_mode"`
	DistanceMethod       string  `mapstructure:"distance_method"`
	ConstrainWarpingPath bool    `mapstructure:"constrain_warping_path"`
	Radius               float64 `mapstructure:"radius"`
	OffsetFirstSample    bool    `mapstructure:"offset_first_sample"`
	Smoothing            bool    `mapstructure:"smoothing"`
	SmoothingFactor      int     `mapstructure:"smoothing_factor"`
	ZNorm                bool    `mapstructure:"znorm"`
	ConstrainZNorm       bool    `mapstructure:"constrain_znorm"`
	ZNormThreshold       float64 `mapstructure:"znorm_threshold"`
	Trim                 bool    `mapstructure:"trim"`
	TrimThreshold        float64 `mapstructure:"trim_threshold"`
	MaxTrimPercentage    float64 `mapstructure:"max_trim_percentage"`
}

// LoggingConfig selects the zap level and encoder.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// StoreConfig locates the model registry.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// SetDefaults registers every key with the classifier's own defaults.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("classifier.scaling", false)
	v.SetDefault("classifier.null_rejection", false)
	v.SetDefault("classifier.null_rejection_coeff", classifier.DefaultNullRejectionCoeff)
	v.SetDefault("classifier.likelihood_threshold", classifier.DefaultLikelihoodThreshold)
	v.SetDefault("classifier.rejection_mode", classifier.TemplateThresholds.String())
	v.SetDefault("classifier.distance_method", dtw.Euclidean.String())
	v.SetDefault("classifier.constrain_warping_path", false)
	v.SetDefault("classifier.radius", dtw.DefaultRadius)
	v.SetDefault("classifier.offset_first_sample", false)
	v.SetDefault("classifier.smoothing", false)
	v.SetDefault("classifier.smoothing_factor", classifier.DefaultSmoothingFactor)
	v.SetDefault("classifier.znorm", false)
	v.SetDefault("classifier.constrain_znorm", false)
	v.SetDefault("classifier.znorm_threshold", preprocess.DefaultZNormThreshold)
	v.SetDefault("classifier.trim", false)
	v.SetDefault("classifier.trim_threshold", timeseries.DefaultTrimThreshold)
	v.SetDefault("classifier.max_trim_percentage", timeseries.DefaultMaxTrimPercentage)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("store.path", "dtwgesture.db")
}

// Load builds a Viper instance with defaults, environment binding and, when
// configPath is set, that file. Without a path a "dtwgesture.yaml" in the
// working directory is used if present.
func Load(configPath string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("dtwgesture")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found is fine -- use defaults
	}

	return v, nil
}

// Unmarshal decodes the settings tree from v.
func Unmarshal(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &c, nil
}

// Apply pushes the settings into d through its validating setters. d is
// left unchanged for every setting after the first invalid one.
func (c ClassifierConfig) Apply(d *classifier.DTW) error {
	mode, err := classifier.ParseRejectionMode(c.RejectionMode)
	if err != nil {
		return err
	}
	method, err := dtw.ParseDistanceMethod(c.DistanceMethod)
	if err != nil {
		return err
	}

	d.SetScaling(c.Scaling)
	d.SetNullRejection(c.NullRejection)
	d.SetOffset(c.OffsetFirstSample)
	steps := []func() error{
		func() error { return d.SetNullRejectionCoeff(c.NullRejectionCoeff) },
		func() error { return d.SetLikelihoodThreshold(c.LikelihoodThreshold) },
		func() error { return d.SetRejectionMode(mode) },
		func() error { return d.SetDistanceMethod(method) },
		func() error { return d.SetWarpingConstraint(c.ConstrainWarpingPath, c.Radius) },
		func() error { return d.SetSmoothing(c.Smoothing, c.SmoothingFactor) },
		func() error { return d.SetZNormalisation(c.ZNorm, c.ConstrainZNorm, c.ZNormThreshold) },
		func() error { return d.SetTrimming(c.Trim, c.TrimThreshold, c.MaxTrimPercentage) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return fmt.Errorf("classifier config: %w", err)
		}
	}
	return nil
}

// NewClassifier returns a DTW configured from c.
func (c ClassifierConfig) NewClassifier(opts ...classifier.Option) (*classifier.DTW, error) {
	d := classifier.NewDTW(opts...)
	if err := c.Apply(d); err != nil {
		return nil, err
	}
	return d, nil
}
