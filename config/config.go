// SPDX-License-Identifier: MIT

// Package config loads collabgraph settings from defaults, a YAML file, a .env
// file and the process environment, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/collabgraph/aggregate"
	"github.com/katalvlaran/collabgraph/merge"
)

// Environment variable names.
const (
	EnvRepresentation    = "COLLABGRAPH_REPRESENTATION"
	EnvOutputDir         = "OUTPUT_DIR"
	EnvFormats           = "COLLABGRAPH_FORMATS"
	EnvWeightComment     = "WEIGHT_COMMENT"
	EnvWeightIssueOpened = "WEIGHT_ISSUE_OPENED"
	EnvWeightReview      = "WEIGHT_REVIEW"
	EnvWeightMerge       = "WEIGHT_MERGE"
	EnvWeightClosure     = "WEIGHT_CLOSURE"
	EnvLogEnv            = "LOG_ENV"
	EnvLogLevel          = "LOG_LEVEL"
)

// Config holds every collabgraph setting.
type Config struct {
	// Representation selects the graph backend: "list" or "matrix".
	Representation string `yaml:"representation" validate:"oneof=list matrix"`

	// OutputDir receives exported files.
	OutputDir string `yaml:"output_dir" validate:"required"`

	// Formats lists export formats; empty means the exporter default.
	Formats []string `yaml:"formats" validate:"dive,oneof=gexf nodes_csv edges_csv matrix_csv metadata"`

	Weights Weights `yaml:"weights"`
	Log     Log     `yaml:"log"`
}

// Weights are the integrated-graph multipliers. Zero means "not configured":
// the merger reports required kinds left at zero as a configuration error.
type Weights struct {
	Comment     int64 `yaml:"comment"`
	IssueOpened int64 `yaml:"issue_opened"`
	Review      int64 `yaml:"review"`
	Merge       int64 `yaml:"merge"`
	Closure     int64 `yaml:"closure"`
}

// Log configures the logger.
type Log struct {
	Env   string `yaml:"env" validate:"omitempty,oneof=production development"`
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Representation: "list",
		OutputDir:      "output",
		Weights: Weights{
			Comment:     merge.DefaultCommentWeight,
			IssueOpened: merge.DefaultIssueOpenedWeight,
			Review:      merge.DefaultReviewWeight,
			Merge:       merge.DefaultMergeWeight,
		},
		Log: Log{Env: "development"},
	}
}

// Table converts the configured multipliers into a merge.WeightTable,
// leaving out every kind set to zero.
func (w Weights) Table() merge.WeightTable {
	t := make(merge.WeightTable, 5)
	set := func(k aggregate.Kind, v int64) {
		if v != 0 {
			t[k] = v
		}
	}
	set(aggregate.KindComment, w.Comment)
	set(aggregate.KindIssueOpened, w.IssueOpened)
	set(aggregate.KindReview, w.Review)
	set(aggregate.KindMerge, w.Merge)
	set(aggregate.KindClosure, w.Closure)

	return t
}

var configValidate = validator.New()

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	return nil
}

// Load builds a Config.
//
// Implementation:
//   - Stage 1: Start from Default().
//   - Stage 2: Overlay the YAML file at path, if path is non-empty.
//   - Stage 3: Load envFiles into the environment (".env" when none are given;
//     a missing default .env is ignored). Existing variables win.
//   - Stage 4: Overlay environment variables, then Validate.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	if len(envFiles) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFiles...); err != nil {
		return nil, fmt.Errorf("config: env file: %w", err)
	}

	if err := loadEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	return nil
}

// ErrBadEnv indicates an environment variable that does not parse.
var ErrBadEnv = errors.New("config: malformed environment variable")

func loadEnv(cfg *Config) error {
	if v := os.Getenv(EnvRepresentation); v != "" {
		cfg.Representation = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv(EnvFormats); v != "" {
		cfg.Formats = cfg.Formats[:0]
		for _, f := range strings.Split(v, ",") {
			if f = strings.TrimSpace(f); f != "" {
				cfg.Formats = append(cfg.Formats, strings.ToLower(f))
			}
		}
	}
	if v := os.Getenv(EnvLogEnv); v != "" {
		cfg.Log.Env = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}

	weights := []struct {
		key string
		dst *int64
	}{
		{EnvWeightComment, &cfg.Weights.Comment},
		{EnvWeightIssueOpened, &cfg.Weights.IssueOpened},
		{EnvWeightReview, &cfg.Weights.Review},
		{EnvWeightMerge, &cfg.Weights.Merge},
		{EnvWeightClosure, &cfg.Weights.Closure},
	}
	for _, w := range weights {
		v := strings.TrimSpace(os.Getenv(w.key))
		if v == "" {
			continue
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", w.key, v, ErrBadEnv)
		}
		*w.dst = n
	}

	return nil
}
