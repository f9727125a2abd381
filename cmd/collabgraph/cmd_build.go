// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/collabgraph/aggregate"
	"github.com/katalvlaran/collabgraph/config"
	"github.com/katalvlaran/collabgraph/core"
	"github.com/katalvlaran/collabgraph/export"
	"github.com/katalvlaran/collabgraph/internal/logger"
	"github.com/katalvlaran/collabgraph/merge"
	"github.com/katalvlaran/collabgraph/pipeline"
)

// errUnknownInputFormat indicates an input format other than csv or json.
var errUnknownInputFormat = errors.New("unknown input format")

func runBuild(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if representation != "" {
		cfg.Representation = strings.ToLower(representation)
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if len(formats) > 0 {
		cfg.Formats = formats
	}
	if err = cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.Env, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer logger.Sync(log)

	records, err := readRecords(inputPath, inputFormat)
	if err != nil {
		return err
	}
	rep, err := core.ParseRepresentation(cfg.Representation)
	if err != nil {
		return err
	}
	fmts := make([]export.Format, 0, len(cfg.Formats))
	for _, s := range cfg.Formats {
		f, ferr := export.ParseFormat(s)
		if ferr != nil {
			return ferr
		}
		fmts = append(fmts, f)
	}

	p, err := pipeline.New(pipeline.Config{
		Representation: rep,
		Weights:        cfg.Weights.Table(),
		Formats:        fmts,
		Logger:         log,
	})
	if err != nil {
		return err
	}

	res, runErr := p.Run(cmd.Context(), records)
	if res == nil {
		return runErr
	}
	var cerr *merge.ConfigurationError
	if runErr != nil && !errors.As(runErr, &cerr) {
		return runErr
	}

	files, err := p.Export(cmd.Context(), res, cfg.OutputDir)
	if err != nil {
		return err
	}
	log.Info("build finished",
		zap.String("run_id", res.RunID),
		zap.String("output_dir", cfg.OutputDir),
		zap.Int("graphs", len(files)))

	printSummary(cmd.OutOrStdout(), res, files)

	return runErr
}

func readRecords(path, format string) ([]aggregate.Record, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(format) {
	case "csv":
		return aggregate.ReadCSV(f)
	case "json":
		return aggregate.ReadJSON(f)
	default:
		return nil, fmt.Errorf("%q: %w", format, errUnknownInputFormat)
	}
}

func printSummary(w io.Writer, res *pipeline.Result, files map[core.Category]export.Files) {
	fmt.Fprintf(w, "run %s (%s)\n", res.RunID, res.Representation)
	for _, c := range res.Categories() {
		st := res.Graphs[c].Stats()
		fmt.Fprintf(w, "  %-10s nodes=%d edges=%d weight=%d density=%.4f\n",
			c, st.NodeCount, st.EdgeCount, st.TotalWeight, st.Density)
		for _, path := range files[c].Paths() {
			fmt.Fprintf(w, "    %s\n", path)
		}
	}
	fmt.Fprintf(w, "  invalid records: %d, dropped self-interactions: %d\n",
		len(res.Invalid), res.DroppedSelfLoops())
}
