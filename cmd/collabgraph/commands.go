// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	configPath     string
	inputPath      string
	inputFormat    string
	representation string
	outputDir      string
	formats        []string
	fromUser       string
	maxDepth       int

	rootCmd = &cobra.Command{
		Use:           "collabgraph",
		Short:         "Build collaboration graphs from repository interactions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	buildCmd = &cobra.Command{
		Use:   "build",
		Short: "Aggregate interaction records into graphs and export them",
		Long: `build reads interaction records (CSV with a source,target,kind header,
or a JSON array), builds the comments, closures, reviews and integrated graphs,
and writes them to the output directory.`,
		Args: cobra.NoArgs,
		RunE: runBuild, // Defined in cmd_build.go
	}

	inspectCmd = &cobra.Command{
		Use:   "inspect [file.gexf]",
		Short: "Load an exported GEXF file and print its statistics",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect, // Defined in cmd_inspect.go
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML configuration file")

	buildCmd.Flags().StringVarP(&inputPath, "input", "i", "", "interaction records file (required)")
	buildCmd.Flags().StringVar(&inputFormat, "format", "", "input format: csv or json (default: from file extension)")
	buildCmd.Flags().StringVarP(&representation, "representation", "r", "", "graph backend: list or matrix")
	buildCmd.Flags().StringVarP(&outputDir, "out", "o", "", "output directory")
	buildCmd.Flags().StringSliceVar(&formats, "formats", nil, "export formats: gexf,nodes_csv,edges_csv,matrix_csv,metadata")
	_ = buildCmd.MarkFlagRequired("input")

	inspectCmd.Flags().StringVar(&fromUser, "from", "", "also report who this user reaches and is reached by")
	inspectCmd.Flags().IntVar(&maxDepth, "depth", 0, "hop limit for --from (0 means unlimited)")

	rootCmd.AddCommand(buildCmd, inspectCmd)
}
