package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"linealign/logger"
	"linealign/mapping"
	"linealign/scoring"
	"linealign/text"
)

type alignFlags struct {
	threshold     float64
	contentWeight float64
	simhashWeight float64
	topK          int
	metric        string
	lowercase     bool
	format        string
}

func (a *app) alignCommand() *cobra.Command {
	var flags alignFlags

	cmd := &cobra.Command{
		Use:   "align LEFT RIGHT",
		Short: "Align the lines of LEFT with the lines of RIGHT",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.applyAlignFlags(cmd, &flags); err != nil {
				return err
			}
			format, err := resolveFormat(flags.format, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			left, err := readDocument(args[0], a.cfg.Normalize.Lowercase)
			if err != nil {
				return err
			}
			right, err := readDocument(args[1], a.cfg.Normalize.Lowercase)
			if err != nil {
				return err
			}

			scorer, err := scoring.New(a.cfg.ScoringOptions())
			if err != nil {
				return err
			}
			result := mapping.Align(scorer.Score(left, right), a.cfg.MappingConfig())
			logger.Info("aligned %s and %s: %d of %d lines matched", args[0], args[1], len(result.Mapping), len(left))

			report := buildReport(result, left, right)
			if format == formatJSON {
				return writeJSON(cmd, report)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderReport(report))
			return nil
		},
	}

	cmd.Flags().Float64Var(&flags.threshold, "threshold", mapping.DefaultThreshold, "Minimum combined score to accept a match")
	cmd.Flags().Float64Var(&flags.contentWeight, "content-weight", mapping.DefaultContentWeight, "Weight of the content similarity score")
	cmd.Flags().Float64Var(&flags.simhashWeight, "simhash-weight", mapping.DefaultSimhashWeight, "Weight of the SimHash similarity score")
	cmd.Flags().IntVar(&flags.topK, "top-k", scoring.DefaultTopK, "Candidates kept per left line (0 keeps all)")
	cmd.Flags().StringVar(&flags.metric, "metric", text.MetricLevenshtein.String(), "Content similarity metric: levenshtein or jarowinkler")
	cmd.Flags().BoolVar(&flags.lowercase, "lowercase", false, "Lowercase code outside string literals before comparing")
	cmd.Flags().StringVar(&flags.format, "format", "", "Output format: table or json (default table on a terminal, json otherwise)")

	return cmd
}

// applyAlignFlags copies explicitly set flags over the loaded configuration.
func (a *app) applyAlignFlags(cmd *cobra.Command, flags *alignFlags) error {
	changed := cmd.Flags().Changed
	if changed("threshold") {
		a.cfg.Matching.Threshold = flags.threshold
	}
	if changed("content-weight") {
		a.cfg.Matching.ContentWeight = flags.contentWeight
	}
	if changed("simhash-weight") {
		a.cfg.Matching.SimhashWeight = flags.simhashWeight
	}
	if changed("top-k") {
		a.cfg.Scoring.TopK = flags.topK
	}
	if changed("metric") {
		a.cfg.Scoring.Metric = flags.metric
	}
	if changed("lowercase") {
		a.cfg.Normalize.Lowercase = flags.lowercase
	}
	return a.cfg.Validate()
}

func (a *app) mapCommand() *cobra.Command {
	var threshold float64

	cmd := &cobra.Command{
		Use:   "map INPUTS",
		Short: "Run the matcher on a JSON document of precomputed scores and shortlists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("threshold") {
				a.cfg.Matching.Threshold = threshold
				if err := a.cfg.Validate(); err != nil {
					return err
				}
			}

			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open inputs: %w", err)
			}
			defer file.Close()

			in, err := mapping.DecodeInputs(file)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			result := mapping.GenerateMapping(in, a.cfg.MappingConfig())
			return writeJSON(cmd, result)
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", mapping.DefaultThreshold, "Minimum combined score to accept a match")
	return cmd
}

func (a *app) normalizeCommand() *cobra.Command {
	var lowercase bool

	cmd := &cobra.Command{
		Use:   "normalize FILE",
		Short: "Print the normalized, non-empty lines of FILE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("lowercase") {
				a.cfg.Normalize.Lowercase = lowercase
			}
			lines, err := readDocument(args[0], a.cfg.Normalize.Lowercase)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, line := range lines {
				fmt.Fprintf(out, "%d: %s\n", line.Number, line.Text)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&lowercase, "lowercase", false, "Lowercase code outside string literals")
	return cmd
}

func (a *app) configCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "print",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cfg.Encode(cmd.OutOrStdout())
		},
	})

	return configCmd
}

func readDocument(path string, lowercase bool) ([]text.Line, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return text.NormalizeDocument(string(data), lowercase), nil
}
