// Package cmd wires the calcium command-line interface.
package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/calciumlabs/calcium"
	"github.com/calciumlabs/calcium/config"
	"github.com/calciumlabs/calcium/logging"
)

var (
	cfgPath   string
	logLevel  string
	logFormat string
	precision int
	asJSON    bool
	asLaTeX   bool

	cfg config.Config
	log logging.Logger
)

var rootCmd = &cobra.Command{
	Use:           "calcium",
	Short:         "Symbolic algebra from the command line",
	Long:          "calcium parses, evaluates, differentiates, integrates and simplifies mathematical expressions.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Default()
		if cfgPath != "" {
			loaded, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			cfg = loaded
		}
		if cmd.Flags().Changed("log-level") || cfgPath == "" {
			cfg.LogLevel = logLevel
		}
		if cmd.Flags().Changed("log-format") || cfgPath == "" {
			cfg.LogFormat = logFormat
		}
		if cmd.Flags().Changed("precision") {
			cfg.Precision = precision
		}
		var err error
		log, err = logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a .toml or .yaml config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")
	rootCmd.PersistentFlags().IntVar(&precision, "precision", 6, "significant digits for numeric output")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "print expressions as JSON trees")
	rootCmd.PersistentFlags().BoolVar(&asLaTeX, "latex", false, "print expressions as LaTeX")
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "calcium:", err)
		return 1
	}
	return 0
}

// parseBindings turns repeated "name=value" flags into a variable map.
func parseBindings(assignments []string) (map[string]float64, error) {
	vars := make(map[string]float64, len(assignments))
	for _, a := range assignments {
		name, val, ok := strings.Cut(a, "=")
		if !ok {
			return nil, fmt.Errorf("invalid binding %q (want name=value)", a)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value in binding %q: %w", a, err)
		}
		vars[strings.TrimSpace(name)] = v
	}
	return vars, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', cfg.Precision, 64)
}

// printExpr writes e to the command's stdout in the format selected by
// the --json and --latex flags.
func printExpr(cmd *cobra.Command, e calcium.Expr) error {
	switch {
	case asJSON:
		data, err := calcium.MarshalExpr(e)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	case asLaTeX:
		fmt.Fprintln(cmd.OutOrStdout(), calcium.LaTeX(e))
	default:
		fmt.Fprintln(cmd.OutOrStdout(), e)
	}
	return nil
}
