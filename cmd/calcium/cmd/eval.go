package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calciumlabs/calcium"
)

var evalBindings []string

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate an expression numerically",
	Example: `  calcium eval "2 + 3*4"
  calcium eval "sin(pi/2) + x" --set x=1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		expr, err := calcium.Parse(args[0])
		if err != nil {
			return err
		}
		vars, err := parseBindings(evalBindings)
		if err != nil {
			return err
		}
		log.Debug("evaluating", "expr", expr.String(), "bindings", len(vars))
		v, err := calcium.Evaluate(expr, vars)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), formatNumber(v))
		return nil
	},
}

func init() {
	evalCmd.Flags().StringArrayVar(&evalBindings, "set", nil, "variable binding name=value (repeatable)")
	rootCmd.AddCommand(evalCmd)
}
