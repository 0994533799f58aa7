package cmd

import (
	"github.com/spf13/cobra"

	"github.com/calciumlabs/calcium"
)

var diffVar string

var diffCmd = &cobra.Command{
	Use:   "diff <expression>",
	Short: "Differentiate an expression symbolically",
	Example: `  calcium diff "x^3 + sin(x)"
  calcium diff "y^2 * ln(y)" --var y`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		expr, err := calcium.Parse(args[0])
		if err != nil {
			return err
		}
		log.Debug("differentiating", "expr", expr.String(), "wrt", diffVar)
		d, err := calcium.Differentiate(expr, diffVar)
		if err != nil {
			return err
		}
		return printExpr(cmd, d)
	},
}

func init() {
	diffCmd.Flags().StringVar(&diffVar, "var", "x", "variable to differentiate with respect to")
	rootCmd.AddCommand(diffCmd)
}
