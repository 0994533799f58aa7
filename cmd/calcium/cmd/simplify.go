package cmd

import (
	"github.com/spf13/cobra"

	"github.com/calciumlabs/calcium"
)

var simplifyCmd = &cobra.Command{
	Use:   "simplify <expression>",
	Short: "Simplify an expression",
	Example: `  calcium simplify "x + x + 0*y"
  calcium simplify "2^3 + x*1"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		expr, err := calcium.Parse(args[0])
		if err != nil {
			return err
		}
		log.Debug("simplifying", "expr", expr.String())
		s, err := calcium.Simplify(expr)
		if err != nil {
			return err
		}
		return printExpr(cmd, s)
	},
}

func init() {
	rootCmd.AddCommand(simplifyCmd)
}
