package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calciumlabs/calcium"
)

var (
	intVar        string
	intLower      float64
	intUpper      float64
	intBounded    bool
	intRectangles int
)

var integrateCmd = &cobra.Command{
	Use:   "integrate <expression>",
	Short: "Integrate an expression",
	Long: `Integrate an expression symbolically, or numerically over an interval.

Without bounds the result is an antiderivative plus a constant of
integration. With --lower and --upper the integral is evaluated over the
interval, either through the antiderivative or, with --rectangles, by a
midpoint Riemann sum.`,
	Example: `  calcium integrate "2*x"
  calcium integrate "x^2" --lower 0 --upper 3
  calcium integrate "sin(x)" --lower 0 --upper 3.14159 --rectangles 10000`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		expr, err := calcium.Parse(args[0])
		if err != nil {
			return err
		}
		lowerSet := cmd.Flags().Changed("lower")
		upperSet := cmd.Flags().Changed("upper")
		if lowerSet != upperSet {
			return fmt.Errorf("--lower and --upper must be given together")
		}
		intBounded = lowerSet

		rectangles := intRectangles
		if !cmd.Flags().Changed("rectangles") {
			rectangles = cfg.Rectangles
		}

		if intBounded {
			log.Debug("definite integral", "expr", expr.String(), "wrt", intVar,
				"lower", intLower, "upper", intUpper, "rectangles", rectangles)
			v, err := calcium.IntegrateDefinite(expr, intVar, intLower, intUpper,
				calcium.DefiniteOptions{NumRectangles: rectangles})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatNumber(v))
			return nil
		}

		log.Debug("indefinite integral", "expr", expr.String(), "wrt", intVar)
		res, err := calcium.IntegrateIndefinite(expr, intVar)
		if err != nil {
			return err
		}
		if res.Unintegratable {
			return fmt.Errorf("no antiderivative found for %s", expr)
		}
		return printExpr(cmd, res.Expression)
	},
}

func init() {
	integrateCmd.Flags().StringVar(&intVar, "var", "x", "variable of integration")
	integrateCmd.Flags().Float64Var(&intLower, "lower", 0, "lower bound of a definite integral")
	integrateCmd.Flags().Float64Var(&intUpper, "upper", 0, "upper bound of a definite integral")
	integrateCmd.Flags().IntVar(&intRectangles, "rectangles", 0, "midpoint Riemann sum with this many rectangles")
	rootCmd.AddCommand(integrateCmd)
}
