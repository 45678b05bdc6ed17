// Package main provides the qtensor CLI: evaluate and tabulate the
// fixed-point kernel's functions from the command line.
package main

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/qtensor-ml/qtensor/fixed"
)

const version = "v0.1.0"

// fn is one evaluatable kernel function with its float64 reference.
type fn struct {
	eval func(fixed.Scale, fixed.Fixed) (fixed.Fixed, error)
	ref  func(float64) float64
}

func exact(f func(fixed.Scale, fixed.Fixed) fixed.Fixed) func(fixed.Scale, fixed.Fixed) (fixed.Fixed, error) {
	return func(s fixed.Scale, x fixed.Fixed) (fixed.Fixed, error) {
		return f(s, x), nil
	}
}

var functions = map[string]fn{
	"exp":   {exact(fixed.Scale.Exp), math.Exp},
	"ln":    {fixed.Scale.Ln, math.Log},
	"sqrt":  {fixed.Scale.Sqrt, math.Sqrt},
	"sin":   {exact(fixed.Scale.Sin), math.Sin},
	"cos":   {exact(fixed.Scale.Cos), math.Cos},
	"tan":   {fixed.Scale.Tan, math.Tan},
	"asin":  {fixed.Scale.Asin, math.Asin},
	"acos":  {fixed.Scale.Acos, math.Acos},
	"atan":  {exact(fixed.Scale.Atan), math.Atan},
	"sinh":  {exact(fixed.Scale.Sinh), math.Sinh},
	"cosh":  {exact(fixed.Scale.Cosh), math.Cosh},
	"tanh":  {exact(fixed.Scale.Tanh), math.Tanh},
	"asinh": {exact(fixed.Scale.Asinh), math.Asinh},
	"acosh": {fixed.Scale.Acosh, math.Acosh},
	"atanh": {fixed.Scale.Atanh, math.Atanh},
	"sigmoid": {
		func(s fixed.Scale, x fixed.Fixed) (fixed.Fixed, error) {
			one := s.One()
			return s.Div(one, s.Add(one, s.Exp(x.Negate())))
		},
		func(v float64) float64 { return 1 / (1 + math.Exp(-v)) },
	},
}

func scaleFlag(cmd *cobra.Command) (fixed.Scale, error) {
	v, err := cmd.Flags().GetUint8("scale")
	if err != nil {
		return 0, err
	}
	switch fixed.Scale(v) {
	case fixed.Q16, fixed.Q23, fixed.Q32:
		return fixed.Scale(v), nil
	default:
		return 0, fmt.Errorf("unsupported scale %d (use 16, 23 or 32)", v)
	}
}

func lookup(name string) (fn, error) {
	f, ok := functions[name]
	if !ok {
		return fn{}, fmt.Errorf("unknown function %q", name)
	}
	return f, nil
}

func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval FUNCTION VALUE",
		Short: "Evaluate a fixed-point function at one point",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scaleFlag(cmd)
			if err != nil {
				return err
			}
			f, err := lookup(args[0])
			if err != nil {
				return err
			}
			v, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("parsing value: %w", err)
			}
			x := s.FromFloat(v)
			r, err := f.eval(s, x)
			if err != nil {
				return err
			}
			fmt.Printf("%s(%s) = %s  (magnitude %d, scale %s)\n",
				args[0], s.Format(x), s.Format(r), r.Mag, s)
			return nil
		},
	}
	return cmd
}

func newTableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table FUNCTION",
		Short: "Tabulate a fixed-point function over a range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scaleFlag(cmd)
			if err != nil {
				return err
			}
			f, err := lookup(args[0])
			if err != nil {
				return err
			}
			from, _ := cmd.Flags().GetFloat64("from")
			to, _ := cmd.Flags().GetFloat64("to")
			steps, _ := cmd.Flags().GetInt("steps")
			if steps < 1 || to < from {
				return fmt.Errorf("need steps >= 1 and to >= from")
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"x", args[0] + "(x)", "float64", "err (units)"})
			for i := 0; i <= steps; i++ {
				v := from + (to-from)*float64(i)/float64(steps)
				x := s.FromFloat(v)
				r, err := f.eval(s, x)
				if err != nil {
					table.Append([]string{s.Format(x), "error: " + err.Error(), "", ""})
					continue
				}
				want := f.ref(s.Float(x))
				units := (s.Float(r) - want) * float64(uint64(1)<<s)
				table.Append([]string{
					s.Format(x),
					s.Format(r),
					strconv.FormatFloat(want, 'g', -1, 64),
					strconv.FormatFloat(units, 'f', 1, 64),
				})
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().Float64("from", 0, "range start")
	cmd.Flags().Float64("to", 1, "range end")
	cmd.Flags().Int("steps", 10, "number of intervals")
	return cmd
}

func newCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "qtensor",
		Short:         "Fixed-point tensor kernel toolbox",
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Printf("qtensor %s\n", version)
				return
			}
			cmd.Print(cmd.UsageString())
		},
	}
	rootCmd.Flags().BoolP("version", "v", false, "Show version information")
	rootCmd.PersistentFlags().Uint8("scale", 16, "fractional bits (16, 23 or 32)")

	rootCmd.AddCommand(newEvalCmd(), newTableCmd())
	return rootCmd
}

func main() {
	if err := newCLI().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
