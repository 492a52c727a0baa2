package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"Flexure/internal/calc/deflection"
)

// beamFlags holds the parameter flags shared by calc, export and report.
type beamFlags struct {
	in     deflection.Input
	policy string
}

func (b *beamFlags) register(fs *pflag.FlagSet) {
	fs.Float64Var(&b.in.E, "e-pa", 200e9, "Modulus of elasticity E (Pa)")
	fs.Float64Var(&b.in.I, "i-m4", 0.001, "Second moment of area I (m^4)")
	fs.Float64Var(&b.in.W, "udl", 5e3, "Uniform load w (N/m)")
	fs.Float64VarP(&b.in.L, "span", "L", 6, "Beam length L (m)")
	fs.IntVarP(&b.in.NumPoints, "points", "n", deflection.DefaultPoints, "Number of sampling steps")
	fs.StringVar(&b.policy, "policy", string(deflection.PolicyIndex), "Stepping policy: index or additive")
	fs.Float64Var(&b.in.DeflectionLimitRatio, "limit-ratio", deflection.DefaultLimitRatio, "Serviceability limit as span/ratio")
}

func (b *beamFlags) calculate() (deflection.Result, error) {
	b.in.Policy = deflection.Policy(b.policy)
	return deflection.Calculate(b.in)
}

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:   "deflect",
		Short: "Deflection of a simply supported beam under uniform load",
		Long: `Compute and export the deflection curve of a simply supported beam under
a uniform load, v(x) = w x (L^3 - 2 L x^2 + x^3) / (24 E I).

Examples:
  # Default steel beam, 6 m span
  deflect calc

  # Downward 12 kN/m on an 8 m span, CSV output
  deflect calc --udl -12e3 --span 8 --format csv`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	root.AddCommand(newCalcCmd(), newExportCmd(), newReportCmd(), newImportCmd())
	return root
}
