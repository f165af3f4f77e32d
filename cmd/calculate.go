package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"

	"reflectometry/internal/config"
	"reflectometry/pkg/calculator"
	"reflectometry/pkg/description"
	"reflectometry/pkg/serrors"

	"github.com/spf13/cobra"
)

// qRange returns n points from lo to hi, evenly spaced in log10 when logSpaced.
func qRange(lo, hi float64, n int, logSpaced bool) ([]float64, error) {
	switch {
	case n < 2:
		return nil, serrors.With(serrors.ErrBadRequest, "need at least 2 points, got %d", n)
	case lo < 0 || hi <= lo:
		return nil, serrors.With(serrors.ErrBadRequest, "invalid q range [%g, %g]", lo, hi)
	case logSpaced && lo == 0:
		return nil, serrors.With(serrors.ErrBadRequest, "log spaced q range must start above 0")
	}

	q := make([]float64, n)
	for i := range q {
		f := float64(i) / float64(n-1)
		if logSpaced {
			q[i] = math.Pow(10, math.Log10(lo)+f*(math.Log10(hi)-math.Log10(lo)))
		} else {
			q[i] = lo + f*(hi-lo)
		}
	}
	q[n-1] = hi

	return q, nil
}

type calculateFlags struct {
	backend   string
	smearing  string
	qMin      float64
	qMax      float64
	points    int
	logSpaced bool
}

func runCalculate(ctx context.Context, cfg *config.Config, path string, flags calculateFlags, w io.Writer) error {
	doc, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read model: %w", err)
	}
	m, err := description.DecodeModel(doc)
	if err != nil {
		return err
	}

	engine := flags.backend
	if engine == "" {
		engine = cfg.Calculator.Engine
	}
	backend, err := calculator.ParseBackend(engine)
	if err != nil {
		return err
	}
	smearingName := flags.smearing
	if smearingName == "" {
		smearingName = cfg.Calculator.Smearing
	}
	smearing, err := calculator.ParseSmearingMode(smearingName)
	if err != nil {
		return err
	}
	calc, err := calculator.NewFromBackend(backend, calculator.WithSmearing(smearing), calculator.WithCacheSize(0))
	if err != nil {
		return err
	}

	var q []float64
	switch {
	case flags.points > 0:
		if q, err = qRange(flags.qMin, flags.qMax, flags.points, flags.logSpaced); err != nil {
			return err
		}
	case m.Data() != nil:
		q = m.Data().Q
	default:
		return serrors.With(serrors.ErrBadRequest, "model %q has no data, pass --points", m.Name())
	}

	r, err := calc.Calculate(ctx, m, q)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Q\tR")
	for i := range q {
		fmt.Fprintf(tw, "%.6g\t%.6e\n", q[i], r[i])
	}

	return tw.Flush()
}

// calculateCommand constructs the 'calculate' subcommand that prints the
// reflectivity of a model document without touching the database.
func calculateCommand(cfg *config.Config) *cobra.Command {
	var flags calculateFlags

	cmd := &cobra.Command{
		Use:          "calculate <model.yml>",
		Short:        "Calculates the reflectivity curve of a model",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalculate(cmd.Context(), cfg, args[0], flags, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&flags.backend, "backend", "", "Calculation engine (abeles or parratt)")
	cmd.Flags().StringVar(&flags.smearing, "smearing", "", "Smearing mode (interface or engine)")
	cmd.Flags().Float64Var(&flags.qMin, "qmin", 0.005, "Lowest q in 1/angstrom")
	cmd.Flags().Float64Var(&flags.qMax, "qmax", 0.3, "Highest q in 1/angstrom")
	cmd.Flags().IntVar(&flags.points, "points", 0, "Number of q points, 0 uses the model data")
	cmd.Flags().BoolVar(&flags.logSpaced, "log", false, "Space q points logarithmically")

	return cmd
}
