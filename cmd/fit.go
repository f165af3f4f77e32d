package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"reflectometry/internal/config"
	"reflectometry/internal/fitjob"
	"reflectometry/pkg/domain"
	"reflectometry/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func formatBound(v *float64) string {
	if v == nil {
		return "-"
	}

	return strconv.FormatFloat(*v, 'g', 6, 64)
}

func printResult(w io.Writer, res *domain.FitResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PARAMETER\tVALUE\tSTDERR\tMIN\tMAX")
	for _, p := range res.Parameters {
		fmt.Fprintf(tw, "%s\t%.6g\t%.3g\t%s\t%s\n", p.Name, p.Value, p.Stderr, formatBound(p.Min), formatBound(p.Max))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nchi2 %.6g  reduced %.6g  iterations %d  evaluations %d  converged %t\n",
		res.Chi2, res.ReducedChi2, res.Iterations, res.Evaluations, res.Converged)

	return err
}

func runFit(ctx context.Context, cfg *config.Config, path, output string, w io.Writer) error {
	doc, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read project: %w", err)
	}
	opts, err := fitjob.NewOptions(cfg)
	if err != nil {
		return err
	}

	logger.Info(ctx, "fitting project", zap.String("path", path), zap.String("backend", string(opts.Backend)))
	res, err := fitjob.Fit(ctx, doc, opts)
	if err != nil {
		return err
	}
	if err := printResult(w, res); err != nil {
		return err
	}

	if output != "" {
		if err := os.WriteFile(output, []byte(res.Project), 0o644); err != nil { //nolint: gosec
			return fmt.Errorf("could not write fitted project: %w", err)
		}
		logger.Info(ctx, "fitted project written", zap.String("path", output))
	}

	return nil
}

// fitCommand constructs the 'fit' subcommand that fits a project document
// in process and prints the fitted parameters.
func fitCommand(cfg *config.Config) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:          "fit <project.yml>",
		Short:        "Fits a project locally without the job queue",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFit(cmd.Context(), cfg, args[0], output, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the fitted project to this file")

	return cmd
}
