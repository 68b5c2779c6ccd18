package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"paycalc/internal/domain/payroll"
	"paycalc/internal/platform/config"
)

func newCalculateCmd(opts *options) *cobra.Command {
	var (
		input     string
		rulesFile string
		format    string
		xlsxPath  string
		workers   int
	)
	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Run payroll for a batch file and export the results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, run, err := runBatch(cmd, input, rulesFile, workers)
			if err != nil {
				return err
			}
			calcs := run.Calculations()
			out, err := payroll.Export(calcs, format)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintln(opts.stdout, out); err != nil {
				return err
			}

			for _, result := range run.Results {
				if result.Blocked {
					fmt.Fprintf(opts.stderr, "blocked %s: %v\n", result.EmployeeID, result.Validation.Errors)
				} else if result.Compliance != nil && !result.Compliance.Compliant {
					fmt.Fprintf(opts.stderr, "compliance %s: %v\n", result.EmployeeID, result.Compliance.Violations)
				}
			}

			if xlsxPath != "" {
				f, err := os.Create(xlsxPath)
				if err != nil {
					return err
				}
				if err := payroll.WriteRegister(f, calcs); err != nil {
					_ = f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "Path to the batch JSON file")
	cmd.Flags().StringVar(&rulesFile, "rules", "", "Optional rules JSON file overlaid on the defaults")
	cmd.Flags().StringVar(&format, "format", payroll.FormatCSV, "Output format: csv, json, xml")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Also write an XLSX payroll register to this path")
	cmd.Flags().IntVar(&workers, "workers", 4, "Concurrent employee calculations")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runBatch(cmd *cobra.Command, input, rulesFile string, workers int) (batch, payroll.Run, error) {
	var in batch
	if err := readJSON(input, &in); err != nil {
		return batch{}, payroll.Run{}, err
	}
	rules, err := config.LoadRules(rulesFile)
	if err != nil {
		return batch{}, payroll.Run{}, err
	}
	calc, err := payroll.NewCalculator(rules)
	if err != nil {
		return batch{}, payroll.Run{}, err
	}
	run, err := payroll.NewService(calc, nil, nil, workers).Run(cmd.Context(), in.Period, in.Timesheets)
	if err != nil {
		return batch{}, payroll.Run{}, err
	}
	slog.Info("batch calculated", "periodId", in.Period.ID, "timesheets", len(in.Timesheets), "calculated", len(run.Calculations()))
	return in, run, nil
}
