package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"paycalc/internal/domain/payroll"
	"paycalc/internal/platform/logging"
)

type options struct {
	logLevel string
	stdout   io.Writer
	stderr   io.Writer
}

// NewRootCmd builds payrollctl. Output goes to stdout, logs and diagnostics to
// stderr.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{stdout: stdout, stderr: stderr}
	root := &cobra.Command{
		Use:           "payrollctl",
		Short:         "Offline payroll calculation and export",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(logging.New(opts.stderr, opts.logLevel, nil))
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	root.AddCommand(newValidateCmd(opts))
	root.AddCommand(newCalculateCmd(opts))
	root.AddCommand(newPayslipCmd(opts))
	root.AddCommand(newTokenCmd(opts))
	return root
}

// Execute is the entry point called from main.
func Execute() {
	if err := NewRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// batch is the input file for calculate and payslip.
type batch struct {
	Period     payroll.Period      `json:"period"`
	Timesheets []payroll.Timesheet `json:"timesheets"`
}

func readJSON(path string, dst any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
