package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"paycalc/internal/domain/payroll"
)

var errEntriesInvalid = errors.New("time entries failed validation")

func newValidateCmd(opts *options) *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a JSON array of time entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var entries []payroll.TimeEntry
			if err := readJSON(input, &entries); err != nil {
				return err
			}
			result := payroll.ValidateTimeEntries(entries)
			if err := writeJSON(opts.stdout, result); err != nil {
				return err
			}
			if !result.Valid {
				return fmt.Errorf("%w: %d problem(s)", errEntriesInvalid, len(result.Errors))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "Path to the time entries JSON file")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
