package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"paycalc/internal/domain/payroll"
	"paycalc/internal/platform/crypto"
	"paycalc/internal/platform/payslips"
)

func newPayslipCmd(opts *options) *cobra.Command {
	var (
		input     string
		outDir    string
		rulesFile string
		key       string
	)
	cmd := &cobra.Command{
		Use:   "payslip",
		Short: "Render a PDF payslip for every calculated employee in a batch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sealer, err := crypto.New(key)
			if err != nil {
				return err
			}
			in, run, err := runBatch(cmd, input, rulesFile, 0)
			if err != nil {
				return err
			}

			employees := make(map[string]payroll.Employee, len(in.Timesheets))
			for _, sheet := range in.Timesheets {
				employees[sheet.Employee.ID] = sheet.Employee
			}

			archive := payslips.NewArchive(outDir, sealer)
			for _, calc := range run.Calculations() {
				var buf bytes.Buffer
				if err := payroll.RenderPayslip(&buf, employees[calc.EmployeeID], run.Period, calc); err != nil {
					return fmt.Errorf("payslip for %s: %w", calc.EmployeeID, err)
				}
				path, err := archive.Save(calc.EmployeeID, run.Period.ID, buf.Bytes())
				if err != nil {
					return err
				}
				fmt.Fprintln(opts.stdout, path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "Path to the batch JSON file")
	cmd.Flags().StringVar(&outDir, "out", "payslips", "Directory for the generated PDFs")
	cmd.Flags().StringVar(&rulesFile, "rules", "", "Optional rules JSON file overlaid on the defaults")
	cmd.Flags().StringVar(&key, "key", "", "32-byte key (hex or base64) to seal the PDFs")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
