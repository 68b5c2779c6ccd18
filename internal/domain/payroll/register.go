package payroll

import (
	"io"

	"github.com/xuri/excelize/v2"
)

const registerSheet = "Register"

var registerHeader = []any{
	"Employee ID", "Period ID", "Regular Hours", "Overtime Hours", "Regular Pay", "Overtime Pay",
	"Gross Pay", "Federal Tax", "State Tax", "Social Security", "Medicare", "Benefits",
	"Total Deductions", "Net Pay", "YTD Gross", "YTD Net", "YTD Taxes",
}

// WriteRegister writes a payroll register workbook with the csv columns plus
// the YTD fields, followed by a totals row.
func WriteRegister(w io.Writer, calcs []Calculation) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", registerSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(registerSheet, "A1", &registerHeader); err != nil {
		return err
	}

	var totals Calculation
	for i, c := range calcs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			c.EmployeeID, c.PeriodID, c.RegularHours, c.OvertimeHours,
			round2(c.RegularPay), round2(c.OvertimePay), round2(c.GrossPay),
			round2(c.FederalTax), round2(c.StateTax), round2(c.SocialSecurityTax), round2(c.MedicareTax),
			round2(c.BenefitDeductions), round2(c.TotalDeductions), round2(c.NetPay),
			round2(c.YTDGrossPay), round2(c.YTDNetPay), round2(c.YTDTaxes),
		}
		if err := f.SetSheetRow(registerSheet, cell, &row); err != nil {
			return err
		}
		totals.RegularHours += c.RegularHours
		totals.OvertimeHours += c.OvertimeHours
		totals.GrossPay += c.GrossPay
		totals.TotalDeductions += c.TotalDeductions
		totals.NetPay += c.NetPay
	}

	cell, err := excelize.CoordinatesToCellName(1, len(calcs)+2)
	if err != nil {
		return err
	}
	totalRow := []any{
		"Total", "", totals.RegularHours, totals.OvertimeHours, "", "", round2(totals.GrossPay),
		"", "", "", "", "", round2(totals.TotalDeductions), round2(totals.NetPay),
	}
	if err := f.SetSheetRow(registerSheet, cell, &totalRow); err != nil {
		return err
	}
	return f.Write(w)
}
