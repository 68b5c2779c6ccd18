package payroll

import (
	"fmt"
	"io"
	"sort"

	"github.com/jung-kurt/gofpdf"
)

// RenderPayslip writes a one-page PDF pay statement for calc. YTD figures are
// printed as found on calc, so merge them first with WithYearToDate.
func RenderPayslip(w io.Writer, employee Employee, period Period, calc Calculation) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Pay Statement")
	pdf.Ln(12)

	section(pdf, "Employee Information")
	line(pdf, "Name", employee.Name)
	line(pdf, "Employee ID", employee.ID)
	if employee.Department != "" {
		line(pdf, "Department", employee.Department)
	}
	pdf.Ln(3)

	section(pdf, "Pay Period")
	line(pdf, "Period", fmt.Sprintf("%s to %s", period.StartDate, period.EndDate))
	if period.PayDate != "" {
		line(pdf, "Pay Date", period.PayDate)
	}
	pdf.Ln(3)

	section(pdf, "Earnings")
	amountRow(pdf, fmt.Sprintf("Regular (%s h)", formatHours(calc.RegularHours)), calc.RegularPay)
	amountRow(pdf, fmt.Sprintf("Overtime (%s h)", formatHours(calc.OvertimeHours)), calc.OvertimePay)
	if calc.HolidayPay != 0 {
		amountRow(pdf, fmt.Sprintf("Holiday (%s h)", formatHours(calc.HolidayHours)), calc.HolidayPay)
	}
	boldRow(pdf, "Gross Pay", calc.GrossPay)
	pdf.Ln(3)

	section(pdf, "Deductions")
	amountRow(pdf, "Federal Income Tax", calc.FederalTax)
	amountRow(pdf, "State Income Tax", calc.StateTax)
	amountRow(pdf, "Social Security", calc.SocialSecurityTax)
	amountRow(pdf, "Medicare", calc.MedicareTax)
	names := make([]string, 0, len(employee.Benefits))
	for name := range employee.Benefits {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		amountRow(pdf, name, employee.Benefits[name])
	}
	boldRow(pdf, "Total Deductions", calc.TotalDeductions)
	pdf.Ln(3)

	boldRow(pdf, "Net Pay", calc.NetPay)
	pdf.Ln(5)

	section(pdf, "Year-to-Date")
	amountRow(pdf, "YTD Gross Pay", calc.YTDGrossPay)
	amountRow(pdf, "YTD Deductions", calc.YTDGrossPay-calc.YTDNetPay)
	amountRow(pdf, "YTD Taxes", calc.YTDTaxes)
	amountRow(pdf, "YTD Net Pay", calc.YTDNetPay)

	return pdf.Output(w)
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
}

func line(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(45, 6, label+":")
	pdf.Cell(0, 6, value)
	pdf.Ln(6)
}

func amountRow(pdf *gofpdf.Fpdf, label string, amount float64) {
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(120, 6, label)
	pdf.CellFormat(40, 6, money(amount), "", 0, "R", false, 0, "")
	pdf.Ln(6)
}

func boldRow(pdf *gofpdf.Fpdf, label string, amount float64) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(120, 7, label)
	pdf.CellFormat(40, 7, money(amount), "T", 0, "R", false, 0, "")
	pdf.Ln(7)
}
