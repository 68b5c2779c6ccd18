package payroll

import "fmt"

// Summarize totals a period's calculations. Employees and calculations must
// be the same length; a mismatch is a caller error.
func Summarize(employees []Employee, calcs []Calculation) (Summary, error) {
	if len(employees) != len(calcs) {
		return Summary{}, fmt.Errorf("%w: %d employees, %d calculations", ErrCalculationCountMismatch, len(employees), len(calcs))
	}

	summary := Summary{TotalEmployees: len(employees)}
	for _, calc := range calcs {
		summary.TotalGrossPay += calc.GrossPay
		summary.TotalNetPay += calc.NetPay
		summary.TotalTaxes += calc.Taxes()
		summary.TotalBenefits += calc.BenefitDeductions
	}
	if summary.TotalEmployees > 0 {
		summary.AveragePayPerEmployee = summary.TotalNetPay / float64(summary.TotalEmployees)
	}
	return summary, nil
}

// WithYearToDate fills the YTD fields of calc from the same employee's prior
// calculations in the year. Calculate always leaves them at zero.
func WithYearToDate(calc Calculation, prior []Calculation) Calculation {
	calc.YTDGrossPay = calc.GrossPay
	calc.YTDNetPay = calc.NetPay
	calc.YTDTaxes = calc.Taxes()
	for _, p := range prior {
		calc.YTDGrossPay += p.GrossPay
		calc.YTDNetPay += p.NetPay
		calc.YTDTaxes += p.Taxes()
	}
	return calc
}
