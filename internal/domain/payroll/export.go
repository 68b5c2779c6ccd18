package payroll

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
)

type csvRow struct {
	EmployeeID        string `csv:"Employee ID"`
	PeriodID          string `csv:"Period ID"`
	RegularHours      string `csv:"Regular Hours"`
	OvertimeHours     string `csv:"Overtime Hours"`
	RegularPay        string `csv:"Regular Pay"`
	OvertimePay       string `csv:"Overtime Pay"`
	GrossPay          string `csv:"Gross Pay"`
	FederalTax        string `csv:"Federal Tax"`
	StateTax          string `csv:"State Tax"`
	SocialSecurityTax string `csv:"Social Security"`
	MedicareTax       string `csv:"Medicare"`
	BenefitDeductions string `csv:"Benefits"`
	TotalDeductions   string `csv:"Total Deductions"`
	NetPay            string `csv:"Net Pay"`
}

type xmlPayroll struct {
	XMLName   xml.Name      `xml:"payroll"`
	Employees []xmlEmployee `xml:"employee"`
}

type xmlEmployee struct {
	ID         string `xml:"id"`
	Period     string `xml:"period"`
	GrossPay   string `xml:"grossPay"`
	NetPay     string `xml:"netPay"`
	Deductions string `xml:"deductions"`
}

// Export renders calculations as csv, json or xml. Only json carries every
// field; csv and xml are projections.
func Export(calcs []Calculation, format string) (string, error) {
	switch format {
	case FormatCSV:
		return exportCSV(calcs)
	case FormatJSON:
		return exportJSON(calcs)
	case FormatXML:
		return exportXML(calcs)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// exportCSV writes a header and one row per calculation. Money is fixed to two
// decimals; hours are written as-is.
func exportCSV(calcs []Calculation) (string, error) {
	rows := make([]csvRow, 0, len(calcs))
	for _, c := range calcs {
		rows = append(rows, csvRow{
			EmployeeID:        c.EmployeeID,
			PeriodID:          c.PeriodID,
			RegularHours:      strconv.FormatFloat(c.RegularHours, 'f', -1, 64),
			OvertimeHours:     strconv.FormatFloat(c.OvertimeHours, 'f', -1, 64),
			RegularPay:        money(c.RegularPay),
			OvertimePay:       money(c.OvertimePay),
			GrossPay:          money(c.GrossPay),
			FederalTax:        money(c.FederalTax),
			StateTax:          money(c.StateTax),
			SocialSecurityTax: money(c.SocialSecurityTax),
			MedicareTax:       money(c.MedicareTax),
			BenefitDeductions: money(c.BenefitDeductions),
			TotalDeductions:   money(c.TotalDeductions),
			NetPay:            money(c.NetPay),
		})
	}
	out, err := gocsv.MarshalString(&rows)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

func exportJSON(calcs []Calculation) (string, error) {
	if calcs == nil {
		calcs = []Calculation{}
	}
	out, err := json.MarshalIndent(calcs, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func exportXML(calcs []Calculation) (string, error) {
	doc := xmlPayroll{Employees: make([]xmlEmployee, 0, len(calcs))}
	for _, c := range calcs {
		doc.Employees = append(doc.Employees, xmlEmployee{
			ID:         c.EmployeeID,
			Period:     c.PeriodID,
			GrossPay:   money(c.GrossPay),
			NetPay:     money(c.NetPay),
			Deductions: money(c.TotalDeductions),
		})
	}
	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return xml.Header + string(out), nil
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
