package payroll

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func sampleCalculations(t *testing.T) []Calculation {
	t.Helper()
	calc := newTestCalculator(t)
	employee := hourlyEmployee(45)
	employee.Benefits = map[string]float64{"healthInsurance": 254.73}
	first, err := calc.Calculate(employee, []TimeEntry{entry(78, 0)}, Period{ID: "PP2024-26"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	salary := Employee{ID: "EMP001", PayType: PayTypeSalary, PayRate: 85000, FilingStatus: FilingMarried, Exemptions: 2}
	second, err := calc.Calculate(salary, []TimeEntry{entry(8, 0.5)}, Period{ID: "PP2024-26"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second = WithYearToDate(second, []Calculation{{GrossPay: 3000, NetPay: 2100, FederalTax: 400}})
	return []Calculation{first, second}
}

func TestExportCSV(t *testing.T) {
	out, err := Export(sampleCalculations(t), FormatCSV)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines: %q", len(lines), out)
	}
	header := "Employee ID,Period ID,Regular Hours,Overtime Hours,Regular Pay,Overtime Pay,Gross Pay,Federal Tax,State Tax,Social Security,Medicare,Benefits,Total Deductions,Net Pay"
	if lines[0] != header {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "E1,PP2024-26,78,0,3510.00,0.00,3510.00,842.40,175.50,217.62,") {
		t.Fatalf("unexpected first row %q", lines[1])
	}
	if fields := strings.Split(lines[2], ","); len(fields) != 14 || fields[3] != "0.5" {
		t.Fatalf("unexpected second row %q", lines[2])
	}
}

func TestExportCSVEmptyHasHeaderOnly(t *testing.T) {
	out, err := Export(nil, FormatCSV)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "\n") || !strings.HasPrefix(out, "Employee ID,") {
		t.Fatalf("expected single header line, got %q", out)
	}
}

func TestExportJSONRoundTrip(t *testing.T) {
	calcs := sampleCalculations(t)
	out, err := Export(calcs, FormatJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "\n  {\n    \"employeeId\": \"E1\",\n    \"periodId\"") {
		t.Fatalf("expected 2-space indentation in declared field order, got %s", out)
	}

	var decoded []Calculation
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !reflect.DeepEqual(decoded, calcs) {
		t.Fatalf("round trip mismatch:\n%+v\n%+v", decoded, calcs)
	}
}

func TestExportJSONEmptyIsArray(t *testing.T) {
	out, err := Export(nil, FormatJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "[]" {
		t.Fatalf("expected [], got %q", out)
	}
}

func TestExportXML(t *testing.T) {
	out, err := Export(sampleCalculations(t), FormatXML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Fatalf("expected xml declaration, got %q", out)
	}
	if !strings.Contains(out, "<grossPay>3510.00</grossPay>") {
		t.Fatalf("expected formatted gross pay, got %s", out)
	}
	if strings.Contains(out, "ytd") || strings.Contains(out, "federalTax") {
		t.Fatalf("expected a five-field projection, got %s", out)
	}

	var doc xmlPayroll
	if err := xml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(doc.Employees) != 2 || doc.Employees[0].ID != "E1" || doc.Employees[0].Period != "PP2024-26" {
		t.Fatalf("unexpected employees %+v", doc.Employees)
	}
}

func TestExportUnsupportedFormat(t *testing.T) {
	_, err := Export(nil, "pdf")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if !strings.Contains(err.Error(), "pdf") {
		t.Fatalf("expected error to name the format, got %v", err)
	}
}

func TestWriteRegister(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRegister(&buf, sampleCalculations(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(registerSheet)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header, 2 rows and totals, got %d rows", len(rows))
	}
	if rows[0][0] != "Employee ID" || rows[1][0] != "E1" || rows[3][0] != "Total" {
		t.Fatalf("unexpected register layout %v", rows)
	}
}
