package payroll

import (
	"fmt"
	"strconv"
)

// Violation is one compliance finding with a machine-readable kind.
type Violation struct {
	Kind    string
	Message string
}

// CheckCompliance audits a finished calculation against the labor heuristics
// in Rules. The thresholds assume a bi-weekly period. Findings are advisory
// and never alter the calculation.
func (c *Calculator) CheckCompliance(employee Employee, entries []TimeEntry, calc Calculation) ComplianceResult {
	return complianceResult(c.Violations(calc))
}

func complianceResult(violations []Violation) ComplianceResult {
	messages := make([]string, 0, len(violations))
	for _, v := range violations {
		messages = append(messages, v.Message)
	}
	return ComplianceResult{Compliant: len(messages) == 0, Violations: messages}
}

func (c *Calculator) Violations(calc Calculation) []Violation {
	var out []Violation
	totalHours := calc.RegularHours + calc.OvertimeHours

	effectiveRate := 0.0
	if totalHours > 0 {
		effectiveRate = calc.GrossPay / totalHours
	}
	if effectiveRate < c.rules.MinimumWage {
		out = append(out, Violation{
			Kind:    ViolationMinimumWage,
			Message: fmt.Sprintf("Pay rate below minimum wage: $%.2f", effectiveRate),
		})
	}
	if totalHours > c.rules.OvertimeHoursThreshold && calc.OvertimeHours == 0 {
		out = append(out, Violation{
			Kind:    ViolationMissingOvertime,
			Message: fmt.Sprintf("Missing overtime pay for %s hours worked", formatHours(totalHours)),
		})
	}
	if totalHours > c.rules.ExcessiveHoursThreshold {
		out = append(out, Violation{
			Kind:    ViolationExcessiveHours,
			Message: fmt.Sprintf("Excessive hours worked: %s hours", formatHours(totalHours)),
		})
	}
	return out
}

func formatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', -1, 64)
}
