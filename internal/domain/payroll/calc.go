package payroll

import (
	"fmt"
	"math"
)

// Calculator applies a fixed set of Rules. It holds no other state and is safe
// for concurrent use.
type Calculator struct {
	rules Rules
}

func NewCalculator(rules Rules) (*Calculator, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return &Calculator{rules: rules}, nil
}

func (c *Calculator) Rules() Rules {
	return c.rules
}

// Calculate computes pay for one employee from the supplied time entries. It
// does not filter by approval; run ValidateTimeEntries first and decide
// whether to proceed. Net pay is not clamped and goes negative when
// deductions exceed gross pay.
func (c *Calculator) Calculate(employee Employee, entries []TimeEntry, period Period) (Calculation, error) {
	if err := checkEmployee(employee); err != nil {
		return Calculation{}, err
	}

	var regularHours, overtimeHours float64
	for i, entry := range entries {
		if entry.RegularHours < 0 || entry.OvertimeHours < 0 || !finite(entry.RegularHours) || !finite(entry.OvertimeHours) {
			return Calculation{}, fmt.Errorf("%w: entry %d has negative or non-finite hours", ErrInvalidTimeEntry, i+1)
		}
		regularHours += entry.RegularHours
		overtimeHours += entry.OvertimeHours
	}

	regularPay, overtimePay := c.basePay(employee, regularHours, overtimeHours)
	holidayPay := 0.0
	grossPay := regularPay + overtimePay + holidayPay

	federalTax := c.federalTax(grossPay, employee)
	stateTax := grossPay * c.rules.StateTaxRate
	socialSecurityTax := grossPay * c.rules.SocialSecurityRate
	medicareTax := grossPay * c.rules.MedicareRate

	benefitDeductions := 0.0
	for _, amount := range employee.Benefits {
		benefitDeductions += amount
	}

	totalDeductions := federalTax + stateTax + socialSecurityTax + medicareTax + benefitDeductions

	return Calculation{
		EmployeeID:        employee.ID,
		PeriodID:          period.ID,
		RegularHours:      regularHours,
		OvertimeHours:     overtimeHours,
		RegularPay:        regularPay,
		OvertimePay:       overtimePay,
		HolidayPay:        holidayPay,
		GrossPay:          grossPay,
		FederalTax:        federalTax,
		StateTax:          stateTax,
		SocialSecurityTax: socialSecurityTax,
		MedicareTax:       medicareTax,
		BenefitDeductions: benefitDeductions,
		TotalDeductions:   totalDeductions,
		NetPay:            grossPay - totalDeductions,
	}, nil
}

// basePay splits earnings by pay type. Salaried staff get a fixed share of the
// annual salary per period regardless of hours, and overtime against an
// hourly equivalent of salary over SalaryHoursPerYear. The two divisors are
// not reconciled with each other.
func (c *Calculator) basePay(employee Employee, regularHours, overtimeHours float64) (regularPay, overtimePay float64) {
	switch employee.PayType {
	case PayTypeHourly:
		overtimeRate := employee.PayRate * c.rules.OvertimeMultiplier
		if employee.OvertimeRate != nil {
			overtimeRate = *employee.OvertimeRate
		}
		return regularHours * employee.PayRate, overtimeHours * overtimeRate
	case PayTypeSalary:
		regularPay = employee.PayRate / c.rules.PayPeriodsPerYear
		if overtimeHours > 0 {
			hourlyEquivalent := employee.PayRate / c.rules.SalaryHoursPerYear
			overtimePay = overtimeHours * hourlyEquivalent * c.rules.OvertimeMultiplier
		}
		return regularPay, overtimePay
	}
	return 0, 0
}

// federalTax applies one marginal rate, chosen from annualized pay, to the
// whole period's gross. This is not a progressive calculation.
func (c *Calculator) federalTax(grossPay float64, employee Employee) float64 {
	annualized := grossPay * c.rules.PayPeriodsPerYear
	rate := c.rules.MarginalRate(employee.FilingStatus, annualized)
	credit := float64(employee.Exemptions) * c.rules.ExemptionAllowance / c.rules.PayPeriodsPerYear
	return math.Max(0, grossPay*rate-credit)
}

func checkEmployee(employee Employee) error {
	if !employee.PayType.Valid() {
		return fmt.Errorf("%w: employee %s has unknown pay type %q", ErrInvalidEmployeeConfig, employee.ID, employee.PayType)
	}
	if !employee.FilingStatus.Valid() {
		return fmt.Errorf("%w: employee %s has unknown filing status %q", ErrInvalidEmployeeConfig, employee.ID, employee.FilingStatus)
	}
	if employee.PayRate <= 0 || !finite(employee.PayRate) {
		return fmt.Errorf("%w: employee %s pay rate must be positive", ErrInvalidEmployeeConfig, employee.ID)
	}
	if employee.OvertimeRate != nil && (*employee.OvertimeRate <= 0 || !finite(*employee.OvertimeRate)) {
		return fmt.Errorf("%w: employee %s overtime rate must be positive", ErrInvalidEmployeeConfig, employee.ID)
	}
	if employee.Exemptions < 0 {
		return fmt.Errorf("%w: employee %s exemptions must not be negative", ErrInvalidEmployeeConfig, employee.ID)
	}
	for name, amount := range employee.Benefits {
		if amount < 0 || !finite(amount) {
			return fmt.Errorf("%w: employee %s benefit %q must not be negative", ErrInvalidEmployeeConfig, employee.ID, name)
		}
	}
	return nil
}
