package payroll

import "time"

type PayType string

type FilingStatus string

type PeriodStatus string

type TimeEntry struct {
	EmployeeID    string  `json:"employeeId"`
	Date          string  `json:"date"`
	ClockIn       string  `json:"clockIn,omitempty"`
	ClockOut      string  `json:"clockOut,omitempty"`
	RegularHours  float64 `json:"regularHours"`
	OvertimeHours float64 `json:"overtimeHours"`
	BreakTime     float64 `json:"breakTime"`
	ProjectID     string  `json:"projectId,omitempty"`
	Billable      bool    `json:"billable"`
	Approved      bool    `json:"approved"`
}

// TaxWithholdings are reference rates from the HR record. The calculator does
// not read them; Rules decide the rates applied.
type TaxWithholdings struct {
	Federal        float64 `json:"federal"`
	State          float64 `json:"state"`
	SocialSecurity float64 `json:"socialSecurity"`
	Medicare       float64 `json:"medicare"`
}

type Employee struct {
	ID              string             `json:"id" validate:"required"`
	Name            string             `json:"name"`
	Department      string             `json:"department,omitempty"`
	PayType         PayType            `json:"payType" validate:"required,oneof=hourly salary"`
	PayRate         float64            `json:"payRate" validate:"gt=0"`
	OvertimeRate    *float64           `json:"overtimeRate,omitempty" validate:"omitempty,gt=0"`
	TaxWithholdings TaxWithholdings    `json:"taxWithholdings"`
	Benefits        map[string]float64 `json:"benefits" validate:"dive,gte=0"`
	Exemptions      int                `json:"exemptions" validate:"gte=0"`
	FilingStatus    FilingStatus       `json:"filingStatus" validate:"required,oneof=single married head_of_household"`
}

type Period struct {
	ID        string       `json:"id" validate:"required"`
	StartDate string       `json:"startDate"`
	EndDate   string       `json:"endDate"`
	PayDate   string       `json:"payDate"`
	Status    PeriodStatus `json:"status"`
}

// Start parses StartDate. An empty value yields the zero time.
func (p Period) Start() (time.Time, error) {
	return parseDate(p.StartDate)
}

// Calculation is the pay result for one employee in one period. Field order is
// the export order for JSON.
type Calculation struct {
	EmployeeID string `json:"employeeId"`
	PeriodID   string `json:"periodId"`

	RegularHours  float64 `json:"regularHours"`
	OvertimeHours float64 `json:"overtimeHours"`
	HolidayHours  float64 `json:"holidayHours"`
	SickHours     float64 `json:"sickHours"`
	VacationHours float64 `json:"vacationHours"`

	RegularPay  float64 `json:"regularPay"`
	OvertimePay float64 `json:"overtimePay"`
	HolidayPay  float64 `json:"holidayPay"`
	GrossPay    float64 `json:"grossPay"`

	FederalTax        float64 `json:"federalTax"`
	StateTax          float64 `json:"stateTax"`
	SocialSecurityTax float64 `json:"socialSecurityTax"`
	MedicareTax       float64 `json:"medicareTax"`
	BenefitDeductions float64 `json:"benefitDeductions"`
	TotalDeductions   float64 `json:"totalDeductions"`
	NetPay            float64 `json:"netPay"`

	YTDGrossPay float64 `json:"ytdGrossPay"`
	YTDNetPay   float64 `json:"ytdNetPay"`
	YTDTaxes    float64 `json:"ytdTaxes"`
}

// Taxes is the sum of the four withholding taxes, excluding benefits.
func (c Calculation) Taxes() float64 {
	return c.FederalTax + c.StateTax + c.SocialSecurityTax + c.MedicareTax
}

type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

type ComplianceResult struct {
	Compliant  bool     `json:"compliant"`
	Violations []string `json:"violations"`
}

type Summary struct {
	TotalEmployees        int     `json:"totalEmployees"`
	TotalGrossPay         float64 `json:"totalGrossPay"`
	TotalNetPay           float64 `json:"totalNetPay"`
	TotalTaxes            float64 `json:"totalTaxes"`
	TotalBenefits         float64 `json:"totalBenefits"`
	AveragePayPerEmployee float64 `json:"averagePayPerEmployee"`
}

// Timesheet pairs an employee with the time entries submitted for a period.
type Timesheet struct {
	Employee Employee    `json:"employee"`
	Entries  []TimeEntry `json:"timeEntries" validate:"required"`
}

type EmployeeResult struct {
	EmployeeID  string            `json:"employeeId"`
	Validation  ValidationResult  `json:"validation"`
	Calculation *Calculation      `json:"calculation,omitempty"`
	Compliance  *ComplianceResult `json:"compliance,omitempty"`
	Blocked     bool              `json:"blocked"`
}

type Run struct {
	ID        string           `json:"id"`
	Period    Period           `json:"period"`
	Results   []EmployeeResult `json:"results"`
	Summary   Summary          `json:"summary"`
	CreatedAt time.Time        `json:"createdAt"`
}

// Calculations returns the calculations of every employee that was not blocked,
// in run order.
func (r Run) Calculations() []Calculation {
	out := make([]Calculation, 0, len(r.Results))
	for _, result := range r.Results {
		if result.Calculation != nil {
			out = append(out, *result.Calculation)
		}
	}
	return out
}
