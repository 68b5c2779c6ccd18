package payroll

const (
	PayTypeHourly PayType = "hourly"
	PayTypeSalary PayType = "salary"

	FilingSingle          FilingStatus = "single"
	FilingMarried         FilingStatus = "married"
	FilingHeadOfHousehold FilingStatus = "head_of_household"

	PeriodStatusDraft      PeriodStatus = "draft"
	PeriodStatusProcessing PeriodStatus = "processing"
	PeriodStatusCompleted  PeriodStatus = "completed"
	PeriodStatusCancelled  PeriodStatus = "cancelled"

	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatXML  = "xml"

	ViolationMinimumWage     = "minimum_wage"
	ViolationMissingOvertime = "missing_overtime"
	ViolationExcessiveHours  = "excessive_hours"

	maxHoursPerDay = 24
)

var FilingStatuses = []FilingStatus{FilingSingle, FilingMarried, FilingHeadOfHousehold}

func (p PayType) Valid() bool {
	switch p {
	case PayTypeHourly, PayTypeSalary:
		return true
	}
	return false
}

func (f FilingStatus) Valid() bool {
	switch f {
	case FilingSingle, FilingMarried, FilingHeadOfHousehold:
		return true
	}
	return false
}
