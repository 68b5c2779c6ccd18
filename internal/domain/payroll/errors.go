package payroll

import "errors"

var (
	ErrInvalidEmployeeConfig    = errors.New("invalid employee configuration")
	ErrInvalidTimeEntry         = errors.New("invalid time entry")
	ErrInvalidPeriod            = errors.New("invalid payroll period")
	ErrInvalidRules             = errors.New("invalid payroll rules")
	ErrUnsupportedFormat        = errors.New("unsupported export format")
	ErrCalculationCountMismatch = errors.New("calculation count does not match employee count")
	ErrRunNotFound              = errors.New("payroll run not found")
)
