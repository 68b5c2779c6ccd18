package payroll

import (
	"context"
	"time"
)

type StoreAPI interface {
	SaveRun(ctx context.Context, run Run) error
	ListCalculations(ctx context.Context, periodID string) ([]Calculation, error)
	PriorCalculations(ctx context.Context, employeeID string, from, before time.Time) ([]Calculation, error)
}

// Recorder receives run events for metrics. A nil Recorder is allowed.
type Recorder interface {
	RecordCalculation(payType string)
	RecordBlocked()
	RecordViolation(kind string)
}
