package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const defaultWorkers = 4

type Service struct {
	calc    *Calculator
	store   StoreAPI
	metrics Recorder
	workers int
	now     func() time.Time
}

// NewService wires a calculator to optional persistence and metrics. store
// and metrics may be nil.
func NewService(calc *Calculator, store StoreAPI, metrics Recorder, workers int) *Service {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Service{calc: calc, store: store, metrics: metrics, workers: workers, now: time.Now}
}

func (s *Service) Calculator() *Calculator {
	return s.calc
}

func (s *Service) HasStore() bool {
	return s.store != nil
}

// Run processes a period: each timesheet is validated, and only valid ones are
// calculated and compliance-checked. Timesheets are handled concurrently;
// results keep input order. Blocked timesheets are left out of the summary.
// Invalid employee configuration fails the whole run.
func (s *Service) Run(ctx context.Context, period Period, sheets []Timesheet) (Run, error) {
	periodStart, err := period.Start()
	if err != nil {
		return Run{}, fmt.Errorf("%w: period %s start date: %v", ErrInvalidPeriod, period.ID, err)
	}

	results := make([]EmployeeResult, len(sheets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, sheet := range sheets {
		g.Go(func() error {
			result, err := s.process(gctx, period, periodStart, sheet)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Run{}, err
	}

	var employees []Employee
	var calcs []Calculation
	for i, result := range results {
		if result.Calculation == nil {
			continue
		}
		employees = append(employees, sheets[i].Employee)
		calcs = append(calcs, *result.Calculation)
	}
	summary, err := Summarize(employees, calcs)
	if err != nil {
		return Run{}, err
	}

	run := Run{
		ID:        uuid.NewString(),
		Period:    period,
		Results:   results,
		Summary:   summary,
		CreatedAt: s.now().UTC(),
	}
	if s.store != nil {
		if err := s.store.SaveRun(ctx, run); err != nil {
			return Run{}, fmt.Errorf("save payroll run: %w", err)
		}
	}
	slog.Info("payroll run completed",
		"runId", run.ID,
		"periodId", period.ID,
		"employees", len(sheets),
		"calculated", len(calcs),
		"totalNetPay", summary.TotalNetPay,
	)
	return run, nil
}

func (s *Service) process(ctx context.Context, period Period, periodStart time.Time, sheet Timesheet) (EmployeeResult, error) {
	if err := ctx.Err(); err != nil {
		return EmployeeResult{}, err
	}
	result := EmployeeResult{
		EmployeeID: sheet.Employee.ID,
		Validation: ValidateTimeEntries(sheet.Entries),
	}
	if !result.Validation.Valid {
		result.Blocked = true
		if s.metrics != nil {
			s.metrics.RecordBlocked()
		}
		slog.Warn("timesheet blocked", "employeeId", sheet.Employee.ID, "periodId", period.ID, "errors", len(result.Validation.Errors))
		return result, nil
	}

	calc, err := s.calc.Calculate(sheet.Employee, sheet.Entries, period)
	if err != nil {
		return EmployeeResult{}, err
	}
	if s.store != nil && !periodStart.IsZero() {
		yearStart := time.Date(periodStart.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		prior, err := s.store.PriorCalculations(ctx, calc.EmployeeID, yearStart, periodStart)
		if err != nil {
			return EmployeeResult{}, fmt.Errorf("load year-to-date for %s: %w", calc.EmployeeID, err)
		}
		calc = WithYearToDate(calc, prior)
	}

	violations := s.calc.Violations(calc)
	compliance := complianceResult(violations)
	if s.metrics != nil {
		s.metrics.RecordCalculation(string(sheet.Employee.PayType))
		for _, v := range violations {
			s.metrics.RecordViolation(v.Kind)
		}
	}

	result.Calculation = &calc
	result.Compliance = &compliance
	return result, nil
}

// PeriodCalculations returns stored results for a period.
func (s *Service) PeriodCalculations(ctx context.Context, periodID string) ([]Calculation, error) {
	if s.store == nil {
		return nil, ErrRunNotFound
	}
	calcs, err := s.store.ListCalculations(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if len(calcs) == 0 {
		return nil, ErrRunNotFound
	}
	return calcs, nil
}
