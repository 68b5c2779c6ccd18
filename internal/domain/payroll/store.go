package payroll

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// SaveRun stores every calculation of the run. A period that is run again
// replaces the employee's earlier result for that period.
func (s *Store) SaveRun(ctx context.Context, run Run) error {
	periodStart, err := run.Period.Start()
	if err != nil {
		return err
	}
	var start any
	if !periodStart.IsZero() {
		start = periodStart
	}

	batch := &pgx.Batch{}
	for _, calc := range run.Calculations() {
		payload, err := json.Marshal(calc)
		if err != nil {
			return err
		}
		batch.Queue(`
      INSERT INTO payroll_calculations (run_id, period_id, period_start, employee_id, gross_pay, net_pay, calculation_json, created_at)
      VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
      ON CONFLICT (period_id, employee_id) DO UPDATE
      SET run_id = EXCLUDED.run_id,
          period_start = EXCLUDED.period_start,
          gross_pay = EXCLUDED.gross_pay,
          net_pay = EXCLUDED.net_pay,
          calculation_json = EXCLUDED.calculation_json,
          created_at = EXCLUDED.created_at
    `, run.ID, calc.PeriodID, start, calc.EmployeeID, calc.GrossPay, calc.NetPay, payload, run.CreatedAt)
	}
	if batch.Len() == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) ListCalculations(ctx context.Context, periodID string) ([]Calculation, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT calculation_json
    FROM payroll_calculations
    WHERE period_id = $1
    ORDER BY employee_id
  `, periodID)
	if err != nil {
		return nil, err
	}
	return scanCalculations(rows)
}

// PriorCalculations returns an employee's stored results for periods starting
// in [from, before).
func (s *Store) PriorCalculations(ctx context.Context, employeeID string, from, before time.Time) ([]Calculation, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT calculation_json
    FROM payroll_calculations
    WHERE employee_id = $1 AND period_start >= $2 AND period_start < $3
    ORDER BY period_start
  `, employeeID, from, before)
	if err != nil {
		return nil, err
	}
	return scanCalculations(rows)
}

func scanCalculations(rows pgx.Rows) ([]Calculation, error) {
	defer rows.Close()

	calcs := make([]Calculation, 0)
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var calc Calculation
		if err := json.Unmarshal(payload, &calc); err != nil {
			return nil, err
		}
		calcs = append(calcs, calc)
	}
	return calcs, rows.Err()
}
