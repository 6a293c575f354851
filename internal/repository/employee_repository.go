package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hrdesk/review-api/internal/models"
)

// EmployeeRepository manages persistence for the hr.employee table.
type EmployeeRepository struct {
	db *sqlx.DB
}

// NewEmployeeRepository constructs an EmployeeRepository.
func NewEmployeeRepository(db *sqlx.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// List returns every employee ordered by primary key. Nullable audit columns
// come back as empty strings so the snapshot compares cleanly against edits.
func (r *EmployeeRepository) List(ctx context.Context) ([]models.Employee, error) {
	const query = `SELECT emp_id, emp_name, salary, designation,
        COALESCE(changed_by, '') AS changed_by,
        COALESCE(reason, '') AS reason,
        changed_time
        FROM hr.employee ORDER BY emp_id`
	var employees []models.Employee
	if err := r.db.SelectContext(ctx, &employees, query); err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return employees, nil
}

// ApplyChanges persists a change set in one all-or-nothing transaction: one
// UPDATE per record keyed by emp_id, plus a commit_log row for the batch. Any
// failure, including an update that matches no row, rolls back everything.
func (r *EmployeeRepository) ApplyChanges(ctx context.Context, commitID, committedBy string, changes []models.ChangeRecord) error {
	if len(changes) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin commit: %w", err)
	}

	const update = `UPDATE hr.employee
        SET salary = $1, designation = $2, changed_by = $3, reason = $4, changed_time = $5
        WHERE emp_id = $6`
	for _, change := range changes {
		result, err := tx.ExecContext(ctx, update,
			change.Salary,
			change.Designation,
			change.ChangedBy,
			change.Reason,
			change.ChangedTime,
			change.EmpID,
		)
		if err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("update employee %d: %w", change.EmpID, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("update employee %d: rows affected: %w", change.EmpID, err)
		}
		if affected != 1 {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("update employee %d: matched %d rows", change.EmpID, affected)
		}
	}

	const logInsert = `INSERT INTO hr.commit_log (commit_id, committed_by, applied_count, committed_at)
        VALUES ($1, $2, $3, $4)`
	if _, err := tx.ExecContext(ctx, logInsert, commitID, committedBy, len(changes), time.Now().UTC()); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("record commit log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit changes: %w", err)
	}
	return nil
}

// SalarySummary aggregates salary statistics grouped by designation.
func (r *EmployeeRepository) SalarySummary(ctx context.Context) ([]models.SalarySummary, error) {
	const query = `SELECT designation,
        COUNT(*) AS headcount,
        AVG(salary) AS avg_salary,
        MIN(salary) AS min_salary,
        MAX(salary) AS max_salary
        FROM hr.employee GROUP BY designation ORDER BY designation`
	var summaries []models.SalarySummary
	if err := r.db.SelectContext(ctx, &summaries, query); err != nil {
		return nil, fmt.Errorf("salary summary: %w", err)
	}
	return summaries, nil
}
