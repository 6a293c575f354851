package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrdesk/review-api/internal/models"
)

func newEmployeeRepoMock(t *testing.T) (*EmployeeRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewEmployeeRepository(sqlx.NewDb(db, "sqlmock")), mock, func() { db.Close() }
}

func employeeColumns() []string {
	return []string{"emp_id", "emp_name", "salary", "designation", "changed_by", "reason", "changed_time"}
}

func TestEmployeeRepositoryList(t *testing.T) {
	repo, mock, cleanup := newEmployeeRepoMock(t)
	defer cleanup()

	rows := sqlmock.NewRows(employeeColumns()).
		AddRow(int64(1), "Alice", 50000.0, "Eng", "", "", nil).
		AddRow(int64(2), "Bob", 60000.0, "Lead", "hr", "Promotion", time.Now())
	mock.ExpectQuery("SELECT emp_id, emp_name, salary, designation").WillReturnRows(rows)

	employees, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, employees, 2)
	assert.Equal(t, int64(1), employees[0].EmpID)
	assert.Equal(t, models.ReasonPromotion, employees[1].Reason)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepositoryListUnavailable(t *testing.T) {
	repo, mock, cleanup := newEmployeeRepoMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT emp_id, emp_name, salary, designation").
		WillReturnError(errors.New("connection refused"))

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepositoryApplyChanges(t *testing.T) {
	repo, mock, cleanup := newEmployeeRepoMock(t)
	defer cleanup()

	now := time.Now().UTC()
	changes := []models.ChangeRecord{
		{EmpID: 1, Salary: 55000, Designation: "Eng", ChangedBy: "admin", Reason: models.ReasonPromotion, ChangedTime: now},
		{EmpID: 3, Salary: 70000, Designation: "Manager", ChangedBy: "admin", Reason: models.ReasonAnnualReview, ChangedTime: now},
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE hr.employee").
		WithArgs(55000.0, "Eng", "admin", "Promotion", now, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE hr.employee").
		WithArgs(70000.0, "Manager", "admin", "Annual Review", now, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO hr.commit_log").
		WithArgs("commit-1", "admin", 2, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.ApplyChanges(context.Background(), "commit-1", "admin", changes))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepositoryApplyChangesRollsBackOnFailure(t *testing.T) {
	repo, mock, cleanup := newEmployeeRepoMock(t)
	defer cleanup()

	now := time.Now().UTC()
	changes := []models.ChangeRecord{
		{EmpID: 1, Salary: 55000, Designation: "Eng", ChangedTime: now},
		{EmpID: 2, Salary: 60000, Designation: "Lead", ChangedTime: now},
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE hr.employee").
		WithArgs(55000.0, "Eng", "", "", now, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE hr.employee").
		WithArgs(60000.0, "Lead", "", "", now, int64(2)).
		WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	err := repo.ApplyChanges(context.Background(), "commit-2", "admin", changes)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepositoryApplyChangesRollsBackOnMissingRow(t *testing.T) {
	repo, mock, cleanup := newEmployeeRepoMock(t)
	defer cleanup()

	now := time.Now().UTC()
	changes := []models.ChangeRecord{
		{EmpID: 99, Salary: 1000, Designation: "Ghost", ChangedTime: now},
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE hr.employee").
		WithArgs(1000.0, "Ghost", "", "", now, int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.ApplyChanges(context.Background(), "commit-3", "admin", changes)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "matched 0 rows")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepositoryApplyChangesEmpty(t *testing.T) {
	repo, mock, cleanup := newEmployeeRepoMock(t)
	defer cleanup()

	require.NoError(t, repo.ApplyChanges(context.Background(), "commit-4", "admin", nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepositorySalarySummary(t *testing.T) {
	repo, mock, cleanup := newEmployeeRepoMock(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"designation", "headcount", "avg_salary", "min_salary", "max_salary"}).
		AddRow("Eng", 3, 52000.0, 48000.0, 58000.0).
		AddRow("Lead", 1, 70000.0, 70000.0, 70000.0)
	mock.ExpectQuery("SELECT designation").WillReturnRows(rows)

	summaries, err := repo.SalarySummary(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, 3, summaries[0].Headcount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
