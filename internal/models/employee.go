package models

import (
	"fmt"
	"time"
)

// Reason is the constrained audit reason attached to an employee change.
type Reason string

const (
	ReasonNone         Reason = ""
	ReasonPromotion    Reason = "Promotion"
	ReasonCorrection   Reason = "Correction"
	ReasonAnnualReview Reason = "Annual Review"
	ReasonOther        Reason = "Other"
)

// AllowedReasons lists the selectable values, in display order.
var AllowedReasons = []Reason{ReasonPromotion, ReasonCorrection, ReasonAnnualReview, ReasonOther}

// ParseReason validates a raw reason value. The empty string is legal and
// means "no reason recorded".
func ParseReason(raw string) (Reason, error) {
	r := Reason(raw)
	if r == ReasonNone {
		return r, nil
	}
	for _, allowed := range AllowedReasons {
		if r == allowed {
			return r, nil
		}
	}
	return ReasonNone, fmt.Errorf("unknown reason %q", raw)
}

// Employee is one row of hr.employee. EmpID and EmpName are immutable; the
// remaining fields are editable through the editor, with ChangedTime set by
// the server at commit.
type Employee struct {
	EmpID       int64      `db:"emp_id" json:"empId"`
	EmpName     string     `db:"emp_name" json:"empName"`
	Salary      float64    `db:"salary" json:"salary"`
	Designation string     `db:"designation" json:"designation"`
	ChangedBy   string     `db:"changed_by" json:"changedBy"`
	Reason      Reason     `db:"reason" json:"reason"`
	ChangedTime *time.Time `db:"changed_time" json:"changedTime,omitempty"`
}

// Snapshot is an immutable, point-in-time ordered copy of the employee table.
// It is replaced wholesale on load or after a successful commit, never
// mutated in place.
type Snapshot struct {
	LoadedAt time.Time
	rows     []Employee
	index    map[int64]int
}

// NewSnapshot builds a snapshot from rows already ordered by emp_id.
func NewSnapshot(rows []Employee, loadedAt time.Time) *Snapshot {
	index := make(map[int64]int, len(rows))
	for i, row := range rows {
		index[row.EmpID] = i
	}
	return &Snapshot{LoadedAt: loadedAt, rows: rows, index: index}
}

// Rows returns the snapshot rows in load order. Callers must not mutate the
// returned slice.
func (s *Snapshot) Rows() []Employee {
	if s == nil {
		return nil
	}
	return s.rows
}

// Len reports the number of rows.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rows)
}

// Lookup returns the baseline record for an id, if present.
func (s *Snapshot) Lookup(empID int64) (Employee, bool) {
	if s == nil {
		return Employee{}, false
	}
	i, ok := s.index[empID]
	if !ok {
		return Employee{}, false
	}
	return s.rows[i], true
}

// Position returns the snapshot row order of an id, for deterministic diff
// output.
func (s *Snapshot) Position(empID int64) (int, bool) {
	if s == nil {
		return 0, false
	}
	i, ok := s.index[empID]
	return i, ok
}

// FieldEdits is the partial record for one employee: only fields the user
// touched are non-nil. Repeated edits to the same field overwrite.
type FieldEdits struct {
	Salary      *float64 `json:"salary,omitempty"`
	Designation *string  `json:"designation,omitempty"`
	ChangedBy   *string  `json:"changedBy,omitempty"`
	Reason      *Reason  `json:"reason,omitempty"`
}

// Empty reports whether no field has been touched.
func (f FieldEdits) Empty() bool {
	return f.Salary == nil && f.Designation == nil && f.ChangedBy == nil && f.Reason == nil
}

// EditSet maps employee id to its pending partial edits.
type EditSet map[int64]FieldEdits

// Clone returns a shallow copy so callers can hold a stable view while new
// edits keep arriving.
func (e EditSet) Clone() EditSet {
	out := make(EditSet, len(e))
	for id, edits := range e {
		out[id] = edits
	}
	return out
}

// ChangeRecord is a fully resolved, ready-to-persist update for one employee.
// Produced by the diff, consumed immediately by the commit.
type ChangeRecord struct {
	EmpID       int64     `db:"emp_id" json:"empId"`
	Salary      float64   `db:"salary" json:"salary"`
	Designation string    `db:"designation" json:"designation"`
	ChangedBy   string    `db:"changed_by" json:"changedBy"`
	Reason      Reason    `db:"reason" json:"reason"`
	ChangedTime time.Time `db:"changed_time" json:"changedTime"`
}

// CommitResult summarises a commit attempt.
type CommitResult struct {
	CommitID     string   `json:"commitId,omitempty"`
	AppliedCount int      `json:"appliedCount"`
	Message      string   `json:"message"`
	Warnings     []string `json:"warnings,omitempty"`
}

// SalarySummary aggregates salaries for one designation.
type SalarySummary struct {
	Designation string  `db:"designation" json:"designation"`
	Headcount   int     `db:"headcount" json:"headcount"`
	AvgSalary   float64 `db:"avg_salary" json:"avgSalary"`
	MinSalary   float64 `db:"min_salary" json:"minSalary"`
	MaxSalary   float64 `db:"max_salary" json:"maxSalary"`
}
