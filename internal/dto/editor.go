package dto

import (
	"time"

	"github.com/hrdesk/review-api/internal/models"
)

// Editable field names accepted by the edit collector. The identity column
// itself is never editable.
const (
	FieldSalary      = "salary"
	FieldDesignation = "designation"
	FieldChangedBy   = "changed_by"
	FieldReason      = "reason"
)

// EditItem is one cell edit captured from the table UI, already keyed by the
// immutable primary key rather than row position.
type EditItem struct {
	EmpID int64       `json:"empId" validate:"required"`
	Field string      `json:"field" validate:"required,oneof=salary designation changed_by reason"`
	Value interface{} `json:"value"`
}

// BatchEditRequest carries one or more edits to record.
type BatchEditRequest struct {
	Edits []EditItem `json:"edits" validate:"required,min=1,dive"`
}

// EditRejection explains why a single edit was not recorded.
type EditRejection struct {
	EmpID  int64  `json:"empId"`
	Field  string `json:"field"`
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// BatchEditResponse reports which edits were accepted.
type BatchEditResponse struct {
	Accepted   int             `json:"accepted"`
	Rejections []EditRejection `json:"rejections,omitempty"`
}

// PendingEdit is one employee's pending partial record.
type PendingEdit struct {
	EmpID int64             `json:"empId"`
	Edits models.FieldEdits `json:"edits"`
}

// PendingResponse lists accumulated edits ordered by employee id.
type PendingResponse struct {
	Pending []PendingEdit `json:"pending"`
}

// SnapshotResponse returns the current baseline table.
type SnapshotResponse struct {
	LoadedAt time.Time         `json:"loadedAt"`
	Rows     []models.Employee `json:"rows"`
}
