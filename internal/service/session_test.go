package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrdesk/review-api/internal/dto"
	"github.com/hrdesk/review-api/internal/models"
	appErrors "github.com/hrdesk/review-api/pkg/errors"
)

func sessionWithSnapshot() *EditorSession {
	sess := newEditorSession()
	sess.ReplaceSnapshot(models.NewSnapshot([]models.Employee{
		{EmpID: 1, EmpName: "Alice", Salary: 50000, Designation: "Eng"},
	}, time.Now().UTC()))
	return sess
}

func TestRecordEditCoercesNumericStrings(t *testing.T) {
	sess := sessionWithSnapshot()

	// UI layers deliver numbers in whatever shape they like
	for _, value := range []interface{}{55000.0, "55000", json.Number("55000"), 55000} {
		sess.ClearEdits()
		require.NoError(t, sess.RecordEdit(dto.EditItem{EmpID: 1, Field: dto.FieldSalary, Value: value}))
		edits := sess.Pending()
		require.NotNil(t, edits[1].Salary)
		assert.Equal(t, 55000.0, *edits[1].Salary)
	}
}

func TestRecordEditRejectsUncoercibleSalary(t *testing.T) {
	sess := sessionWithSnapshot()
	err := sess.RecordEdit(dto.EditItem{EmpID: 1, Field: dto.FieldSalary, Value: "lots"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, sess.Pending())
}

func TestRecordEditRejectsUnknownReason(t *testing.T) {
	sess := sessionWithSnapshot()
	err := sess.RecordEdit(dto.EditItem{EmpID: 1, Field: dto.FieldReason, Value: "Felt like it"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestRecordEditAllowsEmptyReason(t *testing.T) {
	sess := sessionWithSnapshot()
	require.NoError(t, sess.RecordEdit(dto.EditItem{EmpID: 1, Field: dto.FieldReason, Value: ""}))
}

func TestRecordEditFailsClosedOnUnknownID(t *testing.T) {
	sess := sessionWithSnapshot()
	err := sess.RecordEdit(dto.EditItem{EmpID: 42, Field: dto.FieldSalary, Value: 1.0})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrIdentityMismatch.Code, appErrors.FromError(err).Code)
}

func TestRecordEditRejectsNonEditableField(t *testing.T) {
	sess := sessionWithSnapshot()
	err := sess.RecordEdit(dto.EditItem{EmpID: 1, Field: "emp_id", Value: 2})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
