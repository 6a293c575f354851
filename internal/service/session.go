package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	appErrors "github.com/hrdesk/review-api/pkg/errors"

	"github.com/hrdesk/review-api/internal/dto"
	"github.com/hrdesk/review-api/internal/models"
)

// EditorSession is one operator's working state: the baseline snapshot plus
// the pending edit set. No process-wide state; the EditorService hands a
// session to each request.
type EditorSession struct {
	mu       sync.Mutex
	snapshot *models.Snapshot
	edits    models.EditSet
}

func newEditorSession() *EditorSession {
	return &EditorSession{edits: make(models.EditSet)}
}

// Snapshot returns the last loaded baseline without re-fetching.
func (s *EditorSession) Snapshot() *models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// ReplaceSnapshot installs a fresh baseline wholesale.
func (s *EditorSession) ReplaceSnapshot(snapshot *models.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snapshot
}

// Pending returns a copy of the accumulated edit set.
func (s *EditorSession) Pending() models.EditSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.edits.Clone()
}

// ClearEdits empties the edit set.
func (s *EditorSession) ClearEdits() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edits = make(models.EditSet)
}

// RecordEdit stores one pending cell change. Values are normalised to their
// typed fields here, at the collector boundary: un-coercible values are
// rejected as validation errors, and an edit whose id is not present in the
// current snapshot fails closed as an identity mismatch instead of being
// attributed to the wrong record. Repeated edits to the same (id, field)
// overwrite; there is no history.
func (s *EditorSession) RecordEdit(item dto.EditItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot == nil {
		return appErrors.Clone(appErrors.ErrIdentityMismatch, "no snapshot loaded")
	}
	if _, ok := s.snapshot.Lookup(item.EmpID); !ok {
		return appErrors.Clone(appErrors.ErrIdentityMismatch, fmt.Sprintf("employee %d not in snapshot", item.EmpID))
	}

	pending := s.edits[item.EmpID]
	switch item.Field {
	case dto.FieldSalary:
		salary, err := coerceFloat(item.Value)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "salary must be numeric")
		}
		pending.Salary = &salary
	case dto.FieldDesignation:
		text, err := coerceString(item.Value)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "designation must be text")
		}
		pending.Designation = &text
	case dto.FieldChangedBy:
		text, err := coerceString(item.Value)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "changed_by must be text")
		}
		pending.ChangedBy = &text
	case dto.FieldReason:
		text, err := coerceString(item.Value)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "reason must be text")
		}
		reason, err := models.ParseReason(text)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "reason is not in the allowed set")
		}
		pending.Reason = &reason
	default:
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("field %q is not editable", item.Field))
	}

	s.edits[item.EmpID] = pending
	return nil
}

func coerceFloat(value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("parse %q as number: %w", v, err)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("unsupported value type %T", value)
	}
}

func coerceString(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("unsupported value type %T", value)
	}
}
