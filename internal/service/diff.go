package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/hrdesk/review-api/internal/models"
)

// Diff resolves the pending edit set against the baseline snapshot into the
// minimal ordered change set. For each edited employee the partial edit is
// overlaid on the baseline record, and a ChangeRecord is produced only when
// at least one editable field actually differs. Equality is field-wise and
// type-aware: salary compares as a number, never as its string rendering.
//
// Edits whose id no longer exists in the snapshot are stale, not errors: the
// row vanished from a fresher baseline, so the edit is skipped and reported
// as a warning, in ascending id order. Output preserves snapshot row order
// for determinism. The commit timestamp and the changed_by audit fallback
// are stamped here, at resolution time: a record whose changed_by resolves
// blank carries the acting operator instead, so no committed change lacks an
// audit identity.
func Diff(snapshot *models.Snapshot, edits models.EditSet, actor string, now time.Time) ([]models.ChangeRecord, []string) {
	if len(edits) == 0 {
		return nil, nil
	}

	all := make([]int64, 0, len(edits))
	for id := range edits {
		all = append(all, id)
	}
	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })

	ids := make([]int64, 0, len(all))
	var warnings []string
	for _, id := range all {
		if _, ok := snapshot.Position(id); !ok {
			warnings = append(warnings, fmt.Sprintf("employee %d no longer in snapshot, edit skipped", id))
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		pi, _ := snapshot.Position(ids[i])
		pj, _ := snapshot.Position(ids[j])
		return pi < pj
	})

	changes := make([]models.ChangeRecord, 0, len(ids))
	for _, id := range ids {
		baseline, _ := snapshot.Lookup(id)
		resolved := overlay(baseline, edits[id])

		if resolved.Salary == baseline.Salary &&
			resolved.Designation == baseline.Designation &&
			resolved.ChangedBy == baseline.ChangedBy &&
			resolved.Reason == baseline.Reason {
			continue
		}

		changedBy := resolved.ChangedBy
		if changedBy == "" {
			changedBy = actor
		}
		changes = append(changes, models.ChangeRecord{
			EmpID:       id,
			Salary:      resolved.Salary,
			Designation: resolved.Designation,
			ChangedBy:   changedBy,
			Reason:      resolved.Reason,
			ChangedTime: now,
		})
	}
	return changes, warnings
}

// overlay applies the touched fields of a partial edit on top of the
// baseline, leaving untouched fields at their baseline values.
func overlay(baseline models.Employee, edits models.FieldEdits) models.Employee {
	resolved := baseline
	if edits.Salary != nil {
		resolved.Salary = *edits.Salary
	}
	if edits.Designation != nil {
		resolved.Designation = *edits.Designation
	}
	if edits.ChangedBy != nil {
		resolved.ChangedBy = *edits.ChangedBy
	}
	if edits.Reason != nil {
		resolved.Reason = *edits.Reason
	}
	return resolved
}
