package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hrdesk/review-api/internal/dto"
	"github.com/hrdesk/review-api/internal/models"
	appErrors "github.com/hrdesk/review-api/pkg/errors"
	"github.com/hrdesk/review-api/pkg/export"
)

type employeeRepo interface {
	List(ctx context.Context) ([]models.Employee, error)
	ApplyChanges(ctx context.Context, commitID, committedBy string, changes []models.ChangeRecord) error
}

// EditorService orchestrates the edit-review-commit cycle: it owns the
// per-operator sessions, runs the diff, and coordinates the transactional
// commit with the snapshot refresh that follows it.
type EditorService struct {
	repo      employeeRepo
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	clock     func() time.Time

	mu       sync.Mutex
	sessions map[string]*EditorSession
}

// NewEditorService constructs an EditorService.
func NewEditorService(repo employeeRepo, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *EditorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EditorService{
		repo:      repo,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		clock:     func() time.Time { return time.Now().UTC() },
		sessions:  make(map[string]*EditorSession),
	}
}

// session returns the operator's session, creating it on first use.
func (s *EditorService) session(actor string) *EditorSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[actor]
	if !ok {
		sess = newEditorSession()
		s.sessions[actor] = sess
	}
	return sess
}

// load fetches the authoritative table state and wraps connection failures
// into the typed error the handler layer reports.
func (s *EditorService) load(ctx context.Context) (*models.Snapshot, error) {
	start := s.clock()
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to load employee table")
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("employee_list", time.Since(start))
	}
	return models.NewSnapshot(rows, s.clock()), nil
}

// Snapshot returns the operator's baseline table, loading it on first access
// or when refresh is requested.
func (s *EditorService) Snapshot(ctx context.Context, actor string, refresh bool) (*dto.SnapshotResponse, error) {
	sess := s.session(actor)
	snapshot := sess.Snapshot()
	if snapshot == nil || refresh {
		loaded, err := s.load(ctx)
		if err != nil {
			return nil, err
		}
		sess.ReplaceSnapshot(loaded)
		snapshot = loaded
	}
	return &dto.SnapshotResponse{LoadedAt: snapshot.LoadedAt, Rows: snapshot.Rows()}, nil
}

// RecordEdits validates and stores a batch of pending edits. Edits that fail
// identity resolution or value coercion are rejected individually; the rest
// are accepted. A rejection is not a batch failure.
func (s *EditorService) RecordEdits(ctx context.Context, actor string, req dto.BatchEditRequest) (*dto.BatchEditResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid edit payload")
	}

	sess := s.session(actor)
	if sess.Snapshot() == nil {
		loaded, err := s.load(ctx)
		if err != nil {
			return nil, err
		}
		sess.ReplaceSnapshot(loaded)
	}

	resp := &dto.BatchEditResponse{}
	for _, item := range req.Edits {
		if err := sess.RecordEdit(item); err != nil {
			appErr := appErrors.FromError(err)
			resp.Rejections = append(resp.Rejections, dto.EditRejection{
				EmpID:  item.EmpID,
				Field:  item.Field,
				Code:   appErr.Code,
				Reason: appErr.Message,
			})
			s.logger.Warn("edit rejected",
				zap.Int64("emp_id", item.EmpID),
				zap.String("field", item.Field),
				zap.String("code", appErr.Code),
			)
			continue
		}
		resp.Accepted++
	}
	return resp, nil
}

// Pending lists the accumulated edit set ordered by employee id.
func (s *EditorService) Pending(actor string) *dto.PendingResponse {
	edits := s.session(actor).Pending()
	ids := make([]int64, 0, len(edits))
	for id := range edits {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	resp := &dto.PendingResponse{Pending: make([]dto.PendingEdit, 0, len(ids))}
	for _, id := range ids {
		resp.Pending = append(resp.Pending, dto.PendingEdit{EmpID: id, Edits: edits[id]})
	}
	return resp
}

// Reset discards all pending edits for the operator.
func (s *EditorService) Reset(actor string) {
	s.session(actor).ClearEdits()
}

// Commit diffs the pending edits against the baseline and applies the change
// set in one transaction. On success the snapshot is refreshed first and the
// edit set cleared second: clearing before a successful refresh could lose
// track of what was edited if the refresh fails.
func (s *EditorService) Commit(ctx context.Context, actor string) (*models.CommitResult, error) {
	sess := s.session(actor)
	snapshot := sess.Snapshot()
	if snapshot == nil {
		loaded, err := s.load(ctx)
		if err != nil {
			return nil, err
		}
		sess.ReplaceSnapshot(loaded)
		snapshot = loaded
	}

	changes, warnings := Diff(snapshot, sess.Pending(), actor, s.clock())
	for _, warning := range warnings {
		s.logger.Warn("stale edit", zap.String("detail", warning))
	}
	if s.metrics != nil {
		s.metrics.ObserveDiffSize(len(changes))
	}

	if len(changes) == 0 {
		return &models.CommitResult{AppliedCount: 0, Message: "no changes detected", Warnings: warnings}, nil
	}

	commitID := uuid.NewString()
	if err := s.repo.ApplyChanges(ctx, commitID, actor, changes); err != nil {
		if s.metrics != nil {
			s.metrics.RecordCommit(false, 0)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrPartialFailure.Code, appErrors.ErrPartialFailure.Status, "commit rolled back, please retry")
	}

	if s.metrics != nil {
		s.metrics.RecordCommit(true, len(changes))
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, "analytics:*"); err != nil {
			s.logger.Warn("analytics cache invalidation failed", zap.Error(err))
		}
	}

	result := &models.CommitResult{
		CommitID:     commitID,
		AppliedCount: len(changes),
		Message:      fmt.Sprintf("%d record(s) updated", len(changes)),
		Warnings:     warnings,
	}

	refreshed, err := s.load(ctx)
	if err != nil {
		// The transaction stands; keep the edits so nothing is lost and let
		// the operator re-load.
		s.logger.Error("snapshot refresh after commit failed", zap.String("commit_id", commitID), zap.Error(err))
		result.Warnings = append(result.Warnings, "committed, but snapshot refresh failed; reload before further edits")
		return result, nil
	}
	sess.ReplaceSnapshot(refreshed)
	sess.ClearEdits()

	s.logger.Info("commit applied",
		zap.String("commit_id", commitID),
		zap.String("actor", actor),
		zap.Int("applied", len(changes)),
	)
	return result, nil
}

// SnapshotDataset renders the operator's baseline as an exportable dataset.
func (s *EditorService) SnapshotDataset(ctx context.Context, actor string) (export.Dataset, error) {
	resp, err := s.Snapshot(ctx, actor, false)
	if err != nil {
		return export.Dataset{}, err
	}

	data := export.Dataset{
		Headers: []string{"emp_id", "emp_name", "salary", "designation", "changed_by", "reason", "changed_time"},
		Rows:    make([]map[string]string, 0, len(resp.Rows)),
	}
	for _, row := range resp.Rows {
		changedTime := ""
		if row.ChangedTime != nil {
			changedTime = row.ChangedTime.UTC().Format(time.RFC3339)
		}
		data.Rows = append(data.Rows, map[string]string{
			"emp_id":       strconv.FormatInt(row.EmpID, 10),
			"emp_name":     row.EmpName,
			"salary":       strconv.FormatFloat(row.Salary, 'f', 2, 64),
			"designation":  row.Designation,
			"changed_by":   row.ChangedBy,
			"reason":       string(row.Reason),
			"changed_time": changedTime,
		})
	}
	return data, nil
}
