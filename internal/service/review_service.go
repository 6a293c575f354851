package service

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/hrdesk/review-api/internal/ledger"
	"github.com/hrdesk/review-api/internal/models"
	appErrors "github.com/hrdesk/review-api/pkg/errors"
)

// ReviewService serves the per-page approval and text-edit flows. Both
// ledgers are loaded once at startup and treated as the sole source of truth
// afterwards; every mutation is persisted before it becomes visible.
type ReviewService struct {
	status    *ledger.StatusLedger
	texts     *ledger.TextLedger
	pageCount int
	logger    *zap.Logger
}

// NewReviewService constructs a ReviewService. pageCount fixes the number of
// document pages; when zero, the highest page present in the text ledger is
// used instead.
func NewReviewService(status *ledger.StatusLedger, texts *ledger.TextLedger, pageCount int, logger *zap.Logger) *ReviewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReviewService{status: status, texts: texts, pageCount: pageCount, logger: logger}
}

func (s *ReviewService) lastPage() int {
	last := s.pageCount
	for _, page := range s.texts.Pages() {
		if page > last {
			last = page
		}
	}
	return last
}

func (s *ReviewService) view(page int) models.PageView {
	return models.PageView{Page: page, Status: s.status.Status(page), Text: s.texts.Text(page)}
}

// Pages returns the view for every known page in order.
func (s *ReviewService) Pages() []models.PageView {
	last := s.lastPage()
	views := make([]models.PageView, 0, last)
	for page := 1; page <= last; page++ {
		views = append(views, s.view(page))
	}
	return views
}

// Progress reports how many pages are approved out of the total.
func (s *ReviewService) Progress() (approved, total int) {
	return s.status.ApprovedCount(), s.lastPage()
}

// Page returns one page's status and current text.
func (s *ReviewService) Page(page int) (*models.PageView, error) {
	if page < 1 || page > s.lastPage() {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("page %d does not exist", page))
	}
	view := s.view(page)
	return &view, nil
}

// Approve marks a page approved. The transition is one-directional and the
// ledger hits disk before the new state is reported.
func (s *ReviewService) Approve(page int) (*models.PageView, error) {
	if page < 1 || page > s.lastPage() {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("page %d does not exist", page))
	}
	if err := s.status.Approve(page); err != nil {
		if errors.Is(err, ledger.ErrAlreadyApproved) {
			return nil, appErrors.Clone(appErrors.ErrPageApproved, fmt.Sprintf("page %d is already approved", page))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist approval")
	}
	s.logger.Info("page approved", zap.Int("page", page))
	view := s.view(page)
	return &view, nil
}

// SaveText replaces a page's editable text, appending a ledger record for
// pages saved for the first time. Saving is independent of approval status.
func (s *ReviewService) SaveText(page int, text string) (*models.PageView, error) {
	if page < 1 || page > s.lastPage() {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("page %d does not exist", page))
	}
	if err := s.texts.SaveText(page, text); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist text")
	}
	s.logger.Info("page text saved", zap.Int("page", page), zap.Int("length", len(text)))
	view := s.view(page)
	return &view, nil
}
