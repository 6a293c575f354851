package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hrdesk/review-api/internal/models"
	appErrors "github.com/hrdesk/review-api/pkg/errors"
)

const salarySummaryCacheKey = "analytics:salary_summary"

type analyticsRepo interface {
	SalarySummary(ctx context.Context) ([]models.SalarySummary, error)
}

// AnalyticsService aggregates salary statistics over the employee table,
// with a read-through cache in front of the SQL aggregate. The cache is
// invalidated whenever a commit lands.
type AnalyticsService struct {
	repo    analyticsRepo
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
}

// NewAnalyticsService constructs an analytics service.
func NewAnalyticsService(repo analyticsRepo, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *AnalyticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsService{repo: repo, cache: cache, metrics: metrics, logger: logger}
}

// SalarySummary returns per-designation salary aggregates. The boolean
// indicates whether the payload came from cache.
func (s *AnalyticsService) SalarySummary(ctx context.Context) ([]models.SalarySummary, bool, error) {
	var cached []models.SalarySummary
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, salarySummaryCacheKey, &cached); err != nil {
			return nil, false, fmt.Errorf("get salary summary cache: %w", err)
		} else if hit {
			return cached, true, nil
		}
	}

	start := time.Now()
	summaries, err := s.repo.SalarySummary(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to aggregate salaries")
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("salary_summary", time.Since(start))
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, salarySummaryCacheKey, summaries, 0); err != nil {
			s.logger.Warn("cache salary summary", zap.Error(err))
		}
	}
	return summaries, false, nil
}
