package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrdesk/review-api/internal/models"
	appErrors "github.com/hrdesk/review-api/pkg/errors"
)

type analyticsRepoStub struct {
	summaries []models.SalarySummary
	err       error
	calls     int
}

func (s *analyticsRepoStub) SalarySummary(ctx context.Context) ([]models.SalarySummary, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.summaries, nil
}

// cacheRepoStub is an in-memory CacheRepository.
type cacheRepoStub struct {
	values map[string][]models.SalarySummary
}

func (s *cacheRepoStub) Get(ctx context.Context, key string, dest interface{}) error {
	v, ok := s.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	*(dest.(*[]models.SalarySummary)) = v
	return nil
}

func (s *cacheRepoStub) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if s.values == nil {
		s.values = map[string][]models.SalarySummary{}
	}
	s.values[key] = value.([]models.SalarySummary)
	return nil
}

func (s *cacheRepoStub) DeleteByPattern(ctx context.Context, pattern string) error {
	s.values = map[string][]models.SalarySummary{}
	return nil
}

func TestAnalyticsServiceSalarySummary(t *testing.T) {
	repo := &analyticsRepoStub{summaries: []models.SalarySummary{
		{Designation: "Eng", Headcount: 2, AvgSalary: 52500, MinSalary: 50000, MaxSalary: 55000},
	}}
	svc := NewAnalyticsService(repo, nil, nil, nil)

	summaries, cached, err := svc.SalarySummary(context.Background())
	require.NoError(t, err)
	assert.False(t, cached)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Eng", summaries[0].Designation)
}

func TestAnalyticsServiceSalarySummaryUsesCache(t *testing.T) {
	repo := &analyticsRepoStub{summaries: []models.SalarySummary{{Designation: "Eng", Headcount: 1}}}
	cache := NewCacheService(&cacheRepoStub{}, nil, time.Minute, nil, true)
	svc := NewAnalyticsService(repo, cache, nil, nil)

	_, cached, err := svc.SalarySummary(context.Background())
	require.NoError(t, err)
	assert.False(t, cached)

	_, cached, err = svc.SalarySummary(context.Background())
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, 1, repo.calls)
}

func TestAnalyticsServiceSalarySummaryError(t *testing.T) {
	repo := &analyticsRepoStub{err: errors.New("boom")}
	svc := NewAnalyticsService(repo, nil, nil, nil)

	_, _, err := svc.SalarySummary(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrStoreUnavailable.Code, appErrors.FromError(err).Code)
}
