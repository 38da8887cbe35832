package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"admindash/internal/cache"
	"admindash/internal/config"
	"admindash/internal/model"
	"admindash/internal/repository"
)

const overviewCacheKey = "analytics:overview"

type AnalyticsService struct {
	analytics repository.AnalyticsRepository
	users     repository.UserRepository
	cache     cache.Cache
	configMgr *config.Manager
	now       func() time.Time
}

func NewAnalyticsService(analytics repository.AnalyticsRepository, users repository.UserRepository, c cache.Cache, configMgr *config.Manager) *AnalyticsService {
	if c == nil {
		c = cache.NewNoOpCache()
	}
	return &AnalyticsService{
		analytics: analytics,
		users:     users,
		cache:     c,
		configMgr: configMgr,
		now:       time.Now,
	}
}

// SetNow overrides the clock, for tests.
func (s *AnalyticsService) SetNow(now func() time.Time) {
	s.now = now
}

type RecordEventInput struct {
	MetricType model.MetricType `json:"metricType"`
	Value      float64          `json:"value"`
	Metadata   map[string]any   `json:"metadata"`
}

// Record appends one metric event. The only validation is metric-type
// enum membership. The cached overview is invalidated so the next read
// reflects the new event.
func (s *AnalyticsService) Record(ctx context.Context, in RecordEventInput) (*model.AnalyticsEvent, error) {
	if !in.MetricType.Valid() {
		return nil, invalidRequest("invalid metricType")
	}

	event := &model.AnalyticsEvent{
		MetricType: in.MetricType,
		Value:      in.Value,
		Metadata:   in.Metadata,
	}
	if err := s.analytics.Insert(ctx, event); err != nil {
		return nil, err
	}

	if err := s.cache.Delete(ctx, overviewCacheKey); err != nil {
		slog.Warn("failed to invalidate overview cache", "error", err)
	}
	return event, nil
}

// Overview returns the point-in-time dashboard snapshot. The result is
// cached for a short TTL; staleness within that window is acceptable.
func (s *AnalyticsService) Overview(ctx context.Context) (model.Overview, error) {
	if raw, err := s.cache.Get(ctx, overviewCacheKey); err == nil {
		var cached model.Overview
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return cached, nil
		}
	}

	now := s.now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var overview model.Overview
	var err error

	if overview.TotalUsers, err = s.users.CountAll(ctx); err != nil {
		return overview, err
	}
	if overview.ActiveUsers, err = s.users.CountActive(ctx); err != nil {
		return overview, err
	}
	if overview.TodaySignups, err = s.users.CountCreatedSince(ctx, midnight); err != nil {
		return overview, err
	}
	if overview.TodayLogins, err = s.analytics.CountSince(ctx, model.MetricUserLogin, midnight); err != nil {
		return overview, err
	}
	if overview.TotalSales, err = s.analytics.SumAll(ctx, model.MetricSales); err != nil {
		return overview, err
	}
	overview.Timestamp = now

	if raw, err := json.Marshal(overview); err == nil {
		ttl := time.Duration(s.configMgr.Get().Analytics.OverviewCacheSeconds) * time.Second
		if err := s.cache.Set(ctx, overviewCacheKey, string(raw), ttl); err != nil {
			slog.Warn("failed to cache overview", "error", err)
		}
	}
	return overview, nil
}

// SignupsTrend buckets user creations by UTC calendar day over a
// trailing window. days <= 0 selects the configured default.
func (s *AnalyticsService) SignupsTrend(ctx context.Context, days int) ([]model.TrendPoint, error) {
	return s.users.SignupsTrend(ctx, s.windowStart(days, s.configMgr.Get().Analytics.DefaultTrendDays))
}

// ActivityTrend buckets user_login events by UTC calendar day.
func (s *AnalyticsService) ActivityTrend(ctx context.Context, days int) ([]model.TrendPoint, error) {
	return s.analytics.CountTrend(ctx, model.MetricUserLogin, s.windowStart(days, s.configMgr.Get().Analytics.DefaultTrendDays))
}

// SalesTrend sums sales event values by UTC calendar day.
func (s *AnalyticsService) SalesTrend(ctx context.Context, days int) ([]model.SalesTrendPoint, error) {
	return s.analytics.SumTrend(ctx, model.MetricSales, s.windowStart(days, s.configMgr.Get().Analytics.DefaultSalesDays))
}

func (s *AnalyticsService) windowStart(days, fallback int) time.Time {
	if days <= 0 {
		days = fallback
	}
	return s.now().UTC().AddDate(0, 0, -days)
}
