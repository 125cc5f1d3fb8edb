// services/leaderboard_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fazetwerpgit/saleshub_backend/models"
	"github.com/fazetwerpgit/saleshub_backend/repositories"
	"github.com/fazetwerpgit/saleshub_backend/utils"
)

const (
	defaultLeaderboardLimit = 10
	leaderboardCacheTTL     = 30 * time.Second
	leaderboardCachePrefix  = "leaderboard:"
)

// LeaderboardService derives ranked standings from the sale ledger on
// demand. The result is a view, never stored state: only the status
// filter is pushed to the store, the date window is applied in-process
// against each record's business saleDate.
type LeaderboardService struct {
	sales repositories.SaleRepository
	cache *redis.Client
	now   func() time.Time
}

func NewLeaderboardService(sales repositories.SaleRepository, cache *redis.Client) *LeaderboardService {
	return &LeaderboardService{
		sales: sales,
		cache: cache,
		now:   time.Now,
	}
}

// ResolvePeriod maps a period name to its half-open window start. Week
// begins on the most recent Sunday at 00:00 local time, month on the
// 1st, year on Jan 1; all reaches back to the zero time so records with
// a missing saleDate are still included. Unrecognized periods fall back
// to month.
func ResolvePeriod(period string, now time.Time) (string, time.Time) {
	switch period {
	case models.PeriodWeek:
		start := now.AddDate(0, 0, -int(now.Weekday()))
		return models.PeriodWeek, time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, now.Location())
	case models.PeriodYear:
		return models.PeriodYear, time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	case models.PeriodAll:
		return models.PeriodAll, time.Time{}
	case models.PeriodMonth:
		return models.PeriodMonth, time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	default:
		return models.PeriodMonth, time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
}

// Aggregate reads the approved ledger, buckets it into the requested
// window, groups per rep and returns at most limit ranked entries.
// Reps with no approved sale in the window are absent, and an empty
// ledger yields an empty result, never an error.
func (s *LeaderboardService) Aggregate(ctx context.Context, period, metric string, limit int) (*models.LeaderboardResult, error) {
	resolvedPeriod, startDate := ResolvePeriod(period, s.now())

	if metric != models.MetricTotalSales {
		metric = models.MetricTotalPoints
	}
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}

	if cached := s.fromCache(ctx, resolvedPeriod, metric, limit); cached != nil {
		return cached, nil
	}

	sales, err := s.sales.FindByStatus(ctx, models.SaleStatusApproved)
	if err != nil {
		return nil, utils.NewUnavailable("Failed to load sale ledger", err)
	}

	type bucket struct {
		repID   primitive.ObjectID
		repName string
		count   int
		points  int
	}

	buckets := make(map[primitive.ObjectID]*bucket)
	for _, sale := range sales {
		// A missing saleDate decodes to the zero time, which only the
		// "all" window reaches back to.
		if sale.SaleDate.Before(startDate) {
			continue
		}

		b, ok := buckets[sale.SalesRepID]
		if !ok {
			b = &bucket{repID: sale.SalesRepID, repName: sale.SalesRepName}
			buckets[sale.SalesRepID] = b
		}
		b.count++
		b.points += sale.TotalPoints
	}

	ranked := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		ranked = append(ranked, b)
	}

	sort.Slice(ranked, func(i, j int) bool {
		var ki, kj int
		if metric == models.MetricTotalSales {
			ki, kj = ranked[i].count, ranked[j].count
		} else {
			ki, kj = ranked[i].points, ranked[j].points
		}
		if ki != kj {
			return ki > kj
		}
		// Deterministic tie-break: ascending rep id
		return ranked[i].repID.Hex() < ranked[j].repID.Hex()
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	entries := make([]models.LeaderboardEntry, 0, len(ranked))
	for i, b := range ranked {
		entries = append(entries, models.LeaderboardEntry{
			Rank:         i + 1,
			SalesRepID:   b.repID,
			SalesRepName: b.repName,
			TotalSales:   b.count,
			TotalPoints:  b.points,
		})
	}

	result := &models.LeaderboardResult{
		Period:    resolvedPeriod,
		Metric:    metric,
		StartDate: startDate,
		Entries:   entries,
	}

	s.toCache(ctx, resolvedPeriod, metric, limit, result)

	return result, nil
}

// InvalidateCache drops all cached leaderboard views. Called after an
// approval so standings never lag more than a cache miss behind the
// ledger.
func (s *LeaderboardService) InvalidateCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}

	keys, err := s.cache.Keys(ctx, leaderboardCachePrefix+"*").Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.cache.Del(ctx, keys...).Err()
}

func cacheKey(period, metric string, limit int) string {
	return fmt.Sprintf("%s%s:%s:%d", leaderboardCachePrefix, period, metric, limit)
}

func (s *LeaderboardService) fromCache(ctx context.Context, period, metric string, limit int) *models.LeaderboardResult {
	if s.cache == nil {
		return nil
	}

	data, err := s.cache.Get(ctx, cacheKey(period, metric, limit)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Leaderboard cache read failed: %v", err)
		}
		return nil
	}

	var result models.LeaderboardResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		log.Printf("Leaderboard cache decode failed: %v", err)
		return nil
	}
	return &result
}

func (s *LeaderboardService) toCache(ctx context.Context, period, metric string, limit int, result *models.LeaderboardResult) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey(period, metric, limit), data, leaderboardCacheTTL).Err(); err != nil {
		log.Printf("Leaderboard cache write failed: %v", err)
	}
}
