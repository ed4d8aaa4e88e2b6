package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bistrohq/bistro/app/models"
	"github.com/bistrohq/bistro/pkg/collection"
	"github.com/bistrohq/bistro/pkg/storage"
)

// StatsStore is the aggregation-engine contract: both reports run store-side
// and are recomputed freshly on every call.
type StatsStore interface {
	Overview(ctx context.Context) (*models.OrderStats, error)
	CategoryBreakdown(ctx context.Context) ([]models.CategoryBucket, error)
}

// StatsService reads aggregate order reports. It depends only on the
// persisted payment and catalog data, never on other core components.
type StatsService struct {
	stats StatsStore
}

func NewStatsService(stats StatsStore) *StatsService {
	return &StatsService{stats: stats}
}

// Overview returns estimated user/menu/payment counts and total revenue.
func (s *StatsService) Overview(ctx context.Context) (*models.OrderStats, error) {
	stats, err := s.stats.Overview(ctx)
	if err != nil {
		return nil, errors.Join(ErrPersistence, err)
	}
	return stats, nil
}

// CategoryBreakdown returns per-category counts and totals. Identical data
// yields an identical bucket set; no ordering is imposed.
func (s *StatsService) CategoryBreakdown(ctx context.Context) ([]models.CategoryBucket, error) {
	buckets, err := s.stats.CategoryBreakdown(ctx)
	if err != nil {
		return nil, errors.Join(ErrPersistence, err)
	}
	return buckets, nil
}

// exportDocument is the shape written by Export.
type exportDocument struct {
	GeneratedAt time.Time               `json:"generatedAt"`
	Stats       *models.OrderStats      `json:"stats"`
	Breakdown   []models.CategoryBucket `json:"breakdown"`
}

// Export snapshots both reports to the configured storage disk and returns
// the written path.
func (s *StatsService) Export(ctx context.Context) (string, error) {
	stats, err := s.Overview(ctx)
	if err != nil {
		return "", err
	}
	breakdown, err := s.CategoryBreakdown(ctx)
	if err != nil {
		return "", err
	}

	// Buckets carry no ordering guarantee; sort so exported files diff cleanly.
	doc := exportDocument{
		GeneratedAt: time.Now().UTC(),
		Stats:       stats,
		Breakdown: collection.SortBy(breakdown, func(a, b models.CategoryBucket) bool {
			return a.Category < b.Category
		}),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("export: marshal: %w", err)
	}

	path := fmt.Sprintf("reports/order-stats-%s.json", doc.GeneratedAt.Format("20060102-150405"))
	if err := storage.Put(path, data); err != nil {
		return "", fmt.Errorf("export: write %s: %w", path, err)
	}
	return path, nil
}
