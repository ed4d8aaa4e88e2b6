package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bistrohq/bistro/app/models"
	"github.com/bistrohq/bistro/app/services"
	"github.com/bistrohq/bistro/pkg/storage"
)

// fakeStatsStore replicates the store-side aggregation over in-memory data:
// every menu item referenced by every payment is joined to the catalog and
// partitioned by category.
type fakeStatsStore struct {
	users    int64
	menu     map[primitive.ObjectID]models.MenuItem
	payments []models.Payment
	err      error
}

func (f *fakeStatsStore) Overview(_ context.Context) (*models.OrderStats, error) {
	if f.err != nil {
		return nil, f.err
	}
	var revenue float64
	for _, p := range f.payments {
		revenue += p.Price
	}
	return &models.OrderStats{
		Users:    f.users,
		Products: int64(len(f.menu)),
		Orders:   int64(len(f.payments)),
		Revenue:  revenue,
	}, nil
}

func (f *fakeStatsStore) CategoryBreakdown(_ context.Context) ([]models.CategoryBucket, error) {
	if f.err != nil {
		return nil, f.err
	}
	byCategory := map[string]*models.CategoryBucket{}
	for _, p := range f.payments {
		for _, id := range p.MenuItems {
			item, ok := f.menu[id]
			if !ok {
				continue
			}
			b := byCategory[item.Category]
			if b == nil {
				b = &models.CategoryBucket{Category: item.Category}
				byCategory[item.Category] = b
			}
			b.Count++
			b.Total = math.Round((b.Total+item.Price)*100) / 100
		}
	}
	out := make([]models.CategoryBucket, 0, len(byCategory))
	for _, b := range byCategory {
		out = append(out, *b)
	}
	return out, nil
}

func seededStatsStore() *fakeStatsStore {
	pizzaA := models.MenuItem{ID: primitive.NewObjectID(), Name: "Margherita", Category: "pizza", Price: 12.50}
	pizzaB := models.MenuItem{ID: primitive.NewObjectID(), Name: "Pepperoni", Category: "pizza", Price: 9.50}
	salad := models.MenuItem{ID: primitive.NewObjectID(), Name: "Caesar", Category: "salad", Price: 8.00}

	return &fakeStatsStore{
		users: 3,
		menu: map[primitive.ObjectID]models.MenuItem{
			pizzaA.ID: pizzaA,
			pizzaB.ID: pizzaB,
			salad.ID:  salad,
		},
		payments: []models.Payment{
			{Price: 22.00, MenuItems: []primitive.ObjectID{pizzaA.ID, pizzaB.ID}},
			{Price: 8.00, MenuItems: []primitive.ObjectID{salad.ID}},
		},
	}
}

func bucketByCategory(t *testing.T, buckets []models.CategoryBucket, category string) models.CategoryBucket {
	t.Helper()
	for _, b := range buckets {
		if b.Category == category {
			return b
		}
	}
	t.Fatalf("no bucket for category %q in %v", category, buckets)
	return models.CategoryBucket{}
}

func TestOverview(t *testing.T) {
	svc := services.NewStatsService(seededStatsStore())

	stats, err := svc.Overview(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 3, stats.Users)
	assert.EqualValues(t, 3, stats.Products)
	assert.EqualValues(t, 2, stats.Orders)
	assert.InDelta(t, 30.00, stats.Revenue, 0.001)
}

func TestCategoryBreakdown(t *testing.T) {
	svc := services.NewStatsService(seededStatsStore())

	buckets, err := svc.CategoryBreakdown(context.Background())
	require.NoError(t, err)
	require.Len(t, buckets, 2)

	pizza := bucketByCategory(t, buckets, "pizza")
	assert.EqualValues(t, 2, pizza.Count)
	assert.InDelta(t, 22.00, pizza.Total, 0.001)

	salad := bucketByCategory(t, buckets, "salad")
	assert.EqualValues(t, 1, salad.Count)
	assert.InDelta(t, 8.00, salad.Total, 0.001)
}

func TestCategoryBreakdown_Idempotent(t *testing.T) {
	svc := services.NewStatsService(seededStatsStore())

	first, err := svc.CategoryBreakdown(context.Background())
	require.NoError(t, err)
	second, err := svc.CategoryBreakdown(context.Background())
	require.NoError(t, err)

	assert.ElementsMatch(t, first, second, "identical data must yield an identical bucket set")
}

func TestStats_StoreError(t *testing.T) {
	svc := services.NewStatsService(&fakeStatsStore{err: errors.New("aggregation failed")})

	_, err := svc.Overview(context.Background())
	assert.ErrorIs(t, err, services.ErrPersistence)

	_, err = svc.CategoryBreakdown(context.Background())
	assert.ErrorIs(t, err, services.ErrPersistence)
}

// An aggregation interrupted by cancellation must surface as an error, never
// as a zero-revenue overview a dashboard would render as real data.
func TestStats_CancelledAggregationIsAnError(t *testing.T) {
	svc := services.NewStatsService(&fakeStatsStore{err: context.Canceled})

	stats, err := svc.Overview(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, stats)
}

// memDisk is an in-memory archive for export tests.
type memDisk struct {
	files map[string][]byte
}

func (d *memDisk) Put(path string, content []byte) error {
	if d.files == nil {
		d.files = map[string][]byte{}
	}
	d.files[path] = content
	return nil
}

func (d *memDisk) Get(path string) ([]byte, error) {
	data, ok := d.files[path]
	if !ok {
		return nil, errors.New("not found: " + path)
	}
	return data, nil
}

func (d *memDisk) Exists(path string) bool { _, ok := d.files[path]; return ok }
func (d *memDisk) Delete(path string) error {
	delete(d.files, path)
	return nil
}
func (d *memDisk) Files(string) ([]string, error) { return nil, nil }
func (d *memDisk) URL(path string) string         { return "http://localhost:5000/storage/" + path }

func TestExport(t *testing.T) {
	disk := &memDisk{}
	storage.RegisterDisk("local", disk)

	svc := services.NewStatsService(seededStatsStore())
	path, err := svc.Export(context.Background())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(path, "reports/order-stats-"), "path %q", path)
	assert.True(t, strings.HasSuffix(path, ".json"), "path %q", path)

	data, err := disk.Get(path)
	require.NoError(t, err)

	var doc struct {
		Stats     models.OrderStats       `json:"stats"`
		Breakdown []models.CategoryBucket `json:"breakdown"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.EqualValues(t, 2, doc.Stats.Orders)
	require.Len(t, doc.Breakdown, 2)
	assert.Equal(t, "pizza", doc.Breakdown[0].Category, "exported buckets are sorted by category")
	assert.Equal(t, "salad", doc.Breakdown[1].Category)
}
