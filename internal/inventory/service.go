// Package inventory implements the dashboard data flow: one in-memory
// list mirroring the server, replaced wholesale on every fetch, with pure
// filtering and statistics on top.
package inventory

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/labstock-id/labstock/internal/api"
	"github.com/labstock-id/labstock/internal/models"
)

// LowStockThreshold is the fixed quantity at or below which an item
// counts as low stock on the dashboard.
const LowStockThreshold = 5

// Stats are derived from the current list on demand, never maintained
// incrementally.
type Stats struct {
	TotalItems    int
	TotalQuantity int
	Categories    int
	LowStock      int
}

// Service holds the read-through item list. Mutations never patch the
// list locally; every successful mutation triggers a full re-fetch, so
// the list always reflects the last successful server read.
type Service struct {
	mu    sync.Mutex
	api   *api.Client
	items []models.Item
}

func NewService(client *api.Client) *Service {
	return &Service{api: client}
}

// FetchAll replaces the whole list with the server's. On failure the
// previous list is kept (stale but available) and the error is returned.
func (s *Service) FetchAll(ctx context.Context) error {
	items, err := s.api.ListItems(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

// Items returns a snapshot of the current list.
func (s *Service) Items() []models.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Create adds an item and re-fetches the list. A failed re-fetch after a
// successful create is logged, not returned: the create itself succeeded.
func (s *Service) Create(ctx context.Context, in models.ItemInput) (models.Item, error) {
	created, err := s.api.CreateItem(ctx, in)
	if err != nil {
		return models.Item{}, err
	}
	s.refetch(ctx)
	return created, nil
}

// Update edits an item and re-fetches the list.
func (s *Service) Update(ctx context.Context, id string, in models.ItemInput) (models.Item, error) {
	updated, err := s.api.UpdateItem(ctx, id, in)
	if err != nil {
		return models.Item{}, err
	}
	s.refetch(ctx)
	return updated, nil
}

// Delete removes an item and re-fetches the list.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteItem(ctx, id); err != nil {
		return err
	}
	s.refetch(ctx)
	return nil
}

func (s *Service) refetch(ctx context.Context) {
	if err := s.FetchAll(ctx); err != nil {
		log.Printf("failed to reload inventory: %v", err)
	}
}

// Filter returns the current items matching query.
func (s *Service) Filter(query string) []models.Item {
	return FilterItems(s.Items(), query)
}

// Stats computes statistics over the current list.
func (s *Service) Stats() Stats {
	return ComputeStats(s.Items())
}

// FilterItems matches query case-insensitively against name, category and
// description. An empty query returns items unchanged.
func FilterItems(items []models.Item, query string) []models.Item {
	if query == "" {
		return items
	}
	q := strings.ToLower(query)
	var matched []models.Item
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), q) ||
			strings.Contains(strings.ToLower(item.Category), q) ||
			strings.Contains(strings.ToLower(item.Description), q) {
			matched = append(matched, item)
		}
	}
	return matched
}

// ComputeStats derives dashboard statistics from items in a single pass.
func ComputeStats(items []models.Item) Stats {
	stats := Stats{TotalItems: len(items)}
	categories := make(map[string]struct{})
	for _, item := range items {
		stats.TotalQuantity += item.Quantity
		categories[item.Category] = struct{}{}
		if item.Quantity <= LowStockThreshold {
			stats.LowStock++
		}
	}
	stats.Categories = len(categories)
	return stats
}
