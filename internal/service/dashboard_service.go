package service

import (
	"context"
	"strings"

	"github.com/Sabogal22/Sistema-de-inventario/internal/dto"
	"github.com/Sabogal22/Sistema-de-inventario/internal/repository"
	"github.com/Sabogal22/Sistema-de-inventario/internal/stockstatus"
)

// DashboardService is a derived read-model: per-status counts and substring
// search. Everything is recomputed on demand from the item registry.
type DashboardService interface {
	Summary(ctx context.Context) (*dto.SummaryResponse, error)
	Search(ctx context.Context, query string) ([]dto.ItemResponse, error)
}

type dashboardService struct {
	items repository.ItemRepository
}

func NewDashboardService(items repository.ItemRepository) DashboardService {
	return &dashboardService{items: items}
}

func (s *dashboardService) Summary(ctx context.Context) (*dto.SummaryResponse, error) {
	items, err := s.items.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.SummaryResponse{
		Total:         int64(len(items)),
		ByStatus:      make(map[string]int64),
		ByStockStatus: make(map[string]int64),
	}
	for i := range items {
		it := &items[i]
		if it.Status != nil {
			resp.ByStatus[it.Status.Name]++
		}
		derived := stockstatus.Derive(it.Stock, it.MinStock)
		resp.ByStockStatus[string(derived)]++
	}
	return resp, nil
}

// Search returns items whose name or description contains the query
// case-insensitively. A blank query returns an empty result set, not the
// full catalog; the client shows nothing for an empty search box.
func (s *dashboardService) Search(ctx context.Context, query string) ([]dto.ItemResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []dto.ItemResponse{}, nil
	}
	items, err := s.items.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ItemResponse, 0, len(items))
	for i := range items {
		result = append(result, *mapItem(&items[i]))
	}
	return result, nil
}
