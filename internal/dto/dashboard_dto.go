package dto

// SummaryResponse aggregates counts per administrative status label and per
// derived stock status. Recomputed on demand, trading performance for correctness
// at this scale.
type SummaryResponse struct {
	Total         int64            `json:"total"`
	ByStatus      map[string]int64 `json:"by_status"`
	ByStockStatus map[string]int64 `json:"by_stock_status"`
}
