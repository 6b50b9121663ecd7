package forecast

import (
	"context"
	"sort"
)

// InMemoryRepository backs handler tests. Series ignores the history
// window and returns everything stored.
type InMemoryRepository struct {
	series map[int64]map[string]Point
	usage  []UsageLine
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		series: make(map[int64]map[string]Point),
	}
}

func (r *InMemoryRepository) UpsertSeries(_ context.Context, menuItemID int64, points []Point) error {
	byDay, ok := r.series[menuItemID]
	if !ok {
		byDay = make(map[string]Point)
		r.series[menuItemID] = byDay
	}

	for _, p := range points {
		if existing, ok := byDay[p.Day]; ok {
			existing.PredictedQty = p.PredictedQty
			byDay[p.Day] = existing
			continue
		}
		byDay[p.Day] = p
	}
	return nil
}

func (r *InMemoryRepository) Series(_ context.Context, menuItemID int64, _ int) ([]Point, error) {
	var points []Point
	for _, p := range r.series[menuItemID] {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Day < points[j].Day })
	return points, nil
}

func (r *InMemoryRepository) SetUsage(lines []UsageLine) {
	r.usage = lines
}

func (r *InMemoryRepository) ProjectedUsage(_ context.Context, _ int) ([]UsageLine, error) {
	return append([]UsageLine(nil), r.usage...), nil
}

func (r *InMemoryRepository) RollupActuals(_ context.Context) (int64, error) {
	return 0, nil
}
