package forecast

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultHorizonDays is the window used for charts and stockout projection.
const DefaultHorizonDays = 14

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) UpsertSeries(ctx context.Context, menuItemID int64, points []Point) error {
	if len(points) == 0 {
		return errors.New("at least one forecast point is required")
	}

	for i, p := range points {
		if _, err := time.Parse(DayFormat, p.Day); err != nil {
			return fmt.Errorf("point %d: day must be YYYY-MM-DD", i)
		}
		if p.PredictedQty < 0 {
			return fmt.Errorf("point %d: predicted_qty must not be negative", i)
		}
	}

	return s.repo.UpsertSeries(ctx, menuItemID, points)
}

func (s *Service) Series(ctx context.Context, menuItemID int64, days int) ([]Point, error) {
	if days <= 0 {
		days = DefaultHorizonDays
	}
	return s.repo.Series(ctx, menuItemID, days)
}

// Chart renders the series as an SVG document.
func (s *Service) Chart(ctx context.Context, menuItemID int64, days int) (string, error) {
	points, err := s.Series(ctx, menuItemID, days)
	if err != nil {
		return "", err
	}
	return RenderChart(points), nil
}

// ProjectedUsage is what the stockout alert producer consumes.
func (s *Service) ProjectedUsage(ctx context.Context, days int) ([]UsageLine, error) {
	if days <= 0 {
		days = DefaultHorizonDays
	}
	return s.repo.ProjectedUsage(ctx, days)
}
