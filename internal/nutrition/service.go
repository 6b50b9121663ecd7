package nutrition

import (
	"context"
	"fmt"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Save validates and stores the nutrition facts for a menu item,
// replacing whatever was there before.
func (s *Service) Save(ctx context.Context, menuItemID int64, f Facts) (*Facts, error) {
	if menuItemID <= 0 {
		return nil, fmt.Errorf("invalid menu item id")
	}
	for label, v := range map[string]float64{
		"calories":  f.Calories,
		"protein_g": f.ProteinG,
		"carbs_g":   f.CarbsG,
		"fat_g":     f.FatG,
		"sodium_mg": f.SodiumMg,
	} {
		if v < 0 {
			return nil, fmt.Errorf("%s must not be negative", label)
		}
	}

	f.MenuItemID = menuItemID
	f.ServingSize = strings.TrimSpace(f.ServingSize)
	f.Ingredients = cleanIngredients(f.Ingredients)

	if err := s.repo.Upsert(ctx, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *Service) Get(ctx context.Context, menuItemID int64) (*Facts, error) {
	return s.repo.GetByMenuItem(ctx, menuItemID)
}

func (s *Service) Delete(ctx context.Context, menuItemID int64) error {
	return s.repo.Delete(ctx, menuItemID)
}

func cleanIngredients(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
