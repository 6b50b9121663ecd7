package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/jie0129/AI-Restaurant-Menu-System-sub000/internal/units"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

var ErrNotFound = errors.New("no recommendation for menu item")

const (
	// TargetMargin is the gross margin the kitchen aims for on every dish.
	TargetMargin = 0.65

	demandWindowDays = 7
	demandHigh       = 1.1
	demandLow        = 0.9
	demandNudge      = 0.05

	// maxSwing caps how far a recommendation may move from the current price.
	maxSwing = 0.15

	cacheKey = "pricing:recommendations"
	cacheTTL = 5 * time.Minute
)

// --------------------------------------------------
// Service
// --------------------------------------------------

type Service struct {
	repo  Repository
	units units.Table
	cache *redis.Client
	llm   RationaleModel
}

// NewService builds the pricing service. cache and llm are optional; pass
// nil to disable caching and generated rationales.
func NewService(repo Repository, table units.Table, cache *redis.Client, llm RationaleModel) *Service {
	return &Service{repo: repo, units: table, cache: cache, llm: llm}
}

// Recommendations computes price advice for every menu item that has a
// recipe. Results are cached briefly since the inputs only change when
// inventory or forecasts do.
func (s *Service) Recommendations(ctx context.Context) ([]Recommendation, error) {
	if cached, ok := s.fromCache(ctx); ok {
		return cached, nil
	}

	recs, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	s.toCache(ctx, recs)
	return recs, nil
}

// Refresh recomputes recommendations, replacing whatever is cached.
func (s *Service) Refresh(ctx context.Context) ([]Recommendation, error) {
	recs, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, recs)
	return recs, nil
}

// RecommendationFor returns the advice for a single menu item, with a
// short generated rationale when a language model is configured.
func (s *Service) RecommendationFor(ctx context.Context, menuItemID int64) (*Recommendation, error) {
	recs, err := s.Recommendations(ctx)
	if err != nil {
		return nil, err
	}
	for i := range recs {
		if recs[i].MenuItemID == menuItemID {
			rec := recs[i]
			rec.Rationale = s.rationale(ctx, rec)
			return &rec, nil
		}
	}
	return nil, ErrNotFound
}

// --------------------------------------------------
// Computation
// --------------------------------------------------

func (s *Service) compute(ctx context.Context) ([]Recommendation, error) {
	lines, err := s.repo.CostLines(ctx)
	if err != nil {
		return nil, err
	}

	factors, err := s.demandFactors(ctx)
	if err != nil {
		return nil, err
	}

	var order []int64
	byItem := map[int64]*Recommendation{}
	for _, l := range lines {
		rec, ok := byItem[l.MenuItemID]
		if !ok {
			rec = &Recommendation{
				MenuItemID:   l.MenuItemID,
				Name:         l.MenuItem,
				CurrentPrice: l.Price,
			}
			byItem[l.MenuItemID] = rec
			order = append(order, l.MenuItemID)
		}

		qty, err := s.units.Convert(l.Quantity, l.Unit, l.StockUnit)
		if err != nil {
			logger.Warn().Err(err).Msgf("Skipping cost line %s for %s", l.Ingredient, l.MenuItem)
			continue
		}
		rec.UnitCost += qty * l.UnitCost
	}

	recs := make([]Recommendation, 0, len(order))
	for _, id := range order {
		rec := byItem[id]
		s.price(rec, factors[id])
		recs = append(recs, *rec)
	}
	return recs, nil
}

// price fills in the derived fields of a recommendation in place.
func (s *Service) price(rec *Recommendation, factor float64) {
	if factor == 0 {
		factor = 1
	}
	rec.DemandFactor = factor

	if rec.CurrentPrice > 0 {
		rec.Margin = (rec.CurrentPrice - rec.UnitCost) / rec.CurrentPrice
	}

	if rec.UnitCost <= 0 {
		// Nothing costed, so there is nothing to recommend against.
		rec.TargetPrice = rec.CurrentPrice
		rec.RecommendedPrice = rec.CurrentPrice
		rec.Reason = "no costed recipe; holding the current price"
		return
	}

	target := rec.UnitCost / (1 - TargetMargin)
	rec.TargetPrice = units.Round(target, 2)

	proposed := target
	reason := fmt.Sprintf("prices the %.2f ingredient cost at the %.0f%% margin target",
		rec.UnitCost, TargetMargin*100)
	if factor > demandHigh {
		proposed = target * (1 + demandNudge)
		reason = fmt.Sprintf("forecast demand runs %.2fx recent sales; %.0f%% margin target plus a %.0f%% premium",
			factor, TargetMargin*100, demandNudge*100)
	} else if factor < demandLow {
		proposed = target * (1 - demandNudge)
		reason = fmt.Sprintf("forecast demand runs %.2fx recent sales; %.0f%% margin target less a %.0f%% discount",
			factor, TargetMargin*100, demandNudge*100)
	}

	// Never move more than maxSwing away from what customers pay today.
	clamped := false
	if floor := rec.CurrentPrice * (1 - maxSwing); proposed < floor {
		proposed = floor
		clamped = true
	}
	if ceil := rec.CurrentPrice * (1 + maxSwing); proposed > ceil {
		proposed = ceil
		clamped = true
	}
	if clamped {
		reason += fmt.Sprintf("; held within %.0f%% of the current price", maxSwing*100)
	}
	rec.Reason = reason
	rec.RecommendedPrice = units.Round(proposed, 2)
}

// demandFactors maps menu item id to predicted demand over the next
// window divided by actual sales over the trailing window. Items with
// an empty side of the ratio are absent and price on factor 1.0.
func (s *Service) demandFactors(ctx context.Context) (map[int64]float64, error) {
	signals, err := s.repo.DemandSignals(ctx, demandWindowDays)
	if err != nil {
		return nil, err
	}
	factors := make(map[int64]float64, len(signals))
	for _, sig := range signals {
		if sig.PredictedQty > 0 && sig.ActualQty > 0 {
			factors[sig.MenuItemID] = sig.PredictedQty / sig.ActualQty
		}
	}
	return factors, nil
}

// --------------------------------------------------
// Cache
// --------------------------------------------------

func (s *Service) fromCache(ctx context.Context) ([]Recommendation, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, cacheKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Error().Err(err).Msg("Error reading pricing cache")
		}
		return nil, false
	}
	var recs []Recommendation
	if err := json.Unmarshal([]byte(raw), &recs); err != nil {
		logger.Warn().Err(err).Msg("Pricing cache entry corrupt, recomputing")
		return nil, false
	}
	return recs, true
}

func (s *Service) toCache(ctx context.Context, recs []Recommendation) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(recs)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey, data, cacheTTL).Err(); err != nil {
		logger.Error().Err(err).Msg("Error writing pricing cache")
		return
	}
	logger.Info().Msgf("Cached %d pricing recommendations", len(recs))
}
