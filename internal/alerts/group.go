package alerts

// Group merges duplicate alerts in one linear pass. Two alerts are
// duplicates when they share ingredient name and type; their messages are
// joined with "; " and the newest CreatedAt wins. First-seen order is kept.
func Group(in []Alert) []Alert {
	type key struct {
		name string
		typ  string
	}

	index := make(map[key]int)
	var out []Alert

	for _, a := range in {
		k := key{a.IngredientName, a.Type}
		if i, ok := index[k]; ok {
			out[i].Message += "; " + a.Message
			if a.CreatedAt.After(out[i].CreatedAt) {
				out[i].CreatedAt = a.CreatedAt
			}
			continue
		}
		index[k] = len(out)
		out = append(out, a)
	}

	return out
}

// Combine collapses an ingredient holding both a low_stock and a
// predicted_stockout alert into a single combined alert: messages joined,
// newest CreatedAt, severity raised to critical. Input must already be
// grouped. The combined alert takes the earlier alert's position.
func Combine(in []Alert) []Alert {
	type pair struct {
		low int
		out int
	}

	pairs := make(map[string]*pair)
	for i, a := range in {
		p, ok := pairs[a.IngredientName]
		if !ok {
			p = &pair{low: -1, out: -1}
			pairs[a.IngredientName] = p
		}
		switch a.Type {
		case TypeLowStock:
			p.low = i
		case TypePredictedStockout:
			p.out = i
		}
	}

	merged := make([]Alert, len(in))
	copy(merged, in)
	drop := make(map[int]bool)

	for _, p := range pairs {
		if p.low < 0 || p.out < 0 {
			continue
		}

		first, second := p.low, p.out
		if second < first {
			first, second = second, first
		}

		a := merged[first]
		a.Type = TypeCombined
		a.Severity = SeverityCritical
		a.Message = merged[first].Message + "; " + merged[second].Message
		if merged[second].CreatedAt.After(a.CreatedAt) {
			a.CreatedAt = merged[second].CreatedAt
		}

		merged[first] = a
		drop[second] = true
	}

	var out []Alert
	for i, a := range merged {
		if !drop[i] {
			out = append(out, a)
		}
	}
	return out
}
