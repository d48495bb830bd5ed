package selector

// Intner is the slice of *rand.Rand we need.
type Intner interface {
	Intn(n int) int
}

// Select picks one of items at random with probability proportional to weight(item).
// Items weighing zero or less are never picked. If nothing has any weight
// we return false. The summed weight must fit in an int.
//
// Items are walked in the order given so a fixed rng seed & a fixed item order
// always land on the same result.
func Select[T any](items []T, weight func(T) int, rng Intner) (T, bool) {
	var none T

	total := 0
	eligible := make([]T, 0, len(items))
	for _, item := range items {
		w := weight(item)
		if w <= 0 {
			continue
		}
		total += w
		eligible = append(eligible, item)
	}
	if len(eligible) == 0 {
		return none, false
	}

	rv := rng.Intn(total)
	sofar := 0
	for _, item := range eligible {
		sofar += weight(item)
		if sofar > rv {
			return item, true
		}
	}

	// shouldn't happen, but never come back empty handed with a non empty list
	return eligible[len(eligible)-1], true
}
