package domain

// AllCategories is the filter sentinel that matches every quote.
const AllCategories = "All Categories"

// CategoryOptions returns the filter option set for a collection:
// AllCategories followed by each distinct category in first-occurrence order.
// Categories are compared by exact string equality.
func CategoryOptions(quotes Collection) []string {
	options := make([]string, 0, len(quotes)+1)
	options = append(options, AllCategories)

	seen := make(map[string]struct{}, len(quotes))
	for _, q := range quotes {
		if _, ok := seen[q.Category]; ok {
			continue
		}

		seen[q.Category] = struct{}{}
		options = append(options, q.Category)
	}

	return options
}

// FilterByCategory returns the quotes matching filter.
// AllCategories selects the whole collection.
func FilterByCategory(quotes Collection, filter string) Collection {
	if filter == AllCategories {
		return quotes.Clone()
	}

	matched := make(Collection, 0)
	for _, q := range quotes {
		if q.Category == filter {
			matched = append(matched, q)
		}
	}

	return matched
}

// PickRandom selects one quote matching filter using pick, which must return
// a value in [0, n). The boolean is false when no quote matches.
func PickRandom(quotes Collection, filter string, pick func(n int) int) (Quote, bool) {
	candidates := FilterByCategory(quotes, filter)
	if len(candidates) == 0 {
		return Quote{}, false
	}

	return candidates[pick(len(candidates))], true
}
