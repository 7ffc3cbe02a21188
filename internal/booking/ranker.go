package booking

import (
	"cmp"
	"slices"
)

// Rank returns a copy of options sorted by rating, highest first. Unrated
// options count as 0 and ties keep their input order.
func Rank(options []Option) []Option {
	ranked := slices.Clone(options)
	slices.SortStableFunc(ranked, func(a, b Option) int {
		return cmp.Compare(b.RatingValue(), a.RatingValue())
	})
	return ranked
}

// Confirm returns the options picked by 1-based selection indices. Indices out
// of range, pointing at unavailable options, or already picked are skipped.
func Confirm(options []Option, selection []int) []Option {
	var confirmed []Option
	seen := make(map[int]bool, len(selection))

	for _, n := range selection {
		i := n - 1
		if i < 0 || i >= len(options) || seen[i] || !options[i].Available {
			continue
		}
		seen[i] = true
		confirmed = append(confirmed, options[i])
	}

	return confirmed
}
