// internal/service/segment/aggregator.go
package segment

import (
	"sort"

	"artisan-catalog-service/internal/domain/customer"
)

// Aggregate computes tag->count groupings over a customer snapshot.
// A customer carrying the same tag more than once still counts once.
// Output is ordered by count descending, ties broken by tag ascending,
// so groupings are stable across calls for a fixed snapshot.
//
// The result is derived, never cached: audience sizes shown to the
// artisan must reflect the snapshot they were computed from.
func Aggregate(customers []customer.Customer) []customer.TagGroup {
	counts := make(map[string]int)
	for _, c := range customers {
		seen := make(map[string]struct{}, len(c.Tags))
		for _, tag := range c.Tags {
			if _, dup := seen[tag]; dup {
				continue
			}
			seen[tag] = struct{}{}
			counts[tag]++
		}
	}

	groups := make([]customer.TagGroup, 0, len(counts))
	for tag, count := range counts {
		groups = append(groups, customer.TagGroup{Tag: tag, Count: count})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Tag < groups[j].Tag
	})

	return groups
}
