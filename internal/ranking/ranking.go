// Package ranking decides what appears on the public listing page and in
// what order. It is pure presentation-side logic over an already-fetched
// group collection; no call mutates anything.
package ranking

import (
	"math/rand"
	"sort"
	"strings"
	"time"

	"zapgroups-backend-go/internal/models"
)

// CategoryAll disables the category filter.
const CategoryAll = "All"

// Result holds the two ordered listing sections.
type Result struct {
	Boosted []models.Group `json:"boosted"`
	Normal  []models.Group `json:"normal"`
}

// Rank filters the collection by a case-insensitive name substring and a
// category (CategoryAll matches everything), then splits it into an actively
// boosted section and a normal section.
//
// The boosted section is re-shuffled on every call so that every boosted
// listing rotates through the top slots; callers must not sort it. The normal
// section is newest-first by created_at, ties kept in store-return order.
// Boost expiry is evaluated against now, so two calls around the expiry
// instant can move a group between sections with no field changing.
//
// Non-approved groups are excluded here even though the query boundary
// already pre-filters on status, so a stale or unfiltered fetch can never
// leak a pending group onto the page.
func Rank(groups []models.Group, query, category string, now time.Time) Result {
	needle := strings.ToLower(strings.TrimSpace(query))

	boosted := []models.Group{}
	normal := []models.Group{}
	for _, group := range groups {
		if group.Status != models.StatusApproved {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(group.Name), needle) {
			continue
		}
		if category != "" && category != CategoryAll && group.Category != category {
			continue
		}
		if group.BoostActive(now) {
			boosted = append(boosted, group)
		} else {
			normal = append(normal, group)
		}
	}

	rand.Shuffle(len(boosted), func(i, j int) {
		boosted[i], boosted[j] = boosted[j], boosted[i]
	})
	sort.SliceStable(normal, func(i, j int) bool {
		return normal[i].CreatedAt.After(normal[j].CreatedAt)
	})

	return Result{Boosted: boosted, Normal: normal}
}
