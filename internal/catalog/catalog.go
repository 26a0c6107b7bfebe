// Package catalog holds the hand-curated reference data the recommender scores
// against: genre categories, the item similarity table and the curated lists.
//
// Everything here is immutable after package initialization. Accessors hand out
// copies so callers can never alter process-wide data.
package catalog

import "github.com/temcen/anirec/pkg/models"

// Category is a named, ordered group of anime ids. An id may belong to several
// categories.
type Category struct {
	Name  string
	Items []int
}

// Categories returns every category in declaration order.
func Categories() []Category {
	out := make([]Category, len(categories))
	for i, c := range categories {
		out[i] = Category{Name: c.Name, Items: clone(c.Items)}
	}
	return out
}

// CategoryNames returns the category names in declaration order.
func CategoryNames() []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	return names
}

// Lookup returns the items of the named category.
func Lookup(name string) ([]int, bool) {
	idx, ok := categoryIndex[name]
	if !ok {
		return nil, false
	}
	return clone(categories[idx].Items), true
}

// CategoriesOf returns the names of every category containing itemID, in
// declaration order. Unknown ids belong to no category.
func CategoriesOf(itemID int) []string {
	return clone(membership[itemID])
}

// Similar returns the curated list of titles related to itemID, or nil.
func Similar(itemID int) []int {
	return clone(similarity[itemID])
}

// SimilarityTable returns a copy of the whole similarity table.
func SimilarityTable() map[int][]int {
	out := make(map[int][]int, len(similarity))
	for id, related := range similarity {
		out[id] = clone(related)
	}
	return out
}

// HiddenGems returns lesser-known but highly rated titles.
func HiddenGems() []int { return clone(hiddenGems) }

// Trending returns recent popular titles.
func Trending() []int { return clone(trending) }

// Classics returns the timeless classics list.
func Classics() []int { return clone(classics) }

// Defaults returns the recommendation set served to users with no ratings.
func Defaults() models.RecommendationSet {
	out := make(models.RecommendationSet, len(defaults))
	for i, s := range defaults {
		out[i] = models.Section{Label: s.Label, Items: clone(s.Items)}
	}
	return out
}

// membership is the reverse index id -> category names.
var (
	categoryIndex = make(map[string]int, len(categories))
	membership    = make(map[int][]string)
)

func init() {
	for i, c := range categories {
		categoryIndex[c.Name] = i
		for _, id := range c.Items {
			membership[id] = append(membership[id], c.Name)
		}
	}
}

func clone[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
