package recommender

import (
	"github.com/temcen/anirec/internal/catalog"
	"github.com/temcen/anirec/pkg/models"
)

// Labels of the curated sections appended after the category sections.
const (
	SectionHiddenGems   = "Hidden Gems"
	SectionBecauseRated = "Because You Rated Highly"
	SectionTrending     = "Trending Now"
	SectionClassics     = "Timeless Classics"
)

// DefaultLimit is the per-section cap when no WithLimit option is given.
const DefaultLimit = 12

const (
	maxFavoriteSeeds     = 5
	favoriteThreshold    = 9
	favoriteFallbackFrom = 8
)

type options struct {
	limit int
}

// Option tunes a Recommend call.
type Option func(*options)

// WithLimit caps every section at n items. Non-positive values keep the
// default of 12.
func WithLimit(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.limit = n
		}
	}
}

// Recommend builds the categorized recommendation set for a rating history.
//
// An empty history gets the catalog defaults verbatim. Otherwise sections come
// in a fixed order: one per category with positive affinity (in Analyze
// order), then Hidden Gems, Because You Rated Highly, Trending Now and Timeless
// Classics. Titles present in the history never appear, empty sections are
// dropped, and each section keeps catalog order truncated to the limit.
func Recommend(history []models.Rating, opts ...Option) models.RecommendationSet {
	o := options{limit: DefaultLimit}
	for _, opt := range opts {
		opt(&o)
	}

	if len(history) == 0 {
		return catalog.Defaults()
	}

	rated := ratedSet(history)
	affinity := Analyze(history)

	set := models.RecommendationSet{}
	add := func(label string, items []int) {
		if len(items) > 0 {
			set = append(set, models.Section{Label: label, Items: items})
		}
	}

	for _, a := range affinity {
		if a.Score <= 0 {
			continue
		}
		items, _ := catalog.Lookup(a.Name)
		add(a.Name, available(items, rated, o.limit))
	}

	add(SectionHiddenGems, available(catalog.HiddenGems(), rated, o.limit))
	add(SectionBecauseRated, similarToFavorites(history, rated, o.limit))
	add(SectionTrending, available(catalog.Trending(), rated, o.limit))
	add(SectionClassics, available(catalog.Classics(), rated, o.limit))

	return set
}

// Favorites returns the ids rated 9 or higher in history order, falling back
// to ids rated 8 or higher when there are none.
func Favorites(history []models.Rating) []int {
	favorites := ratedAtLeast(history, favoriteThreshold)
	if len(favorites) == 0 {
		favorites = ratedAtLeast(history, favoriteFallbackFrom)
	}
	return favorites
}

func similarToFavorites(history []models.Rating, rated map[int]struct{}, limit int) []int {
	favorites := Favorites(history)
	if len(favorites) > maxFavoriteSeeds {
		favorites = favorites[:maxFavoriteSeeds]
	}

	var candidates []int
	for _, id := range favorites {
		candidates = append(candidates, catalog.Similar(id)...)
	}
	return available(candidates, rated, limit)
}

func ratedAtLeast(history []models.Rating, threshold int) []int {
	var ids []int
	for _, r := range history {
		if r.Rating >= threshold {
			ids = append(ids, r.AnimeID)
		}
	}
	return ids
}

func ratedSet(history []models.Rating) map[int]struct{} {
	rated := make(map[int]struct{}, len(history))
	for _, r := range history {
		rated[r.AnimeID] = struct{}{}
	}
	return rated
}

// available drops rated and repeated ids, keeps order and stops at limit.
func available(items []int, rated map[int]struct{}, limit int) []int {
	out := make([]int, 0, min(len(items), limit))
	seen := make(map[int]struct{}, len(items))
	for _, id := range items {
		if len(out) == limit {
			break
		}
		if _, ok := rated[id]; ok {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
