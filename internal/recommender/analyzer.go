package recommender

import (
	"gonum.org/v1/gonum/stat"

	"github.com/temcen/anirec/internal/catalog"
	"github.com/temcen/anirec/pkg/models"
)

// CategoryAffinity is how strongly a history favors one category.
type CategoryAffinity struct {
	Name  string
	Score float64
}

// AffinityScore lists category affinities in the order the history first
// moved each category's score.
type AffinityScore []CategoryAffinity

// Get returns the affinity of the named category.
func (a AffinityScore) Get(name string) (float64, bool) {
	for _, c := range a {
		if c.Name == name {
			return c.Score, true
		}
	}
	return 0, false
}

// Weighted contributions of a single rating to each category containing the
// rated title.
const (
	lovedWeight    = 2.0
	likedWeight    = 1.0
	dislikedWeight = -0.5
	neutralWeight  = 0.0
)

// Contribution returns the weight a score adds to each category of the rated
// title. Out-of-range scores fall through the same thresholds.
func Contribution(score int) float64 {
	switch {
	case score >= 8:
		return lovedWeight
	case score >= 6:
		return likedWeight
	case score <= 4:
		return dislikedWeight
	default:
		return neutralWeight
	}
}

// Analyze computes the per-category affinity of a rating history.
//
// A category enters the result on the first rating with a non-zero
// contribution to it; within one rating, categories follow declaration order.
// Neutral ratings still count toward the mean of a category once it is
// present, so a category touched only by neutral ratings is absent. An empty
// or unknown-only history yields an empty result.
func Analyze(history []models.Rating) AffinityScore {
	var order []string
	scored := make(map[string]bool)
	contributions := make(map[string][]float64)

	for _, r := range history {
		weight := Contribution(r.Rating)
		for _, name := range catalog.CategoriesOf(r.AnimeID) {
			contributions[name] = append(contributions[name], weight)
			if weight != neutralWeight && !scored[name] {
				scored[name] = true
				order = append(order, name)
			}
		}
	}

	scores := make(AffinityScore, 0, len(order))
	for _, name := range order {
		scores = append(scores, CategoryAffinity{Name: name, Score: stat.Mean(contributions[name], nil)})
	}
	return scores
}
