// Package recommender turns a user's rating history into categorized anime
// recommendations.
//
// The engine is a pure function over the reference data in package catalog:
// it keeps no state between calls, performs no I/O and never fails. Any number
// of goroutines may call Recommend and Analyze concurrently.
//
// Scoring works in two steps. Analyze folds every rating into a per-category
// affinity, the mean of weighted contributions (+2.0 for scores of 8 and up,
// +1.0 for 6-7, -0.5 for 4 and below, nothing for 5). Recommend then emits one
// section per category with positive affinity, followed by the curated
// sections, and removes every title the user already rated.
package recommender
