package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Section is one named, rank-ordered list of anime ids.
type Section struct {
	Label string `json:"label"`
	Items []int  `json:"items"`
}

// RecommendationSet is an ordered collection of sections. It encodes as a JSON
// object keyed by section label, keeping section order.
type RecommendationSet []Section

// Get returns the items of the section with the given label.
func (rs RecommendationSet) Get(label string) ([]int, bool) {
	for _, s := range rs {
		if s.Label == label {
			return s.Items, true
		}
	}
	return nil, false
}

// Labels returns the section labels in order.
func (rs RecommendationSet) Labels() []string {
	labels := make([]string, len(rs))
	for i, s := range rs {
		labels[i] = s.Label
	}
	return labels
}

// ItemCount returns the total number of ids across all sections.
func (rs RecommendationSet) ItemCount() int {
	n := 0
	for _, s := range rs {
		n += len(s.Items)
	}
	return n
}

// MarshalJSON writes the set as one object, sections in order. Nil items
// encode as an empty array.
func (rs RecommendationSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range rs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(s.Label)
		if err != nil {
			return nil, err
		}
		items := s.Items
		if items == nil {
			items = []int{}
		}
		value, err := json.Marshal(items)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object of label to id list, keeping key order.
func (rs *RecommendationSet) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*rs = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("recommendation set: expected object, got %v", tok)
	}

	out := RecommendationSet{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		label, ok := tok.(string)
		if !ok {
			return fmt.Errorf("recommendation set: expected section label, got %v", tok)
		}
		var items []int
		if err := dec.Decode(&items); err != nil {
			return fmt.Errorf("recommendation set: section %q: %w", label, err)
		}
		out = append(out, Section{Label: label, Items: items})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*rs = out
	return nil
}

// RecommendationResponse is the payload served for a stored user.
type RecommendationResponse struct {
	UserID          uuid.UUID         `json:"user_id"`
	TotalRatings    int               `json:"total_ratings"`
	Recommendations RecommendationSet `json:"recommendations"`
	GeneratedAt     time.Time         `json:"generated_at"`
	CacheHit        bool              `json:"cache_hit"`
}

// PreviewRequest asks for recommendations over an ad-hoc history that is not
// persisted.
type PreviewRequest struct {
	Ratings []Rating `json:"ratings" validate:"max=500,dive"`
	Limit   int      `json:"limit,omitempty" validate:"omitempty,min=1,max=100"`
}

// PreviewResponse is the payload of a preview request.
type PreviewResponse struct {
	Recommendations RecommendationSet `json:"recommendations"`
	TotalRatings    int               `json:"total_ratings"`
}
