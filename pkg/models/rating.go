package models

import (
	"time"

	"github.com/google/uuid"
)

// Rating is one user score for one anime. Scores are 1-10 on write; readers
// tolerate anything the store hands back.
type Rating struct {
	AnimeID int `json:"anime_id" db:"anime_id"`
	Rating  int `json:"rating" db:"rating"`
}

// RateRequest is the body of a rating upsert.
type RateRequest struct {
	AnimeID int `json:"anime_id" validate:"required,min=1"`
	Rating  int `json:"rating" validate:"required,min=1,max=10"`
}

// UserRatingsResponse lists a user's stored ratings.
type UserRatingsResponse struct {
	UserID  uuid.UUID `json:"user_id"`
	Ratings []Rating  `json:"ratings"`
	Total   int       `json:"total"`
}

// RatingEvent is published whenever a user's rating changes.
type RatingEvent struct {
	EventID   uuid.UUID `json:"event_id"`
	UserID    uuid.UUID `json:"user_id"`
	AnimeID   int       `json:"anime_id"`
	Rating    *int      `json:"rating,omitempty"` // nil when the rating was removed
	Action    string    `json:"action"`           // upsert, delete
	Timestamp time.Time `json:"timestamp"`
}
