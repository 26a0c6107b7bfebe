package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/temcen/anirec/pkg/models"
)

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishRating(ctx context.Context, event *models.RatingEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel) // Reduce noise in tests
	return logger
}

func TestRatingService_GetUserRatings(t *testing.T) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockDB.Close()

	service := NewRatingService(mockDB, nil, nil, nil, newTestLogger())

	t.Run("returns rows in stored order with duplicates", func(t *testing.T) {
		userID := uuid.New()
		rows := pgxmock.NewRows([]string{"anime_id", "rating"}).
			AddRow(5114, 10).
			AddRow(16498, 3).
			AddRow(5114, 9)

		mockDB.ExpectQuery("SELECT anime_id, rating").
			WithArgs(userID).
			WillReturnRows(rows)

		ratings, err := service.GetUserRatings(context.Background(), userID)

		require.NoError(t, err)
		assert.Equal(t, []models.Rating{
			{AnimeID: 5114, Rating: 10},
			{AnimeID: 16498, Rating: 3},
			{AnimeID: 5114, Rating: 9},
		}, ratings)
		require.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("no ratings yields an empty slice", func(t *testing.T) {
		userID := uuid.New()
		mockDB.ExpectQuery("SELECT anime_id, rating").
			WithArgs(userID).
			WillReturnRows(pgxmock.NewRows([]string{"anime_id", "rating"}))

		ratings, err := service.GetUserRatings(context.Background(), userID)

		require.NoError(t, err)
		assert.NotNil(t, ratings)
		assert.Empty(t, ratings)
		require.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("query failure is wrapped", func(t *testing.T) {
		userID := uuid.New()
		dbErr := errors.New("connection refused")
		mockDB.ExpectQuery("SELECT anime_id, rating").
			WithArgs(userID).
			WillReturnError(dbErr)

		ratings, err := service.GetUserRatings(context.Background(), userID)

		assert.Nil(t, ratings)
		assert.ErrorIs(t, err, dbErr)
		require.NoError(t, mockDB.ExpectationsWereMet())
	})
}

func TestRatingService_UpsertRating(t *testing.T) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockDB.Close()

	t.Run("stores the rating and publishes an event", func(t *testing.T) {
		publisher := new(MockEventPublisher)
		service := NewRatingService(mockDB, nil, publisher, nil, newTestLogger())
		userID := uuid.New()

		mockDB.ExpectQuery("INSERT INTO ratings").
			WithArgs(userID, 5114, 9).
			WillReturnRows(pgxmock.NewRows([]string{"anime_id", "rating", "inserted"}).AddRow(5114, 9, true))

		publisher.On("PublishRating", mock.Anything, mock.MatchedBy(func(e *models.RatingEvent) bool {
			return e.UserID == userID && e.AnimeID == 5114 && e.Rating != nil && *e.Rating == 9 && e.Action == "upsert"
		})).Return(nil)

		stored, created, err := service.UpsertRating(context.Background(), userID, 5114, 9)

		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, &models.Rating{AnimeID: 5114, Rating: 9}, stored)
		publisher.AssertExpectations(t)
		require.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("publish failure does not fail the write", func(t *testing.T) {
		publisher := new(MockEventPublisher)
		service := NewRatingService(mockDB, nil, publisher, nil, newTestLogger())
		userID := uuid.New()

		mockDB.ExpectQuery("INSERT INTO ratings").
			WithArgs(userID, 16498, 3).
			WillReturnRows(pgxmock.NewRows([]string{"anime_id", "rating", "inserted"}).AddRow(16498, 3, false))
		publisher.On("PublishRating", mock.Anything, mock.Anything).Return(errors.New("broker down"))

		stored, created, err := service.UpsertRating(context.Background(), userID, 16498, 3)

		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, 3, stored.Rating)
		publisher.AssertExpectations(t)
	})

	t.Run("out of range scores never reach the database", func(t *testing.T) {
		service := NewRatingService(mockDB, nil, nil, nil, newTestLogger())

		for _, score := range []int{0, 11, -1} {
			_, _, err := service.UpsertRating(context.Background(), uuid.New(), 5114, score)
			assert.ErrorIs(t, err, ErrInvalidRating)
		}
		require.NoError(t, mockDB.ExpectationsWereMet())
	})
}

func TestRatingService_DeleteRating(t *testing.T) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockDB.Close()

	publisher := new(MockEventPublisher)
	service := NewRatingService(mockDB, nil, publisher, nil, newTestLogger())
	userID := uuid.New()

	t.Run("deletes an existing rating", func(t *testing.T) {
		mockDB.ExpectExec("DELETE FROM ratings").
			WithArgs(userID, 5114).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		publisher.On("PublishRating", mock.Anything, mock.MatchedBy(func(e *models.RatingEvent) bool {
			return e.Action == "delete" && e.Rating == nil
		})).Return(nil).Once()

		deleted, err := service.DeleteRating(context.Background(), userID, 5114)

		require.NoError(t, err)
		assert.True(t, deleted)
		publisher.AssertExpectations(t)
	})

	t.Run("missing rating reports false without an event", func(t *testing.T) {
		mockDB.ExpectExec("DELETE FROM ratings").
			WithArgs(userID, 1).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		deleted, err := service.DeleteRating(context.Background(), userID, 1)

		require.NoError(t, err)
		assert.False(t, deleted)
		publisher.AssertNumberOfCalls(t, "PublishRating", 1)
		require.NoError(t, mockDB.ExpectationsWereMet())
	})
}
