package validation

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temcen/anirec/internal/catalog"
	"github.com/temcen/anirec/pkg/models"
)

func TestNewDefaultValidator(t *testing.T) {
	sv, err := NewDefaultValidator()
	require.NoError(t, err)

	assert.Equal(t, []string{SchemaPreview, SchemaRating, SchemaRecommendation}, sv.GetAvailableSchemas())
}

func TestValidateRating(t *testing.T) {
	sv, err := NewDefaultValidator()
	require.NoError(t, err)

	tests := []struct {
		name  string
		body  string
		valid bool
	}{
		{"valid", `{"anime_id": 5114, "rating": 10}`, true},
		{"lowest score", `{"anime_id": 1, "rating": 1}`, true},
		{"score too high", `{"anime_id": 5114, "rating": 11}`, false},
		{"score zero", `{"anime_id": 5114, "rating": 0}`, false},
		{"fractional score", `{"anime_id": 5114, "rating": 7.5}`, false},
		{"missing anime", `{"rating": 7}`, false},
		{"unknown field", `{"anime_id": 5114, "rating": 7, "comment": "great"}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := sv.ValidateJSONString(SchemaRating, tt.body)
			assert.Equal(t, tt.valid, result.Valid, "errors: %v", result.Errors)
			if !tt.valid {
				assert.NotEmpty(t, result.Errors)
				assert.NotNil(t, result.ToAPIError())
			}
		})
	}
}

func TestValidatePreview(t *testing.T) {
	sv, err := NewDefaultValidator()
	require.NoError(t, err)

	assert.True(t, sv.ValidatePreview([]byte(`{"ratings": [{"anime_id": 5114, "rating": 10}], "limit": 5}`)).Valid)
	assert.True(t, sv.ValidatePreview([]byte(`{"ratings": []}`)).Valid)
	assert.False(t, sv.ValidatePreview([]byte(`{"ratings": [], "limit": 0}`)).Valid)
	assert.False(t, sv.ValidatePreview([]byte(`{"limit": 5}`)).Valid)
}

func TestValidateRecommendation(t *testing.T) {
	sv, err := NewDefaultValidator()
	require.NoError(t, err)

	resp := models.RecommendationResponse{
		UserID:          uuid.New(),
		TotalRatings:    0,
		Recommendations: catalog.Defaults(),
		GeneratedAt:     time.Now().UTC(),
	}

	result := sv.ValidateRecommendation(resp)
	assert.True(t, result.Valid, "errors: %v", result.Errors)

	result = sv.ValidateRecommendation(map[string]interface{}{
		"user_id":         "not-a-uuid",
		"total_ratings":   -1,
		"recommendations": map[string]interface{}{"Trending Now": []int{1, 1}},
	})
	assert.False(t, result.Valid)
	assert.GreaterOrEqual(t, len(result.Errors), 3)
}

func TestValidate_UnknownSchema(t *testing.T) {
	sv := NewSchemaValidator()

	result := sv.ValidateJSONString("missing", `{}`)
	assert.False(t, result.Valid)
	assert.Equal(t, "SCHEMA_NOT_FOUND", result.Errors[0].Code)
}
