package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/temcen/anirec/internal/validation"
)

// ValidationMiddleware checks request bodies and path parameters before they
// reach the handlers.
type ValidationMiddleware struct {
	validator *validation.SchemaValidator
}

func NewValidationMiddleware(validator *validation.SchemaValidator) *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validator,
	}
}

// ValidateRating validates rating write bodies
func (vm *ValidationMiddleware) ValidateRating() gin.HandlerFunc {
	return vm.validateRequestBody(validation.SchemaRating)
}

// ValidatePreview validates recommendation preview bodies
func (vm *ValidationMiddleware) ValidatePreview() gin.HandlerFunc {
	return vm.validateRequestBody(validation.SchemaPreview)
}

func (vm *ValidationMiddleware) validateRequestBody(schemaName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodDelete {
			c.Next()
			return
		}

		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			vm.sendValidationError(c, "BODY_READ_ERROR", "Failed to read request body", map[string]interface{}{
				"error": err.Error(),
			})
			return
		}

		// Restore request body for downstream handlers
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		if len(bodyBytes) == 0 {
			vm.sendValidationError(c, "EMPTY_BODY", "Request body is required", nil)
			return
		}

		if !json.Valid(bodyBytes) {
			vm.sendValidationError(c, "INVALID_JSON", "Request body must be valid JSON", nil)
			return
		}

		result := vm.validator.ValidateJSONString(schemaName, string(bodyBytes))
		if !result.Valid {
			apiError := result.ToAPIError()
			if errorObj, ok := apiError["error"].(map[string]interface{}); ok {
				errorObj["timestamp"] = time.Now().UTC().Format(time.RFC3339)
				errorObj["requestId"] = c.GetString("request_id")
				errorObj["path"] = c.Request.URL.Path
				errorObj["method"] = c.Request.Method
			}

			c.JSON(http.StatusBadRequest, apiError)
			c.Abort()
			return
		}

		c.Next()
	}
}

// ValidatePathParams rejects malformed :userId and :animeId parameters.
func (vm *ValidationMiddleware) ValidatePathParams() gin.HandlerFunc {
	return func(c *gin.Context) {
		fieldErrors := make(map[string][]string)

		if userID := c.Param("userId"); userID != "" {
			if _, err := uuid.Parse(userID); err != nil {
				fieldErrors["userId"] = append(fieldErrors["userId"], "User ID must be a valid UUID")
			}
		}

		if animeID := c.Param("animeId"); animeID != "" {
			if id, err := strconv.Atoi(animeID); err != nil || id < 1 {
				fieldErrors["animeId"] = append(fieldErrors["animeId"], "Anime ID must be a positive integer")
			}
		}

		if len(fieldErrors) > 0 {
			vm.sendValidationError(c, "VALIDATION_ERROR", "Request validation failed", map[string]interface{}{
				"fieldErrors": fieldErrors,
			})
			return
		}

		c.Next()
	}
}

func (vm *ValidationMiddleware) sendValidationError(c *gin.Context, code, message string, details map[string]interface{}) {
	errorResponse := map[string]interface{}{
		"error": map[string]interface{}{
			"code":      code,
			"message":   message,
			"details":   details,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"requestId": c.GetString("request_id"),
			"path":      c.Request.URL.Path,
			"method":    c.Request.Method,
		},
	}

	c.JSON(http.StatusBadRequest, errorResponse)
	c.Abort()
}
