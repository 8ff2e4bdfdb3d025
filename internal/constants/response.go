package constants

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Standard Response Field Keys
const (
	ResponseFieldMessage = "message"
	ResponseFieldDetails = "details"
	ResponseFieldData    = "data"
)

// List query defaults, matching the public API contract (skip/limit)
const (
	DefaultSkip  = 0
	DefaultLimit = 100
	MaxLimit     = 500
)

// ListParams holds offset pagination parsed from the query string.
type ListParams struct {
	Skip  int
	Limit int
}

// ParseListParams parses skip/limit query parameters with bounds applied.
func ParseListParams(c *gin.Context) ListParams {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", strconv.Itoa(DefaultSkip)))
	if err != nil || skip < 0 {
		skip = DefaultSkip
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))
	if err != nil || limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return ListParams{Skip: skip, Limit: limit}
}

// Response Format Functions
func BuildErrorResponse(message string, details any) map[string]any {
	response := map[string]any{
		ResponseFieldMessage: message,
	}

	if details != nil && details != "" {
		response[ResponseFieldDetails] = details
	}

	return response
}

func BuildSuccessResponse(message string) map[string]any {
	return map[string]any{
		ResponseFieldMessage: message,
	}
}
