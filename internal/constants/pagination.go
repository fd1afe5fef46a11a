package constants

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Pagination query parameters and bounds
const (
	QueryParamLimit  = "limit"
	QueryParamOffset = "offset"

	DefaultLimit = 50
	MaxLimit     = 100
)

// ParseLimitOffset parses limit/offset query parameters with clamping
func ParseLimitOffset(c *gin.Context, defaultLimit int) (limit, offset int) {
	limit = defaultLimit
	if v, err := strconv.Atoi(c.DefaultQuery(QueryParamLimit, "")); err == nil && v > 0 {
		limit = v
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	if v, err := strconv.Atoi(c.DefaultQuery(QueryParamOffset, "")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}
