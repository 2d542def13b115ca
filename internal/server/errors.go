package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nlorm/nlorm"
)

// errorResponse formats an error body in the {"error": {...}} shape.
func errorResponse(code, message string) gin.H {
	return gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	}
}

// writeTranslateError maps a translation failure to a status code. A
// SyntaxError is the model misbehaving, not the caller: it gets 422 with
// the candidate text echoed for debugging. Everything else is an upstream
// endpoint failure.
func writeTranslateError(c *gin.Context, err error) {
	var synErr *nlorm.SyntaxError
	if errors.As(err, &synErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": gin.H{
				"code":      "INVALID_QUERY_SYNTAX",
				"message":   "generated query failed syntax validation",
				"details":   synErr.Err.Error(),
				"candidate": synErr.Candidate,
			},
		})
		return
	}

	c.JSON(http.StatusBadGateway, errorResponse("QUERY_GENERATION_FAILED", err.Error()))
}
