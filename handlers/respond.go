package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"iconstore-backend/utils"
)

// Error codes surfaced to clients. Storage cleanup failures deliberately
// have no code here: they are advisory response fields, never HTTP errors.
const (
	CodeValidationError      = "VALIDATION_ERROR"
	CodeNotFound             = "NOT_FOUND"
	CodeInternalError        = "INTERNAL_ERROR"
	CodeUnsupportedMediaType = "UNSUPPORTED_MEDIA_TYPE"
	CodeInvalidCredentials   = "INVALID_CREDENTIALS"
	CodeEmailExists          = "EMAIL_EXISTS"
	CodeForbidden            = "FORBIDDEN"
	CodeMethodNotAllowed     = "METHOD_NOT_ALLOWED"
)

func errorBody(code, message string, details interface{}) gin.H {
	e := gin.H{"code": code, "message": message}
	if details != nil {
		e["details"] = details
	}
	return gin.H{"error": e}
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, errorBody(code, message, nil))
}

func respondValidation(c *gin.Context, message string, details interface{}) {
	c.JSON(http.StatusBadRequest, errorBody(CodeValidationError, message, details))
}

func respondBindingError(c *gin.Context, err error) {
	respondValidation(c, "Invalid request payload", utils.FieldErrors(err))
}

// parsePagination clamps limit into [1,100] with a default of 20 and offset
// to non-negative.
func parsePagination(c *gin.Context) (limit, offset int) {
	limit = 20
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 100 {
		limit = 100
	}

	if raw := c.Query("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			offset = n
		}
	}
	return limit, offset
}
