// internal/handlers/common.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tunegrid/licensing-backend/internal/models"
	"github.com/tunegrid/licensing-backend/internal/utils"
)

// respondError maps the service error taxonomy onto HTTP status codes.
// Anything that is not a models.Error is an internal failure.
func respondError(c *gin.Context, err error) {
	var apiErr *models.Error
	if !errors.As(err, &apiErr) {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	switch apiErr.Code {
	case models.ErrCodeNotFound:
		utils.NotFoundResponse(c, apiErr.Message)
	case models.ErrCodeUnauthorized:
		utils.UnauthorizedResponse(c, apiErr.Message)
	case models.ErrCodeAlreadyApproved:
		utils.ConflictResponse(c, string(apiErr.Code), apiErr.Message)
	case models.ErrCodeInvalidPayload:
		utils.BadRequestResponse(c, apiErr.Message, nil)
	default:
		utils.InternalErrorResponse(c, apiErr.Message)
	}
}

func parseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid id", nil)
		return 0, false
	}
	return id, true
}
