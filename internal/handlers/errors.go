package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"medflow-server/internal/services"
	"medflow-server/internal/utils"
)

// respondServiceError translates the service failure taxonomy into HTTP
// statuses: not-found 404, conflict 409, unauthorized 401, forbidden 403,
// bad-request 400. Anything unrecognized is a 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, services.ErrConflict):
		utils.Conflict(c, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		utils.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		utils.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrBadRequest):
		utils.BadRequest(c, err.Error())
	default:
		utils.InternalServerError(c, err.Error())
	}
}
