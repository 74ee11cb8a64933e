package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/deal_management/internal/models"
	"github.com/deal_management/internal/policy"
	"github.com/deal_management/internal/services"
	"github.com/deal_management/pkg/utils"
)

// actorFromContext rebuilds the authenticated actor from the values the JWT
// middleware stored on the request context.
func actorFromContext(c *gin.Context) policy.Actor {
	actor := policy.Actor{
		Username: c.GetString("username"),
		Role:     models.Role(c.GetString("role")),
		Email:    c.GetString("email"),
	}
	if v, ok := c.Get("userID"); ok {
		if id, ok := v.(uint); ok {
			actor.ID = id
		}
	}
	return actor
}

// idParam parses the named path parameter as an unsigned integer id. It
// writes the 400 response itself when the parameter is malformed.
func idParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		utils.RespondValidationError(c, "invalid "+name+" parameter: "+raw)
		return 0, false
	}
	return uint(id), true
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Validation errors name the offending field; everything outside the taxonomy
// is an internal failure.
func respondServiceError(c *gin.Context, err error, fallback string) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		utils.RespondValidationError(c, vErr.Error())
	case errors.Is(err, services.ErrDealNotFound):
		utils.RespondNotFoundError(c, "Deal")
	case errors.Is(err, services.ErrFileNotFound):
		utils.RespondNotFoundError(c, "File")
	case errors.Is(err, services.ErrPermissionDenied):
		utils.RespondForbiddenError(c, services.ErrPermissionDenied.Error())
	default:
		utils.RespondInternalServerError(c, fallback, err.Error())
	}
}
