// Package handlers contains the HTTP handlers of the reporting API.  Each
// handler owns one service and registers its own routes.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/brickfield/sitecast/pkg/errors"
)

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// respondError maps an AppError onto its HTTP status.  Server-side errors
// are masked; their detail stays in the logs.
func respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := errors.HTTPStatusForCode(code)

	resp := ErrorResponse{Code: string(code)}
	if status >= http.StatusInternalServerError {
		resp.Message = "internal server error"
	} else {
		resp.Message = err.Error()
		if appErr, ok := err.(*errors.AppError); ok {
			resp.Message = appErr.Message
			resp.Detail = appErr.Detail
		}
	}
	c.AbortWithStatusJSON(status, resp)
}

// projectIDParam parses the :id path segment.  A malformed ID reports
// validation failure without touching the services.
func projectIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, errors.New(errors.ErrCodeValidation, "invalid project id").WithDetail(c.Param("id")))
		return uuid.Nil, false
	}
	return id, true
}
