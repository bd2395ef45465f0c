package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourname/dreamcatcher/internal"
	"github.com/yourname/dreamcatcher/internal/response"
)

// HandleError maps the error taxonomy onto a status; status is used only when
// err is not one of the known kinds.
func HandleError(c *gin.Context, logger internal.Logger, err error, status int, msg string) {
	requestID := c.GetString("request_id")
	status, text := classify(err, status, msg)
	if status >= 500 {
		logger.Errorf("[request_id=%s] %s: %v", requestID, msg, err)
	} else {
		logger.Warnf("[request_id=%s] %s: %v", requestID, msg, err)
	}
	var resp response.APIResponse
	switch status {
	case 400:
		resp = response.BadRequest(text)
	case 401:
		resp = response.Unauthorized(text)
	case 404:
		resp = response.NotFound(text)
	case 409:
		resp = response.Conflict(text)
	case 500:
		resp = response.InternalError(text)
	default:
		resp = response.NewAppError(status, text)
	}
	c.JSON(status, resp)
}

func classify(err error, status int, msg string) (int, string) {
	var ve *internal.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Message
	case errors.Is(err, internal.ErrNotFound):
		return http.StatusNotFound, msg + ": " + err.Error()
	case errors.Is(err, internal.ErrConflict):
		return http.StatusConflict, msg + ": " + err.Error()
	case errors.Is(err, internal.ErrUnauthorized):
		return http.StatusUnauthorized, msg
	}
	if status == http.StatusBadRequest {
		return status, msg + ": " + err.Error()
	}
	return status, msg
}

func HandleSuccess(c *gin.Context, logger internal.Logger, data interface{}, meta map[string]any) {
	respond(c, logger, http.StatusOK, data, meta)
}

func HandleCreated(c *gin.Context, logger internal.Logger, data interface{}) {
	respond(c, logger, http.StatusCreated, data, nil)
}

func HandleNoContent(c *gin.Context, logger internal.Logger) {
	requestID := c.GetString("request_id")
	logger.Infof("[request_id=%s] Success", requestID)
	c.Status(http.StatusNoContent)
}

func respond(c *gin.Context, logger internal.Logger, status int, data interface{}, meta map[string]any) {
	requestID := c.GetString("request_id")
	logger.Infof("[request_id=%s] Success", requestID)
	c.JSON(status, response.Success(data, meta))
}

func currentUser(c *gin.Context) *internal.User {
	return c.MustGet("user").(*internal.User)
}

func listMeta(skip, limit, count int) map[string]any {
	return map[string]any{"skip": skip, "limit": limit, "count": count}
}
