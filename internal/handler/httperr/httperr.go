package httperr

import (
	"errors"
	"net/http"

	"store-fulfillment/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		err = errors.New(msg)
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Abort answers with the status of the error's class and its caller-safe message.
func Abort(c *gin.Context, err error) {
	AbortWithError(c, StatusFor(err), err, errs.Message(err), nil)
}

// StatusFor maps an error class to an HTTP status. Exhausted conflict retries surface as 503.
func StatusFor(err error) int {
	switch {
	case errs.IsValidation(err):
		return http.StatusBadRequest
	case errs.IsNotFound(err):
		return http.StatusNotFound
	case errs.IsConcurrencyConflict(err):
		return http.StatusServiceUnavailable
	case errs.IsExternalService(err):
		return http.StatusBadGateway
	case errs.IsBusinessRule(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
