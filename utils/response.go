package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JSONResponse defines the uniform structure for API responses.
type JSONResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Respond writes a JSON response with the given status code.
func Respond(ctx *gin.Context, status int, code int, message string, data interface{}) {
	ctx.JSON(status, JSONResponse{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// Success returns a standard success response.
func Success(ctx *gin.Context, data interface{}) {
	Respond(ctx, http.StatusOK, 0, "success", data)
}

// Error returns a standard error response.
func Error(ctx *gin.Context, status int, code int, message string) {
	Respond(ctx, status, code, message, nil)
}

// Fail maps a service error onto status and code. code is the handler's base code;
// the kind decides the status and prefix (40400+code, 40300+code, ...).
func Fail(ctx *gin.Context, err error, code int, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		Error(ctx, http.StatusNotFound, 40400+code, Message(err, "not found"))
	case errors.Is(err, ErrForbidden):
		Error(ctx, http.StatusForbidden, 40300+code, Message(err, "forbidden"))
	case errors.Is(err, ErrConflict):
		Error(ctx, http.StatusConflict, 40900+code, Message(err, "already exists"))
	case errors.Is(err, ErrInvalidInput):
		Error(ctx, http.StatusUnprocessableEntity, 42200+code, Message(err, "invalid input"))
	case errors.Is(err, ErrUnauthorized):
		Error(ctx, http.StatusUnauthorized, 40100+code, Message(err, "unauthorized"))
	default:
		Logger.Warn(fallback, zap.Error(err), zap.String("path", ctx.Request.URL.Path))
		Error(ctx, http.StatusInternalServerError, 50000+code, fallback)
	}
}
