package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/chronotes/chronotes/internal/middleware"
	"github.com/chronotes/chronotes/internal/pkg/errcode"
	appErr "github.com/chronotes/chronotes/internal/pkg/errors"
	"github.com/chronotes/chronotes/internal/pkg/response"
)

func getEmail(c *gin.Context) string {
	value, _ := c.Get(middleware.ContextEmailKey)
	email, _ := value.(string)
	return email
}

// handleError flattens a service error onto the wire envelope; codes
// are stable, messages are for humans.
func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	logutil.GetLogger(c.Request.Context()).Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Any("request_id", c.Value("request_id")),
		zap.Error(err),
	)
	switch {
	case errors.Is(err, appErr.ErrUserNotFound):
		response.Error(c, errcode.ErrUserNotFound, "user not found")
	case errors.Is(err, appErr.ErrInvalidPassword):
		response.Error(c, errcode.ErrInvalidPassword, "incorrect password")
	case errors.Is(err, appErr.ErrAccountDisabled):
		response.Error(c, errcode.ErrAccountDisabled, "account disabled")
	case errors.Is(err, appErr.ErrEmailTaken):
		response.Error(c, errcode.ErrEmailTaken, "email already registered")
	case errors.Is(err, appErr.ErrInvalidCode):
		response.Error(c, errcode.ErrInvalidCode, "verification code incorrect or expired")
	case errors.Is(err, appErr.ErrRegisterFailed):
		response.Error(c, errcode.ErrRegisterFailed, "registration failed, try again later")
	case errors.Is(err, appErr.ErrMailSendFailed):
		response.Error(c, errcode.ErrMailSendFailed, "failed to send email, try again later")
	case errors.Is(err, appErr.ErrUnauthorized):
		response.Error(c, errcode.ErrUnauthorized, "unauthorized")
	case errors.Is(err, appErr.ErrNotFound):
		response.Error(c, errcode.ErrNotFound, "not found")
	case errors.Is(err, appErr.ErrInvalid):
		response.Error(c, errcode.ErrInvalid, "invalid request")
	default:
		response.Error(c, errcode.ErrUnknown, "internal error")
	}
}
