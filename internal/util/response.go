package util

import (
	"errors"
	"net/http"

	"patch_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}

// FromError 按错误类型映射HTTP状态码，禁止对错误文案做字符串匹配
func FromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrRequestNotFound),
		errors.Is(err, ErrFriendshipNotFound):
		Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrFriendshipExists),
		errors.Is(err, ErrUsernameTaken),
		errors.Is(err, ErrPhoneRegistered),
		errors.Is(err, ErrAccountExists):
		Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		Error(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrPermissionDenied):
		Error(c, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrLocationThrottled):
		Error(c, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, ErrInvalidPhone),
		errors.Is(err, ErrInvalidLinks),
		errors.Is(err, ErrSelfFriend),
		errors.Is(err, ErrLocationRequired):
		Error(c, http.StatusBadRequest, err.Error())
	default:
		LogInternalError(c, err)
	}
}
