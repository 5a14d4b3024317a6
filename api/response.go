package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bizledger/config"
	"bizledger/service"
)

// Error 错误响应统一为 {"error": "..."}，与前端约定一致
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// BadRequest 400 错误响应
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// NotFound 404 错误响应
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalError 500 错误响应，生产模式下隐藏内部细节
func InternalError(c *gin.Context, err error, fallback string) {
	Error(c, http.StatusInternalServerError, config.SafeErrorMessage(err, fallback))
}

// RespondError 把服务层错误映射为对应的 HTTP 状态码：
// 校验失败 400，不存在 404，上游异常 502，草稿不可用 422
func RespondError(c *gin.Context, err error, fallback string) {
	var validationErr *service.ValidationError
	var upstreamErr *service.UpstreamError
	var extractionErr *service.ExtractionError
	switch {
	case errors.Is(err, service.ErrNotFound):
		NotFound(c, "Not found")
	case errors.As(err, &validationErr):
		BadRequest(c, validationErr.Message)
	case errors.As(err, &upstreamErr):
		payload := gin.H{"error": upstreamErr.Message}
		if upstreamErr.Raw != "" {
			payload["raw"] = upstreamErr.Raw
		}
		c.JSON(http.StatusBadGateway, payload)
	case errors.As(err, &extractionErr):
		if extractionErr.Suggested != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":     extractionErr.Message,
				"suggested": extractionErr.Suggested,
				"raw":       extractionErr.Raw,
			})
		} else {
			c.JSON(http.StatusBadGateway, gin.H{
				"error": extractionErr.Message,
				"raw":   extractionErr.Raw,
			})
		}
	default:
		InternalError(c, err, fallback)
	}
}
