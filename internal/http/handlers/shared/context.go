package shared

import (
	"context"

	"github.com/coffee-bar/internal/constants"
	"github.com/coffee-bar/internal/logger"

	"github.com/gin-gonic/gin"
)

// SessionID 读取会话中间件写入的访客 ID
func SessionID(c *gin.Context) string {
	return c.GetString(constants.ContextKeySessionID)
}

// RequestContext 将请求字段挂到 context 上供服务层日志使用
func RequestContext(c *gin.Context) context.Context {
	return logger.WithContext(c.Request.Context(),
		"request_id", c.GetString(constants.ContextKeyRequestID),
		"session_id", SessionID(c),
	)
}
