package public

import (
	"errors"

	"github.com/coffee-bar/internal/cart"
	handlershared "github.com/coffee-bar/internal/http/handlers/shared"
	"github.com/coffee-bar/internal/http/response"
	"github.com/coffee-bar/internal/provider"
	"github.com/coffee-bar/internal/service"

	"github.com/gin-gonic/gin"
)

// Handler 访客侧页面与 API 处理器
type Handler struct {
	*provider.Container
}

// New 创建处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

// errorStatus 服务层错误到业务码与提示
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrSessionRequired):
		return response.CodeBadRequest, "session cookie is required"
	case errors.Is(err, cart.ErrMalformedCart):
		return response.CodeConflict, "stored cart data is corrupted"
	default:
		return response.CodeInternal, "internal error"
	}
}

func respondServiceError(c *gin.Context, err error) {
	code, msg := errorStatus(err)
	handlershared.RespondError(c, code, msg, err)
}
