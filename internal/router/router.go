package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/coffee-bar/internal/cache"
	"github.com/coffee-bar/internal/config"
	publichandlers "github.com/coffee-bar/internal/http/handlers/public"
	"github.com/coffee-bar/internal/http/response"
	"github.com/coffee-bar/internal/logger"
	"github.com/coffee-bar/internal/provider"
	"github.com/coffee-bar/internal/view"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) (*gin.Engine, error) {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	tmpl, err := view.Templates()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	handler := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "cb"
	}
	checkoutLimit := RateLimitMiddleware(cache.Client(), RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:checkout", redisPrefix),
		WindowSeconds: cfg.Security.CheckoutRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.CheckoutRateLimit.MaxRequests,
		BlockSeconds:  cfg.Security.CheckoutRateLimit.BlockSeconds,
		Message:       "too many checkout attempts, retry in %d seconds",
	}, KeyByIP)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 健康检查（不签发会话）
	r.GET("/healthz", func(ctx *gin.Context) {
		if c.DB != nil {
			if sqlDB, err := c.DB.DB(); err != nil || sqlDB.PingContext(ctx.Request.Context()) != nil {
				ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
				return
			}
		}
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	visitor := r.Group("/")
	visitor.Use(SessionMiddleware(cfg.Cart))

	// 页面（表单提交后重定向回首页）
	{
		visitor.GET("/", handler.Index)
		visitor.POST("/cart/add/:index", handler.AddFromForm)
		visitor.POST("/cart/items/:name/inc", handler.Increment)
		visitor.POST("/cart/items/:name/dec", handler.Decrement)
		visitor.POST("/cart/items/:name/remove", handler.RemoveFromForm)
		visitor.POST("/cart/empty", handler.EmptyFromForm)
		visitor.POST("/checkout", checkoutLimit, handler.CheckoutFromForm)
		visitor.POST("/modal/close", handler.CloseModal)
		visitor.POST("/theme", handler.ToggleTheme)
	}

	// API 路由组
	apiV1 := visitor.Group("/api/v1")
	{
		apiV1.GET("/menu", handler.GetMenu)
		apiV1.GET("/cart", handler.GetCart)
		apiV1.POST("/cart/items", handler.AddCartItem)
		apiV1.POST("/cart/items/:name/adjust", handler.AdjustCartItem)
		apiV1.DELETE("/cart/items/:name", handler.RemoveCartItem)
		apiV1.DELETE("/cart", handler.EmptyCart)
		apiV1.POST("/checkout", checkoutLimit, handler.Checkout)
		apiV1.POST("/checkout/dismiss", handler.DismissCheckout)
		apiV1.GET("/orders", handler.ListOrders)
	}

	r.NoRoute(func(ctx *gin.Context) {
		if strings.HasPrefix(ctx.Request.URL.Path, "/api/") {
			response.NotFound(ctx, "route not found")
			return
		}
		ctx.HTML(http.StatusNotFound, "error.html", gin.H{
			"Title":   cfg.Shop.Title,
			"Message": "page not found",
		})
	})

	return r, nil
}
