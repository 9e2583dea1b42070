package router

import (
	"fmt"
	"strings"

	"github.com/tribute-next/internal/cache"
	"github.com/tribute-next/internal/config"
	"github.com/tribute-next/internal/constants"
	publichandlers "github.com/tribute-next/internal/http/handlers/public"
	"github.com/tribute-next/internal/logger"
	"github.com/tribute-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redeemRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:redeem", redisPrefix),
		WindowSeconds: cfg.Redeem.RateLimit.WindowSeconds,
		MaxRequests:   cfg.Redeem.RateLimit.MaxRequests,
		Message:       "Too many redemption attempts, please wait a moment",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（相册图片）
	r.Static("/uploads", "./uploads")

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		apiV1.GET("/catalog", publicHandler.GetCatalog)
		apiV1.GET("/balance", publicHandler.GetBalance)
		apiV1.GET("/page", publicHandler.GetPage)
		apiV1.POST("/redeem", RateLimitMiddleware(cache.Client(), redeemRule, KeyByIP), publicHandler.Redeem)
		apiV1.GET("/orders", publicHandler.ListOrders)
		apiV1.GET("/orders/:reference", publicHandler.GetOrder)
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
