package leaverequest

import (
	"go-lms/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(rg *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	requests := rg.Group("/requests")
	requests.Use(middleware.AuthMiddleware(), middleware.ContextLogger(zap.L()))
	{
		requests.POST("", middleware.RateLimitByUser(1, 5), middleware.Idempotency(rdb), handler.Create)
		requests.GET("", middleware.RateLimitByUser(5, 10), handler.ListOwn)
		requests.GET("/queue", middleware.RateLimitByUser(5, 10), handler.ListQueue)
		requests.GET("/:id", middleware.RateLimitByUser(5, 10), handler.GetById)
		requests.PATCH("/:id", middleware.RateLimitByUser(1, 5), handler.Review)
		requests.DELETE("/:id", middleware.RateLimitByUser(1, 5), handler.Delete)
	}
}
