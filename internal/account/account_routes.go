package account

import (
	"go-lms/internal/authz"
	"go-lms/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, guard *authz.Guard) {
	accounts := r.Group("/accounts")
	accounts.Use(middleware.AuthMiddleware(), middleware.ContextLogger(zap.L()))
	accounts.Use(middleware.Authorize(guard, authz.ObjectAccount, authz.ActionManage))
	{
		accounts.GET("", handler.List)
		accounts.DELETE("/:id", handler.Delete)
	}
}
