package app

import (
	"database/sql"

	"go-lms/internal/account"
	"go-lms/internal/auth"
	"go-lms/internal/authz"
	"go-lms/internal/leaverequest"
	"go-lms/internal/messaging/kafka"
	"go-lms/internal/middleware"
	"go-lms/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	router.Use(middleware.RequestID())

	// --- Repositories ---
	accountRepo := account.NewRepository(gormDB)
	requestRepo := leaverequest.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Authorization Core ---
	guard, err := authz.NewGuard()
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(accountRepo)
	accountService := account.NewService(accountRepo)
	requestService := leaverequest.NewServiceWithOutbox(
		db,
		requestRepo,
		accountRepo,
		guard,
		counterRepo,
		outboxRepo,
		rdb,
	)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	accountHandler := account.NewHandler(accountService)
	requestHandler := leaverequest.NewHandlerWithRedis(requestService, rdb)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		account.RegisterRoutes(api, accountHandler, guard)
		leaverequest.RegisterRoutes(api, requestHandler, rdb)
	}

	return nil
}
