package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/outlaw-hq/admin-api/internal/cache"
	"github.com/outlaw-hq/admin-api/internal/config"
	dbpkg "github.com/outlaw-hq/admin-api/internal/db"
	"github.com/outlaw-hq/admin-api/internal/logging"
	"github.com/outlaw-hq/admin-api/internal/middleware"
	"github.com/outlaw-hq/admin-api/internal/routes"
)

func main() {

	logging.Init()
	defer logging.L().Sync()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)
	redisClient := cache.NewClient(cfg)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestIDMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, redisClient, cfg)

	logging.L().Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		logging.L().Fatal("failed to start server", zap.Error(err))
	}
}
