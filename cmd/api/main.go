package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/medbook/clinic-scheduler/internal/config"
	dbpkg "github.com/medbook/clinic-scheduler/internal/db"
	"github.com/medbook/clinic-scheduler/internal/lock"
	"github.com/medbook/clinic-scheduler/internal/logging"
	"github.com/medbook/clinic-scheduler/internal/middleware"
	"github.com/medbook/clinic-scheduler/internal/routes"
)

func main() {

	cfg := config.Load()

	log := logging.NewLogger(cfg.Env)
	defer log.Sync()

	db := dbpkg.NewDB(cfg)

	rdb, err := lock.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Fatal("failed to connect redis", zap.Error(err))
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg, log)

	log.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
