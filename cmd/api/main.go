package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/LunaStudioApps/salon-scheduler/internal/billing"
	"github.com/LunaStudioApps/salon-scheduler/internal/cache"
	"github.com/LunaStudioApps/salon-scheduler/internal/config"
	dbpkg "github.com/LunaStudioApps/salon-scheduler/internal/db"
	"github.com/LunaStudioApps/salon-scheduler/internal/logger"
	"github.com/LunaStudioApps/salon-scheduler/internal/metrics"
	"github.com/LunaStudioApps/salon-scheduler/internal/middleware"
	"github.com/LunaStudioApps/salon-scheduler/internal/notify"
	"github.com/LunaStudioApps/salon-scheduler/internal/routes"
)

func main() {

	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer log.Sync()

	db := dbpkg.NewDB(cfg, log)

	cch := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer cch.Close()

	sender := notify.NewWhatsAppSender(
		cfg.TwilioAccountSID,
		cfg.TwilioAuthToken,
		cfg.TwilioWhatsappFrom,
		log,
	)

	scheduler := billing.NewScheduler(db, sender, log)
	scheduler.Start()
	defer scheduler.Stop()

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())
	r.Use(metrics.Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	routes.RegisterRoutes(r, db, cfg, cch, log)

	log.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
