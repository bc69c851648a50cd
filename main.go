package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"calendary/config"
	"calendary/cron"
	"calendary/database"
	hostRepo "calendary/database/repository/host"
	ledgerRepo "calendary/database/repository/ledger"
	"calendary/handlers"
	"calendary/routes"
	"calendary/services/booking"
	"calendary/services/stats"
	"calendary/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	hosts := hostRepo.NewMongoHostRepo()
	ledger := ledgerRepo.NewMongoLedgerRepo()

	reminders := cron.NewAsynqReminderScheduler()
	bookingService := booking.NewDefaultBookingService(hosts, ledger, reminders)
	statsService := stats.NewDefaultStatsService(ledger)

	cron.InitReminderWorker(ledger)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())

	routes.RegisterRoutes(
		router,
		handlers.NewHostHandler(hosts, utils.GetCacheClient()),
		handlers.NewSlotsHandler(hosts, bookingService),
		handlers.NewBookingHandler(bookingService, statsService, hosts),
	)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", config.AppConfig.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}
	if database.MongoClient != nil {
		_ = database.MongoClient.Disconnect(ctx)
	}
	logger.Info("Server exited")
}
