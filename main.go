package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookline/config"
	"bookline/cron"
	"bookline/database"
	reservationRepoPkg "bookline/database/repository/reservation"
	sessionRepoPkg "bookline/database/repository/session"
	shopRepoPkg "bookline/database/repository/shop"
	"bookline/handlers"
	"bookline/middleware"
	"bookline/routes"
	"bookline/services/agent"
	"bookline/services/intelligence"
	"bookline/session"
	"bookline/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitShopCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	shopRepo := shopRepoPkg.NewCachedShopRepo(
		shopRepoPkg.NewMongoShopRepo(),
		utils.GetShopCacheClient(),
	)
	reservationRepo := reservationRepoPkg.NewMongoReservationRepo()
	sessionRepo := sessionRepoPkg.NewMongoSessionRepo()

	// session store and background sweep.
	sessionStore := session.NewStore(sessionRepo)
	cron.InitSessionSweeper(sessionStore)

	// services.
	var completer intelligence.TextCompleter
	if config.AppConfig.GeminiAPIKey != "" {
		completer = intelligence.NewGeminiClient(config.AppConfig.GeminiAPIKey)
	} else {
		logger.Warn("main: no Gemini API key configured, replies fall back to rule-based responses")
	}

	agentService := agent.NewDefaultAgentService(shopRepo, reservationRepo, sessionStore, completer)

	reservationAdmin := handlers.NewReservationAdminHandler(reservationRepo)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		ChatHandler: handlers.NewChatHandler(agentService),

		GetShopHandler:   handlers.NewGetShopHandler(shopRepo),
		ListShopsHandler: handlers.NewListShopsHandler(shopRepo),

		ListReservationsHandler:  reservationAdmin.ListReservations,
		CancelReservationHandler: reservationAdmin.CancelReservation,

		HealthHandler: handlers.HealthHandler,
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
