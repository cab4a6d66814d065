package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slotwise/config"
	"slotwise/cron"
	"slotwise/handlers"
	"slotwise/middleware"
	"slotwise/routes"
	"slotwise/services/agent"
	"slotwise/services/calendar"
	"slotwise/services/llm"
	"slotwise/services/session"
	"slotwise/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	utils.InitSessionCache()

	ctx := context.Background()

	// Calendar provider: degrades to demo mode when credentials are missing.
	provider := calendar.NewGoogleProvider(ctx, config.AppConfig)
	engine := calendar.NewEngine(provider, calendar.Hours{
		Start: config.AppConfig.WorkdayStartHour,
		End:   config.AppConfig.WorkdayEndHour,
	})

	// Language model: first configured backend wins.
	llmClient, err := llm.NewFromConfig(config.AppConfig)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	logger.Sugar().Infof("Using %s language model", llmClient.Name())

	// Session store: redis when configured, bounded in-memory otherwise.
	var sessions session.Store
	if cache := utils.GetSessionCacheClient(); cache != nil {
		sessions = session.NewRedisStore(cache, time.Duration(config.AppConfig.SessionTTLMinutes)*time.Minute)
	} else {
		sessions = session.NewMemoryStore(config.AppConfig.SessionMaxCount)
	}

	reminders := cron.NewReminderScheduler()
	cron.InitReminderWorker()

	toolbox := agent.NewToolbox(engine, reminders)
	agentSvc := agent.NewService(llmClient, toolbox, sessions, agent.Options{
		MaxIterations:        config.AppConfig.AgentMaxIterations,
		HistoryTurns:         config.AppConfig.SessionHistoryTurns,
		CommitPartialAnswers: config.AppConfig.CommitPartialAnswer,
	})

	chatHandler := handlers.NewChatHandler(agentSvc)
	calendarHandler := handlers.NewCalendarHandler(engine, reminders)

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	routes.RegisterRoutes(router, chatHandler, calendarHandler)

	utils.StartHealthMonitor(utils.GetSessionCacheClient(), provider.Available)

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
