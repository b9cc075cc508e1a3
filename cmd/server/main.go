package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/genrequiz/internal/api"
	"github.com/vytor/genrequiz/internal/config"
	"github.com/vytor/genrequiz/internal/db"
	"github.com/vytor/genrequiz/internal/jobs"
	"github.com/vytor/genrequiz/internal/logger"
	"github.com/vytor/genrequiz/internal/metrics"
	"github.com/vytor/genrequiz/internal/repository/sqlite"
	"github.com/vytor/genrequiz/internal/services"
	"github.com/vytor/genrequiz/internal/worker"
)

func main() {
	cfg := config.Load()

	opts := []logger.Option{
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	}
	if cfg.LogFile != "" {
		opts = append(opts, logger.WithRotatingFile(cfg.LogFile, 50, 5))
	}
	log := logger.New(opts...)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("genrequiz server starting")
	log.Info("===========================================")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("log_file=%s", cfg.LogFile)
	log.Debug("seed_path=%s", cfg.SeedPath)
	log.Debug("worker_count=%d", cfg.WorkerCount)
	log.Debug("queue_size=%d", cfg.QueueSize)
	log.Debug("max_questions_per_session=%d", cfg.MaxQuestionsPerSession)
	log.Debug("submit_rate_per_second=%.2f", cfg.SubmitRatePerSecond)
	log.Debug("submit_burst=%d", cfg.SubmitBurst)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	m := metrics.New()
	questionRepo := sqlite.NewQuestionRepository(database.DB)
	sessionRepo := sqlite.NewSessionRepository(database.DB)

	questionService := services.NewQuestionService(questionRepo)
	sessionService := services.NewSessionService(sessionRepo, questionRepo, cfg.MaxQuestionsPerSession, m)
	answerService := services.NewAnswerService(sessionRepo, questionRepo, m)
	resultsService := services.NewResultsService(sessionRepo)
	seedService := services.NewSeedService(questionRepo, m)

	ctx, cancel := context.WithCancel(context.Background())
	ctx = logger.NewContext(ctx, log)

	pool := worker.NewPool(cfg.WorkerCount, cfg.QueueSize)
	pool.Start(ctx)
	queue := jobs.NewWorkerQueue(pool, seedService)
	if cfg.SeedPath != "" {
		if err := queue.EnqueueSeed(cfg.SeedPath); err != nil {
			log.Warn("failed to enqueue noun list import: %v", err)
		}
	}

	limiter := api.NewLearnerLimiter(cfg.SubmitRatePerSecond, cfg.SubmitBurst)
	go limiter.Run(ctx)

	srv := &api.Server{
		DB:              database,
		QuestionService: questionService,
		SessionService:  sessionService,
		AnswerService:   answerService,
		ResultsService:  resultsService,
		Metrics:         m,
		SubmitLimiter:   limiter,
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping worker pool")
	cancel()
	pool.Stop()

	log.Info("===========================================")
	log.Info("genrequiz server stopped")
	log.Info("===========================================")
}
