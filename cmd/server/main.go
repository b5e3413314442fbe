package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/vocabflash/internal/api"
	"github.com/vytor/vocabflash/internal/config"
	"github.com/vytor/vocabflash/internal/db"
	"github.com/vytor/vocabflash/internal/jobs"
	"github.com/vytor/vocabflash/internal/learning"
	"github.com/vytor/vocabflash/internal/logger"
	"github.com/vytor/vocabflash/internal/repository/sqlite"
	"github.com/vytor/vocabflash/internal/scheduler"
	"github.com/vytor/vocabflash/internal/services"
	"github.com/vytor/vocabflash/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration: %v", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("VocabFlash Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("timezone=%s", cfg.Timezone)
	log.Debug("mastery_up_threshold=%d", cfg.MasteryUpThreshold)
	log.Debug("weights=%.2f/%.2f/%.2f/%.2f", cfg.WeightWrongRate, cfg.WeightRecency, cfg.WeightMasteryGap, cfg.WeightWrongVolume)
	log.Debug("worker_count=%d", cfg.WorkerCount)
	log.Debug("queue_size=%d", cfg.QueueSize)
	log.Debug("backup_enabled=%t", cfg.BackupEnabled)
	log.Debug("backup_dir=%s", cfg.BackupDir)
	log.Debug("backup_interval_hours=%d", cfg.BackupIntervalHours)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Repositories
	wordRepo := sqlite.NewWordRepository(database.DB)
	statsRepo := sqlite.NewStatisticsRepository(database.DB)
	sessionRepo := sqlite.NewSessionRepository(database.DB)
	examRepo := sqlite.NewExamRepository(database.DB)
	wrongNoteRepo := sqlite.NewWrongNoteRepository(database.DB)
	reportRepo := sqlite.NewReportRepository(database.DB)
	settingsRepo := sqlite.NewSettingsRepository(database.DB)

	// Services
	opts := []services.Option{
		services.WithWeights(learning.Weights{
			WrongRate:   cfg.WeightWrongRate,
			Recency:     cfg.WeightRecency,
			MasteryGap:  cfg.WeightMasteryGap,
			WrongVolume: cfg.WeightWrongVolume,
		}),
		services.WithUpThreshold(cfg.MasteryUpThreshold),
		services.WithLocation(cfg.Location()),
		services.WithMaxQuestions(cfg.MaxExamQuestions),
	}
	settingsService := services.NewSettingsService(settingsRepo)
	statsStore := services.NewStatisticsStore(wordRepo, statsRepo, opts...)
	wordService := services.NewWordService(wordRepo, statsStore)
	sessionEngine := services.NewSessionEngine(wordRepo, statsStore, sessionRepo, opts...)
	examEngine := services.NewExamEngine(wordRepo, statsStore, sessionRepo, examRepo, wrongNoteRepo, opts...)
	reportService := services.NewReportService(reportRepo, settingsService, opts...)

	// Background jobs
	pool := worker.NewPool(cfg.WorkerCount, cfg.QueueSize)
	queue := jobs.NewWorkerQueue(pool, database, settingsService, wordService, cfg.BackupDir)

	ctx, cancel := context.WithCancel(context.Background())
	pool.Start(ctx)

	var sched *scheduler.Scheduler
	if cfg.BackupEnabled {
		sched = scheduler.New(queue, cfg.Location())
		if err := sched.Start(cfg.BackupInterval()); err != nil {
			log.Error("failed to start scheduler: %v", err)
			os.Exit(1)
		}
	}

	srv := api.NewServer(database, wordService, sessionEngine, examEngine, reportService, settingsService, queue)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

	if sched != nil {
		log.Debug("stopping scheduler")
		sched.Stop()
	}

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping worker pool")
	pool.Stop()
	cancel()

	log.Info("===========================================")
	log.Info("VocabFlash Server Stopped")
	log.Info("===========================================")
}
