package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	cfg "github.com/mikawi/g2scv/config"
	"github.com/mikawi/g2scv/internal/service/document"
	"github.com/mikawi/g2scv/pkg/logger"
	"github.com/mikawi/g2scv/pkg/worker"
)

func main() {
	log, err := logger.NewLogger(
		logger.WithLevel(cfg.GetServerConfig().LogLevel),
		logger.WithEncoding("json"),
		logger.WithOutputPaths([]string{"stdout", "logs/worker.log"}),
	)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cvService, err := document.GetService(log)
	if err != nil {
		log.Error("Failed to create CV service", logger.Error(err))
		os.Exit(1)
	}

	redisConfig := cfg.GetRedisConfig()
	workerCfg := &worker.Config{
		RedisAddr:     redisConfig.Addr,
		RedisPassword: redisConfig.Password,
		RedisDB:       redisConfig.DB,
		Concurrency:   cfg.GetWorkerConfig().Concurrency,
		Queues: map[string]int{
			"critical": 6,
			"default":  3,
			"low":      1,
		},
	}

	cvWorker, err := worker.NewCVWorker(workerCfg, cvService, log)
	if err != nil {
		log.Error("Failed to create CV worker", logger.Error(err))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := cvWorker.Start(ctx); err != nil {
		log.Error("Failed to start worker", logger.Error(err))
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down worker...")
	cvWorker.Stop()
	log.Info("Worker stopped")
}
