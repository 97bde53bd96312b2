package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/mikawi/g2scv/internal/service/document"
	"github.com/mikawi/g2scv/pkg/logger"
	"github.com/mikawi/g2scv/pkg/queue"
)

// cleanupInterval paces the storage retention sweep.
const cleanupInterval = 24 * time.Hour

type CVWorker struct {
	BaseWorker
	svc document.CVParser
}

func NewCVWorker(workerCfg *Config, svc document.CVParser, log logger.Logger) (*CVWorker, error) {
	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: workerCfg.RedisAddr, Password: workerCfg.RedisPassword, DB: workerCfg.RedisDB},
		asynq.Config{
			Concurrency: workerCfg.Concurrency,
			Queues:      workerCfg.Queues,
			RetryDelayFunc: func(n int, err error, task *asynq.Task) time.Duration {
				return time.Duration(n) * time.Minute
			},
		},
	)

	w := &CVWorker{
		BaseWorker: BaseWorker{
			server:   server,
			mux:      asynq.NewServeMux(),
			logger:   log,
			stopChan: make(chan struct{}),
		},
		svc: svc,
	}

	w.mux.HandleFunc(queue.TaskTypeCVParse, w.handleCVParse)
	return w, nil
}

func (w *CVWorker) handleCVParse(ctx context.Context, t *asynq.Task) error {
	var task queue.Task
	if err := json.Unmarshal(t.Payload(), &task); err != nil {
		w.logger.Error("Failed to unmarshal task",
			logger.Error(err),
			logger.String("payload", string(t.Payload())),
		)
		return fmt.Errorf("failed to unmarshal task: %w", err)
	}

	w.logger.Info("Processing CV parse task",
		logger.String("taskId", task.ID),
		logger.Any("metadata", task.Metadata),
	)

	if task.ID == "" || task.Metadata == nil || task.Payload == nil {
		w.logger.Error("Invalid task data",
			logger.String("taskId", task.ID),
		)
		return fmt.Errorf("invalid task data: missing required fields")
	}

	info := t.ResultWriter()

	if _, err := info.Write([]byte(`{"status":"running","progress":0}`)); err != nil {
		w.logger.Error("Failed to write task status", logger.Error(err))
	}

	if err := w.svc.HandleParse(ctx, &task); err != nil {
		if _, writeErr := info.Write([]byte(fmt.Sprintf(`{"status":"failed","error":%q}`, err.Error()))); writeErr != nil {
			w.logger.Error("Failed to write task failure", logger.Error(writeErr))
		}
		return err
	}

	if _, err := info.Write([]byte(`{"status":"completed","progress":100}`)); err != nil {
		w.logger.Error("Failed to write task completion", logger.Error(err))
	}

	return nil
}

func (w *CVWorker) Start(ctx context.Context) error {
	go func() {
		if err := w.server.Run(w.mux); err != nil {
			w.logger.Error("Worker server stopped", logger.Error(err))
		}
	}()

	go w.runCleanup(ctx)

	go func() {
		<-ctx.Done()
		w.Stop()
	}()

	return nil
}

// runCleanup sweeps expired uploads and result artifacts out of storage.
func (w *CVWorker) runCleanup(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.svc.CleanupTasks(ctx); err != nil {
				w.logger.Error("Storage cleanup failed", logger.Error(err))
			}
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		}
	}
}
