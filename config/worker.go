package config

import (
	"sync"
)

var (
	workerOnce   sync.Once
	workerConfig *WorkerConfig
)

type WorkerConfig struct {
	Concurrency int
	// RetentionDays bounds how long stored artifacts are kept before the
	// cleanup pass removes them.
	RetentionDays int
}

func GetWorkerConfig() *WorkerConfig {
	workerOnce.Do(func() {
		workerConfig = &WorkerConfig{
			Concurrency:   lookupInt("WORKER_CONCURRENCY", 5),
			RetentionDays: lookupInt("ARTIFACT_RETENTION_DAYS", 30),
		}
	})
	return workerConfig
}
