// Package queue wraps asynq for background CV parsing. Final task states
// are mirrored into Redis so status queries survive asynq's task retention.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	cfg "github.com/mikawi/g2scv/config"
)

// TaskTypeCVParse is the only task type; every upload becomes one.
const TaskTypeCVParse = "cv:parse"

// Queue interface
type Queue interface {
	Enqueue(ctx context.Context, task *Task) error
	GetTaskStatus(ctx context.Context, taskID string) (*TaskStatus, error)
	CancelTask(ctx context.Context, taskID string) error
	SaveFinalStatus(ctx context.Context, status *TaskStatus) error
}

// Task carries one parse request through the queue.
type Task struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Priority  int                    `json:"priority"`
	Payload   map[string]interface{} `json:"payload"`
	Metadata  map[string]string      `json:"metadata"`
	CreatedAt time.Time              `json:"createdAt"`
}

// TaskStatus is the Redis-persisted view of a task. ResultKey points at
// the stored result artifact once the parse completes.
type TaskStatus struct {
	TaskID     string    `json:"taskId"`
	Status     string    `json:"status"`
	Progress   float64   `json:"progress"`
	Error      string    `json:"error,omitempty"`
	ResultKey  string    `json:"resultKey,omitempty"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt,omitempty"`
}

// AsynqQueue implements Queue on asynq plus a Redis status mirror.
type AsynqQueue struct {
	client    *asynq.Client
	inspector *asynq.Inspector
	redis     *redis.Client
}

// QueueConfig defines queue configuration
type QueueConfig struct {
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	MaxRetries     int
	RetryDelay     time.Duration
	ProcessTimeout time.Duration
}

// GetQueue builds a queue from the environment configuration.
func GetQueue() (*AsynqQueue, error) {
	redisConfig := cfg.GetRedisConfig()
	return NewAsynqQueue(&QueueConfig{
		RedisAddr:      redisConfig.Addr,
		RedisPassword:  redisConfig.Password,
		RedisDB:        redisConfig.DB,
		MaxRetries:     3,
		RetryDelay:     1 * time.Minute,
		ProcessTimeout: 30 * time.Minute,
	})
}

// NewAsynqQueue creates a new queue instance
func NewAsynqQueue(qc *QueueConfig) (*AsynqQueue, error) {
	redisOpt := asynq.RedisClientOpt{
		Addr:     qc.RedisAddr,
		Password: qc.RedisPassword,
		DB:       qc.RedisDB,
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     qc.RedisAddr,
		Password: qc.RedisPassword,
		DB:       qc.RedisDB,
	})

	return &AsynqQueue{
		client:    asynq.NewClient(redisOpt),
		inspector: asynq.NewInspector(redisOpt),
		redis:     redisClient,
	}, nil
}

// Enqueue adds a task to the queue
func (q *AsynqQueue) Enqueue(ctx context.Context, task *Task) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	opts := []asynq.Option{
		asynq.ProcessIn(time.Second),
		asynq.MaxRetry(3),
		asynq.Timeout(30 * time.Minute),
		asynq.TaskID(task.ID),
	}

	// Priority picks the queue.
	switch task.Priority {
	case 1:
		opts = append(opts, asynq.Queue("critical"))
	case 2:
		opts = append(opts, asynq.Queue("default"))
	default:
		opts = append(opts, asynq.Queue("low"))
	}

	t := asynq.NewTask(task.Type, payload, opts...)
	info, err := q.client.EnqueueContext(ctx, t)
	if err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	task.ID = info.ID

	return nil
}

// GetTaskStatus returns the task status, preferring the Redis mirror.
func (q *AsynqQueue) GetTaskStatus(ctx context.Context, taskID string) (*TaskStatus, error) {
	key := fmt.Sprintf("task_status:%s", taskID)
	data, err := q.redis.Get(ctx, key).Bytes()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get status from redis: %w", err)
	}

	if err == nil {
		var status TaskStatus
		if err := json.Unmarshal(data, &status); err != nil {
			return nil, fmt.Errorf("failed to unmarshal status: %w", err)
		}
		return &status, nil
	}

	// Not mirrored yet; ask asynq across all queues.
	queues := []string{"critical", "default", "low"}
	var info *asynq.TaskInfo
	var lastErr error

	for _, queueName := range queues {
		info, err = q.inspector.GetTaskInfo(queueName, taskID)
		if err == nil {
			break
		}
		lastErr = err
	}

	if lastErr != nil {
		return nil, fmt.Errorf("task not found in any queue: %w", lastErr)
	}

	status := convertAsynqStatus(info)

	if err := q.SaveFinalStatus(ctx, status); err != nil {
		fmt.Printf("Failed to save status for task %s: %v\n", taskID, err)
	}

	return status, nil
}

// CancelTask cancels a task
func (q *AsynqQueue) CancelTask(ctx context.Context, taskID string) error {
	queues := []string{"critical", "default", "low"}
	var lastErr error

	for _, queueName := range queues {
		err := q.inspector.DeleteTask(queueName, taskID)
		if err == nil {
			return nil
		}
		lastErr = err
	}

	return fmt.Errorf("failed to cancel task: %w", lastErr)
}

// SaveFinalStatus mirrors a task status into Redis with a 24h TTL.
func (q *AsynqQueue) SaveFinalStatus(ctx context.Context, status *TaskStatus) error {
	key := fmt.Sprintf("task_status:%s", status.TaskID)
	data, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}

	err = q.redis.Set(ctx, key, data, 24*time.Hour).Err()
	if err != nil {
		return fmt.Errorf("failed to save status: %w", err)
	}

	return nil
}

// convertAsynqStatus maps asynq task state onto TaskStatus
func convertAsynqStatus(info *asynq.TaskInfo) *TaskStatus {
	status := &TaskStatus{
		TaskID:     info.ID,
		StartedAt:  info.NextProcessAt,
		FinishedAt: time.Now(),
	}

	switch info.State {
	case asynq.TaskStatePending, asynq.TaskStateScheduled:
		status.Status = "pending"
	case asynq.TaskStateActive:
		status.Status = "running"
		status.Progress = 0.5
	case asynq.TaskStateCompleted:
		status.Status = "completed"
		status.Progress = 1.0
		status.FinishedAt = info.CompletedAt
	case asynq.TaskStateRetry, asynq.TaskStateArchived:
		status.Status = "failed"
		status.Error = info.LastErr
	}

	return status
}
