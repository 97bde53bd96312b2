package document

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	cfg "github.com/mikawi/g2scv/config"
	"github.com/mikawi/g2scv/internal/models"
	"github.com/mikawi/g2scv/internal/parser"
	"github.com/mikawi/g2scv/internal/parser/entities"
	"github.com/mikawi/g2scv/internal/parser/ocr"
	"github.com/mikawi/g2scv/pkg/artifact"
	"github.com/mikawi/g2scv/pkg/logger"
	"github.com/mikawi/g2scv/pkg/queue"
	"github.com/mikawi/g2scv/pkg/storage"
)

type CVService struct {
	parser  *parser.Parser
	queue   queue.Queue
	storage storage.Storage
	logger  logger.Logger
	config  *ServiceConfig
}

type ServiceConfig struct {
	MaxFileSize     int64
	AllowedTypes    []string
	QueuePriority   int
	ProcessTimeout  time.Duration
	RetentionPeriod time.Duration
}

func defaultServiceConfig() *ServiceConfig {
	return &ServiceConfig{
		MaxFileSize:     int64(cfg.GetServerConfig().MaxUploadSizeMB) * 1024 * 1024,
		AllowedTypes:    []string{".pdf", ".docx", ".jpg", ".jpeg", ".png", ".tiff", ".tif", ".txt"},
		QueuePriority:   2,
		ProcessTimeout:  30 * time.Minute,
		RetentionPeriod: time.Duration(cfg.GetWorkerConfig().RetentionDays) * 24 * time.Hour,
	}
}

func NewService(
	p *parser.Parser,
	q queue.Queue,
	st storage.Storage,
	log logger.Logger,
	sc *ServiceConfig,
) CVParser {
	if sc == nil {
		sc = defaultServiceConfig()
	}

	return &CVService{
		parser:  p,
		queue:   q,
		storage: st,
		logger:  log,
		config:  sc,
	}
}

// GetService wires the full service from the environment configuration.
func GetService(log logger.Logger) (CVParser, error) {
	storageConfig := cfg.GetStorageConfig()
	store, err := storage.NewStorage(storage.StorageType(storageConfig.Type), log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	q, err := queue.GetQueue()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize queue: %w", err)
	}

	p, err := BuildParser(log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize parser: %w", err)
	}

	return NewService(p, q, store, log, defaultServiceConfig()), nil
}

// BuildParser assembles a Parser from the environment configuration: the
// OCR engine named by OCR_ENGINE and, when NER is enabled, the prose-backed
// entity extractor. A missing NER model downgrades to the no-op extractor.
func BuildParser(log logger.Logger) (*parser.Parser, error) {
	parserConfig := cfg.GetParserConfig()

	var engine ocr.Engine
	switch parserConfig.OCREngine {
	case "textract":
		textractConfig := cfg.GetTextractConfig()
		var err error
		engine, err = ocr.NewTextract(context.Background(), ocr.TextractConfig{
			Region:    textractConfig.Region,
			AccessKey: textractConfig.AccessKey,
			SecretKey: textractConfig.SecretKey,
		}, log.Named("textract"))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize textract: %w", err)
		}
	default:
		engine = ocr.NewTesseract(ocr.TesseractConfig{
			Languages:  parserConfig.OCRLanguages,
			Preprocess: parserConfig.OCRPreprocess,
		}, log.Named("tesseract"))
	}

	var extractor entities.Extractor = entities.Noop{}
	if parserConfig.NER {
		prose, err := entities.NewProse()
		if err != nil {
			log.Warn("NER model unavailable, entity extraction disabled", logger.Error(err))
		} else {
			extractor = prose
		}
	}

	return parser.New(parser.Config{
		Logger:   log,
		Entities: extractor,
		OCR:      engine,
	}), nil
}

// ParseFile validates and stores one upload, then enqueues its parse task.
func (s *CVService) ParseFile(
	ctx context.Context,
	file multipart.File,
	header *multipart.FileHeader,
) (*models.ParseTask, error) {
	s.logger.Info("Starting CV parse",
		logger.String("filename", header.Filename),
		logger.Int64("size", header.Size),
	)

	if err := s.validateFile(header); err != nil {
		s.logger.Error("File validation failed",
			logger.String("filename", header.Filename),
			logger.Error(err),
		)
		return nil, err
	}

	taskID := uuid.New().String()
	ext := strings.ToLower(filepath.Ext(header.Filename))

	task := &models.ParseTask{
		ID:        taskID,
		Status:    models.StatusPending,
		Type:      queue.TaskTypeCVParse,
		Priority:  s.config.QueuePriority,
		Progress:  0,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Metadata: map[string]string{
			"filename": header.Filename,
			"size":     fmt.Sprintf("%d", header.Size),
			"type":     ext,
		},
	}

	// Uploads are keyed by task ID so same-named files can't collide.
	fileID, err := s.storage.Store(ctx, file, "uploads/"+taskID+ext)
	if err != nil {
		s.logger.Error("Failed to store file",
			logger.String("filename", header.Filename),
			logger.Error(err),
		)
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	queueTask := &queue.Task{
		ID:       taskID,
		Type:     task.Type,
		Priority: task.Priority,
		Payload: map[string]interface{}{
			"fileId":   fileID,
			"filename": header.Filename,
			"size":     header.Size,
			"type":     ext,
		},
		Metadata:  task.Metadata,
		CreatedAt: task.CreatedAt,
	}

	if err := s.queue.Enqueue(ctx, queueTask); err != nil {
		s.logger.Error("Failed to enqueue task",
			logger.String("taskId", taskID),
			logger.Error(err),
		)
		return nil, fmt.Errorf("failed to enqueue task: %w", err)
	}

	initialStatus := &queue.TaskStatus{
		TaskID:    taskID,
		Status:    "pending",
		Progress:  0,
		StartedAt: time.Now(),
	}

	if err := s.queue.SaveFinalStatus(ctx, initialStatus); err != nil {
		s.logger.Error("Failed to save initial status",
			logger.String("taskId", taskID),
			logger.Error(err),
		)
	}

	s.logger.Info("CV parse task created",
		logger.String("taskId", taskID),
		logger.String("filename", header.Filename),
	)

	return task, nil
}

// ParseBatch fans the uploads out concurrently; a failure cancels the rest
// but already-created tasks are still returned.
func (s *CVService) ParseBatch(ctx context.Context, files []*multipart.FileHeader) ([]*models.ParseTask, error) {
	tasks := make([]*models.ParseTask, 0, len(files))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)

	for _, header := range files {
		header := header
		g.Go(func() error {
			file, err := header.Open()
			if err != nil {
				return fmt.Errorf("failed to open file %s: %w", header.Filename, err)
			}
			defer file.Close()

			task, err := s.ParseFile(ctx, file, header)
			if err != nil {
				return fmt.Errorf("failed to parse file %s: %w", header.Filename, err)
			}

			mu.Lock()
			tasks = append(tasks, task)
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return tasks, err
	}

	return tasks, nil
}

// HandleParse runs inside the queue worker: fetch the stored upload, parse
// it, persist the result artifact, and mirror the final status.
func (s *CVService) HandleParse(ctx context.Context, task *queue.Task) error {
	if task == nil || task.Payload == nil || task.Metadata == nil {
		return fmt.Errorf("invalid task: missing required data")
	}

	s.logger.Info("Parsing CV",
		logger.String("taskId", task.ID),
		logger.String("filename", task.Metadata["filename"]),
	)

	fileID, ok := task.Payload["fileId"].(string)
	if !ok || fileID == "" {
		return fmt.Errorf("invalid task: missing fileId")
	}

	reader, err := s.storage.Get(ctx, fileID)
	if err != nil {
		return fmt.Errorf("failed to get file: %w", err)
	}
	defer reader.Close()

	// The parser works on paths, so the object is staged in a temp file.
	// Keeping the original extension preserves extension-based dispatch.
	tmp, err := os.CreateTemp("", "cv-*"+task.Metadata["type"])
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, reader); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to stage file: %w", err)
	}
	tmp.Close()

	doc, err := s.parser.Parse(ctx, tmpPath)
	if err != nil {
		status := &queue.TaskStatus{
			TaskID:     task.ID,
			Status:     "failed",
			Error:      err.Error(),
			StartedAt:  task.CreatedAt,
			FinishedAt: time.Now(),
		}
		if serr := s.queue.SaveFinalStatus(ctx, status); serr != nil {
			s.logger.Error("Failed to save failure status",
				logger.String("taskId", task.ID),
				logger.Error(serr),
			)
		}
		return fmt.Errorf("failed to parse document: %w", err)
	}

	// The staged temp name would otherwise leak into FileInfo and the
	// artifact key.
	doc.FileInfo.Filename = task.Metadata["filename"]
	doc.FileInfo.Path = task.Metadata["filename"]

	resultKey, err := artifact.Store(ctx, s.storage, doc, time.Now())
	if err != nil {
		return fmt.Errorf("failed to store result: %w", err)
	}

	s.logger.Info("CV parse completed",
		logger.String("taskId", task.ID),
		logger.String("resultKey", resultKey),
		logger.Bool("partial", doc.Error != ""),
	)

	finalStatus := &queue.TaskStatus{
		TaskID:     task.ID,
		Status:     "completed",
		Progress:   1.0,
		ResultKey:  resultKey,
		StartedAt:  task.CreatedAt,
		FinishedAt: time.Now(),
	}

	if err := s.queue.SaveFinalStatus(ctx, finalStatus); err != nil {
		s.logger.Error("Failed to save final status",
			logger.String("taskId", task.ID),
			logger.Error(err),
		)
	}

	return nil
}

// GetParseStatus returns the task view of a queued parse.
func (s *CVService) GetParseStatus(ctx context.Context, taskID string) (*models.ParseTask, error) {
	status, err := s.queue.GetTaskStatus(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task status: %w", err)
	}

	var taskStatus models.ParseStatus
	switch status.Status {
	case "pending":
		taskStatus = models.StatusPending
	case "running", "active":
		taskStatus = models.StatusRunning
	case "completed":
		taskStatus = models.StatusCompleted
	case "failed":
		taskStatus = models.StatusFailed
	case "cancelled":
		taskStatus = models.StatusCancelled
	default:
		taskStatus = models.StatusPending
	}

	return &models.ParseTask{
		ID:        status.TaskID,
		Status:    taskStatus,
		Type:      queue.TaskTypeCVParse,
		Progress:  status.Progress,
		Error:     status.Error,
		Metadata:  make(map[string]string),
		CreatedAt: status.StartedAt,
		UpdatedAt: status.FinishedAt,
	}, nil
}

// GetParsedDocument loads the stored result artifact of a completed task.
func (s *CVService) GetParsedDocument(ctx context.Context, taskID string) (*models.ParsedDocument, error) {
	status, err := s.queue.GetTaskStatus(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task status: %w", err)
	}

	if status.Status != "completed" {
		return nil, fmt.Errorf("task is not completed: %s", status.Status)
	}
	if status.ResultKey == "" {
		return nil, fmt.Errorf("task %s has no stored result", taskID)
	}

	reader, err := s.storage.Get(ctx, status.ResultKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get result: %w", err)
	}
	defer reader.Close()

	var result models.ParsedDocument
	if err := json.NewDecoder(reader).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode result: %w", err)
	}

	return &result, nil
}

// CancelTask cancels a pending task.
func (s *CVService) CancelTask(ctx context.Context, taskID string) error {
	if err := s.queue.CancelTask(ctx, taskID); err != nil {
		return fmt.Errorf("failed to cancel task: %w", err)
	}

	if err := s.queue.SaveFinalStatus(ctx, &queue.TaskStatus{
		TaskID:     taskID,
		Status:     "cancelled",
		FinishedAt: time.Now(),
	}); err != nil {
		s.logger.Error("Failed to save cancelled status",
			logger.String("taskId", taskID),
			logger.Error(err),
		)
	}

	s.logger.Info("Task cancelled",
		logger.String("taskId", taskID),
	)

	return nil
}

// CleanupTasks removes stored objects older than the retention period.
func (s *CVService) CleanupTasks(ctx context.Context) error {
	threshold := time.Now().Add(-s.config.RetentionPeriod)

	if err := s.storage.CleanupBefore(ctx, threshold); err != nil {
		return fmt.Errorf("failed to cleanup storage: %w", err)
	}

	s.logger.Info("Completed storage cleanup",
		logger.Time("threshold", threshold),
	)

	return nil
}

func (s *CVService) validateFile(header *multipart.FileHeader) error {
	if header.Size > s.config.MaxFileSize {
		return fmt.Errorf("file size exceeds maximum limit of %d bytes", s.config.MaxFileSize)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	for _, t := range s.config.AllowedTypes {
		if t == ext {
			return nil
		}
	}
	return fmt.Errorf("unsupported file type: %s", ext)
}
