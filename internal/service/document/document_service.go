package document

import (
	"context"
	"mime/multipart"

	"github.com/mikawi/g2scv/internal/models"
	"github.com/mikawi/g2scv/pkg/queue"
)

// CVParser is the application service behind the HTTP handlers and the
// queue worker.
type CVParser interface {
	ParseFile(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*models.ParseTask, error)
	ParseBatch(ctx context.Context, files []*multipart.FileHeader) ([]*models.ParseTask, error)
	GetParseStatus(ctx context.Context, taskID string) (*models.ParseTask, error)
	HandleParse(ctx context.Context, task *queue.Task) error
	GetParsedDocument(ctx context.Context, taskID string) (*models.ParsedDocument, error)
	CancelTask(ctx context.Context, taskID string) error
	CleanupTasks(ctx context.Context) error
}
