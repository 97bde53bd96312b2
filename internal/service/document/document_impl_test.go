package document

import (
	"context"
	"fmt"
	"image"
	"mime/multipart"
	"strings"
	"testing"
	"time"

	"github.com/mikawi/g2scv/internal/models"
	"github.com/mikawi/g2scv/internal/parser"
	"github.com/mikawi/g2scv/pkg/logger"
	"github.com/mikawi/g2scv/pkg/queue"
	"github.com/mikawi/g2scv/pkg/storage/local"
)

type stubEngine struct{}

func (stubEngine) Recognize(context.Context, image.Image) (string, error) { return "", nil }
func (stubEngine) Close() error                                           { return nil }

// fakeQueue records enqueued tasks and mirrored statuses in memory.
type fakeQueue struct {
	enqueued []*queue.Task
	statuses map[string]*queue.TaskStatus
}

func newFakeQueue() *fakeQueue {
	return &fakeQueue{statuses: make(map[string]*queue.TaskStatus)}
}

func (q *fakeQueue) Enqueue(_ context.Context, task *queue.Task) error {
	q.enqueued = append(q.enqueued, task)
	return nil
}

func (q *fakeQueue) GetTaskStatus(_ context.Context, taskID string) (*queue.TaskStatus, error) {
	s, ok := q.statuses[taskID]
	if !ok {
		return nil, fmt.Errorf("task not found: %s", taskID)
	}
	return s, nil
}

func (q *fakeQueue) CancelTask(_ context.Context, taskID string) error {
	delete(q.statuses, taskID)
	return nil
}

func (q *fakeQueue) SaveFinalStatus(_ context.Context, status *queue.TaskStatus) error {
	q.statuses[status.TaskID] = status
	return nil
}

func newTestService(t *testing.T) (*CVService, *fakeQueue, *local.LocalStorage) {
	t.Helper()

	st, err := local.NewLocalStorage(t.TempDir(), logger.NewTestLogger())
	if err != nil {
		t.Fatal(err)
	}

	q := newFakeQueue()
	p := parser.New(parser.Config{Logger: logger.NewTestLogger(), OCR: stubEngine{}})

	svc := NewService(p, q, st, logger.NewTestLogger(), &ServiceConfig{
		MaxFileSize:     1 << 20,
		AllowedTypes:    []string{".pdf", ".docx", ".jpg", ".jpeg", ".png", ".tiff", ".tif", ".txt"},
		QueuePriority:   2,
		ProcessTimeout:  time.Minute,
		RetentionPeriod: time.Hour,
	})

	return svc.(*CVService), q, st
}

func TestHandleParse(t *testing.T) {
	svc, q, st := newTestService(t)
	ctx := context.Background()

	cv := "Jane Doe\njane@example.com\n\nSkills\nGo"
	if _, err := st.Store(ctx, strings.NewReader(cv), "uploads/task-1.txt"); err != nil {
		t.Fatal(err)
	}

	task := &queue.Task{
		ID:   "task-1",
		Type: queue.TaskTypeCVParse,
		Payload: map[string]interface{}{
			"fileId": "uploads/task-1.txt",
		},
		Metadata: map[string]string{
			"filename": "jane_cv.txt",
			"type":     ".txt",
		},
		CreatedAt: time.Now(),
	}

	if err := svc.HandleParse(ctx, task); err != nil {
		t.Fatalf("HandleParse() error: %v", err)
	}

	status := q.statuses["task-1"]
	if status == nil {
		t.Fatal("no final status saved")
	}
	if status.Status != "completed" {
		t.Errorf("status = %q", status.Status)
	}
	if !strings.HasPrefix(status.ResultKey, "results/cv_parsed_jane_cv_") {
		t.Errorf("ResultKey = %q", status.ResultKey)
	}

	doc, err := svc.GetParsedDocument(ctx, "task-1")
	if err != nil {
		t.Fatalf("GetParsedDocument() error: %v", err)
	}
	if doc.Format != models.FormatText {
		t.Errorf("Format = %q", doc.Format)
	}
	if doc.FileInfo.Filename != "jane_cv.txt" {
		t.Errorf("Filename = %q", doc.FileInfo.Filename)
	}
	if got := doc.ContactInfo.Emails; len(got) != 1 || got[0] != "jane@example.com" {
		t.Errorf("Emails = %v", got)
	}
}

func TestHandleParseMissingPayload(t *testing.T) {
	svc, _, _ := newTestService(t)

	if err := svc.HandleParse(context.Background(), &queue.Task{ID: "x"}); err == nil {
		t.Fatal("expected error for task without payload")
	}
}

func TestHandleParseMissingFile(t *testing.T) {
	svc, q, _ := newTestService(t)

	task := &queue.Task{
		ID:       "task-2",
		Payload:  map[string]interface{}{"fileId": "uploads/gone.txt"},
		Metadata: map[string]string{"filename": "gone.txt", "type": ".txt"},
	}

	if err := svc.HandleParse(context.Background(), task); err == nil {
		t.Fatal("expected error for missing upload")
	}
	if _, ok := q.statuses["task-2"]; ok {
		t.Error("status mirrored for storage-level failure")
	}
}

func TestGetParseStatusMapsStates(t *testing.T) {
	svc, q, _ := newTestService(t)
	ctx := context.Background()

	cases := map[string]models.ParseStatus{
		"pending":   models.StatusPending,
		"running":   models.StatusRunning,
		"completed": models.StatusCompleted,
		"failed":    models.StatusFailed,
		"cancelled": models.StatusCancelled,
		"weird":     models.StatusPending,
	}

	i := 0
	for raw, want := range cases {
		id := fmt.Sprintf("t%d", i)
		i++
		q.statuses[id] = &queue.TaskStatus{TaskID: id, Status: raw}

		task, err := svc.GetParseStatus(ctx, id)
		if err != nil {
			t.Fatalf("GetParseStatus(%s) error: %v", id, err)
		}
		if task.Status != want {
			t.Errorf("status %q mapped to %q, want %q", raw, task.Status, want)
		}
	}
}

func TestGetParsedDocumentNotCompleted(t *testing.T) {
	svc, q, _ := newTestService(t)

	q.statuses["t1"] = &queue.TaskStatus{TaskID: "t1", Status: "running"}
	if _, err := svc.GetParsedDocument(context.Background(), "t1"); err == nil {
		t.Fatal("expected error for unfinished task")
	}
}

func TestValidateFile(t *testing.T) {
	svc, _, _ := newTestService(t)

	cases := []struct {
		name     string
		filename string
		size     int64
		ok       bool
	}{
		{"pdf", "cv.pdf", 100, true},
		{"uppercase ext", "CV.DOCX", 100, true},
		{"executable", "cv.exe", 100, false},
		{"too large", "cv.pdf", 2 << 20, false},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			header := &multipart.FileHeader{Filename: tt.filename, Size: tt.size}
			err := svc.validateFile(header)
			if (err == nil) != tt.ok {
				t.Errorf("validateFile(%s, %d) error = %v, want ok=%v", tt.filename, tt.size, err, tt.ok)
			}
		})
	}
}
