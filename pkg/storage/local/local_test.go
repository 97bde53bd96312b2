package local

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mikawi/g2scv/pkg/logger"
)

func newStorage(t *testing.T) *LocalStorage {
	t.Helper()
	st, err := NewLocalStorage(t.TempDir(), logger.NewTestLogger())
	if err != nil {
		t.Fatal(err)
	}
	return st
}

func TestStoreAndGet(t *testing.T) {
	st := newStorage(t)
	ctx := context.Background()

	key, err := st.Store(ctx, strings.NewReader("payload"), "uploads/a.txt")
	if err != nil {
		t.Fatalf("Store() error: %v", err)
	}
	if key != "uploads/a.txt" {
		t.Errorf("key = %q", key)
	}

	rc, err := st.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "payload" {
		t.Errorf("content = %q", data)
	}
}

func TestGetMissing(t *testing.T) {
	st := newStorage(t)
	if _, err := st.Get(context.Background(), "nope.txt"); err == nil {
		t.Fatal("expected error for missing object")
	}
}

func TestDelete(t *testing.T) {
	st := newStorage(t)
	ctx := context.Background()

	if _, err := st.Store(ctx, strings.NewReader("x"), "a.txt"); err != nil {
		t.Fatal(err)
	}
	if err := st.Delete(ctx, "a.txt"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := st.Get(ctx, "a.txt"); err == nil {
		t.Fatal("object still readable after delete")
	}
}

func TestKeyEscapeRejected(t *testing.T) {
	st := newStorage(t)
	ctx := context.Background()

	for _, key := range []string{"../evil.txt", "/abs.txt", "a/../../b"} {
		if _, err := st.Store(ctx, strings.NewReader("x"), key); err == nil {
			t.Errorf("Store(%q) accepted escaping key", key)
		}
		if _, err := st.Get(ctx, key); err == nil {
			t.Errorf("Get(%q) accepted escaping key", key)
		}
	}
}

func TestCleanupBefore(t *testing.T) {
	dir := t.TempDir()
	st, err := NewLocalStorage(dir, logger.NewTestLogger())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if _, err := st.Store(ctx, strings.NewReader("old"), "old.txt"); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Store(ctx, strings.NewReader("new"), "new.txt"); err != nil {
		t.Fatal(err)
	}

	// Age one file past the threshold.
	past := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(filepath.Join(dir, "old.txt"), past, past); err != nil {
		t.Fatal(err)
	}

	if err := st.CleanupBefore(ctx, time.Now().Add(-24*time.Hour)); err != nil {
		t.Fatalf("CleanupBefore() error: %v", err)
	}

	if _, err := st.Get(ctx, "old.txt"); err == nil {
		t.Error("expired object survived cleanup")
	}
	if _, err := st.Get(ctx, "new.txt"); err != nil {
		t.Error("fresh object removed by cleanup")
	}
}
