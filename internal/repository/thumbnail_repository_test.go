package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestThumbnailRepositorySave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "thumbs")
	repo := NewThumbnailRepository(dir, "/thumbnails/")

	ref, err := repo.Save(context.Background(), "17895695668004550", []byte("jpeg"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if ref != "/thumbnails/17895695668004550.jpg" {
		t.Errorf("ref = %q", ref)
	}

	data, err := os.ReadFile(filepath.Join(dir, "17895695668004550.jpg"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "jpeg" {
		t.Errorf("content = %q", data)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, temp file left behind?", len(entries))
	}
}

func TestThumbnailRepositoryOverwrite(t *testing.T) {
	repo := NewThumbnailRepository(t.TempDir(), "/thumbnails")

	repo.Save(context.Background(), "1", []byte("old"))
	if _, err := repo.Save(context.Background(), "1", []byte("new")); err != nil {
		t.Fatal(err)
	}

	p, _ := repo.Path("1")
	data, _ := os.ReadFile(p)
	if string(data) != "new" {
		t.Errorf("content = %q, want new", data)
	}
}

func TestThumbnailRepositoryRejectsBadIDs(t *testing.T) {
	repo := NewThumbnailRepository(t.TempDir(), "/thumbnails")

	for _, id := range []string{"", ".", "..", "../etc/passwd", `a\b`, "a/b"} {
		if _, err := repo.Save(context.Background(), id, []byte("x")); !errors.Is(err, ErrInvalidPostID) {
			t.Errorf("Save(%q) err = %v, want ErrInvalidPostID", id, err)
		}
	}
}

func TestThumbnailRepositoryCancelled(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "thumbs")
	repo := NewThumbnailRepository(dir, "/thumbnails")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := repo.Save(ctx, "1", []byte("x")); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("directory created for a cancelled save")
	}
}
