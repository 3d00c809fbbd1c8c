package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const ThumbnailExt = ".jpg"

var ErrInvalidPostID = errors.New("post id is not a valid file name")

// ThumbnailRepository stores one file per post id in a flat directory.
type ThumbnailRepository interface {
	Save(ctx context.Context, postID string, data []byte) (string, error)
	Path(postID string) (string, error)
	Dir() string
}

type thumbnailRepository struct {
	dir       string
	urlPrefix string
}

// NewThumbnailRepository serves references as urlPrefix/<id>.jpg. The
// directory is created on first save.
func NewThumbnailRepository(dir, urlPrefix string) ThumbnailRepository {
	return &thumbnailRepository{
		dir:       dir,
		urlPrefix: strings.TrimRight(urlPrefix, "/"),
	}
}

func (r *thumbnailRepository) Dir() string {
	return r.dir
}

// ValidatePostID rejects ids that cannot be used as a single path segment.
func ValidatePostID(postID string) error {
	if postID == "" || postID == "." || postID == ".." || strings.ContainsAny(postID, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidPostID, postID)
	}
	return nil
}

func (r *thumbnailRepository) Path(postID string) (string, error) {
	if err := ValidatePostID(postID); err != nil {
		return "", err
	}
	return filepath.Join(r.dir, postID+ThumbnailExt), nil
}

// Save writes through a temp file and rename so readers never see a partial
// thumbnail.
func (r *thumbnailRepository) Save(ctx context.Context, postID string, data []byte) (string, error) {
	target, err := r.Path(postID)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("creating thumbnail dir: %w", err)
	}

	suffix, err := gonanoid.New(10)
	if err != nil {
		return "", err
	}
	tmp := filepath.Join(r.dir, "."+postID+"."+suffix+".tmp")

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("writing thumbnail: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("renaming thumbnail: %w", err)
	}

	return r.urlPrefix + "/" + postID + ThumbnailExt, nil
}
