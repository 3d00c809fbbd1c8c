// Package cache holds the process-wide snapshot of upstream posts and the
// thumbnail references resolved for them.
package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/maheshrc27/insta-signature/internal/models"
	"github.com/maheshrc27/insta-signature/internal/transfer"
)

const DefaultDuration = time.Hour

// ThumbnailResolver turns a post's image reference into a display reference.
// Implementations must not fail; on error they return sourceURL.
type ThumbnailResolver interface {
	Resolve(ctx context.Context, sourceURL, postID string) string
}

type Option func(*Store)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store is safe for concurrent use. The lock guards the snapshot fields only
// and is never held while a thumbnail is resolved, so two concurrent writes
// both run to completion and the later one wins.
type Store struct {
	mu         sync.RWMutex
	posts      []models.Post
	lastUpdate time.Time
	thumbnails map[string]string

	duration time.Duration
	resolver ThumbnailResolver
	now      func() time.Time
}

func NewStore(duration time.Duration, resolver ThumbnailResolver, opts ...Option) *Store {
	if duration <= 0 {
		duration = DefaultDuration
	}
	s := &Store{
		thumbnails: make(map[string]string),
		duration:   duration,
		resolver:   resolver,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) IsStale() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isStaleLocked()
}

func (s *Store) isStaleLocked() bool {
	return len(s.posts) == 0 || s.now().Sub(s.lastUpdate) >= s.duration
}

// Write resolves thumbnails for ids not seen before, then replaces the post
// list wholesale. It is the only mutator.
func (s *Store) Write(ctx context.Context, posts []models.Post) transfer.CacheStatus {
	batch := make(map[string]struct{}, len(posts))
	for _, post := range posts {
		if _, ok := batch[post.ID]; ok {
			continue
		}
		batch[post.ID] = struct{}{}

		if s.hasThumbnail(post.ID) {
			continue
		}

		ref := s.resolver.Resolve(ctx, post.ThumbnailSource(), post.ID)

		s.mu.Lock()
		s.thumbnails[post.ID] = ref
		s.mu.Unlock()
	}

	replaced := make([]models.Post, len(posts))
	copy(replaced, posts)

	s.mu.Lock()
	s.posts = replaced
	s.lastUpdate = s.now()
	s.mu.Unlock()

	status := s.Status()
	slog.Info("cache updated", "posts", status.PostsCount, "thumbnails", status.ThumbnailsCount)
	return status
}

func (s *Store) hasThumbnail(postID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.thumbnails[postID]
	return ok
}

// ReadWithThumbnails returns a copy of the cached posts with ThumbnailPath
// set. Posts for which no reference can be produced are left out.
func (s *Store) ReadWithThumbnails() []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Post, 0, len(s.posts))
	for _, post := range s.posts {
		ref := s.thumbnails[post.ID]
		if ref == "" {
			ref = post.ThumbnailSource()
		}
		if ref == "" {
			continue
		}
		post.ThumbnailPath = ref
		out = append(out, post)
	}
	return out
}

func (s *Store) Status() transfer.CacheStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	last := s.lastUpdate
	if last.IsZero() {
		last = time.UnixMilli(0)
	}

	return transfer.CacheStatus{
		PostsCount:      len(s.posts),
		LastUpdate:      last.UTC().Format(TimestampLayout),
		ThumbnailsCount: len(s.thumbnails),
		CacheAge:        s.now().Sub(last).Milliseconds(),
		IsValid:         !s.isStaleLocked(),
	}
}

// TimestampLayout matches ISO-8601 with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"
