package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/maheshrc27/insta-signature/internal/cache"
	"github.com/maheshrc27/insta-signature/internal/models"
)

// FallbackIDPrefix marks synthetic posts. Instagram media ids are numeric, so
// the prefix cannot collide with a real id in the thumbnail index.
const FallbackIDPrefix = "mock_"

var fallbackTemplate = []struct {
	mediaType models.MediaType
	caption   string
}{
	{models.MediaTypeImage, "Mock Instagram post 1"},
	{models.MediaTypeVideo, "Mock Instagram video 2"},
	{models.MediaTypeCarousel, "Mock Instagram carousel 3"},
	{models.MediaTypeImage, "Mock Instagram post 4"},
}

// FallbackPosts builds the four placeholder posts served whenever real media
// is unavailable. Timestamps are taken at call time.
func FallbackPosts() []models.Post {
	now := time.Now().UTC().Format(cache.TimestampLayout)

	posts := make([]models.Post, 0, len(fallbackTemplate))
	for i, tpl := range fallbackTemplate {
		n := i + 1
		image := fmt.Sprintf("https://picsum.photos/400/400?random=%d", n)
		posts = append(posts, models.Post{
			ID:           fmt.Sprintf("%s%d", FallbackIDPrefix, n),
			MediaType:    tpl.mediaType,
			MediaURL:     image,
			ThumbnailURL: image,
			Permalink:    fmt.Sprintf("https://instagram.com/p/mock%d", n),
			Caption:      tpl.caption,
			Timestamp:    now,
		})
	}
	return posts
}

func IsFallbackID(postID string) bool {
	return strings.HasPrefix(postID, FallbackIDPrefix)
}
