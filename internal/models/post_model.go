package models

type MediaType string

const (
	MediaTypeImage    MediaType = "IMAGE"
	MediaTypeVideo    MediaType = "VIDEO"
	MediaTypeCarousel MediaType = "CAROUSEL_ALBUM"
)

// Supported reports whether posts of this type are shown in the signature.
func (m MediaType) Supported() bool {
	switch m {
	case MediaTypeImage, MediaTypeVideo, MediaTypeCarousel:
		return true
	}
	return false
}

type Post struct {
	ID            string    `json:"id"`
	MediaType     MediaType `json:"media_type"`
	MediaURL      string    `json:"media_url"`
	ThumbnailURL  string    `json:"thumbnail_url,omitempty"`
	Permalink     string    `json:"permalink"`
	Caption       string    `json:"caption,omitempty"`
	Timestamp     string    `json:"timestamp"`
	ThumbnailPath string    `json:"thumbnail_path,omitempty"`
}

// ThumbnailSource is the upstream preview URL, or the media URL when the
// upstream did not send one.
func (p Post) ThumbnailSource() string {
	if p.ThumbnailURL != "" {
		return p.ThumbnailURL
	}
	return p.MediaURL
}
