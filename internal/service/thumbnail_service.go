package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"math"
	"net/http"

	"github.com/h2non/filetype"
	config "github.com/maheshrc27/insta-signature/configs"
	"github.com/maheshrc27/insta-signature/internal/cache"
	"github.com/maheshrc27/insta-signature/internal/metrics"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	thumbnailQuality  = 80
	maxDownloadBytes  = 20 << 20
	defaultEdgePixels = 80
)

// ThumbnailSink persists an encoded thumbnail under postID and returns the
// reference the presentation layer should use.
type ThumbnailSink interface {
	Save(ctx context.Context, postID string, data []byte) (string, error)
}

type passThroughResolver struct{}

// NewPassThroughResolver returns source URLs unchanged. Used in stateless
// mode where nothing outlives the invocation.
func NewPassThroughResolver() cache.ThumbnailResolver {
	return passThroughResolver{}
}

func (passThroughResolver) Resolve(_ context.Context, sourceURL, _ string) string {
	metrics.RecordThumbnail("passthrough")
	return sourceURL
}

type resizeResolver struct {
	client *http.Client
	sink   ThumbnailSink
	width  int
	height int
}

// NewResizeResolver downloads, crops to the configured box, re-encodes as
// JPEG and persists through sink. Fallback posts pass through untouched.
func NewResizeResolver(cfg config.Config, sink ThumbnailSink, client *http.Client) cache.ThumbnailResolver {
	if client == nil {
		client = &http.Client{Timeout: cfg.UpstreamTimeout}
	}
	w, h := ThumbnailDimensions(cfg.ThumbnailEdge, cfg.ThumbnailAspect)
	return &resizeResolver{client: client, sink: sink, width: w, height: h}
}

// ThumbnailDimensions returns edge x edge, or edge x round(edge*4/3) for the
// portrait aspect.
func ThumbnailDimensions(edge int, aspect string) (int, int) {
	if edge <= 0 {
		edge = defaultEdgePixels
	}
	if aspect == config.AspectPortrait {
		return edge, int(math.Round(float64(edge) * 4 / 3))
	}
	return edge, edge
}

func (r *resizeResolver) Resolve(ctx context.Context, sourceURL, postID string) string {
	if IsFallbackID(postID) || sourceURL == "" {
		metrics.RecordThumbnail("passthrough")
		return sourceURL
	}

	ref, err := r.process(ctx, sourceURL, postID)
	if err != nil {
		slog.Error("thumbnail generation failed", "post_id", postID, "error", err)
		metrics.RecordThumbnail("failed")
		return sourceURL
	}

	metrics.RecordThumbnail("persisted")
	return ref
}

func (r *resizeResolver) process(ctx context.Context, sourceURL, postID string) (string, error) {
	data, err := r.download(ctx, sourceURL)
	if err != nil {
		return "", fmt.Errorf("%w: download: %v", ErrThumbnailProcessing, err)
	}

	encoded, err := MakeThumbnail(data, r.width, r.height)
	if err != nil {
		return "", err
	}

	ref, err := r.sink.Save(ctx, postID, encoded)
	if err != nil {
		return "", fmt.Errorf("%w: save: %v", ErrThumbnailProcessing, err)
	}
	return ref, nil
}

func (r *resizeResolver) download(ctx context.Context, sourceURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxDownloadBytes))
}

// MakeThumbnail decodes an image, crops it centered to the target aspect ratio,
// scales it to width x height and encodes the result as JPEG.
func MakeThumbnail(data []byte, width, height int) ([]byte, error) {
	kind, err := filetype.Match(data)
	if err != nil || !filetype.IsImage(data) {
		return nil, fmt.Errorf("%w: not an image", ErrThumbnailProcessing)
	}
	switch kind.Extension {
	case "jpg", "png", "gif", "webp":
	default:
		return nil, fmt.Errorf("%w: unsupported image type %s", ErrThumbnailProcessing, kind.Extension)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrThumbnailProcessing, err)
	}

	crop := coverRect(src.Bounds(), width, height)
	if crop.Empty() {
		return nil, fmt.Errorf("%w: empty crop for %v", ErrThumbnailProcessing, src.Bounds())
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, draw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: thumbnailQuality}); err != nil {
		return nil, fmt.Errorf("%w: encode: %v", ErrThumbnailProcessing, err)
	}
	return buf.Bytes(), nil
}

// coverRect is the largest centered sub-rectangle of b with the w:h ratio,
// never narrower than one pixel on either side of a non-empty b.
func coverRect(b image.Rectangle, w, h int) image.Rectangle {
	bw, bh := b.Dx(), b.Dy()
	if bw <= 0 || bh <= 0 || w <= 0 || h <= 0 {
		return image.Rectangle{}
	}
	if bw*h > bh*w {
		cw := max(1, bh*w/h)
		x0 := b.Min.X + (bw-cw)/2
		return image.Rect(x0, b.Min.Y, x0+cw, b.Max.Y)
	}
	ch := max(1, bw*h/w)
	y0 := b.Min.Y + (bh-ch)/2
	return image.Rect(b.Min.X, y0, b.Max.X, y0+ch)
}
