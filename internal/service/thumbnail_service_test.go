package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	config "github.com/maheshrc27/insta-signature/configs"
)

func pngFixture(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

type memorySink struct {
	mu    sync.Mutex
	saved map[string][]byte
	err   error
}

func (m *memorySink) Save(_ context.Context, postID string, data []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saved == nil {
		m.saved = make(map[string][]byte)
	}
	m.saved[postID] = data
	return "/thumbnails/" + postID + ".jpg", nil
}

func imageServer(t *testing.T, status int, body []byte) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(status)
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestThumbnailDimensions(t *testing.T) {
	tests := []struct {
		edge   int
		aspect string
		w, h   int
	}{
		{80, config.AspectSquare, 80, 80},
		{80, config.AspectPortrait, 80, 107},
		{120, config.AspectPortrait, 120, 160},
		{0, config.AspectSquare, 80, 80},
		{-5, "", 80, 80},
	}

	for _, tt := range tests {
		w, h := ThumbnailDimensions(tt.edge, tt.aspect)
		if w != tt.w || h != tt.h {
			t.Errorf("ThumbnailDimensions(%d, %q) = %dx%d, want %dx%d", tt.edge, tt.aspect, w, h, tt.w, tt.h)
		}
	}
}

func TestMakeThumbnail(t *testing.T) {
	src := pngFixture(t, 200, 100)

	for _, size := range [][2]int{{80, 80}, {80, 107}} {
		out, err := MakeThumbnail(src, size[0], size[1])
		if err != nil {
			t.Fatalf("MakeThumbnail: %v", err)
		}

		img, err := jpeg.Decode(bytes.NewReader(out))
		if err != nil {
			t.Fatalf("output is not a jpeg: %v", err)
		}
		if b := img.Bounds(); b.Dx() != size[0] || b.Dy() != size[1] {
			t.Errorf("output is %dx%d, want %dx%d", b.Dx(), b.Dy(), size[0], size[1])
		}
	}
}

func TestMakeThumbnailTinySource(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	for _, size := range [][2]int{{80, 80}, {80, 107}} {
		out, err := MakeThumbnail(buf.Bytes(), size[0], size[1])
		if err != nil {
			t.Fatalf("MakeThumbnail %v: %v", size, err)
		}

		thumb, err := jpeg.Decode(bytes.NewReader(out))
		if err != nil {
			t.Fatal(err)
		}
		r, g, b, _ := thumb.At(size[0]/2, size[1]/2).RGBA()
		if r>>8 < 200 || g>>8 > 60 || b>>8 > 60 {
			t.Errorf("%v center pixel = %d,%d,%d, want red", size, r>>8, g>>8, b>>8)
		}
	}
}

func TestMakeThumbnailRejectsNonImages(t *testing.T) {
	_, err := MakeThumbnail([]byte("<html>not an image</html>"), 80, 80)
	if !errors.Is(err, ErrThumbnailProcessing) {
		t.Errorf("err = %v, want ErrThumbnailProcessing", err)
	}
}

func TestCoverRect(t *testing.T) {
	tests := []struct {
		src  image.Rectangle
		w, h int
		want image.Rectangle
	}{
		{image.Rect(0, 0, 200, 100), 1, 1, image.Rect(50, 0, 150, 100)},
		{image.Rect(0, 0, 100, 200), 1, 1, image.Rect(0, 50, 100, 150)},
		{image.Rect(0, 0, 300, 400), 3, 4, image.Rect(0, 0, 300, 400)},
		{image.Rect(0, 0, 1, 1), 80, 107, image.Rect(0, 0, 1, 1)},
		{image.Rect(0, 0, 1, 1), 107, 80, image.Rect(0, 0, 1, 1)},
		{image.Rect(0, 0, 0, 0), 80, 80, image.Rectangle{}},
	}

	for _, tt := range tests {
		if got := coverRect(tt.src, tt.w, tt.h); got != tt.want {
			t.Errorf("coverRect(%v, %d, %d) = %v, want %v", tt.src, tt.w, tt.h, got, tt.want)
		}
	}
}

func TestResizeResolverPersists(t *testing.T) {
	srv, _ := imageServer(t, http.StatusOK, pngFixture(t, 64, 64))
	sink := &memorySink{}
	r := NewResizeResolver(testConfig(""), sink, nil)

	ref := r.Resolve(context.Background(), srv.URL+"/a.png", "555")
	if ref != "/thumbnails/555.jpg" {
		t.Fatalf("ref = %q", ref)
	}
	if len(sink.saved["555"]) == 0 {
		t.Error("nothing persisted")
	}
}

func TestResizeResolverFailuresReturnSource(t *testing.T) {
	t.Run("download status", func(t *testing.T) {
		srv, _ := imageServer(t, http.StatusNotFound, nil)
		r := NewResizeResolver(testConfig(""), &memorySink{}, nil)

		src := srv.URL + "/gone.jpg"
		if ref := r.Resolve(context.Background(), src, "1"); ref != src {
			t.Errorf("ref = %q, want source", ref)
		}
	})

	t.Run("not an image", func(t *testing.T) {
		srv, _ := imageServer(t, http.StatusOK, []byte("plain text"))
		r := NewResizeResolver(testConfig(""), &memorySink{}, nil)

		src := srv.URL + "/x"
		if ref := r.Resolve(context.Background(), src, "2"); ref != src {
			t.Errorf("ref = %q, want source", ref)
		}
	})

	t.Run("sink error", func(t *testing.T) {
		srv, _ := imageServer(t, http.StatusOK, pngFixture(t, 32, 32))
		r := NewResizeResolver(testConfig(""), &memorySink{err: errors.New("disk full")}, nil)

		src := srv.URL + "/ok.png"
		if ref := r.Resolve(context.Background(), src, "3"); ref != src {
			t.Errorf("ref = %q, want source", ref)
		}
	})
}

func TestResizeResolverSkipsFallbackPosts(t *testing.T) {
	srv, hits := imageServer(t, http.StatusOK, pngFixture(t, 16, 16))
	sink := &memorySink{}
	r := NewResizeResolver(testConfig(""), sink, nil)

	src := srv.URL + "/mock.png"
	if ref := r.Resolve(context.Background(), src, "mock_1"); ref != src {
		t.Errorf("ref = %q, want source unchanged", ref)
	}
	if hits.Load() != 0 || len(sink.saved) != 0 {
		t.Error("fallback post should not be downloaded or persisted")
	}
}

func TestPassThroughResolver(t *testing.T) {
	r := NewPassThroughResolver()
	if got := r.Resolve(context.Background(), "https://cdn/a.jpg", "9"); got != "https://cdn/a.jpg" {
		t.Errorf("got %q", got)
	}
}
