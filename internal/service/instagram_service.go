package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	config "github.com/maheshrc27/insta-signature/configs"
	"github.com/maheshrc27/insta-signature/internal/metrics"
	"github.com/maheshrc27/insta-signature/internal/models"
	"github.com/maheshrc27/insta-signature/internal/transfer"
	"github.com/maheshrc27/insta-signature/pkg/utils"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	mediaFields  = "id,caption,media_type,media_url,permalink,thumbnail_url,timestamp"
	maxBodyBytes = 5 << 20
)

type FetchKind int

const (
	FetchSuccess FetchKind = iota
	FetchEmpty
	FetchMissingCredential
	FetchTransportFailure
	FetchAPIError
	FetchMalformed
)

func (k FetchKind) String() string {
	switch k {
	case FetchSuccess:
		return "success"
	case FetchEmpty:
		return "empty"
	case FetchMissingCredential:
		return "missing_credential"
	case FetchTransportFailure:
		return "transport_failure"
	case FetchAPIError:
		return "api_error"
	case FetchMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// FetchResult is the tagged outcome of one media-listing call. Posts is only
// meaningful for FetchSuccess and is already filtered to supported types.
type FetchResult struct {
	Kind  FetchKind
	Posts []models.Post
	Err   error
}

// ApplyFallbackPolicy decides what the read path serves for a fetch outcome.
// Only a successful call keeps its posts, even when filtering left none.
func ApplyFallbackPolicy(result FetchResult) []models.Post {
	if result.Kind == FetchSuccess {
		if result.Posts == nil {
			return []models.Post{}
		}
		return result.Posts
	}
	return FallbackPosts()
}

// FilterSupported keeps images, videos and carousels in their original order.
func FilterSupported(posts []models.Post) []models.Post {
	filtered := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if p.MediaType.Supported() {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

type InstagramService interface {
	// FetchPosts never fails; every failure resolves to the fallback set.
	FetchPosts(ctx context.Context, limit int) []models.Post
	Fetch(ctx context.Context, limit int) FetchResult
	TestAPI(ctx context.Context) transfer.InstagramTestResult
}

type instagramService struct {
	cfg     config.Config
	tokens  oauth2.TokenSource
	client  *http.Client
	limiter *rate.Limiter
}

func NewInstagramService(cfg config.Config, tokens oauth2.TokenSource, client *http.Client) InstagramService {
	if client == nil {
		client = &http.Client{Timeout: cfg.UpstreamTimeout}
	}
	return &instagramService{
		cfg:     cfg,
		tokens:  tokens,
		client:  client,
		limiter: rate.NewLimiter(rate.Every(10*time.Second), 3),
	}
}

func (ig *instagramService) FetchPosts(ctx context.Context, limit int) []models.Post {
	result := ig.Fetch(ctx, limit)
	metrics.RecordUpstreamFetch(result.Kind.String())

	switch result.Kind {
	case FetchSuccess:
		slog.Info("instagram posts fetched", "posts", len(result.Posts))
	case FetchMissingCredential:
		slog.Info("instagram token not configured, using mock posts")
	default:
		slog.Error("instagram fetch failed, using mock posts", "kind", result.Kind.String(), "error", result.Err)
	}

	posts := ApplyFallbackPolicy(result)
	if result.Kind != FetchSuccess {
		metrics.RecordFallback()
	}
	return posts
}

func (ig *instagramService) Fetch(ctx context.Context, limit int) FetchResult {
	if limit <= 0 {
		limit = ig.cfg.MaxPosts
	}

	token, err := ig.accessToken()
	if err != nil {
		return FetchResult{Kind: FetchMissingCredential, Err: err}
	}

	reqURL := ig.mediaURL(token, limit)
	slog.Info("fetching instagram posts", "url", hideToken(reqURL, token), "limit", limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return FetchResult{Kind: FetchTransportFailure, Err: fmt.Errorf("%w: %v", ErrUpstreamTransport, redactErr(err, token))}
	}

	resp, err := ig.client.Do(req)
	if err != nil {
		return FetchResult{Kind: FetchTransportFailure, Err: fmt.Errorf("%w: %s", ErrUpstreamTransport, redactErr(err, token))}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return FetchResult{Kind: FetchTransportFailure, Err: fmt.Errorf("%w: reading body: %v", ErrUpstreamTransport, err)}
	}

	return decodeMedia(resp.StatusCode, body)
}

func decodeMedia(status int, body []byte) FetchResult {
	var payload transfer.InstagramMediaResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return FetchResult{Kind: FetchMalformed, Err: fmt.Errorf("%w: status %d: %v", ErrUpstreamMalformed, status, err)}
	}

	if payload.Error != nil {
		return FetchResult{Kind: FetchAPIError, Err: fmt.Errorf("%w: %s (status %d)", ErrUpstreamAPI, payload.Error.Message, status)}
	}

	if len(payload.Data) == 0 {
		return FetchResult{Kind: FetchEmpty, Err: ErrUpstreamEmpty}
	}

	posts := make([]models.Post, 0, len(payload.Data))
	for _, m := range payload.Data {
		posts = append(posts, m.Post())
	}
	filtered := FilterSupported(posts)
	slog.Info("instagram media filtered", "total", len(posts), "kept", len(filtered))

	return FetchResult{Kind: FetchSuccess, Posts: filtered}
}

func (ig *instagramService) TestAPI(ctx context.Context) transfer.InstagramTestResult {
	token, err := ig.accessToken()
	if err != nil {
		return transfer.InstagramTestResult{
			Success:     false,
			Error:       "INSTAGRAM_TOKEN not configured",
			Environment: ig.cfg.Environment,
		}
	}

	if !ig.limiter.Allow() {
		return transfer.InstagramTestResult{
			Success:     false,
			Error:       "rate limited, try again shortly",
			Environment: ig.cfg.Environment,
		}
	}

	reqURL := ig.mediaURL(token, 1)
	slog.Info("testing instagram api", "url", hideToken(reqURL, token))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err == nil {
		var resp *http.Response
		resp, err = ig.client.Do(req)
		if err == nil {
			defer resp.Body.Close()
			return ig.testResult(resp, token)
		}
	}

	return transfer.InstagramTestResult{
		Success:     false,
		Error:       redactErr(err, token),
		Environment: ig.cfg.Environment,
	}
}

func (ig *instagramService) testResult(resp *http.Response, token string) transfer.InstagramTestResult {
	result := transfer.InstagramTestResult{
		Success:         resp.StatusCode >= 200 && resp.StatusCode < 300,
		ResponseStatus:  resp.StatusCode,
		ResponseHeaders: resp.Header,
		TokenLength:     len(token),
		Environment:     ig.cfg.Environment,
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		result.Success = false
		result.Error = err.Error()
		return result
	}

	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		result.Success = false
		result.ParseError = err.Error()
		result.Data = hideToken(string(body), token)
		return result
	}
	result.Data = data
	return result
}

func (ig *instagramService) accessToken() (string, error) {
	if ig.tokens == nil {
		return "", ErrMissingCredential
	}
	tok, err := ig.tokens.Token()
	if err != nil {
		return "", err
	}
	if tok == nil || tok.AccessToken == "" {
		return "", ErrMissingCredential
	}
	return tok.AccessToken, nil
}

func (ig *instagramService) mediaURL(token string, limit int) string {
	q := url.Values{}
	q.Set("fields", mediaFields)
	q.Set("access_token", token)
	q.Set("limit", strconv.Itoa(limit))
	return fmt.Sprintf("%s/me/media?%s", ig.cfg.InstagramAPIBase, q.Encode())
}

func redactErr(err error, token string) string {
	if err == nil {
		return ""
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = hideToken(urlErr.URL, token)
	}
	return hideToken(err.Error(), token)
}

// hideToken redacts both the raw and the query-escaped form of token.
func hideToken(s, token string) string {
	return utils.RedactToken(utils.RedactToken(s, token), url.QueryEscape(token))
}
