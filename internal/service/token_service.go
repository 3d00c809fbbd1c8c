package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	config "github.com/maheshrc27/insta-signature/configs"
	"github.com/maheshrc27/insta-signature/internal/transfer"
	"golang.org/x/oauth2"
)

// TokenService hands out the Instagram access token and can extend a
// long-lived token before it expires.
type TokenService interface {
	oauth2.TokenSource
	RefreshInstagramToken(ctx context.Context) error
	Configured() bool
	Length() int
}

type tokenService struct {
	mu      sync.RWMutex
	token   *oauth2.Token
	baseURL string
	client  *http.Client
}

func NewTokenService(cfg config.Config, client *http.Client) TokenService {
	if client == nil {
		client = &http.Client{Timeout: cfg.UpstreamTimeout}
	}

	ts := &tokenService{baseURL: cfg.InstagramAPIBase, client: client}
	if cfg.InstagramToken != "" {
		ts.token = &oauth2.Token{AccessToken: cfg.InstagramToken, TokenType: "Bearer"}
	}
	return ts
}

// Token returns ErrMissingCredential when no token is configured.
func (s *tokenService) Token() (*oauth2.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == nil || s.token.AccessToken == "" {
		return nil, ErrMissingCredential
	}
	tok := *s.token
	return &tok, nil
}

func (s *tokenService) Configured() bool {
	_, err := s.Token()
	return err == nil
}

func (s *tokenService) Length() int {
	tok, err := s.Token()
	if err != nil {
		return 0
	}
	return len(tok.AccessToken)
}

func (s *tokenService) RefreshInstagramToken(ctx context.Context) error {
	current, err := s.Token()
	if err != nil {
		return err
	}

	q := url.Values{}
	q.Set("grant_type", "ig_refresh_token")
	q.Set("access_token", current.AccessToken)
	reqURL := fmt.Sprintf("%s/refresh_access_token?%s", s.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamTransport, redactErr(err, current.AccessToken))
	}
	defer resp.Body.Close()

	var result transfer.InstagramRefreshedToken
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamMalformed, err)
	}
	if result.Error != nil {
		return fmt.Errorf("%w: %s", ErrUpstreamAPI, result.Error.Message)
	}
	if result.AccessToken == "" {
		return fmt.Errorf("%w: no access token in refresh response", ErrUpstreamAPI)
	}

	refreshed := &oauth2.Token{
		AccessToken: result.AccessToken,
		TokenType:   "Bearer",
	}
	if result.ExpiresIn > 0 {
		refreshed.Expiry = time.Now().Add(time.Duration(result.ExpiresIn) * time.Second)
	}

	s.mu.Lock()
	s.token = refreshed
	s.mu.Unlock()

	slog.Info("instagram token refreshed", "expires_at", refreshed.Expiry)
	return nil
}
