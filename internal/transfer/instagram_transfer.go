package transfer

import "github.com/maheshrc27/insta-signature/internal/models"

type InstagramError struct {
	Message      string `json:"message"`
	Type         string `json:"type"`
	Code         int    `json:"code"`
	ErrorSubcode int    `json:"error_subcode"`
	FbtraceID    string `json:"fbtrace_id"`
}

type InstagramMedia struct {
	ID           string `json:"id"`
	Caption      string `json:"caption"`
	MediaType    string `json:"media_type"`
	MediaURL     string `json:"media_url"`
	Permalink    string `json:"permalink"`
	ThumbnailURL string `json:"thumbnail_url"`
	Timestamp    string `json:"timestamp"`
}

func (m InstagramMedia) Post() models.Post {
	return models.Post{
		ID:           m.ID,
		MediaType:    models.MediaType(m.MediaType),
		MediaURL:     m.MediaURL,
		ThumbnailURL: m.ThumbnailURL,
		Permalink:    m.Permalink,
		Caption:      m.Caption,
		Timestamp:    m.Timestamp,
	}
}

// InstagramMediaResponse is the body of GET /me/media. Exactly one of Data or
// Error is expected to be set.
type InstagramMediaResponse struct {
	Data  []InstagramMedia `json:"data"`
	Error *InstagramError  `json:"error,omitempty"`
}

type InstagramRefreshedToken struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresIn   int64           `json:"expires_in"`
	Error       *InstagramError `json:"error,omitempty"`
}

type InstagramTestResult struct {
	Success         bool                `json:"success"`
	Error           string              `json:"error,omitempty"`
	ParseError      string              `json:"parseError,omitempty"`
	ResponseStatus  int                 `json:"responseStatus,omitempty"`
	ResponseHeaders map[string][]string `json:"responseHeaders,omitempty"`
	Data            any                 `json:"data,omitempty"`
	TokenLength     int                 `json:"tokenLength,omitempty"`
	Environment     string              `json:"environment"`
}
