package service

import "errors"

var (
	ErrMissingCredential   = errors.New("instagram access token not configured")
	ErrUpstreamTransport   = errors.New("instagram request failed")
	ErrUpstreamAPI         = errors.New("instagram api error")
	ErrUpstreamMalformed   = errors.New("instagram response could not be decoded")
	ErrUpstreamEmpty       = errors.New("instagram returned no media")
	ErrThumbnailProcessing = errors.New("thumbnail processing failed")
)
