package link

import (
	"time"

	"github.com/rs/zerolog"

	linkhttp "github.com/dvcrn/blockmason-link-go/internal/http"
)

// DefaultBaseURL is the Link API endpoint used when Options.BaseURL is empty.
const DefaultBaseURL = "https://api.block.mason.link"

// HTTPClient is the transport a Client sends requests through.
type HTTPClient = linkhttp.HTTPClient

// HTTPClientFunc adapts a function into an HTTPClient.
type HTTPClientFunc = linkhttp.HTTPClientFunc

// Options holds the credentials and endpoint of a Client.
type Options struct {
	// BaseURL is the API root. Defaults to DefaultBaseURL.
	BaseURL string

	// ClientID is the OAuth2 client identifier. Required.
	ClientID string

	// ClientSecret is the OAuth2 client secret. Required.
	ClientSecret string
}

// Option configures optional dependencies of a Client.
type Option func(*Client)

// WithHTTPClient sets the transport. Passing nil leaves the client without
// one, and every request then fails with ErrTransportUnavailable.
func WithHTTPClient(hc HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for request and token events.
func WithLogger(l *zerolog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithTokenTimeout bounds each token exchange. Non-positive values fall
// back to DefaultTokenTimeout.
func WithTokenTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.tokenTimeout = d
	}
}
