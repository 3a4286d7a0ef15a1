package link

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	linkhttp "github.com/dvcrn/blockmason-link-go/internal/http"
	"github.com/dvcrn/blockmason-link-go/internal/logger"
	"github.com/dvcrn/blockmason-link-go/internal/query"
)

// Inputs are the parameters of a Get or Post call.
type Inputs = map[string]any

// RequestOptions describe a raw request passed to Client.Do.
type RequestOptions struct {
	// Method defaults to GET.
	Method string

	// Header is merged into the request. Authorization is always replaced
	// with the client's bearer token.
	Header http.Header

	Body io.Reader
}

// Client is a Blockmason Link API client. It is safe for concurrent use.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string

	httpClient   linkhttp.HTTPClient
	log          *zerolog.Logger
	tokenTimeout time.Duration

	cred       credential
	tokenGroup singleflight.Group
}

// New creates a Client. It fails with a *ConfigurationError when ClientID
// or ClientSecret is empty and performs no I/O.
func New(opts Options, options ...Option) (*Client, error) {
	if opts.ClientID == "" {
		return nil, &ConfigurationError{Field: "clientId"}
	}
	if opts.ClientSecret == "" {
		return nil, &ConfigurationError{Field: "clientSecret"}
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:      baseURL,
		clientID:     opts.ClientID,
		clientSecret: opts.ClientSecret,
		httpClient:   linkhttp.NewHTTPClient(),
		log:          logger.Get(),
		tokenTimeout: DefaultTokenTimeout,
	}
	for _, opt := range options {
		opt(c)
	}

	return c, nil
}

// Get issues GET {baseURL}/v1{path}{?inputs}.
func (c *Client) Get(ctx context.Context, path string, inputs Inputs) (any, error) {
	if path == "" {
		path = "/"
	}
	return c.Do(ctx, path+query.Encode(inputs), RequestOptions{Method: http.MethodGet})
}

// Post issues POST {baseURL}/v1{path} with inputs as a JSON body.
func (c *Client) Post(ctx context.Context, path string, inputs Inputs) (any, error) {
	if path == "" {
		path = "/"
	}
	if inputs == nil {
		inputs = Inputs{}
	}

	bodyBytes, err := json.Marshal(inputs)
	if err != nil {
		return nil, fmt.Errorf("could not marshal request body: %w", err)
	}

	header := make(http.Header)
	header.Set("Content-Type", "application/json")

	return c.Do(ctx, path, RequestOptions{
		Method: http.MethodPost,
		Header: header,
		Body:   bytes.NewReader(bodyBytes),
	})
}

// Do authenticates and sends a request to {baseURL}/v1{path}, returning
// the decoded JSON response regardless of status code. Numbers decode
// as json.Number so large token amounts keep their precision.
func (c *Client) Do(ctx context.Context, path string, opts RequestOptions) (any, error) {
	accessToken, err := c.authenticate(ctx)
	if err != nil {
		return nil, err
	}

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/v1"+path, opts.Body)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	for key, values := range opts.Header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()

	var outputs any
	if err := decoder.Decode(&outputs); err != nil {
		return nil, fmt.Errorf("could not decode response body (status %d): %w", resp.StatusCode, err)
	}

	return outputs, nil
}

// send dispatches req through the transport, tagging it with a request ID.
func (c *Client) send(req *http.Request) (*http.Response, error) {
	if c.httpClient == nil {
		return nil, ErrTransportUnavailable
	}

	requestID := uuid.New().String()
	req.Header.Set("X-Request-Id", requestID)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger().Error().
			Err(err).
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Str("request_id", requestID).
			Msg("Request failed")
		return nil, fmt.Errorf("request execution error: %w", err)
	}

	c.logger().Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Finished request")

	return resp, nil
}

func (c *Client) logger() *zerolog.Logger {
	if c.log == nil {
		return logger.Get()
	}
	return c.log
}
