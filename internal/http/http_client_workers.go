//go:build js && wasm

package http

import (
	"net/http"

	"github.com/syumai/workers/cloudflare/fetch"
)

// WorkersHTTPClient dispatches requests through the Cloudflare Workers fetch API
type WorkersHTTPClient struct {
	client *fetch.Client
}

// NewHTTPClient creates the platform transport for the Workers environment
func NewHTTPClient() HTTPClient {
	return &WorkersHTTPClient{
		client: fetch.NewClient(),
	}
}

// Do performs req using Workers fetch
func (c *WorkersHTTPClient) Do(req *http.Request) (*http.Response, error) {
	fetchReq, err := fetch.NewRequest(req.Context(), req.Method, req.URL.String(), req.Body)
	if err != nil {
		return nil, err
	}

	for key, values := range req.Header {
		for _, value := range values {
			fetchReq.Header.Add(key, value)
		}
	}

	return c.client.Do(fetchReq, nil)
}
