package http

import "net/http"

// HTTPClient is the transport the Link client dispatches requests through.
// *http.Client satisfies it, as does the Workers fetch transport.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPClientFunc adapts a plain function into an HTTPClient.
type HTTPClientFunc func(req *http.Request) (*http.Response, error)

// Do calls f(req).
func (f HTTPClientFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}
