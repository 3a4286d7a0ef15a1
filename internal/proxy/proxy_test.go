package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvcrn/blockmason-link-go/link"
)

type call struct {
	method string
	path   string
	inputs link.Inputs
}

type stubAPI struct {
	calls   []call
	outputs any
	err     error
}

func (s *stubAPI) Get(_ context.Context, path string, inputs link.Inputs) (any, error) {
	s.calls = append(s.calls, call{http.MethodGet, path, inputs})
	return s.outputs, s.err
}

func (s *stubAPI) Post(_ context.Context, path string, inputs link.Inputs) (any, error) {
	s.calls = append(s.calls, call{http.MethodPost, path, inputs})
	return s.outputs, s.err
}

func serve(t *testing.T, api API, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	NewServer(api).ServeHTTP(rec, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestForward_Get(t *testing.T) {
	api := &stubAPI{outputs: map[string]any{"totalSupply": "1000"}}

	req := httptest.NewRequest(http.MethodGet, "/v1/echo?message=hi", nil)
	rec, body := serve(t, api, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1000", body["totalSupply"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	require.Len(t, api.calls, 1)
	assert.Equal(t, call{http.MethodGet, "/echo", link.Inputs{"message": "hi"}}, api.calls[0])
}

func TestForward_Post(t *testing.T) {
	api := &stubAPI{outputs: map[string]any{"ok": true}}

	req := httptest.NewRequest(http.MethodPost, "/v1/mint", strings.NewReader(`{"amount":5,"to":"0xabc"}`))
	rec, _ := serve(t, api, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, api.calls, 1)
	assert.Equal(t, "/mint", api.calls[0].path)
	assert.Equal(t, link.Inputs{"amount": json.Number("5"), "to": "0xabc"}, api.calls[0].inputs)
}

func TestForward_PostKeepsLargeAmounts(t *testing.T) {
	api := &stubAPI{outputs: map[string]any{"ok": true}}

	req := httptest.NewRequest(http.MethodPost, "/v1/mint", strings.NewReader(`{"amount":100000000000000000000001}`))
	rec, _ := serve(t, api, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, api.calls, 1)
	assert.Equal(t, json.Number("100000000000000000000001"), api.calls[0].inputs["amount"])
}

func TestForward_EncodedPathStaysInPath(t *testing.T) {
	api := &stubAPI{outputs: map[string]any{"ok": true}}

	req := httptest.NewRequest(http.MethodGet, "/v1/balanceOf%3Fowner=0xevil%23frag", nil)
	rec, _ := serve(t, api, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, api.calls, 1)
	assert.Equal(t, "/balanceOf%3Fowner=0xevil%23frag", api.calls[0].path)
	assert.Empty(t, api.calls[0].inputs)
}

func TestForward_Errors(t *testing.T) {
	testCases := []struct {
		name       string
		req        *http.Request
		err        error
		wantStatus int
		wantDetail string
	}{
		{
			name:       "authentication failure",
			req:        httptest.NewRequest(http.MethodGet, "/v1/totalSupply", nil),
			err:        &link.AuthenticationError{Details: []string{"invalid client"}},
			wantStatus: http.StatusBadGateway,
			wantDetail: "invalid client",
		},
		{
			name:       "transport failure",
			req:        httptest.NewRequest(http.MethodGet, "/v1/totalSupply", nil),
			err:        errors.New("dial tcp: refused"),
			wantStatus: http.StatusBadGateway,
			wantDetail: "upstream request failed",
		},
		{
			name:       "invalid body",
			req:        httptest.NewRequest(http.MethodPost, "/v1/mint", strings.NewReader(`[1,2]`)),
			wantStatus: http.StatusBadRequest,
			wantDetail: "request body must be a JSON object",
		},
		{
			name:       "body too large",
			req:        httptest.NewRequest(http.MethodPost, "/v1/mint", strings.NewReader(`{"memo":"`+strings.Repeat("x", maxBodyBytes)+`"}`)),
			wantStatus: http.StatusRequestEntityTooLarge,
			wantDetail: "request body too large",
		},
		{
			name:       "method not allowed",
			req:        httptest.NewRequest(http.MethodDelete, "/v1/mint", nil),
			wantStatus: http.StatusMethodNotAllowed,
			wantDetail: "method not allowed",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec, body := serve(t, &stubAPI{err: tc.err}, tc.req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			errs, ok := body["errors"].([]any)
			require.True(t, ok)
			require.Len(t, errs, 1)
			assert.Equal(t, tc.wantDetail, errs[0].(map[string]any)["detail"])
		})
	}
}

func TestHealthz(t *testing.T) {
	rec, body := serve(t, &stubAPI{}, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestLoggingMiddleware_KeepsCallerRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "abc-123")

	rec, _ := serve(t, &stubAPI{}, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-Id"))
}
