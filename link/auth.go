package link

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// DefaultTokenTimeout bounds a single token exchange.
const DefaultTokenTimeout = 30 * time.Second

const (
	grantClientCredentials = "client_credentials"
	grantRefreshToken      = "refresh_token"
)

// credential is the token pair cached by a Client. An empty accessToken
// means the client is unauthenticated.
type credential struct {
	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

func (cr *credential) access() string {
	cr.mu.RLock()
	defer cr.mu.RUnlock()
	return cr.accessToken
}

func (cr *credential) refresh() string {
	cr.mu.RLock()
	defer cr.mu.RUnlock()
	return cr.refreshToken
}

func (cr *credential) store(accessToken, refreshToken string) {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	cr.accessToken = accessToken
	cr.refreshToken = refreshToken
}

func (cr *credential) invalidate() {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	cr.accessToken = ""
}

type tokenRequest struct {
	GrantType    string `json:"grant_type"`
	ClientID     string `json:"client_id,omitempty"`
	ClientSecret string `json:"client_secret,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

type tokenResponse struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	Errors       []apiError `json:"errors"`
}

// authenticate returns the cached access token, or exchanges credentials
// for one. Concurrent callers share a single token request.
func (c *Client) authenticate(ctx context.Context) (string, error) {
	if token := c.cred.access(); token != "" {
		return token, nil
	}

	// The shared exchange must not fail for every waiter because the
	// first caller gave up, but it is bounded so a stalled transport
	// cannot hold the flight forever.
	ch := c.tokenGroup.DoChan("token", func() (interface{}, error) {
		if token := c.cred.access(); token != "" {
			return token, nil
		}
		exchangeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.exchangeTimeout())
		defer cancel()
		return c.exchangeToken(exchangeCtx)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (c *Client) exchangeToken(ctx context.Context) (string, error) {
	tokenReq := tokenRequest{
		GrantType:    grantClientCredentials,
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
	}
	if refreshToken := c.cred.refresh(); refreshToken != "" {
		tokenReq = tokenRequest{
			GrantType:    grantRefreshToken,
			RefreshToken: refreshToken,
		}
	}

	bodyBytes, err := json.Marshal(tokenReq)
	if err != nil {
		return "", fmt.Errorf("could not marshal token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/oauth2/token", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("could not create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger().Debug().Str("grant_type", tokenReq.GrantType).Msg("Requesting access token")

	resp, err := c.send(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var tokenResp tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("could not decode token response: %w", err)
	}

	if len(tokenResp.Errors) > 0 {
		details := make([]string, 0, len(tokenResp.Errors))
		for _, e := range tokenResp.Errors {
			details = append(details, e.Detail)
		}
		authErr := &AuthenticationError{Details: details}
		c.logger().Warn().Err(authErr).Str("grant_type", tokenReq.GrantType).Msg("Token exchange rejected")
		return "", authErr
	}

	c.cred.store(tokenResp.AccessToken, tokenResp.RefreshToken)

	if tokenResp.AccessToken == "" {
		c.logger().Warn().Int("status", resp.StatusCode).Msg("Token response carried no access token")
	} else {
		c.logger().Info().Str("grant_type", tokenReq.GrantType).Msg("Obtained access token")
	}

	return tokenResp.AccessToken, nil
}

func (c *Client) exchangeTimeout() time.Duration {
	if c.tokenTimeout <= 0 {
		return DefaultTokenTimeout
	}
	return c.tokenTimeout
}

// Invalidate drops the cached access token. The refresh token is kept, so
// the next request authenticates with the refresh_token grant.
func (c *Client) Invalidate() {
	c.cred.invalidate()
}
