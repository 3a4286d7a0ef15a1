// Package config loads Link client settings from the environment.
package config

import (
	"github.com/dvcrn/blockmason-link-go/internal/env"
	"github.com/dvcrn/blockmason-link-go/link"
)

// Environment variable names.
const (
	EnvClientID     = "LINK_CLIENT_ID"
	EnvClientSecret = "LINK_CLIENT_SECRET"
	EnvBaseURL      = "LINK_BASE_URL"
)

// Load reads link.Options from the environment. Missing credentials are
// left empty so link.New reports them.
func Load() link.Options {
	clientID, _ := env.Get(EnvClientID)
	clientSecret, _ := env.Get(EnvClientSecret)
	return link.Options{
		BaseURL:      env.GetOrDefault(EnvBaseURL, link.DefaultBaseURL),
		ClientID:     clientID,
		ClientSecret: clientSecret,
	}
}
