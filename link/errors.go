package link

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTransportUnavailable is returned by network operations on a client
// that has no HTTP transport.
var ErrTransportUnavailable = errors.New("link: no HTTP transport available")

// ConfigurationError reports a required option missing at construction.
type ConfigurationError struct {
	Field string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("link: missing options.%s", e.Field)
}

// AuthenticationError reports the errors returned by the token endpoint.
type AuthenticationError struct {
	Details []string
}

func (e *AuthenticationError) Error() string {
	return strings.Join(e.Details, " ")
}

// apiError is one entry of the "errors" array in a Link response.
type apiError struct {
	Detail string `json:"detail"`
}
