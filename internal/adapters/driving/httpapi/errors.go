// Package httpapi provides the HTTP adapter for refdesk: the streaming /ask
// endpoint, search, and the password-protected admin routes.
package httpapi

import "errors"

// ErrMissingAskService is returned when the ask service is not provided.
var ErrMissingAskService = errors.New("httpapi: ask service is required")
