package client

import "errors"

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid client configuration")
	// ErrRequestFailed indicates the request never produced a response
	ErrRequestFailed = errors.New("request failed")
)
