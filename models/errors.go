package models

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrUnknownModel indicates a descriptor names a model that was never registered
	ErrUnknownModel = errors.New("unknown model type")
	// ErrDuplicateModel indicates a model name was registered twice
	ErrDuplicateModel = errors.New("model already registered")
	// ErrInvalidRegistration indicates an empty name or nil factory
	ErrInvalidRegistration = errors.New("invalid model registration")
)

// UnknownModelError carries the unresolved model name
type UnknownModelError struct {
	Name string
}

func (e *UnknownModelError) Error() string {
	return fmt.Sprintf("unknown model type: %s", e.Name)
}

func (e *UnknownModelError) Unwrap() error {
	return ErrUnknownModel
}

// HydrationError indicates a model rejected the parsed mapping
type HydrationError struct {
	Name string
	Err  error
}

func (e *HydrationError) Error() string {
	return fmt.Sprintf("failed to hydrate %s: %v", e.Name, e.Err)
}

func (e *HydrationError) Unwrap() error {
	return e.Err
}
