package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common domain errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
)

// Cycle and withdrawal errors
var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidTransition = fmt.Errorf("%w: withdrawal request is no longer pending", ErrConflict)
	ErrCycleNotFound     = fmt.Errorf("%w: selected cycle not found", ErrNotFound)
	ErrCycleWithoutOwner = fmt.Errorf("%w: selected cycle has no client", ErrConflict)
)

// ValidationErrors maps form fields to messages
type ValidationErrors map[string]string

func (v ValidationErrors) Add(field, message string) {
	if _, exists := v[field]; !exists {
		v[field] = message
	}
}

// Err returns nil when no field failed
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v ValidationErrors) Is(target error) bool {
	return target == ErrInvalidInput
}
