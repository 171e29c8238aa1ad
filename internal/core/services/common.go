package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gimhantharuke456/policeappbackend/internal/core/domain"
	"github.com/gimhantharuke456/policeappbackend/internal/pkg/validation"
)

// DefaultQueryTimeout bounds a store call when no timeout is configured
const DefaultQueryTimeout = 5 * time.Second

// storeContext bounds a single store call
func storeContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// validateInput runs struct validation and reports failures as ErrValidation
func validateInput(input interface{}) error {
	err := validation.Struct(input)
	if err == nil {
		return nil
	}
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		return domain.Validation("%s", vErr.Message)
	}
	return domain.Validation("invalid request")
}

// optional returns the trimmed value of s, or false when s is nil or blank
func optional(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	v := strings.TrimSpace(*s)
	return v, v != ""
}
