package tweetclust

import (
	"errors"
	"fmt"

	"github.com/hupe1980/tweetclust/distance"
	"github.com/hupe1980/tweetclust/internal/kmedoids"
)

var (
	// ErrInvalidConfiguration is returned for k <= 0, max iterations <= 0,
	// or k larger than the number of documents.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrEmptyDocument is returned when a document without tokens reaches
	// the distance function.
	ErrEmptyDocument = errors.New("empty document")

	// ErrNotFitted is returned when results are requested before a
	// completed fit.
	ErrNotFitted = errors.New("model not fitted")
)

// ConfigError indicates an unusable configuration value.
// It matches ErrInvalidConfiguration with errors.Is.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ConfigError struct {
	Field string
	Value int
	cause error
}

func (e *ConfigError) Error() string {
	if e.cause != nil {
		return e.cause.Error()
	}
	return fmt.Sprintf("invalid configuration: %s must be positive, got %d", e.Field, e.Value)
}

func (e *ConfigError) Is(target error) bool { return target == ErrInvalidConfiguration }

func (e *ConfigError) Unwrap() error { return e.cause }

// DocumentError identifies the input document that has no tokens.
// It matches ErrEmptyDocument with errors.Is.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type DocumentError struct {
	Index int
	cause error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("empty document at index %d", e.Index)
}

func (e *DocumentError) Is(target error) bool { return target == ErrEmptyDocument }

func (e *DocumentError) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var ede *kmedoids.EmptyDocumentError
	if errors.As(err, &ede) {
		return &DocumentError{Index: ede.Index, cause: err}
	}
	if errors.Is(err, distance.ErrEmptyDocument) {
		return fmt.Errorf("%w: %w", ErrEmptyDocument, err)
	}

	var ce *kmedoids.ConfigError
	if errors.As(err, &ce) {
		return &ConfigError{Field: ce.Field, Value: ce.Value, cause: err}
	}
	if errors.Is(err, kmedoids.ErrInvalidConfig) {
		return &ConfigError{cause: err}
	}

	return err
}
