package mapper

import (
	"errors"
	"strings"

	"github.com/samber/lo"
)

var (
	// ErrMapping indicates data that could not be decoded into the target
	ErrMapping = errors.New("mapper: mapping failed")

	// ErrValidation indicates a decoded value that failed validation
	ErrValidation = errors.New("mapper: validation failed")

	// ErrInvalidTarget indicates an output argument that is not a non-nil pointer
	ErrInvalidTarget = errors.New("mapper: target must be a non-nil pointer")
)

// PartialDenormalizationError collects the failures of several denormalizers
// during one Map call
type PartialDenormalizationError struct {
	Errors []error
}

func (e *PartialDenormalizationError) Error() string {
	messages := lo.Map(e.Errors, func(err error, _ int) string { return err.Error() })
	return "mapper: " + strings.Join(messages, "; ")
}

func (e *PartialDenormalizationError) Unwrap() []error {
	return e.Errors
}
