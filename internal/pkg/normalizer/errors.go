package normalizer

import (
	"errors"
	"fmt"

	"mapkit/internal/pkg/errorsx"
)

var (
	// ErrNotNormalizable matches every *NotNormalizableError via errors.Is
	ErrNotNormalizable = errors.New("normalizer: value is not normalizable")

	// ErrUnknownTimezone indicates a timezone name or offset that cannot be loaded
	ErrUnknownTimezone = errors.New("normalizer: unknown timezone")

	// ErrUnparseable indicates the flexible parser could not read a date-time string
	ErrUnparseable = errors.New("normalizer: unparseable date-time string")
)

const unexpectedDataMessage = "The data is either not a string, an empty string, or nil; " +
	"you should pass a string that can be parsed with the passed format or a valid date-time string."

// NotNormalizableError reports input that cannot be turned into the requested value.
// It is permanent: retrying the same input never succeeds.
type NotNormalizableError struct {
	Message string
	// Value is the offending input
	Value any
	// ExpectedTypes lists the accepted input type names
	ExpectedTypes []string
	// Path is the deserialization path, when the caller supplied one
	Path string
	// UseMessageForUser marks messages that are safe to show to end users
	UseMessageForUser bool
	// ParseErrors holds the strict parser diagnostics, if any
	ParseErrors []ParseError
	Code        int
	Err         error
}

func (e *NotNormalizableError) Error() string {
	return e.Message
}

func (e *NotNormalizableError) Unwrap() error {
	return e.Err
}

// Is makes the error match ErrNotNormalizable and errorsx.Permanent
func (e *NotNormalizableError) Is(target error) bool {
	return target == ErrNotNormalizable || target == errorsx.Permanent
}

// CurrentType returns the Go type name of the offending value
func (e *NotNormalizableError) CurrentType() string {
	return fmt.Sprintf("%T", e.Value)
}

func unexpectedDataType(data any, ctx Context) *NotNormalizableError {
	return &NotNormalizableError{
		Message:           unexpectedDataMessage,
		Value:             data,
		ExpectedTypes:     []string{"string"},
		Path:              ctx.Path(),
		UseMessageForUser: true,
	}
}

// wrapFailure converts any error into a *NotNormalizableError, leaving existing ones untouched
func wrapFailure(err error, data any, ctx Context) error {
	var notNormalizable *NotNormalizableError
	if errors.As(err, &notNormalizable) {
		return err
	}

	code := 0
	var coder interface{ Code() int }
	if errors.As(err, &coder) {
		code = coder.Code()
	}

	return &NotNormalizableError{
		Message:       err.Error(),
		Value:         data,
		ExpectedTypes: []string{"string"},
		Path:          ctx.Path(),
		Code:          code,
		Err:           err,
	}
}
