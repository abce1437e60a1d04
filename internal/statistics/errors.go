package statistics

import "errors"

// ErrorKind categorizes reconstruction failures
type ErrorKind string

const (
	// ErrorKindExternalFormat means the stored bytes cannot be represented by the target type
	ErrorKindExternalFormat ErrorKind = "EXTERNAL_FORMAT"
	// ErrorKindNotYetImplemented means no reconstruction exists for the logical type
	ErrorKindNotYetImplemented ErrorKind = "NOT_YET_IMPLEMENTED"
)

var (
	ErrExternalFormat    = errors.New("external format error")
	ErrNotYetImplemented = errors.New("not yet implemented")
)

// Error is a reconstruction failure. Callers may skip statistics for the
// affected column chunk; neither kind is fatal to a scan.
type Error struct {
	Kind    ErrorKind              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches the sentinel of the error's kind
func (e *Error) Is(target error) bool {
	switch target {
	case ErrExternalFormat:
		return e.Kind == ErrorKindExternalFormat
	case ErrNotYetImplemented:
		return e.Kind == ErrorKindNotYetImplemented
	}
	return false
}

// NewError creates a new Error
func NewError(kind ErrorKind, message string) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
	}
}

// NewErrorWithDetails creates a new Error with details
func NewErrorWithDetails(kind ErrorKind, message string, details map[string]interface{}) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
		Details: details,
	}
}

// KindOf returns the kind of a reconstruction error anywhere in err's chain
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
