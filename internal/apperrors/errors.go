package apperrors

import "fmt"

// ValidationError signals recoverable user input problems: missing
// profile fields, blank manual answers, requests that do not apply to
// the current stage. The session state is never changed by one.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("validation failed: %s", e.Reason)
}

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ConfigurationError signals an unreachable or unconfigured AI
// collaborator. Fatal to the triggering transition, which is rolled
// back to the last stable stage.
type ConfigurationError struct {
	Op  string
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

func NewConfigurationError(op string, err error) error {
	return &ConfigurationError{Op: op, Err: err}
}

// UnsupportedFormatError signals a resume upload with a MIME type the
// extractor cannot read. Recoverable; the user re-uploads.
type UnsupportedFormatError struct {
	ContentType string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported document format: %s (expected PDF or DOCX)", e.ContentType)
}

func NewUnsupportedFormatError(contentType string) error {
	return &UnsupportedFormatError{ContentType: contentType}
}

// MalformedResponseError signals a collaborator response that does not
// match the expected shape; it is never partially applied to session
// state.
type MalformedResponseError struct {
	Op     string
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s returned a malformed response: %s", e.Op, e.Reason)
}

func NewMalformedResponseError(op, reason string) error {
	return &MalformedResponseError{Op: op, Reason: reason}
}
