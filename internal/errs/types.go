package errs

import "fmt"

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type ValidationError struct {
	ErrorMessage
}

type CredentialError struct {
	ErrorMessage
	Source string
	Err    error
}

func (e *CredentialError) Unwrap() error { return e.Err }

// ExternalServiceError describes any failed call to a third-party API:
// transport failures (Transient), non-2xx answers (Status) and unreadable bodies.
type ExternalServiceError struct {
	ErrorMessage
	Service   string
	Status    int
	Transient bool
	Err       error
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewCredentialError(source string, err error) *CredentialError {
	return &CredentialError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("resolving %s credential: %v", source, err)},
		Source:       source,
		Err:          err,
	}
}

func NewTransportError(service string, err error) *ExternalServiceError {
	return &ExternalServiceError{
		ErrorMessage: ErrorMessage{Message: err.Error()},
		Service:      service,
		Transient:    true,
		Err:          err,
	}
}

func NewUpstreamStatusError(service string, status int, body string) *ExternalServiceError {
	msg := fmt.Sprintf("%s returned HTTP %d", service, status)
	if body != "" {
		msg = fmt.Sprintf("%s: %s", msg, body)
	}
	return &ExternalServiceError{
		ErrorMessage: ErrorMessage{Message: msg},
		Service:      service,
		Status:       status,
		Transient:    status >= 500,
	}
}

func NewUpstreamParseError(service string, err error) *ExternalServiceError {
	return &ExternalServiceError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("invalid JSON from %s: %v", service, err)},
		Service:      service,
		Err:          err,
	}
}
