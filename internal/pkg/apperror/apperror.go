package apperror

// AppError is a custom error type that includes an HTTP status code and an optional internal error code.
type AppError struct {
	Code      int    // HTTP Status Code (e.g., 400, 404)
	Message   string // User-facing error message
	Retryable bool   // Whether the caller may retry the same request (e.g. lock-wait timeout)
	Err       error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewRetryable creates a new AppError the caller is expected to retry with backoff.
func NewRetryable(code int, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: true,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
