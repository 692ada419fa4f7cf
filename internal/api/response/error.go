package response

// AppError is a domain error that already knows its HTTP status, stable
// error code and optional context. The mapper passes it through verbatim.
type AppError struct {
	Status  int
	Code    string
	Message string
	Context map[string]any
}

func (e *AppError) Error() string {
	return e.Message
}

// NewAppError creates an AppError with an explicit status and code.
func NewAppError(status int, code, message string, context map[string]any) *AppError {
	return &AppError{Status: status, Code: code, Message: message, Context: context}
}

// NewUsernameExists reports a registration attempt with a taken username.
func NewUsernameExists(username string) *AppError {
	return NewAppError(409, "USERNAME_ALREADY_EXISTS",
		"A user with this username already exists",
		map[string]any{"username": username})
}

// NewEmailExists reports a registration attempt with a taken email.
func NewEmailExists(email string) *AppError {
	return NewAppError(409, "EMAIL_ALREADY_EXISTS",
		"A user with this email already exists",
		map[string]any{"email": email})
}

// NewAuthentication reports a failed authentication (401).
func NewAuthentication(message string) *AppError {
	return NewAppError(401, "AUTHENTICATION_FAILED", message, nil)
}

// NewAuthorization reports a failed authorization (403).
func NewAuthorization(message string) *AppError {
	return NewAppError(403, "AUTHORIZATION_FAILED", message, nil)
}

// NewHTTPError reports a plain HTTP failure with no dedicated code.
func NewHTTPError(status int, message string) *AppError {
	return NewAppError(status, "HTTP_EXCEPTION", message, nil)
}
