package core

import "errors"

// User errors
var (
	ErrUserExists         = errors.New("username or email already exists") // 409 Conflict
	ErrUserNotFound       = errors.New("user not found")                   // 404 Not Found
	ErrInvalidCredentials = errors.New("invalid username or password")     // 401 Unauthorized
)

// Task errors
var (
	ErrTaskNotFound  = errors.New("task not found")    // 404
	ErrTitleRequired = errors.New("title is required") // 400
)

// Auth gate errors - all collapse to a uniform 401 at the boundary;
// the distinction is for logging and tests only
var (
	ErrMissingAuthHeader = errors.New("missing authorization header")                            // 401
	ErrInvalidAuthHeader = errors.New("invalid authorization format, expected 'Bearer <token>'") // 401
)

// Validation errors (client input)
var (
	ErrUsernameRequired = errors.New("username is required") // 400
	ErrEmailRequired    = errors.New("email is required")    // 400
	ErrPasswordRequired = errors.New("password is required") // 400
)

// Config errors (server-side configuration)
var (
	ErrStorageRequired = errors.New("storage adapter is required") // 500
	ErrSecretRequired  = errors.New("secret is required")          // 500
	ErrSecretTooShort  = errors.New("secret too short")            // 500
)
