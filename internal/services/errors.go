package services

import "errors"

var (
	ErrUnauthenticated    = errors.New("not logged in")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrInvalidUser        = errors.New("username, email and password are required")
	ErrPasswordTooLong    = errors.New("password is too long")
	ErrUserNotFound       = errors.New("user not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrInvalidProject     = errors.New("invalid project")
	ErrNameRequired       = errors.New("project name is required")
	ErrTitleRequired      = errors.New("task title is required")

	// ErrPersistence wraps every store failure. The wrapped detail is for
	// logs only and must not reach clients.
	ErrPersistence = errors.New("persistence error")
)
