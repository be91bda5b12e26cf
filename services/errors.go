package services

import "errors"

// Classified errors the handlers translate into HTTP statuses. Anything a
// service returns that is not one of these is treated as a store failure.
var (
	ErrMissingUserFields  = errors.New("all fields are required")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrSelfDelete         = errors.New("admin cannot delete himself")
	ErrMissingCredentials = errors.New("email and password required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role value")

	ErrMissingTaskFields = errors.New("title and assigned user required")
	ErrTaskNotFound      = errors.New("task not found")
	ErrInvalidStatus     = errors.New("invalid status value")
	ErrTaskForbidden     = errors.New("you are not allowed to update this task")

	ErrForbidden = errors.New("access forbidden: insufficient permissions")
)
