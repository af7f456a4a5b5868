package user

import "errors"

var (
	ErrInvalidRole             = errors.New("invalid role")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrSubjectMismatch         = errors.New("token subject does not match requested subject")
)
