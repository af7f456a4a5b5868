package worker

import "errors"

var (
	ErrWorkerNotFound     = errors.New("worker not found")
	ErrSubjectIDExists    = errors.New("worker with this CPF already exists")
	ErrInvalidAccessLevel = errors.New("invalid access level")
)
