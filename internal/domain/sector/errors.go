package sector

import "errors"

var (
	ErrSectorNotFound   = errors.New("sector not found")
	ErrSectorNameExists = errors.New("sector name already exists")
	ErrSectorInUse      = errors.New("sector still has workers assigned")
)
