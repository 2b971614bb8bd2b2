package backend

import "errors"

var (
	ErrApi = errors.New("clapo api error")
)
