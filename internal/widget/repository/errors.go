package repository

import "errors"

var (
	ErrNotFound  = errors.New("repository: not found")
	ErrCacheMiss = errors.New("repository: cache miss")
)
