package middleware

import (
	"widget-srv/pkg/log"
	"widget-srv/pkg/scope"
)

type Middleware struct {
	l          log.Logger
	jwtManager scope.Manager
}

func New(l log.Logger, jwtManager scope.Manager) Middleware {
	return Middleware{
		l:          l,
		jwtManager: jwtManager,
	}
}
