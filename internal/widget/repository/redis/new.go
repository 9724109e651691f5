package redis

import (
	"widget-srv/internal/widget/repository"
	"widget-srv/pkg/log"
	pkgRedis "widget-srv/pkg/redis"
)

type implRepository struct {
	redis pkgRedis.IRedis
	l     log.Logger
}

// New - Factory
func New(redis pkgRedis.IRedis, l log.Logger) repository.RedisRepository {
	return &implRepository{
		redis: redis,
		l:     l,
	}
}
