package redis

import (
	"context"
	"fmt"
	"strconv"

	goredis "github.com/redis/go-redis/v9"

	"widget-srv/internal/widget/repository"
)

// quotaScript returns 1 when the usage already reached the quota. Otherwise it counts one use,
// sets the expiry and returns 0. An empty quota never blocks.
var quotaScript = goredis.NewScript(`
local usage = tonumber(redis.call('GET', KEYS[1]) or '0') or 0
local quota = tonumber(ARGV[1])
if quota ~= nil and usage >= quota then
  return 1
end
redis.call('INCR', KEYS[1])
redis.call('EXPIREAT', KEYS[1], ARGV[2])
return 0
`)

// CheckAndIncrement - Atomic read, compare and increment of a daily usage counter.
func (r *implRepository) CheckAndIncrement(ctx context.Context, opts repository.CheckQuotaOptions) (bool, error) {
	quota := ""
	if opts.Quota != nil {
		quota = strconv.FormatInt(*opts.Quota, 10)
	}

	res, err := r.redis.RunScript(ctx, quotaScript, []string{opts.Key}, quota, opts.ExpireAt.Unix())
	if err != nil {
		r.l.Errorf(ctx, "widget.repository.redis.CheckAndIncrement: Failed to run quota script: %v", err)
		return false, fmt.Errorf("quota script: %w", err)
	}

	exceeded, ok := res.(int64)
	if !ok {
		return false, fmt.Errorf("quota script: unexpected reply %T", res)
	}
	return exceeded == 1, nil
}
