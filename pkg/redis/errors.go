package redis

import "errors"

// Connection errors.
var (
	ErrEmptyConnectionURL           = errors.New("redis: REDIS_URL is empty")
	ErrFailedToParseRedisConnString = errors.New("redis: cannot parse connection URL")
	ErrRedisNotReady                = errors.New("redis: server did not answer within the retry budget")
	ErrHealthcheckFailed            = errors.New("redis: healthcheck failed")
)

// ErrCorruptValue is returned by Cache.Get when a stored entry does not decode to a flag value.
var ErrCorruptValue = errors.New("redis: cached entry is not a flag value")
