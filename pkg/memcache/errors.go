package memcache

import "errors"

var (
	ErrNoServers         = errors.New("no memcached servers configured")
	ErrHealthcheckFailed = errors.New("memcached healthcheck failed")
	ErrCorruptValue      = errors.New("memcached holds a value that is not a flag value")
	ErrInvalidKey        = errors.New("flag key is not a valid memcached key")
)
