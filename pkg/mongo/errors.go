package mongo

import "errors"

var (
	ErrEmptyConnectionURL     = errors.New("mongo: MONGODB_URL is empty")
	ErrFailedToConnectToMongo = errors.New("mongo: could not connect")
	ErrHealthcheckFailed      = errors.New("mongo: healthcheck failed")

	// ErrUnsupportedValue marks a flag document whose value is not a scalar.
	ErrUnsupportedValue = errors.New("mongo: flag document holds an unsupported value type")
)
