// Package mongo connects to MongoDB and reads feature flags from a collection.
//
// Each flag is one document:
//
//	{ "key": "new-checkout", "value": true, "description": "Checkout v2" }
//
// The value may be a boolean, a number (double, int32 or int64), a string or
// null. A missing value field reads as null. Any other BSON type is rejected
// with ErrUnsupportedValue.
//
// # Usage
//
//	db, err := mongo.NewWithDatabase(ctx, cfg, "")
//	if err != nil {
//		return err
//	}
//	source := mongo.NewSource(db.Collection(cfg.Collection))
//	resolver, err := feature.New(source)
//
// New retries the connection RetryAttempts times and pings the server before
// returning. Healthcheck wraps a ping for readiness probes.
//
// # Errors
//
//   - ErrFailedToConnectToMongo: every connection attempt failed.
//   - ErrEmptyConnectionURL: no connection URL configured.
//   - ErrHealthcheckFailed: the server did not answer a ping.
//   - ErrUnsupportedValue: a stored value is not a flag scalar.
package mongo
