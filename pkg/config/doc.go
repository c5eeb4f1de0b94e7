// Package config loads typed configuration from environment variables.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11`:
//
//   - LoadEnv / MustLoadEnv read one or more `.env` files into the process
//     environment, later files overriding earlier ones.
//   - Load / MustLoad parse the environment into any struct using `env` tags.
//     The default `.env` is read once on first use if it exists.
//   - Each configuration type is parsed once and cached by type, so adapters
//     can call Load for their own Config without threading structs around.
//
// # Usage
//
//	import "github.com/dmitrymomot/flagkit/pkg/config"
//
//	var rc redis.Config
//	if err := config.Load(&rc); err != nil {
//		log.Fatalf("parsing env: %v", err)
//	}
//
// Only the configs a process actually needs should be loaded: a struct with a
// `required` field fails to parse when its variable is missing, which is why
// flagd loads backend configs lazily after choosing the backend.
//
// # Error Handling
//
//   - ErrParsingConfig: env vars could not be parsed into the struct.
//   - ErrLoadingEnvFile: a .env file could not be read.
//   - ErrInvalidConfigType: cached value does not match the requested type.
//   - ErrNilPointer: nil pointer passed to Load/MustLoad.
//
// # Testing Helpers
//
// ResetCache clears the cache between tests; ForceReloadConfig re-parses one
// type after the environment changed.
package config
