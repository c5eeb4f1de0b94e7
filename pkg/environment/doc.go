// Package environment propagates the application environment (development,
// staging, production) through context.Context, HTTP requests and logs.
//
// Parse normalises names coming from configuration, including the short
// aliases "prod", "stage" and "dev". Middleware stamps the environment on every
// request context, and LoggerExtractor exposes it to the logger package:
//
//	env := environment.Parse(cfg.Env)
//	handler = environment.Middleware(env)(handler)
//
//	log := logger.New(logger.WithContextExtractors(environment.LoggerExtractor()))
package environment
