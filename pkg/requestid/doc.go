// Package requestid tags every flagd request with an identifier.
//
// The middleware accepts an incoming X-Request-ID made of letters, digits,
// dashes and underscores (up to 128 characters) and otherwise generates a
// UUIDv4. The ID is stored in the request context and echoed in the response
// header.
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
//
// LoggerExtractor plugs into logger.WithContextExtractors so that flag
// resolution logs carry the request_id attribute.
package requestid
