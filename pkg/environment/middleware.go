package environment

import (
	"context"
	"log/slog"
	"net/http"
)

// Middleware stamps env on the context of every request it serves.
func Middleware(env Environment) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), env)))
		}
		return http.HandlerFunc(fn)
	}
}

// LoggerExtractor reports the context's environment as an "env" attribute.
// It has the shape of logger.ContextExtractor.
func LoggerExtractor() func(context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		env := FromContext(ctx)
		if env == "" {
			return slog.Attr{}, false
		}
		return slog.String("env", string(env)), true
	}
}
