package middleware

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that writes one slog
// line per RPC: procedure, result code, authenticated user, duration.
// Failures log at Warn with the connect code so run-management denials
// (unauthenticated, permission_denied) stand out from the ok lines.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()

			resp, err := next(ctx, req)

			attrs := []any{
				"procedure", req.Spec().Procedure,
				"user_id", GetUserID(ctx), // empty for anonymous compute
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if err != nil {
				slog.Warn("rpc failed", append(attrs, "code", codeLabel(err), "error", err)...)
			} else {
				slog.Info("rpc handled", attrs...)
			}

			return resp, err
		}
	}
}
