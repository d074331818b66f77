package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"connectrpc.com/connect"
)

// captureLogs routes the default slog logger into a buffer for the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLoggingInterceptor(t *testing.T) {
	req := connect.NewRequest(&struct{}{})

	t.Run("success logs one ok line", func(t *testing.T) {
		buf := captureLogs(t)

		next := connect.UnaryFunc(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			return connect.NewResponse(&struct{}{}), nil
		})
		ctx := context.WithValue(context.Background(), UserIDKey, "user-1")
		if _, err := LoggingInterceptor()(next)(ctx, req); err != nil {
			t.Fatalf("interceptor returned error: %v", err)
		}

		out := buf.String()
		if !strings.Contains(out, "rpc handled") {
			t.Errorf("missing ok line, got %q", out)
		}
		if !strings.Contains(out, "user_id=user-1") {
			t.Errorf("missing user_id, got %q", out)
		}
	})

	t.Run("failure logs the connect code", func(t *testing.T) {
		buf := captureLogs(t)

		next := connect.UnaryFunc(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			return nil, connect.NewError(connect.CodePermissionDenied, errors.New("run belongs to another user"))
		})
		if _, err := LoggingInterceptor()(next)(context.Background(), req); err == nil {
			t.Fatal("expected the error to propagate")
		}

		out := buf.String()
		if !strings.Contains(out, "rpc failed") {
			t.Errorf("missing failure line, got %q", out)
		}
		if !strings.Contains(out, "code=permission_denied") {
			t.Errorf("missing code label, got %q", out)
		}
	})
}

func TestCodeLabel(t *testing.T) {
	if got := codeLabel(connect.NewError(connect.CodeNotFound, errors.New("x"))); got != "not_found" {
		t.Errorf("codeLabel(not_found err) = %q", got)
	}
	if got := codeLabel(errors.New("plain")); got != "unknown" {
		t.Errorf("codeLabel(plain err) = %q, want unknown", got)
	}
}
