package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/ksagarwal/settlr/internal/auth"
	"github.com/ksagarwal/settlr/internal/config"
	"github.com/ksagarwal/settlr/internal/export"
	"github.com/ksagarwal/settlr/internal/middleware"
	"github.com/ksagarwal/settlr/internal/ratelimit"
	"github.com/ksagarwal/settlr/internal/service"
	"github.com/ksagarwal/settlr/internal/storage/sqlite"
	"github.com/ksagarwal/settlr/pkg/api"
	"github.com/ksagarwal/settlr/pkg/logging"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	// interceptor chains: compute stays open to anonymous callers, run
	// management requires a valid token
	metricsInt := middleware.MetricsInterceptor()
	loggingInt := middleware.LoggingInterceptor()
	openChain := connect.WithInterceptors(metricsInt, loggingInt, middleware.OptionalAuth(jwtManager))
	authedChain := connect.WithInterceptors(metricsInt, loggingInt, middleware.RequireAuth(jwtManager))

	mux := http.NewServeMux()

	settlementSvc := service.NewSettlementService(store)
	settlementPath, settlementHandler := api.NewSettlementServiceHandler(settlementSvc, authedChain)
	mux.Handle(settlementPath, settlementHandler)
	// re-mount ComputeSettlement without the auth requirement
	_, openHandler := api.NewSettlementServiceHandler(settlementSvc, openChain)
	mux.Handle(api.SettlementServiceComputeSettlementProcedure, openHandler)

	authSvc := service.NewAuthService(authenticator, jwtManager, slog.Default())
	authPath, authHandler := api.NewAuthServiceHandler(authSvc, openChain)
	mux.Handle(authPath, authHandler)

	mux.HandleFunc("GET /runs/{id}/export.csv", export.NewHandler(store, jwtManager))
	mux.Handle("GET /metrics", promhttp.Handler())

	limiter := ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	handler := ratelimit.Middleware(limiter, loggingMiddleware(corsMiddleware(mux)))

	// h2c allows HTTP/2 without TLS, which Connect clients expect
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	server := &http.Server{
		Addr:              cfg.Listen,
		Handler:           h2cHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("Server starting", "address", cfg.Listen)
	if err := server.ListenAndServe(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		slog.Debug("Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
