// In file: cmd/gateway/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/dileep-u-k/assistant-gateway/internal/app"
	"github.com/dileep-u-k/assistant-gateway/internal/config"
	"github.com/dileep-u-k/assistant-gateway/internal/logger"
	"github.com/dileep-u-k/assistant-gateway/internal/metrics"
)

// main is the composition root: it loads configuration, wires the services
// and runs the HTTP server until SIGINT or SIGTERM.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	buildInfo := GetBuildInfo()
	log.Info("starting assistant gateway",
		zap.String("version", buildInfo.Version),
		zap.String("commit", buildInfo.GitCommit),
		zap.String("components", buildInfo.Components))

	services, err := app.New(context.Background(), cfg, log)
	if err != nil {
		log.Fatal("failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	gin.SetMode(cfg.GinMode)
	handler := NewGatewayHandler(services.Orchestrator, services.Invoker, log)
	engine := newRouter(handler, cfg.CORSOrigins, log)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	runServerWithGracefulShutdown(srv, log)
}

func newRouter(h *GatewayHandler, corsOrigins []string, log *zap.Logger) *gin.Engine {
	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		RequestID(),
		RequestLogger(log),
		metrics.PrometheusMiddleware(),
		CORS(corsOrigins),
	)

	engine.GET("/", h.HandleRoot)
	engine.GET("/health", h.HandleHealth)
	engine.GET("/version", h.HandleVersion)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := engine.Group("/api/v1")
	{
		chat := v1.Group("/chat")
		chat.POST("/message", h.HandleMessage)
		chat.POST("/stream", h.HandleStream)
		chat.GET("/ws", h.HandleWebSocket)

		v1.GET("/tools", h.HandleListTools)
		v1.POST("/tools/invoke", h.HandleInvokeTool)
	}
	return engine
}

// runServerWithGracefulShutdown handles the server lifecycle.
func runServerWithGracefulShutdown(srv *http.Server, log *zap.Logger) {
	go func() {
		log.Info("gateway listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
		return
	}
	log.Info("server exited gracefully")
}
