package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"chroninotes/internal/adapters/filesystem"
	mcpadapter "chroninotes/internal/adapters/mcp"
	"chroninotes/internal/adapters/sqlite"
	"chroninotes/internal/config"
	"chroninotes/internal/logging"
	"chroninotes/internal/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("chroninotes-mcp: %v", err)
	}

	rootFlag := flag.String("root", cfg.Root, "path to the notes root")
	dbFlag := flag.String("db", cfg.Database, "path to the settings database")
	metricsFlag := flag.String("metrics-addr", cfg.MetricsAddr, "address for the Prometheus endpoint (empty disables it)")
	flag.Parse()

	// stdout carries the protocol
	output := cfg.LogOutput
	if output == "stdout" {
		output = "stderr"
	}
	logger, err := logging.New(logging.Config{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		OutputPath: output,
	})
	if err != nil {
		log.Fatalf("chroninotes-mcp: %v", err)
	}
	defer logger.Sync()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	repo := filesystem.NewRepository(*rootFlag,
		filesystem.WithLogger(logger),
		filesystem.WithMetrics(metrics.New(reg)),
	)

	store, err := sqlite.Open(*dbFlag)
	if err != nil {
		logger.Fatal("failed to open settings database", zap.String("path", *dbFlag), zap.Error(err))
	}
	defer store.Close()

	if *metricsFlag != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler(reg))
		metricsServer := &http.Server{
			Addr:    *metricsFlag,
			Handler: mux,
		}
		go func() {
			logger.Info("metrics server listening", zap.String("addr", *metricsFlag))
			if err := metricsServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server error", zap.Error(err))
			}
		}()
		defer metricsServer.Close()
	}

	mcpServer := server.NewMCPServer(
		"chroninotes-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, repo)
	mcpadapter.RegisterWriteTools(mcpServer, repo)
	mcpadapter.RegisterSettingsTools(mcpServer, store)

	logger.Info("serving on stdio", zap.String("root", *rootFlag))
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Error("server stopped", zap.Error(err))
	}
}
