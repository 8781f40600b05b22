package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"brandsmith/internal/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	args := os.Args[1:]
	// stdout carries JSON-RPC in stdio mode
	logWriter := io.Writer(os.Stdout)
	if len(args) > 0 && args[0] == "mcp" {
		logWriter = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := NewApp(cfg, logger)
	err = run(ctx, app, args, os.Stdout)
	app.shutdown()
	if err != nil {
		logger.Error("brandsmith failed", "error", err)
		os.Exit(1)
	}
}
