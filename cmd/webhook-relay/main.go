package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cameo-health/webhook-relay/internal/config"
	"github.com/cameo-health/webhook-relay/internal/log"
	"github.com/cameo-health/webhook-relay/internal/relay"
	"github.com/cameo-health/webhook-relay/internal/webhook"
)

const version = "1.0.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// No subcommand means start: the common case is running under a
	// process supervisor with configuration in the environment.
	cmd := "start"
	if len(args) > 0 {
		cmd = args[0]
		args = args[1:]
	}

	switch cmd {
	case "start":
		return runStart(args)
	case "version":
		fmt.Printf("webhook-relay version %s\n", version)
		return 0
	case "help", "--help", "-h":
		printUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage(os.Stderr)
		return 1
	}
}

func printUsage(w *os.File) {
	fmt.Fprint(w, `webhook-relay - Receive provider webhooks and forward them to one destination

Usage:
  webhook-relay [start] [flags]
  webhook-relay version
  webhook-relay help

Start flags:
  --config <path>      Optional YAML config file (env vars take precedence)
  --log-level <level>  Override log level (DEBUG, INFO, WARN, ERROR)

Environment:
  WEBHOOK_SECRET_TOKEN  Shared secret for the verification challenge
  RELAY_URL             Destination for forwarded webhook envelopes
  RELAY_TIMEOUT         Outbound relay timeout in seconds (default 30)
  PORT                  HTTP listen port (default 8000)
  LOG_LEVEL             Log level (default INFO)
  MAX_BODY_SIZE         Inbound body cap in bytes (default 1048576)
`)
}

func runStart(args []string) int {
	fs := flag.NewFlagSet("start", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to optional YAML config file")
	logLevel := fs.String("log-level", "", "override log level")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}

	level := cfg.LogLevel
	if *logLevel != "" {
		level = *logLevel
	}
	log.Setup(level)
	logger := log.WithComponent("webhook-relay")

	if !cfg.SecretConfigured() {
		logger.Warn("secret token not configured, verification challenges will fail")
	}
	if !cfg.RelayURLConfigured() {
		logger.Warn("relay URL not configured, deliveries will go to the placeholder destination")
	}

	webhookCfg, err := webhook.FromGlobalConfig(cfg)
	if err != nil {
		logger.Error("failed to prepare server configuration", "error", err)
		return 1
	}

	forwarder := relay.NewClient(cfg.RelayURL, cfg.Timeout(), log.WithComponent("relay"))
	server := webhook.New(webhookCfg, forwarder, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server exited with error", "error", err)
		return 1
	}

	logger.Info("shutdown complete")
	return 0
}
