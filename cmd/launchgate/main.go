package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"launchgate/config"
	"launchgate/internal/adapters/api"
	"launchgate/internal/adapters/sessionfile"
	"launchgate/internal/delivery/cli"
	"launchgate/internal/services"
)

func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	timeout := time.Duration(cfg.RequestTimeout) * time.Second
	storage := sessionfile.New(cfg.SessionFile)

	gateway := api.NewClient(cfg.APIBaseURL, &http.Client{Timeout: timeout}, nil, logger)
	sessions := services.NewSessionService(gateway, storage, logger)
	gateway.SetTokenSource(sessions)
	// A 401 from any call tears the session down before the error surfaces.
	gateway.SetAuthRejectedHook(func() { sessions.Logout(ctx) })

	workflow := services.NewWorkflowService(gateway, logger, timeout)
	dashboards := services.NewDashboardService(gateway, logger, timeout)

	app := cli.New(sessions, workflow, dashboards, logger, os.Stdout, os.Stderr)
	os.Exit(app.Run(ctx, os.Args[1:]))
}
