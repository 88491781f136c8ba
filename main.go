package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"comfyhost/helpers"
	"comfyhost/http/api"
	"comfyhost/logger"
	"comfyhost/settings"
	"comfyhost/status"
	"comfyhost/workflow"
)

func main() {
	configPath := flag.String("config", settings.DefaultPath, "Path to the toml config file")
	flag.Parse()

	config, err := settings.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("Failed to load configuration", "error", err)
	}

	logger.Init(config.Logging)

	started := time.Now()
	store := workflow.NewStore(config.Paths.Workflows)
	statusClient := status.NewClient(config.Paths, store, started)
	server := api.NewServer(config, store, statusClient)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port),
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	localIp := helpers.GetLocalIp()
	logger.Info("Server running",
		"local", helpers.MakeUrlWithPort("http://localhost", config.Server.Port),
		"network", helpers.MakeUrlWithPort("http://"+localIp, config.Server.Port),
	)
	fmt.Println(statusClient.GetFormattedStatus())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server stopped", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
}
