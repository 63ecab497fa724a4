package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Adda-Baaj/gamejolt-go/internal/app"
	"github.com/Adda-Baaj/gamejolt-go/internal/config"
	"github.com/Adda-Baaj/gamejolt-go/internal/logger"
)

func main() {
	code, err := run(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "gamejolt: %v\n", err)
	}
	os.Exit(code)
}

func run(args []string) (int, error) {
	cfg, err := config.Load()
	if err != nil {
		return app.ExitInternal, fmt.Errorf("load config: %w", err)
	}

	sugar, err := logger.Init(cfg)
	if err != nil {
		return app.ExitInternal, fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()
	log := logger.New(sugar)

	logger.DebugObj("gamejolt starting", "config", map[string]any{
		"app_env":       cfg.AppEnv,
		"api_root":      cfg.APIRoot,
		"game_id":       cfg.GameID,
		"session_store": cfg.SessionStoreType,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner, err := app.NewRunner(ctx, cfg, log, os.Stdout)
	if err != nil {
		logger.ErrorObj("failed to initialize runner", "error", err.Error())
		return app.ExitInternal, err
	}
	defer runner.Close()

	code, err := runner.Run(ctx, args)
	if err != nil && !errors.Is(err, app.ErrUsage) {
		logger.ErrorObj("command failed", "error", err.Error())
	}
	return code, err
}
