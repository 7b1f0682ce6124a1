package cmd

import (
	"fmt"

	"seedfix/core/config"
	"seedfix/core/gateway"
	"seedfix/core/logger"
	"seedfix/core/storage"
	"seedfix/feature/seed"

	"go.uber.org/zap"
)

// env bundles what every command needs.
type env struct {
	cfg     *config.Config
	log     *zap.Logger
	service *seed.Service
}

// setup loads configuration and builds the logger, gateway and seed service.
func setup() (*env, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if !cfg.Gateway.IsValidDriver() {
		return nil, fmt.Errorf("invalid gateway driver: %s", cfg.Gateway.Driver)
	}

	var client storage.Client
	if cfg.Gateway.Driver == gateway.DriverS3 {
		client, err = storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to storage: %w", err)
		}
	}

	gw, err := gateway.New(cfg.Gateway, cfg.Storage, client)
	if err != nil {
		return nil, err
	}

	return &env{
		cfg:     cfg,
		log:     l,
		service: seed.NewService(gw, cfg.Seed, l),
	}, nil
}

// documentArg returns the optional positional document name.
func documentArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
