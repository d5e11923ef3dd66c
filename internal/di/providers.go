// Package di assembles the HTTP host with Wire.
package di

import (
	"go.uber.org/zap"

	"github.com/toyz/ctorgen/internal/config"
	"github.com/toyz/ctorgen/internal/refactoring"
	"github.com/toyz/ctorgen/internal/server"
)

// ProvideLogger creates the structured logger; the cleanup flushes it
func ProvideLogger(cfg config.LogConfig) (*zap.Logger, func(), error) {
	logger, err := server.NewLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

// ProvideMetrics creates the Prometheus collectors
func ProvideMetrics() (*server.Metrics, error) {
	return server.NewMetrics()
}

// ProvideRefactorer creates the refactorer with the configured markers and layout
func ProvideRefactorer(cfg *config.Config) (*refactoring.Refactorer, error) {
	resolver, err := cfg.Resolver()
	if err != nil {
		return nil, err
	}
	return refactoring.New(refactoring.Options{
		Layout:   cfg.LayoutOptions(),
		Resolver: resolver,
	}), nil
}
