//go:build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/toyz/ctorgen/internal/config"
	"github.com/toyz/ctorgen/internal/server"
)

//go:generate go run -mod=mod github.com/google/wire/cmd/wire

// ProviderSet holds every provider of the HTTP host.
// Regenerate wire_gen.go with: go generate ./internal/di/...
var ProviderSet = wire.NewSet(
	wire.FieldsOf(new(*config.Config), "Server", "Log"),
	ProvideLogger,
	ProvideMetrics,
	ProvideRefactorer,
	server.New,
)

// InitializeServer builds the HTTP host from a loaded configuration. The
// returned cleanup flushes the logger.
func InitializeServer(cfg *config.Config) (*server.Server, func(), error) {
	wire.Build(ProviderSet)
	return nil, nil, nil
}
