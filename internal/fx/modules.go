package fx

import (
	"roast-master/internal/api"
	"roast-master/internal/config"
	"roast-master/internal/database"
	"roast-master/internal/logger"
	"roast-master/internal/repository"
	"roast-master/internal/server"
	"roast-master/internal/service"

	"go.uber.org/fx"
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(database.New),
	// cache
	fx.Provide(fx.Annotate(
		repository.NewResponseCacheRepository,
		fx.As(new(api.ResponseCache)),
	)),
	// upstream
	fx.Provide(fx.Annotate(
		api.NewSleeperClient,
		fx.As(new(service.Provider)),
	)),
	// svc
	fx.Provide(service.NewDominanceService),
	// server
	fx.Provide(server.NewDominanceServer),
)
