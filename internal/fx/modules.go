package fx

import (
	"database/sql"
	"esports-tracker/internal/client"
	"esports-tracker/internal/config"
	"esports-tracker/internal/database"
	"esports-tracker/internal/db"
	"esports-tracker/internal/logger"
	"esports-tracker/internal/repository"
	"esports-tracker/internal/server"
	"esports-tracker/internal/service"

	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

// Base is the ambient stack shared by every binary.
var Base = fx.Options(
	logger.Module,
	config.Module,
)

var Module = fx.Options(
	Base,
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	// repos
	fx.Provide(fx.Annotate(
		repository.NewPlayerRepository,
		fx.As(fx.Self()),
		fx.As(new(service.PlayerStore)),
		fx.As(new(server.Pinger)),
	)),
	fx.Provide(fx.Annotate(
		repository.NewMatchRepository,
		fx.As(fx.Self()),
		fx.As(new(service.RecordSource)),
		fx.As(new(service.HistoryStore)),
	)),
	// svc
	fx.Provide(service.NewReportService),
	fx.Provide(service.NewPlayerService),
	// server
	fx.Provide(server.NewTrackerServer),
)

var ClientModule = fx.Options(
	Base,
	fx.Provide(client.NewTrackerClient),
)
