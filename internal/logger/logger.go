package logger

import (
	"esports-tracker/internal/config"
	"io"
	"os"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func New() zerolog.Logger {
	return build(os.Stdout, zerolog.DebugLevel)
}

func build(w io.Writer, level zerolog.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	return zerolog.New(w).
		With().
		Timestamp().
		Caller().
		Logger().
		Level(level)
}

// WithConfigLevel narrows the bootstrap logger to LOG_LEVEL once config is loaded.
func WithConfigLevel(logger zerolog.Logger, cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warn().Err(err).Str("log_level", cfg.LogLevel).Msg("unknown log level, keeping debug")
		return logger
	}
	return logger.Level(level)
}

// Module provides the bootstrap logger under the "bootstrap" name (used by
// config.Load) and the configured logger as the default zerolog.Logger.
var Module = fx.Options(
	fx.Provide(fx.Annotate(New, fx.ResultTags(`name:"bootstrap"`))),
	fx.Provide(fx.Annotate(WithConfigLevel, fx.ParamTags(`name:"bootstrap"`))),
)
