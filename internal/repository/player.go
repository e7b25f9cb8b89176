package repository

import (
	"context"
	"database/sql"
	"errors"
	"esports-tracker/internal/db"
	"esports-tracker/internal/domain"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

type PlayerRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewPlayerRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *PlayerRepository) Get(ctx context.Context, name string) (*domain.Player, error) {
	player, err := r.queries.GetPlayerByName(ctx, name)
	if isNoRows(err) {
		return nil, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, name)
	}
	if err != nil {
		r.logger.Error().Err(err).Str("player", name).Msg("failed to get player")
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}
	return toDomainPlayer(player), nil
}

func (r *PlayerRepository) Create(ctx context.Context, name string) (*domain.Player, error) {
	player, err := r.queries.CreatePlayer(ctx, db.CreatePlayerParams{
		Name:      name,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, fmt.Errorf("%w: %s", domain.ErrPlayerExists, name)
		}
		r.logger.Error().Err(err).Str("player", name).Msg("failed to create player")
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}

	r.logger.Info().Str("player", name).Int64("player_id", player.ID).Msg("player created")
	return toDomainPlayer(player), nil
}

// SetActive flips the soft-delete flag. Inactive players keep their records
// but drop out of reports and the leaderboard.
func (r *PlayerRepository) SetActive(ctx context.Context, name string, active bool) error {
	n, err := r.queries.SetPlayerActive(ctx, db.SetPlayerActiveParams{Active: active, Name: name})
	if err != nil {
		r.logger.Error().Err(err).Str("player", name).Bool("active", active).Msg("failed to set player active")
		return fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, name)
	}

	r.logger.Info().Str("player", name).Bool("active", active).Msg("player active flag updated")
	return nil
}

func (r *PlayerRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}
	return nil
}

func toDomainPlayer(p db.Player) *domain.Player {
	return &domain.Player{
		ID:         p.ID,
		Name:       p.Name,
		Active:     p.Active,
		BestKills:  int(p.BestKills),
		BestDamage: p.BestDamage,
		CreatedAt:  p.CreatedAt,
	}
}
