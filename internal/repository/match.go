package repository

import (
	"context"
	"database/sql"
	"errors"
	"esports-tracker/internal/constants"
	"esports-tracker/internal/db"
	"esports-tracker/internal/domain"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type MatchRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewMatchRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *MatchRepository {
	return &MatchRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// FetchRecords returns every record of an active player dated inside the
// inclusive range, in no particular order. Query failures are reported as
// domain.ErrStorageUnavailable.
func (r *MatchRepository) FetchRecords(ctx context.Context, dr domain.DateRange) ([]domain.MatchRecord, error) {
	rows, err := r.queries.ListActiveRecordsInRange(ctx, db.ListActiveRecordsInRangeParams{
		StartDate: dateParam(dr.Start),
		EndDate:   dateParam(dr.End),
	})
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("start", dr.StartString()).
			Str("end", dr.EndString()).
			Msg("failed to fetch match records")
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}

	records := make([]domain.MatchRecord, len(rows))
	for i, row := range rows {
		records[i] = r.toDomain(row.ID, row.PlayerName, row.MatchDate, row.Kills, row.Booyah, row.Damage, row.Survival, row.CreatedAt)
	}
	return records, nil
}

// History returns one player's records newest first; ties on date fall back
// to submission time and then id so the order is stable.
func (r *MatchRepository) History(ctx context.Context, player string) ([]domain.MatchRecord, error) {
	rows, err := r.queries.ListRecordsByPlayer(ctx, player)
	if err != nil {
		r.logger.Error().Err(err).Str("player", player).Msg("failed to fetch player history")
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}

	records := make([]domain.MatchRecord, len(rows))
	for i, row := range rows {
		records[i] = r.toDomain(row.ID, row.PlayerName, row.MatchDate, row.Kills, row.Booyah, row.Damage, row.Survival, row.CreatedAt)
	}
	return records, nil
}

// Insert stores a new record for playerID and bumps the player's best kills
// and best damage in the same transaction. An empty ID gets a nanoid.
func (r *MatchRepository) Insert(ctx context.Context, playerID int64, record *domain.MatchRecord) error {
	if record.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate nanoid: %w", err)
		}
		record.ID = id
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %w", domain.ErrStorageUnavailable, err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	kills := int64(record.Kills)
	booyah := int64(record.Booyah)
	damage := record.Damage
	survival := int64(record.Survival)

	err = qtx.InsertMatchRecord(ctx, db.InsertMatchRecordParams{
		ID:        record.ID,
		PlayerID:  playerID,
		MatchDate: record.Date.Format(constants.DateLayout),
		Kills:     &kills,
		Booyah:    &booyah,
		Damage:    &damage,
		Survival:  &survival,
		CreatedAt: record.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to insert match record %s: %w", record.ID, err)
	}

	err = qtx.UpdatePlayerBests(ctx, db.UpdatePlayerBestsParams{
		Kills:  kills,
		Damage: damage,
		ID:     playerID,
	})
	if err != nil {
		return fmt.Errorf("failed to update bests for player %d: %w", playerID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit match record: %w", domain.ErrStorageUnavailable, err)
	}

	r.logger.Debug().
		Str("record_id", record.ID).
		Int64("player_id", playerID).
		Str("date", record.Date.Format(constants.DateLayout)).
		Msg("match record stored")
	return nil
}

// missing numeric columns read as 0; an unreadable date leaves Date zero so
// the aggregator flags the record as malformed
func (r *MatchRepository) toDomain(id, player, date string, kills, booyah *int64, damage *float64, survival *int64, createdAt time.Time) domain.MatchRecord {
	rec := domain.MatchRecord{
		ID:        id,
		Player:    player,
		Kills:     int(deref(kills)),
		Booyah:    int(deref(booyah)),
		Damage:    deref(damage),
		Survival:  int(deref(survival)),
		CreatedAt: createdAt,
	}

	d, err := time.Parse(constants.DateLayout, date)
	if err != nil {
		r.logger.Warn().Err(err).Str("record_id", id).Str("match_date", date).Msg("unreadable match date")
	} else {
		rec.Date = d
	}
	return rec
}

func dateParam(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(constants.DateLayout)
	return &s
}

func deref[T int64 | float64](v *T) T {
	if v == nil {
		return 0
	}
	return *v
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
