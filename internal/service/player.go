package service

import (
	"context"
	"esports-tracker/internal/analytics"
	"esports-tracker/internal/constants"
	"esports-tracker/internal/domain"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type PlayerStore interface {
	Get(ctx context.Context, name string) (*domain.Player, error)
	Create(ctx context.Context, name string) (*domain.Player, error)
	SetActive(ctx context.Context, name string, active bool) error
}

type HistoryStore interface {
	History(ctx context.Context, player string) ([]domain.MatchRecord, error)
	Insert(ctx context.Context, playerID int64, record *domain.MatchRecord) error
}

type PlayerService struct {
	players PlayerStore
	matches HistoryStore
	logger  zerolog.Logger
}

func NewPlayerService(players PlayerStore, matches HistoryStore, logger zerolog.Logger) *PlayerService {
	return &PlayerService{players: players, matches: matches, logger: logger}
}

type Profile struct {
	Player  domain.Player
	Summary analytics.Row
}

type Graph struct {
	Dates []string
	Kills []int
}

type Submission struct {
	Player   string
	Date     string
	Kills    int
	Booyah   int
	Damage   float64
	Survival int
}

func (s *PlayerService) Create(ctx context.Context, name string) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: player name is required", domain.ErrInvalidRecord)
	}
	return s.players.Create(ctx, name)
}

func (s *PlayerService) SetActive(ctx context.Context, name string, active bool) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.players.SetActive(ctx, name, active)
}

// History is the raw, unaggregated record list for one player, newest first.
func (s *PlayerService) History(ctx context.Context, name string) ([]domain.MatchRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if _, err := s.players.Get(ctx, name); err != nil {
		return nil, err
	}
	return s.matches.History(ctx, name)
}

// Profile summarises all of a player's records with the same aggregation
// and rounding the report uses. Inactive players still have a profile.
func (s *PlayerService) Profile(ctx context.Context, name string) (*Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	logger := requestLogger(ctx, s.logger)

	var (
		player  *domain.Player
		records []domain.MatchRecord
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		player, err = s.players.Get(gCtx, name)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = s.matches.History(gCtx, name)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Warn().Err(err).Str("player", name).Msg("failed to load profile")
		return nil, err
	}

	profile := &Profile{
		Player:  *player,
		Summary: analytics.Row{Name: player.Name},
	}
	agg := analytics.Aggregate(records, logger)
	if len(agg.Summaries) > 0 {
		profile.Summary = analytics.RowOf(agg.Summaries[0])
	}
	return profile, nil
}

// Graph is the chronological kills series for one player.
func (s *PlayerService) Graph(ctx context.Context, name string) (*Graph, error) {
	records, err := s.History(ctx, name)
	if err != nil {
		return nil, err
	}
	slices.Reverse(records)

	g := &Graph{
		Dates: make([]string, 0, len(records)),
		Kills: make([]int, 0, len(records)),
	}
	for _, r := range records {
		g.Dates = append(g.Dates, r.Date.Format(constants.DateLayout))
		g.Kills = append(g.Kills, r.Kills)
	}
	return g, nil
}

// Submit validates and stores a new match record. Unlike report filtering,
// submission is strict about the date.
func (s *PlayerService) Submit(ctx context.Context, sub Submission) (*domain.MatchRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	logger := requestLogger(ctx, s.logger)

	date, err := time.Parse(constants.DateLayout, sub.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", domain.ErrInvalidRecord, sub.Date)
	}

	record := &domain.MatchRecord{
		Player:   sub.Player,
		Date:     date,
		Kills:    sub.Kills,
		Booyah:   sub.Booyah,
		Damage:   sub.Damage,
		Survival: sub.Survival,
	}
	if err := analytics.Validate(*record); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidRecord, err)
	}
	if record.Booyah < 0 || record.Survival < 0 {
		return nil, fmt.Errorf("%w: booyah and survival must not be negative", domain.ErrInvalidRecord)
	}

	player, err := s.players.Get(ctx, sub.Player)
	if err != nil {
		return nil, err
	}
	if !player.Active {
		return nil, fmt.Errorf("%w: %s is inactive", domain.ErrPlayerNotFound, player.Name)
	}

	if err := s.matches.Insert(ctx, player.ID, record); err != nil {
		logger.Error().Err(err).Str("player", player.Name).Msg("failed to store match record")
		return nil, err
	}

	logger.Info().
		Str("player", player.Name).
		Str("record_id", record.ID).
		Int("kills", record.Kills).
		Msg("match record submitted")
	return record, nil
}
