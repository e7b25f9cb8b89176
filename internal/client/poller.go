package client

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

type FetchFunc func(ctx context.Context) (*Snapshot, error)

type UpdateFunc func(board Board, changes Changes)

// Poller re-fetches on a fixed interval and hands each fresh Board to the
// callback together with its diff against the last good Board. Failed
// fetches are logged and the previous Board stays current.
type Poller struct {
	fetch    FetchFunc
	interval time.Duration
	logger   zerolog.Logger
}

func NewPoller(fetch FetchFunc, interval time.Duration, logger zerolog.Logger) *Poller {
	return &Poller{fetch: fetch, interval: interval, logger: logger}
}

// Run blocks until ctx is done. The first fetch happens immediately.
func (p *Poller) Run(ctx context.Context, onUpdate UpdateFunc) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	var (
		prev    Board
		hasPrev bool
	)
	for {
		if board, ok := p.poll(ctx); ok {
			changes := Diff(prev, board)
			if !hasPrev || !changes.None() {
				onUpdate(board, changes)
			}
			prev, hasPrev = board, true
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (p *Poller) poll(ctx context.Context) (Board, bool) {
	fetchCtx, cancel := context.WithTimeout(ctx, p.interval)
	defer cancel()

	snap, err := p.fetch(fetchCtx)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Warn().Err(err).Msg("leaderboard refresh failed")
		}
		return Board{}, false
	}
	p.logger.Debug().Int("players", len(snap.Rows)).Str("top", snap.Top).Msg("leaderboard refreshed")
	return NewBoard(snap), true
}
