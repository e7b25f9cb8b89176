// Command watch polls the tracker's JSON endpoints and redraws the
// leaderboard (or a date-filtered report) whenever it changes.
package main

import (
	"context"
	"errors"
	"esports-tracker/internal/client"
	"esports-tracker/internal/config"
	"esports-tracker/internal/domain"
	fxmodules "esports-tracker/internal/fx"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	start := flag.String("start", "", "report start date (YYYY-MM-DD), empty for the all-time leaderboard")
	end := flag.String("end", "", "report end date (YYYY-MM-DD)")
	flag.Parse()

	dr := domain.ParseDateRange(*start, *end)

	fx.New(
		fxmodules.ClientModule,
		fx.Supply(dr),
		fx.Invoke(runWatch),
		fx.NopLogger,
	).Run()
}

func runWatch(lc fx.Lifecycle, shutdowner fx.Shutdowner, tc *client.TrackerClient, cfg *config.Config, dr domain.DateRange, logger zerolog.Logger) {
	fetch := tc.Leaderboard
	if !dr.Unbounded() {
		fetch = func(ctx context.Context) (*client.Snapshot, error) {
			return tc.Report(ctx, dr)
		}
	}
	poller := client.NewPoller(fetch, cfg.PollInterval, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			logger.Info().
				Str("tracker_url", cfg.TrackerURL).
				Str("start", dr.StartString()).
				Str("end", dr.EndString()).
				Dur("interval", cfg.PollInterval).
				Msg("watching leaderboard")
			go func() {
				defer close(done)
				err := poller.Run(ctx, func(b client.Board, c client.Changes) {
					fmt.Fprint(os.Stdout, "\033[H\033[2J")
					if err := client.Render(os.Stdout, b); err != nil {
						logger.Error().Err(err).Msg("failed to render board")
					}
					for _, m := range c.Moved {
						logger.Info().Str("player", m.Name).Int("from", m.From).Int("to", m.To).Msg("rank changed")
					}
				})
				if err != nil && !errors.Is(err, context.Canceled) {
					logger.Error().Err(err).Msg("watch stopped")
					shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			<-done
			return nil
		},
	})
}
