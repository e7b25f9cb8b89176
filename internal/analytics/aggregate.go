package analytics

import (
	"esports-tracker/internal/domain"
	"fmt"

	"github.com/rs/zerolog"
)

type Aggregation struct {
	Summaries []domain.PlayerSummary
	Excluded  int
}

// Validate reports why a record cannot be aggregated, wrapping
// domain.ErrMalformedRecord, or nil when it is well formed.
func Validate(r domain.MatchRecord) error {
	switch {
	case r.Player == "":
		return fmt.Errorf("%w: empty player", domain.ErrMalformedRecord)
	case r.Date.IsZero():
		return fmt.Errorf("%w: missing match date", domain.ErrMalformedRecord)
	case r.Kills < 0:
		return fmt.Errorf("%w: negative kills %d", domain.ErrMalformedRecord, r.Kills)
	case r.Damage < 0:
		return fmt.Errorf("%w: negative damage %g", domain.ErrMalformedRecord, r.Damage)
	}
	return nil
}

// Aggregate groups records by player identity (opaque equality) and sums
// them. Malformed records are skipped and counted. The order of Summaries
// follows first appearance and carries no meaning; Rank imposes the order.
func Aggregate(records []domain.MatchRecord, logger zerolog.Logger) Aggregation {
	var agg Aggregation
	index := make(map[string]int)

	for _, r := range records {
		if err := Validate(r); err != nil {
			agg.Excluded++
			logger.Warn().
				Err(err).
				Str("record_id", r.ID).
				Str("player", r.Player).
				Msg("excluding malformed record from aggregation")
			continue
		}

		i, ok := index[r.Player]
		if !ok {
			i = len(agg.Summaries)
			index[r.Player] = i
			agg.Summaries = append(agg.Summaries, domain.PlayerSummary{Name: r.Player})
		}

		s := &agg.Summaries[i]
		s.Matches++
		s.Kills += r.Kills
		s.Damage += r.Damage
		if r.Won() {
			s.Wins++
		}
	}

	if agg.Excluded > 0 {
		logger.Info().
			Int("excluded", agg.Excluded).
			Int("records", len(records)).
			Msg("aggregation finished with excluded records")
	}

	return agg
}
