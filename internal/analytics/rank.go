package analytics

import (
	"cmp"
	"esports-tracker/internal/domain"
	"slices"

	"github.com/rs/zerolog"
)

// Rank orders summaries by total kills descending, breaking ties by player
// name ascending, and assigns positional 1-based ranks. Equal kills still
// get distinct consecutive ranks. The input slice is not modified.
func Rank(summaries []domain.PlayerSummary, r domain.DateRange, excluded int) domain.RankedReport {
	sorted := slices.Clone(summaries)
	slices.SortFunc(sorted, func(a, b domain.PlayerSummary) int {
		if c := cmp.Compare(b.Kills, a.Kills); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	entries := make([]domain.RankedEntry, len(sorted))
	for i, s := range sorted {
		entries[i] = domain.RankedEntry{Rank: i + 1, Summary: s}
	}

	return domain.RankedReport{
		Entries:  entries,
		Range:    r,
		Excluded: excluded,
	}
}

// Build runs aggregation and ranking over records already filtered to r.
func Build(records []domain.MatchRecord, r domain.DateRange, logger zerolog.Logger) domain.RankedReport {
	agg := Aggregate(records, logger)
	return Rank(agg.Summaries, r, agg.Excluded)
}
