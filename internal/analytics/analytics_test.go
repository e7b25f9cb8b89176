package analytics

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"esports-tracker/internal/domain"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func rec(id, player string, kills, booyah int, damage float64) domain.MatchRecord {
	return domain.MatchRecord{
		ID:     id,
		Player: player,
		Date:   day("2024-05-01"),
		Kills:  kills,
		Booyah: booyah,
		Damage: damage,
	}
}

func exampleRecords() []domain.MatchRecord {
	return []domain.MatchRecord{
		rec("r1", "P1", 10, 1, 500),
		rec("r2", "P1", 5, 0, 200),
		rec("r3", "P2", 8, 1, 300),
	}
}

func TestBuildExampleScenario(t *testing.T) {
	report := Build(exampleRecords(), domain.DateRange{}, zerolog.Nop())

	require.Len(t, report.Entries, 2)
	assert.Equal(t, 0, report.Excluded)

	p1 := report.Entries[0]
	assert.Equal(t, 1, p1.Rank)
	assert.Equal(t, "P1", p1.Summary.Name)
	assert.Equal(t, 2, p1.Summary.Matches)
	assert.Equal(t, 15, p1.Summary.Kills)
	assert.Equal(t, 700.0, p1.Summary.Damage)
	assert.Equal(t, 7.5, p1.Summary.AvgKills())
	assert.Equal(t, 50.0, p1.Summary.WinRate())

	p2 := report.Entries[1]
	assert.Equal(t, 2, p2.Rank)
	assert.Equal(t, "P2", p2.Summary.Name)
	assert.Equal(t, 1, p2.Summary.Matches)
	assert.Equal(t, 8, p2.Summary.Kills)
	assert.Equal(t, 8.0, p2.Summary.AvgKills())
	assert.Equal(t, 100.0, p2.Summary.WinRate())

	top, ok := report.TopPerformer()
	require.True(t, ok)
	assert.Equal(t, "P1", top.Name)
}

func TestBuildEmptyInput(t *testing.T) {
	report := Build(nil, domain.DateRange{}, zerolog.Nop())

	assert.True(t, report.Empty())
	_, ok := report.TopPerformer()
	assert.False(t, ok)

	var js bytes.Buffer
	require.NoError(t, EncodeJSON(&js, Rows(report)))
	assert.Equal(t, "[]\n", js.String())

	var cs bytes.Buffer
	require.NoError(t, EncodeCSV(&cs, Rows(report)))
	assert.Equal(t, "name,matches,kills,damage,avg_kills,winrate\n", cs.String())
}

func TestAggregateExcludesMalformedRecords(t *testing.T) {
	records := []domain.MatchRecord{
		rec("ok1", "P1", 3, 0, 100),
		rec("neg-kills", "P1", -1, 0, 100),
		rec("neg-damage", "P2", 4, 1, -5),
		{ID: "no-date", Player: "P2", Kills: 2},
		rec("no-player", "", 2, 0, 10),
		rec("ok2", "P3", 0, 0, 0),
	}

	agg := Aggregate(records, zerolog.Nop())

	assert.Equal(t, 4, agg.Excluded)
	require.Len(t, agg.Summaries, 2)

	total := 0
	for _, s := range agg.Summaries {
		total += s.Matches
	}
	assert.Equal(t, 2, total)
}

func TestAggregateMatchesEqualWellFormedCount(t *testing.T) {
	var records []domain.MatchRecord
	wellFormed := 0
	for i := 0; i < 200; i++ {
		kills := i%13 - 1
		damage := float64(i%7) * 37.5
		r := rec(strconv.Itoa(i), fmt.Sprintf("player-%d", i%9), kills, i%3, damage)
		records = append(records, r)
		if kills >= 0 {
			wellFormed++
		}
	}

	agg := Aggregate(records, zerolog.Nop())

	total := 0
	for _, s := range agg.Summaries {
		total += s.Matches
		assert.GreaterOrEqual(t, s.WinRate(), 0.0)
		assert.LessOrEqual(t, s.WinRate(), 100.0)
		assert.GreaterOrEqual(t, s.AvgKills(), 0.0)
		assert.Positive(t, s.Matches)
	}
	assert.Equal(t, wellFormed, total)
	assert.Equal(t, len(records)-wellFormed, agg.Excluded)
}

func TestAggregateTreatsIdentityAsOpaque(t *testing.T) {
	records := []domain.MatchRecord{
		rec("a", "Ace", 1, 0, 0),
		rec("b", "ace", 1, 0, 0),
		rec("c", "Ace ", 1, 0, 0),
	}
	agg := Aggregate(records, zerolog.Nop())
	assert.Len(t, agg.Summaries, 3)
}

func TestBooyahCountsAsSingleWin(t *testing.T) {
	records := []domain.MatchRecord{
		rec("a", "P1", 1, 3, 0),
		rec("b", "P1", 1, 0, 0),
	}
	report := Build(records, domain.DateRange{}, zerolog.Nop())
	require.Len(t, report.Entries, 1)
	assert.Equal(t, 50.0, report.Entries[0].Summary.WinRate())
}

func TestRankTieBreakIsDeterministic(t *testing.T) {
	a := []domain.PlayerSummary{
		{Name: "zed", Kills: 10, Matches: 1},
		{Name: "amy", Kills: 10, Matches: 2},
		{Name: "bob", Kills: 12, Matches: 1},
	}
	b := []domain.PlayerSummary{a[1], a[2], a[0]}

	ra := Rank(a, domain.DateRange{}, 0)
	rb := Rank(b, domain.DateRange{}, 0)

	names := func(r domain.RankedReport) []string {
		var out []string
		for _, e := range r.Entries {
			out = append(out, e.Summary.Name)
		}
		return out
	}
	assert.Equal(t, []string{"bob", "amy", "zed"}, names(ra))
	assert.Equal(t, names(ra), names(rb))

	for i, e := range ra.Entries {
		assert.Equal(t, i+1, e.Rank)
	}
	assert.Equal(t, "zed", a[0].Name, "input must not be reordered")
}

func TestRankCarriesRangeAndExcluded(t *testing.T) {
	r := domain.ParseDateRange("2024-01-01", "")
	report := Rank(nil, r, 3)
	assert.Equal(t, "2024-01-01", report.Range.StartString())
	assert.Equal(t, "", report.Range.EndString())
	assert.Equal(t, 3, report.Excluded)
	assert.NotNil(t, report.Entries)
}

func TestRowsRounding(t *testing.T) {
	s := domain.PlayerSummary{Name: "P", Matches: 3, Kills: 10, Wins: 1, Damage: 1000.0 / 3}
	row := RowOf(s)
	assert.Equal(t, 3.33, row.AvgKills)
	assert.Equal(t, 33.33, row.WinRate)
	assert.Equal(t, 333.33, row.Damage)
}

func TestEncodingsAreIdempotent(t *testing.T) {
	encode := func() (string, string) {
		report := Build(exampleRecords(), domain.DateRange{}, zerolog.Nop())
		var js, cs bytes.Buffer
		require.NoError(t, EncodeJSON(&js, Rows(report)))
		require.NoError(t, EncodeCSV(&cs, Rows(report)))
		return js.String(), cs.String()
	}

	j1, c1 := encode()
	j2, c2 := encode()
	assert.Equal(t, j1, j2)
	assert.Equal(t, c1, c2)
}

func TestJSONAndCSVCarryIdenticalNumbers(t *testing.T) {
	records := []domain.MatchRecord{
		rec("1", "alpha", 7, 1, 123.456),
		rec("2", "alpha", 2, 0, 10),
		rec("3", "alpha", 4, 0, 0.005),
		rec("4", "beta, the \"great\"", 13, 1, 999.999),
		rec("5", "gamma", 0, 0, 0),
		rec("6", "gamma", 0, 2, 1),
		rec("7", "gamma", 1, 0, 2),
	}
	rows := Rows(Build(records, domain.DateRange{}, zerolog.Nop()))

	var js, cs bytes.Buffer
	require.NoError(t, EncodeJSON(&js, rows))
	require.NoError(t, EncodeCSV(&cs, rows))

	var fromJSON []Row
	require.NoError(t, json.Unmarshal(js.Bytes(), &fromJSON))

	lines, err := csv.NewReader(&cs).ReadAll()
	require.NoError(t, err)
	require.Equal(t, CSVHeader, lines[0])
	require.Len(t, lines[1:], len(fromJSON))

	for i, line := range lines[1:] {
		want := fromJSON[i]
		assert.Equal(t, want.Name, line[0])

		matches, err := strconv.Atoi(line[1])
		require.NoError(t, err)
		kills, err := strconv.Atoi(line[2])
		require.NoError(t, err)
		damage, err := strconv.ParseFloat(line[3], 64)
		require.NoError(t, err)
		avg, err := strconv.ParseFloat(line[4], 64)
		require.NoError(t, err)
		winrate, err := strconv.ParseFloat(line[5], 64)
		require.NoError(t, err)

		assert.Equal(t, want.Matches, matches)
		assert.Equal(t, want.Kills, kills)
		assert.Equal(t, want.Damage, damage)
		assert.Equal(t, want.AvgKills, avg)
		assert.Equal(t, want.WinRate, winrate)
	}
}

func TestJSONFieldNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeJSON(&buf, []Row{{Name: "P1", Matches: 2, Kills: 15, Damage: 700, AvgKills: 7.5, WinRate: 50}}))
	assert.JSONEq(t, `[{"name":"P1","matches":2,"kills":15,"damage":700,"avg_kills":7.5,"winrate":50}]`, buf.String())
}
