package domain

import (
	"time"
)

type Player struct {
	ID         int64
	Name       string
	Active     bool
	BestKills  int
	BestDamage float64
	CreatedAt  time.Time
}

// MatchRecord is one submitted performance entry. Date carries no time of day.
type MatchRecord struct {
	ID        string
	Player    string
	Date      time.Time
	Kills     int
	Booyah    int // wins contributed; > 0 counts the match as a win
	Damage    float64
	Survival  int
	CreatedAt time.Time
}

func (r MatchRecord) Won() bool {
	return r.Booyah > 0
}

type PlayerSummary struct {
	Name    string
	Matches int
	Kills   int
	Damage  float64
	Wins    int
}

func (s PlayerSummary) AvgKills() float64 {
	if s.Matches == 0 {
		return 0
	}
	return float64(s.Kills) / float64(s.Matches)
}

// WinRate is a percentage in [0, 100].
func (s PlayerSummary) WinRate() float64 {
	if s.Matches == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Matches) * 100
}

type RankedEntry struct {
	Rank    int
	Summary PlayerSummary
}

type RankedReport struct {
	Entries  []RankedEntry
	Range    DateRange
	Excluded int
}

// TopPerformer is the rank 1 player, absent when the report is empty.
func (r RankedReport) TopPerformer() (PlayerSummary, bool) {
	if len(r.Entries) == 0 {
		return PlayerSummary{}, false
	}
	return r.Entries[0].Summary, true
}

func (r RankedReport) Empty() bool {
	return len(r.Entries) == 0
}
