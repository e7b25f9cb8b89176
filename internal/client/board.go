package client

import (
	"esports-tracker/internal/analytics"
	"fmt"
	"io"
	"text/tabwriter"
)

// Board is the immutable view-model of one refresh. A new Board replaces
// the previous one wholesale.
type Board struct {
	Rows     []analytics.Row
	Top      string
	Excluded int
}

func NewBoard(s *Snapshot) Board {
	rows := make([]analytics.Row, len(s.Rows))
	copy(rows, s.Rows)
	top := s.Top
	if top == "" && len(rows) > 0 {
		top = rows[0].Name
	}
	return Board{Rows: rows, Top: top, Excluded: s.Excluded}
}

func (b Board) Empty() bool {
	return len(b.Rows) == 0
}

type Move struct {
	Name string
	From int
	To   int
}

type Changes struct {
	Added   []string
	Removed []string
	Moved   []Move
	Updated []string // same rank, different numbers
}

func (c Changes) None() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0 && len(c.Moved) == 0 && len(c.Updated) == 0
}

// Diff compares two boards by player name. Ranks are 1-based positions.
func Diff(prev, next Board) Changes {
	var c Changes

	prevRank := make(map[string]int, len(prev.Rows))
	prevRow := make(map[string]analytics.Row, len(prev.Rows))
	for i, r := range prev.Rows {
		prevRank[r.Name] = i + 1
		prevRow[r.Name] = r
	}

	seen := make(map[string]bool, len(next.Rows))
	for i, r := range next.Rows {
		seen[r.Name] = true
		from, ok := prevRank[r.Name]
		switch {
		case !ok:
			c.Added = append(c.Added, r.Name)
		case from != i+1:
			c.Moved = append(c.Moved, Move{Name: r.Name, From: from, To: i + 1})
		case prevRow[r.Name] != r:
			c.Updated = append(c.Updated, r.Name)
		}
	}
	for _, r := range prev.Rows {
		if !seen[r.Name] {
			c.Removed = append(c.Removed, r.Name)
		}
	}
	return c
}

// Render writes the board as a plain table, or an explicit no-data line.
func Render(w io.Writer, b Board) error {
	if b.Empty() {
		_, err := fmt.Fprintln(w, "no data in this range")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tname\tmatches\tkills\tdamage\tavg_kills\twinrate\t")
	for i, r := range b.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%g\t%g\t%g%%\t\n", i+1, r.Name, r.Matches, r.Kills, r.Damage, r.AvgKills, r.WinRate)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if b.Excluded > 0 {
		_, err := fmt.Fprintf(w, "%d malformed record(s) excluded\n", b.Excluded)
		return err
	}
	return nil
}
