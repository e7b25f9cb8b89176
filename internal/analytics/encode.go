package analytics

import (
	"encoding/csv"
	"encoding/json"
	"esports-tracker/internal/constants"
	"esports-tracker/internal/domain"
	"fmt"
	"io"
	"math"
	"strconv"
)

// Row is the one canonical wire shape for a ranked player. Charts, tables
// and CSV downloads all read these values; nothing re-derives them.
type Row struct {
	Name     string  `json:"name"`
	Matches  int     `json:"matches"`
	Kills    int     `json:"kills"`
	Damage   float64 `json:"damage"`
	AvgKills float64 `json:"avg_kills"`
	WinRate  float64 `json:"winrate"`
}

var CSVHeader = []string{"name", "matches", "kills", "damage", "avg_kills", "winrate"}

func Round(v float64) float64 {
	p := math.Pow10(constants.MetricPrecision)
	return math.Round(v*p) / p
}

func RowOf(s domain.PlayerSummary) Row {
	return Row{
		Name:     s.Name,
		Matches:  s.Matches,
		Kills:    s.Kills,
		Damage:   Round(s.Damage),
		AvgKills: Round(s.AvgKills()),
		WinRate:  Round(s.WinRate()),
	}
}

// Rows projects a report into rank order. Never nil, so an empty report
// encodes as [] rather than null.
func Rows(report domain.RankedReport) []Row {
	rows := make([]Row, 0, len(report.Entries))
	for _, e := range report.Entries {
		rows = append(rows, RowOf(e.Summary))
	}
	return rows
}

func EncodeJSON(w io.Writer, rows []Row) error {
	if rows == nil {
		rows = []Row{}
	}
	if err := json.NewEncoder(w).Encode(rows); err != nil {
		return fmt.Errorf("failed to encode report json: %w", err)
	}
	return nil
}

func EncodeCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.Name,
			strconv.Itoa(r.Matches),
			strconv.Itoa(r.Kills),
			formatFloat(r.Damage),
			formatFloat(r.AvgKills),
			formatFloat(r.WinRate),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row for %s: %w", r.Name, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// formatFloat prints the shortest decimal that parses back to v.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
