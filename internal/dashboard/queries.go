package dashboard

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/zulandar/hubscout/internal/scout"
)

// RecordRow holds one saved record for display.
type RecordRow struct {
	Key        string
	Event      string
	Match      string
	Team       string
	Alliance   string
	Scout      string
	AutoFuel   int
	ActiveFuel int
	Cycles     int
	Inactive   string
	Climb      string
	Age        string
}

// RecordRows flattens records for the index table, newest first.
func RecordRows(records []*scout.Record, now time.Time) []RecordRow {
	rows := make([]RecordRow, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		row := RecordRow{
			Key:      r.Key(),
			Event:    r.Event,
			Match:    r.Match,
			Team:     r.Team,
			Alliance: string(r.Alliance),
			Scout:    r.Scout,
			AutoFuel: r.AutoFuel,
			Climb:    string(r.Climb),
			Age:      humanize.RelTime(r.CreatedAt, now, "ago", "from now"),
		}
		seen := map[scout.Behavior]bool{}
		var behaviors []string
		for _, seg := range r.Segments {
			snap := seg.Snapshot()
			switch snap.Status {
			case scout.StatusActive:
				row.ActiveFuel += snap.Fuel
				row.Cycles += snap.Cycles
			case scout.StatusInactive:
				for _, b := range snap.Behaviors {
					if !seen[b] {
						seen[b] = true
						behaviors = append(behaviors, string(b))
					}
				}
			}
		}
		row.Inactive = strings.Join(behaviors, ", ")
		rows = append(rows, row)
	}
	return rows
}
