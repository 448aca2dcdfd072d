// Package export renders saved records as CSV and JSON files.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/zulandar/hubscout/internal/scout"
)

// FilePrefix starts every export file name.
const FilePrefix = "rebuildt_scout_"

const behaviorSep = ";"

var leadColumns = []string{
	"createdAt", "event", "matchNumber", "scoutName", "alliance", "teamNumber",
	"layout", "comparison",
	"autoFuel", "autoWinner", "activeFirstOverride",
}

var segmentFields = []string{"status", "fuel", "cycles", "behaviors"}

// Columns returns the CSV header. Segment columns cover the longest layout;
// records with fewer segments leave the extra cells empty.
func Columns() []string {
	cols := append([]string{}, leadColumns...)
	for _, def := range scout.LayoutFolded.Segments() {
		for _, f := range segmentFields {
			cols = append(cols, def.Key+"_"+f)
		}
	}
	cols = append(cols, "endgameClimb", "endgameScoredNoClimb")
	for _, name := range scout.RatingNames {
		cols = append(cols, "rating_"+name)
	}
	return append(cols, "notes")
}

func row(r *scout.Record) []string {
	cells := map[string]string{
		"createdAt":            r.Key(),
		"event":                r.Event,
		"matchNumber":          r.Match,
		"scoutName":            r.Scout,
		"alliance":             string(r.Alliance),
		"teamNumber":           r.Team,
		"layout":               string(r.Layout),
		"comparison":           string(r.Comparison),
		"autoFuel":             strconv.Itoa(r.AutoFuel),
		"autoWinner":           r.AutoResult,
		"activeFirstOverride":  string(r.Override),
		"endgameClimb":         string(r.Climb),
		"endgameScoredNoClimb": strconv.FormatBool(r.ScoredNoClimb),
		"notes":                r.Notes,
	}
	for _, seg := range r.Segments {
		snap := seg.Snapshot()
		names := make([]string, len(snap.Behaviors))
		for i, b := range snap.Behaviors {
			names[i] = string(b)
		}
		cells[snap.Key+"_status"] = string(snap.Status)
		cells[snap.Key+"_fuel"] = strconv.Itoa(snap.Fuel)
		cells[snap.Key+"_cycles"] = strconv.Itoa(snap.Cycles)
		cells[snap.Key+"_behaviors"] = strings.Join(names, behaviorSep)
	}
	for _, name := range scout.RatingNames {
		v, _ := r.Ratings.Get(name)
		cells["rating_"+name] = strconv.Itoa(v)
	}

	cols := Columns()
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = cells[c]
	}
	return out
}

// CSV renders records with a header row. Every cell is quoted.
func CSV(records []*scout.Record) []byte {
	var buf bytes.Buffer
	writeLine(&buf, Columns())
	for _, r := range records {
		writeLine(&buf, row(r))
	}
	return buf.Bytes()
}

func writeLine(buf *bytes.Buffer, cells []string) {
	for i, c := range cells {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(scout.NormalizeText(c), `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteByte('\n')
}

// JSON renders records as an indented array.
func JSON(records []*scout.Record) ([]byte, error) {
	if records == nil {
		records = []*scout.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: json: %w", err)
	}
	return data, nil
}

// ParseJSON reads records written by JSON.
func ParseJSON(data []byte) ([]*scout.Record, error) {
	var records []*scout.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("export: parse json: %w", err)
	}
	return records, nil
}

// ParseCSV reads records written by CSV. Columns are matched by header name.
func ParseCSV(r io.Reader) ([]*scout.Record, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("export: parse csv header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[h] = i
	}

	var records []*scout.Record
	for line := 2; ; line++ {
		cells, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("export: parse csv: %w", err)
		}
		get := func(col string) string {
			if i, ok := index[col]; ok && i < len(cells) {
				return cells[i]
			}
			return ""
		}
		rec, err := parseRow(get)
		if err != nil {
			return nil, fmt.Errorf("export: parse csv line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(get func(string) string) (*scout.Record, error) {
	created, err := scout.ParseKey(get("createdAt"))
	if err != nil {
		return nil, err
	}
	layout, err := scout.ParseLayout(get("layout"))
	if err != nil {
		return nil, err
	}
	cmp, err := scout.ParseComparison(get("comparison"))
	if err != nil {
		return nil, err
	}
	alliance, err := scout.ParseAlliance(get("alliance"))
	if err != nil {
		return nil, err
	}
	autoFuel, err := atoi(get("autoFuel"))
	if err != nil {
		return nil, fmt.Errorf("autoFuel: %w", err)
	}
	scored := false
	if v := get("endgameScoredNoClimb"); v != "" {
		if scored, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("endgameScoredNoClimb: %w", err)
		}
	}

	rec := &scout.Record{
		CreatedAt:     created,
		Event:         get("event"),
		Match:         get("matchNumber"),
		Scout:         get("scoutName"),
		Alliance:      alliance,
		Team:          get("teamNumber"),
		Layout:        layout,
		Comparison:    cmp,
		AutoFuel:      scout.ClampCount(autoFuel),
		AutoResult:    orDefault(get("autoWinner"), scout.ResultUnknown),
		Override:      scout.Override(orDefault(get("activeFirstOverride"), string(scout.OverrideAuto))),
		Climb:         scout.Climb(orDefault(get("endgameClimb"), string(scout.ClimbNone))),
		ScoredNoClimb: scored,
		Notes:         get("notes"),
	}
	for _, name := range scout.RatingNames {
		v, err := atoi(get("rating_" + name))
		if err != nil {
			return nil, fmt.Errorf("rating_%s: %w", name, err)
		}
		if v != 0 {
			_ = rec.Ratings.Set(name, v)
		}
	}
	for _, def := range layout.Segments() {
		snap := scout.SegmentSnapshot{
			Key:    def.Key,
			Label:  def.Label,
			Status: scout.Status(get(def.Key + "_status")),
		}
		if snap.Fuel, err = atoi(get(def.Key + "_fuel")); err != nil {
			return nil, fmt.Errorf("%s_fuel: %w", def.Key, err)
		}
		if snap.Cycles, err = atoi(get(def.Key + "_cycles")); err != nil {
			return nil, fmt.Errorf("%s_cycles: %w", def.Key, err)
		}
		if v := get(def.Key + "_behaviors"); v != "" {
			for _, b := range strings.Split(v, behaviorSep) {
				snap.Behaviors = append(snap.Behaviors, scout.Behavior(b))
			}
		}
		seg, err := scout.SegmentFromSnapshot(snap)
		if err != nil {
			return nil, err
		}
		rec.Segments = append(rec.Segments, seg)
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

func atoi(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// Stamp formats now the way export file names carry it.
func Stamp(now time.Time) string {
	return now.UTC().Format("2006-01-02T15-04-05")
}

// FileNames returns the JSON and CSV file names for an export taken at now.
func FileNames(now time.Time) (jsonName, csvName string) {
	stamp := Stamp(now)
	return FilePrefix + stamp + ".json", FilePrefix + stamp + ".csv"
}

// WriteFiles writes both exports into dir and returns their paths.
func WriteFiles(dir string, records []*scout.Record, now time.Time) (jsonPath, csvPath string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("export: create directory %s: %w", dir, err)
	}
	jsonName, csvName := FileNames(now)
	jsonPath = filepath.Join(dir, jsonName)
	csvPath = filepath.Join(dir, csvName)

	data, err := JSON(records)
	if err != nil {
		return "", "", err
	}
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return "", "", fmt.Errorf("export: write %s: %w", jsonPath, err)
	}
	if err := os.WriteFile(csvPath, CSV(records), 0o644); err != nil {
		return "", "", fmt.Errorf("export: write %s: %w", csvPath, err)
	}
	return jsonPath, csvPath, nil
}
