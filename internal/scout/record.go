package scout

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the format of a record's CreatedAt key.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Record is one scouted match for one team.
type Record struct {
	CreatedAt time.Time `json:"createdAt"`

	Event    string   `json:"event"`
	Match    string   `json:"matchNumber"`
	Scout    string   `json:"scoutName"`
	Alliance Alliance `json:"alliance"`
	Team     string   `json:"teamNumber"`

	Layout     Layout     `json:"layout"`
	Comparison Comparison `json:"comparison"`

	AutoFuel   int      `json:"autoFuel"`
	AutoResult string   `json:"autoWinner"`
	Override   Override `json:"activeFirstOverride"`

	Segments []Segment `json:"segments"`

	Climb         Climb   `json:"endgameClimb"`
	ScoredNoClimb bool    `json:"endgameScoredNoClimb"`
	Ratings       Ratings `json:"ratings"`
	Notes         string  `json:"notes"`
}

// Ratings are 1..5 scores; zero means not rated.
type Ratings struct {
	Accuracy int `json:"accuracy"`
	Defense  int `json:"defense"`
	Robot    int `json:"robot"`
	Driver   int `json:"driver"`
}

// RatingNames lists the rating fields in display and export order.
var RatingNames = []string{"accuracy", "defense", "robot", "driver"}

// Get returns the rating with the given name.
func (r Ratings) Get(name string) (int, error) {
	switch name {
	case "accuracy":
		return r.Accuracy, nil
	case "defense":
		return r.Defense, nil
	case "robot":
		return r.Robot, nil
	case "driver":
		return r.Driver, nil
	}
	return 0, fmt.Errorf("scout: unknown rating %q", name)
}

// Set stores a clamped rating under name.
func (r *Ratings) Set(name string, v int) error {
	v = ClampRating(v)
	switch name {
	case "accuracy":
		r.Accuracy = v
	case "defense":
		r.Defense = v
	case "robot":
		r.Robot = v
	case "driver":
		r.Driver = v
	default:
		return fmt.Errorf("scout: unknown rating %q", name)
	}
	return nil
}

// NewRecordOpts holds parameters for a blank record.
type NewRecordOpts struct {
	Now        time.Time
	Layout     Layout
	Comparison Comparison
	Alliance   Alliance
	Event      string
	Match      string
	Scout      string
	Team       string
}

// NewRecord returns a blank record with one Unknown segment per layout slot.
func NewRecord(opts NewRecordOpts) (*Record, error) {
	layout, err := ParseLayout(string(opts.Layout))
	if err != nil {
		return nil, err
	}
	cmp, err := ParseComparison(string(opts.Comparison))
	if err != nil {
		return nil, err
	}
	alliance := opts.Alliance
	if alliance == "" {
		alliance = AllianceRed
	}
	if alliance, err = ParseAlliance(string(alliance)); err != nil {
		return nil, err
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	r := &Record{
		CreatedAt:  now.UTC().Truncate(time.Millisecond),
		Event:      opts.Event,
		Match:      opts.Match,
		Scout:      opts.Scout,
		Alliance:   alliance,
		Team:       opts.Team,
		Layout:     layout,
		Comparison: cmp,
		AutoResult: ResultUnknown,
		Override:   OverrideAuto,
		Climb:      ClimbNone,
	}
	for _, def := range layout.defs() {
		r.Segments = append(r.Segments, newSegment(def))
	}
	return r, nil
}

// Key returns the record's CreatedAt formatted as its storage key.
func (r *Record) Key() string {
	return FormatKey(r.CreatedAt)
}

// FormatKey formats t the way record keys are stored.
func FormatKey(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseKey parses a record key back into a time.
func ParseKey(s string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("scout: parse record key %q: %w", s, err)
	}
	return t.UTC(), nil
}

// SetAlliance changes the observed alliance.
func (r *Record) SetAlliance(s string) error {
	a, err := ParseAlliance(s)
	if err != nil {
		return err
	}
	r.Alliance = a
	return nil
}

// SetAutoResult records the autonomous result, validated against the
// record's comparison.
func (r *Record) SetAutoResult(result string) error {
	if err := r.Comparison.ValidateResult(result); err != nil {
		return err
	}
	r.AutoResult = result
	return nil
}

// SetOverride records the manual shift-order override.
func (r *Record) SetOverride(s string) error {
	o, err := ParseOverride(s)
	if err != nil {
		return err
	}
	r.Override = o
	return nil
}

// SetClimb records the endgame climb level.
func (r *Record) SetClimb(s string) error {
	c, err := ParseClimb(s)
	if err != nil {
		return err
	}
	r.Climb = c
	return nil
}

// AddAutoFuel adjusts the auto fuel count, floored at zero.
func (r *Record) AddAutoFuel(delta int) {
	r.AutoFuel = ClampCount(r.AutoFuel + delta)
}

// Leader returns the normalized autonomous outcome.
func (r *Record) Leader() (Leader, error) {
	return r.Comparison.Leader(r.AutoResult, r.Alliance)
}

// Validate checks every enum and the segment list against the layout.
func (r *Record) Validate() error {
	var errs []string
	if _, err := ParseLayout(string(r.Layout)); err != nil || r.Layout == "" {
		errs = append(errs, fmt.Sprintf("layout %q", r.Layout))
	}
	if _, err := ParseComparison(string(r.Comparison)); err != nil || r.Comparison == "" {
		errs = append(errs, fmt.Sprintf("comparison %q", r.Comparison))
	}
	if a, err := ParseAlliance(string(r.Alliance)); err != nil || a != r.Alliance {
		errs = append(errs, fmt.Sprintf("alliance %q", r.Alliance))
	}
	if err := r.Comparison.ValidateResult(r.AutoResult); err != nil {
		errs = append(errs, fmt.Sprintf("auto result %q", r.AutoResult))
	}
	if _, err := ParseOverride(string(r.Override)); err != nil || r.Override == "" {
		errs = append(errs, fmt.Sprintf("override %q", r.Override))
	}
	if _, err := ParseClimb(string(r.Climb)); err != nil || r.Climb == "" {
		errs = append(errs, fmt.Sprintf("climb %q", r.Climb))
	}
	if len(r.Segments) != r.Layout.Len() {
		errs = append(errs, fmt.Sprintf("%d segments for layout %s", len(r.Segments), r.Layout))
	} else {
		for i, def := range r.Layout.defs() {
			if r.Segments[i].Key != def.Key {
				errs = append(errs, fmt.Sprintf("segments[%d] key %q, want %q", i, r.Segments[i].Key, def.Key))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("scout: invalid record: %s", strings.Join(errs, "; "))
	}
	return nil
}

// NormalizeText folds CRLF and lone CR line endings to LF. CSV readers do
// the same inside quoted fields, so stored text must already match.
func NormalizeText(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r\n", "\n"), "\r", "\n")
}

func (r *Record) normalizeText() {
	r.Event = NormalizeText(r.Event)
	r.Match = NormalizeText(r.Match)
	r.Scout = NormalizeText(r.Scout)
	r.Team = NormalizeText(r.Team)
	r.Notes = NormalizeText(r.Notes)
}

// Clone returns a deep copy, safe to hand to storage while the original
// keeps being edited.
func (r *Record) Clone() *Record {
	c := *r
	c.Segments = make([]Segment, len(r.Segments))
	for i, s := range r.Segments {
		c.Segments[i] = s.clone()
	}
	return &c
}

// UnmarshalJSON decodes a record and rejects invalid enums.
func (r *Record) UnmarshalJSON(data []byte) error {
	type plain Record
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = Record(p)
	r.CreatedAt = r.CreatedAt.UTC()
	if a, err := ParseAlliance(string(r.Alliance)); err == nil {
		r.Alliance = a
	}
	r.normalizeText()
	if r.Layout == "" {
		r.Layout = LayoutFolded
	}
	if r.Comparison == "" {
		r.Comparison = ComparisonMineOpponent
	}
	if r.Override == "" {
		r.Override = OverrideAuto
	}
	if r.Climb == "" {
		r.Climb = ClimbNone
	}
	if r.AutoResult == "" {
		r.AutoResult = ResultUnknown
	}
	return r.Validate()
}

// MarshalJSON encodes CreatedAt in key format so JSON exports carry the same
// timestamp string as CSV.
func (r Record) MarshalJSON() ([]byte, error) {
	type plain Record
	return json.Marshal(struct {
		plain
		CreatedAt string `json:"createdAt"`
	}{plain: plain(r), CreatedAt: r.Key()})
}
