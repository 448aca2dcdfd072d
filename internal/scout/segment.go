package scout

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Segment is the per-shift state of a record. The favorable and unfavorable
// branch data are both kept, but each is reachable only while Status
// matches it.
type Segment struct {
	Key    string
	Label  string
	Status Status

	favorable   FavorableBranch
	unfavorable UnfavorableBranch
}

// FavorableBranch holds counts taken while the hub is active.
type FavorableBranch struct {
	Fuel   int
	Cycles int
}

// AddFuel adjusts the fuel count, floored at zero.
func (f *FavorableBranch) AddFuel(delta int) {
	f.Fuel = ClampCount(f.Fuel + delta)
}

// AddCycles adjusts the cycle count, floored at zero.
func (f *FavorableBranch) AddCycles(delta int) {
	f.Cycles = ClampCount(f.Cycles + delta)
}

// UnfavorableBranch holds what the robot did while the hub is inactive.
type UnfavorableBranch struct {
	Behaviors []Behavior
}

// Has reports whether b is selected.
func (u *UnfavorableBranch) Has(b Behavior) bool {
	return slices.Contains(u.Behaviors, b)
}

// Toggle selects or deselects b, keeping catalog order.
func (u *UnfavorableBranch) Toggle(b Behavior) error {
	if _, err := ParseBehavior(string(b)); err != nil {
		return err
	}
	if i := slices.Index(u.Behaviors, b); i >= 0 {
		u.Behaviors = slices.Delete(u.Behaviors, i, i+1)
		return nil
	}
	u.Behaviors = append(u.Behaviors, b)
	slices.SortFunc(u.Behaviors, func(a, b Behavior) int {
		return behaviorRank(a) - behaviorRank(b)
	})
	return nil
}

func newSegment(def SegmentDef) Segment {
	return Segment{
		Key:         def.Key,
		Label:       def.Label,
		Status:      StatusUnknown,
		unfavorable: UnfavorableBranch{Behaviors: []Behavior{}},
	}
}

// Favorable returns the active-hub counters, or false if the segment is not
// currently Active.
func (s *Segment) Favorable() (*FavorableBranch, bool) {
	if s.Status != StatusActive {
		return nil, false
	}
	return &s.favorable, true
}

// Unfavorable returns the inactive-hub behaviors, or false if the segment is
// not currently Inactive.
func (s *Segment) Unfavorable() (*UnfavorableBranch, bool) {
	if s.Status != StatusInactive {
		return nil, false
	}
	return &s.unfavorable, true
}

// SegmentSnapshot is the flat, storage view of a segment: every field of both
// branches regardless of status.
type SegmentSnapshot struct {
	Key       string     `json:"key"`
	Label     string     `json:"label"`
	Status    Status     `json:"status"`
	Fuel      int        `json:"fuel"`
	Cycles    int        `json:"cycles"`
	Behaviors []Behavior `json:"behaviors"`
}

// Snapshot flattens the segment for export.
func (s Segment) Snapshot() SegmentSnapshot {
	return SegmentSnapshot{
		Key:       s.Key,
		Label:     s.Label,
		Status:    s.Status,
		Fuel:      s.favorable.Fuel,
		Cycles:    s.favorable.Cycles,
		Behaviors: append([]Behavior{}, s.unfavorable.Behaviors...),
	}
}

// SegmentFromSnapshot rebuilds a segment from its flat form. Counters are
// clamped and behaviors validated.
func SegmentFromSnapshot(snap SegmentSnapshot) (Segment, error) {
	status, err := ParseStatus(string(snap.Status))
	if err != nil {
		return Segment{}, err
	}
	seg := Segment{
		Key:    snap.Key,
		Label:  snap.Label,
		Status: status,
		favorable: FavorableBranch{
			Fuel:   ClampCount(snap.Fuel),
			Cycles: ClampCount(snap.Cycles),
		},
		unfavorable: UnfavorableBranch{Behaviors: []Behavior{}},
	}
	for _, b := range snap.Behaviors {
		if seg.unfavorable.Has(b) {
			continue
		}
		if err := seg.unfavorable.Toggle(b); err != nil {
			return Segment{}, fmt.Errorf("scout: segment %s: %w", snap.Key, err)
		}
	}
	return seg, nil
}

func (s Segment) clone() Segment {
	c := s
	c.unfavorable.Behaviors = append([]Behavior{}, s.unfavorable.Behaviors...)
	return c
}

// MarshalJSON encodes the snapshot form.
func (s Segment) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Snapshot())
}

// UnmarshalJSON decodes the snapshot form.
func (s *Segment) UnmarshalJSON(data []byte) error {
	var snap SegmentSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}
	seg, err := SegmentFromSnapshot(snap)
	if err != nil {
		return err
	}
	*s = seg
	return nil
}
