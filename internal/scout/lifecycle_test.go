package scout

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecord(t *testing.T, opts NewRecordOpts) *Record {
	t.Helper()
	if opts.Now.IsZero() {
		opts.Now = time.Date(2026, 3, 7, 14, 30, 0, 123456789, time.UTC)
	}
	r, err := NewRecord(opts)
	require.NoError(t, err)
	return r
}

func TestNewRecord_Defaults(t *testing.T) {
	r := newTestRecord(t, NewRecordOpts{})
	assert.Equal(t, LayoutFolded, r.Layout)
	assert.Equal(t, ComparisonMineOpponent, r.Comparison)
	assert.Equal(t, AllianceRed, r.Alliance)
	assert.Equal(t, ResultUnknown, r.AutoResult)
	assert.Equal(t, OverrideAuto, r.Override)
	assert.Equal(t, ClimbNone, r.Climb)
	assert.Equal(t, "2026-03-07T14:30:00.123Z", r.Key())
	require.Len(t, r.Segments, 6)
	for _, s := range r.Segments {
		assert.Equal(t, StatusUnknown, s.Status)
		_, ok := s.Favorable()
		assert.False(t, ok)
	}
	assert.NoError(t, r.Validate())
}

func TestNewRecord_RejectsInvalid(t *testing.T) {
	_, err := NewRecord(NewRecordOpts{Layout: "spiral"})
	assert.Error(t, err)
	_, err = NewRecord(NewRecordOpts{Comparison: "coin_flip"})
	assert.Error(t, err)
	_, err = NewRecord(NewRecordOpts{Alliance: "Green"})
	assert.Error(t, err)
}

func TestEnterSegment_ObservedLedScenario(t *testing.T) {
	r := newTestRecord(t, NewRecordOpts{})
	require.NoError(t, r.SetAutoResult(ResultMine))

	want := []Status{StatusInactive, StatusActive, StatusInactive, StatusActive}
	for shift := 1; shift <= 4; shift++ {
		tr := EnterSegment(r, shift)
		assert.Equal(t, want[shift-1], tr.To)
		assert.Equal(t, want[shift-1], r.Segments[shift].Status)
	}
}

func TestEnterSegment_TieScenario(t *testing.T) {
	r := newTestRecord(t, NewRecordOpts{})
	require.NoError(t, r.SetAutoResult(ResultTie))

	want := []Status{StatusActive, StatusInactive, StatusActive, StatusInactive}
	for shift := 1; shift <= 4; shift++ {
		EnterSegment(r, shift)
		assert.Equal(t, want[shift-1], r.Segments[shift].Status, "shift %d", shift)
	}
}

func TestEnterSegment_Idempotent(t *testing.T) {
	r := newTestRecord(t, NewRecordOpts{})
	EnterSegment(r, 1)
	fav, ok := r.Segments[1].Favorable()
	require.True(t, ok)
	fav.AddFuel(5)
	fav.AddCycles(2)

	tr := EnterSegment(r, 1)
	assert.False(t, tr.Changed())
	assert.False(t, tr.Reset)
	fav, _ = r.Segments[1].Favorable()
	assert.Equal(t, 5, fav.Fuel)
	assert.Equal(t, 2, fav.Cycles)
}

func TestEnterSegment_ResetOnTransitionIntoActive(t *testing.T) {
	r := newTestRecord(t, NewRecordOpts{})
	EnterSegment(r, 2) // tie/unknown: shift 2 inactive
	require.Equal(t, StatusInactive, r.Segments[2].Status)

	// Stale counters stored while the segment was active earlier.
	r.Segments[2].favorable = FavorableBranch{Fuel: 9, Cycles: 4}
	unfav, ok := r.Segments[2].Unfavorable()
	require.True(t, ok)
	require.NoError(t, unfav.Toggle(BehaviorDefense))

	require.NoError(t, r.SetAutoResult(ResultMine))
	tr := EnterSegment(r, 2)
	assert.Equal(t, StatusInactive, tr.From)
	assert.Equal(t, StatusActive, tr.To)
	assert.True(t, tr.Reset)

	fav, ok := r.Segments[2].Favorable()
	require.True(t, ok)
	assert.Equal(t, 0, fav.Fuel)
	assert.Equal(t, 0, fav.Cycles)

	// The other branch's data is retained.
	snap := r.Segments[2].Snapshot()
	assert.Equal(t, []Behavior{BehaviorDefense}, snap.Behaviors)
}

func TestEnterSegment_BackAndForthThroughInactive(t *testing.T) {
	r := newTestRecord(t, NewRecordOpts{})
	EnterSegment(r, 1)
	fav, _ := r.Segments[1].Favorable()
	fav.AddFuel(3)

	require.NoError(t, r.SetOverride(string(OverrideInactiveFirst)))
	EnterSegment(r, 1)
	assert.Equal(t, StatusInactive, r.Segments[1].Status)
	unfav, ok := r.Segments[1].Unfavorable()
	require.True(t, ok)
	assert.NotNil(t, unfav.Behaviors)
	assert.Empty(t, unfav.Behaviors)

	require.NoError(t, r.SetOverride(string(OverrideActiveFirst)))
	EnterSegment(r, 1)
	fav, ok = r.Segments[1].Favorable()
	require.True(t, ok)
	assert.Equal(t, 0, fav.Fuel)
}

func TestEnterSegment_TouchesOnlyAddressedSegment(t *testing.T) {
	r := newTestRecord(t, NewRecordOpts{})
	for i := range r.Segments {
		EnterSegment(r, i)
	}
	fav, _ := r.Segments[3].Favorable()
	fav.AddFuel(8)
	before := r.Clone()

	require.NoError(t, r.SetAutoResult(ResultMine))
	EnterSegment(r, 1)

	for i := range r.Segments {
		if i == 1 {
			continue
		}
		assert.Equal(t, before.Segments[i].Snapshot(), r.Segments[i].Snapshot(), "segment %d", i)
	}
}

func TestEnterSegment_SideLabelComparison(t *testing.T) {
	r := newTestRecord(t, NewRecordOpts{Comparison: ComparisonSideLabel, Alliance: AllianceBlue})
	require.NoError(t, r.SetAutoResult(ResultBlue))
	EnterSegment(r, 1)
	assert.Equal(t, StatusInactive, r.Segments[1].Status)

	require.NoError(t, r.SetAutoResult(ResultRed))
	EnterSegment(r, 1)
	assert.Equal(t, StatusActive, r.Segments[1].Status)
}

func TestEnterSegment_ContractViolationsPanic(t *testing.T) {
	r := newTestRecord(t, NewRecordOpts{})
	assert.Panics(t, func() { EnterSegment(r, 6) })

	r.Override = "Sideways"
	assert.Panics(t, func() { EnterSegment(r, 1) })
}

func TestSegment_CountersClamp(t *testing.T) {
	r := newTestRecord(t, NewRecordOpts{})
	EnterSegment(r, 0)
	fav, _ := r.Segments[0].Favorable()
	fav.AddFuel(1)
	fav.AddFuel(-3)
	fav.AddCycles(-1)
	assert.Equal(t, 0, fav.Fuel)
	assert.Equal(t, 0, fav.Cycles)

	r.AddAutoFuel(-2)
	assert.Equal(t, 0, r.AutoFuel)
}

func TestUnfavorable_ToggleKeepsCatalogOrder(t *testing.T) {
	u := UnfavorableBranch{Behaviors: []Behavior{}}
	require.NoError(t, u.Toggle(BehaviorIdle))
	require.NoError(t, u.Toggle(BehaviorDefense))
	require.NoError(t, u.Toggle(BehaviorFeeding))
	assert.Equal(t, []Behavior{BehaviorDefense, BehaviorFeeding, BehaviorIdle}, u.Behaviors)

	require.NoError(t, u.Toggle(BehaviorFeeding))
	assert.Equal(t, []Behavior{BehaviorDefense, BehaviorIdle}, u.Behaviors)

	assert.Error(t, u.Toggle("Dancing"))
}

func TestRatings_SetClamps(t *testing.T) {
	var r Ratings
	require.NoError(t, r.Set("defense", 8))
	require.NoError(t, r.Set("driver", -2))
	assert.Equal(t, 5, r.Defense)
	assert.Equal(t, 0, r.Driver)
	assert.Error(t, r.Set("vibes", 3))
}

func TestRecord_JSONRoundTrip(t *testing.T) {
	r := newTestRecord(t, NewRecordOpts{Event: "Week 0", Team: "8724"})
	require.NoError(t, r.SetAutoResult(ResultMine))
	for i := range r.Segments {
		EnterSegment(r, i)
	}
	unfav, _ := r.Segments[1].Unfavorable()
	require.NoError(t, unfav.Toggle(BehaviorCollecting))
	fav, _ := r.Segments[2].Favorable()
	fav.AddFuel(11)

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"createdAt":"2026-03-07T14:30:00.123Z"`)

	var back Record
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, r.Key(), back.Key())
	for i := range r.Segments {
		assert.Equal(t, r.Segments[i].Snapshot(), back.Segments[i].Snapshot())
	}
}

func TestRecord_UnmarshalRejectsInvalidEnum(t *testing.T) {
	r := newTestRecord(t, NewRecordOpts{})
	data, err := json.Marshal(r)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	m["activeFirstOverride"] = "Whenever"
	bad, err := json.Marshal(m)
	require.NoError(t, err)

	var back Record
	assert.Error(t, json.Unmarshal(bad, &back))
}

func TestRecord_CloneIsDeep(t *testing.T) {
	r := newTestRecord(t, NewRecordOpts{})
	EnterSegment(r, 2)
	c := r.Clone()
	unfav, _ := r.Segments[2].Unfavorable()
	require.NoError(t, unfav.Toggle(BehaviorBlocked))
	assert.Empty(t, c.Segments[2].Snapshot().Behaviors)
}
