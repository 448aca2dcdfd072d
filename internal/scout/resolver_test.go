package scout

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allLeaders = []Leader{LeaderUnknown, LeaderTie, LeaderObserved, LeaderOpponent}

func mustResolver(t *testing.T, layout Layout, leader Leader, override Override) Resolver {
	t.Helper()
	rv, err := NewResolver(layout, leader, override)
	require.NoError(t, err)
	return rv
}

func TestResolver_FixedSegmentsAlwaysActive(t *testing.T) {
	for _, layout := range []Layout{LayoutFolded, LayoutTerminal} {
		for _, leader := range allLeaders {
			for _, ov := range Overrides {
				rv := mustResolver(t, layout, leader, ov)
				for i, def := range layout.Segments() {
					if !def.Fixed {
						continue
					}
					assert.Equal(t, StatusActive, rv.Status(i),
						"layout=%s leader=%s override=%s idx=%d", layout, leader, ov, i)
				}
			}
		}
	}
}

func TestResolver_InteriorSegmentsAlternate(t *testing.T) {
	for _, layout := range []Layout{LayoutFolded, LayoutTerminal} {
		for _, leader := range allLeaders {
			for _, ov := range Overrides {
				rv := mustResolver(t, layout, leader, ov)
				var prev Status
				for i, def := range layout.Segments() {
					if def.Fixed {
						continue
					}
					got := rv.Status(i)
					assert.NotEqual(t, StatusUnknown, got)
					if prev != "" {
						assert.NotEqual(t, prev, got, "layout=%s leader=%s override=%s idx=%d", layout, leader, ov, i)
					}
					prev = got
				}
			}
		}
	}
}

func TestResolver_PrecedenceTable(t *testing.T) {
	A, I := StatusActive, StatusInactive
	tests := []struct {
		name     string
		leader   Leader
		override Override
		want     []Status // shifts 1..4
	}{
		{"active first", LeaderUnknown, OverrideActiveFirst, []Status{A, I, A, I}},
		{"inactive first", LeaderUnknown, OverrideInactiveFirst, []Status{I, A, I, A}},
		{"auto unknown", LeaderUnknown, OverrideAuto, []Status{A, I, A, I}},
		{"auto tie", LeaderTie, OverrideAuto, []Status{A, I, A, I}},
		{"auto observed led", LeaderObserved, OverrideAuto, []Status{I, A, I, A}},
		{"auto opponent led", LeaderOpponent, OverrideAuto, []Status{A, I, A, I}},
		{"override beats observed lead", LeaderObserved, OverrideActiveFirst, []Status{A, I, A, I}},
		{"override beats opponent lead", LeaderOpponent, OverrideInactiveFirst, []Status{I, A, I, A}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rv := mustResolver(t, LayoutFolded, tt.leader, tt.override)
			for shift := 1; shift <= 4; shift++ {
				assert.Equal(t, tt.want[shift-1], rv.Status(shift), "shift %d", shift)
			}
		})
	}
}

func TestResolver_Plan(t *testing.T) {
	rv := mustResolver(t, LayoutFolded, LeaderObserved, OverrideAuto)
	assert.Equal(t, []Status{
		StatusActive, StatusInactive, StatusActive, StatusInactive, StatusActive, StatusActive,
	}, rv.Plan())

	rv = mustResolver(t, LayoutTerminal, LeaderTie, OverrideAuto)
	assert.Equal(t, []Status{
		StatusActive, StatusActive, StatusInactive, StatusActive, StatusInactive,
	}, rv.Plan())
}

func TestResolver_OutOfRangePanics(t *testing.T) {
	rv := mustResolver(t, LayoutFolded, LeaderTie, OverrideAuto)
	for _, idx := range []int{-1, 6, 100} {
		assert.Panics(t, func() { rv.Status(idx) }, fmt.Sprintf("idx %d", idx))
	}
	rv = mustResolver(t, LayoutTerminal, LeaderTie, OverrideAuto)
	assert.Panics(t, func() { rv.Status(5) })
}

func TestNewResolver_RejectsInvalid(t *testing.T) {
	_, err := NewResolver("sideways", LeaderTie, OverrideAuto)
	assert.Error(t, err)
	_, err = NewResolver(LayoutFolded, Leader(42), OverrideAuto)
	assert.Error(t, err)
	_, err = NewResolver(LayoutFolded, LeaderTie, "SometimesFirst")
	assert.Error(t, err)
	_, err = NewResolver(LayoutFolded, LeaderTie, "")
	assert.Error(t, err)
}

func TestComparison_Leader(t *testing.T) {
	tests := []struct {
		cmp      Comparison
		result   string
		alliance Alliance
		want     Leader
	}{
		{ComparisonMineOpponent, ResultMine, AllianceRed, LeaderObserved},
		{ComparisonMineOpponent, ResultMine, AllianceBlue, LeaderObserved},
		{ComparisonMineOpponent, ResultOpponent, AllianceBlue, LeaderOpponent},
		{ComparisonMineOpponent, ResultTie, AllianceRed, LeaderTie},
		{ComparisonMineOpponent, ResultUnknown, AllianceRed, LeaderUnknown},
		{ComparisonSideLabel, ResultRed, AllianceRed, LeaderObserved},
		{ComparisonSideLabel, ResultRed, AllianceBlue, LeaderOpponent},
		{ComparisonSideLabel, ResultBlue, AllianceBlue, LeaderObserved},
		{ComparisonSideLabel, ResultBlue, AllianceRed, LeaderOpponent},
		{ComparisonSideLabel, ResultTie, AllianceBlue, LeaderTie},
	}
	for _, tt := range tests {
		got, err := tt.cmp.Leader(tt.result, tt.alliance)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s %s %s", tt.cmp, tt.result, tt.alliance)
	}
}

func TestComparison_LeaderRejectsWrongVocabulary(t *testing.T) {
	_, err := ComparisonMineOpponent.Leader(ResultRed, AllianceRed)
	assert.Error(t, err)
	_, err = ComparisonSideLabel.Leader(ResultMine, AllianceRed)
	assert.Error(t, err)
}

func TestParseHelpers(t *testing.T) {
	o, err := ParseOverride("")
	require.NoError(t, err)
	assert.Equal(t, OverrideAuto, o)
	_, err = ParseOverride("auto")
	assert.Error(t, err)

	a, err := ParseAlliance("blue")
	require.NoError(t, err)
	assert.Equal(t, AllianceBlue, a)

	l, err := ParseLayout("")
	require.NoError(t, err)
	assert.Equal(t, LayoutFolded, l)
	assert.Equal(t, 6, LayoutFolded.Len())
	assert.Equal(t, 5, LayoutTerminal.Len())

	_, err = ParseClimb("L4")
	assert.Error(t, err)
	_, err = ParseStatus("Maybe")
	assert.Error(t, err)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, ClampCount(-3))
	assert.Equal(t, 7, ClampCount(7))
	assert.Equal(t, 0, ClampRating(-1))
	assert.Equal(t, 0, ClampRating(0))
	assert.Equal(t, 3, ClampRating(3))
	assert.Equal(t, 5, ClampRating(9))
}
