// Package scout holds the match record model and the rules that decide, for
// each teleop segment, whether the observed alliance's hub is active.
package scout

import (
	"fmt"
	"strings"
)

// Alliance is the side the observed team plays on.
type Alliance string

const (
	AllianceRed  Alliance = "Red"
	AllianceBlue Alliance = "Blue"
)

// Alliances lists valid alliances in display order.
var Alliances = []Alliance{AllianceRed, AllianceBlue}

// ParseAlliance accepts an alliance label case-insensitively.
func ParseAlliance(s string) (Alliance, error) {
	for _, a := range Alliances {
		if strings.EqualFold(s, string(a)) {
			return a, nil
		}
	}
	return "", fmt.Errorf("scout: invalid alliance %q", s)
}

// Status is the hub state of one teleop segment. StatusUnknown only appears
// in storage before the segment has been entered.
type Status string

const (
	StatusUnknown  Status = "Unknown"
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

// ParseStatus accepts a stored status label. The empty string is Unknown.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case "", StatusUnknown:
		return StatusUnknown, nil
	case StatusActive, StatusInactive:
		return Status(s), nil
	}
	return "", fmt.Errorf("scout: invalid segment status %q", s)
}

// Override is the operator's manual choice of shift order.
type Override string

const (
	OverrideAuto          Override = "Auto"
	OverrideActiveFirst   Override = "ActiveFirst"
	OverrideInactiveFirst Override = "InactiveFirst"
)

// Overrides lists valid overrides in display order.
var Overrides = []Override{OverrideAuto, OverrideActiveFirst, OverrideInactiveFirst}

// ParseOverride validates an override label. The empty string is Auto.
func ParseOverride(s string) (Override, error) {
	if s == "" {
		return OverrideAuto, nil
	}
	for _, o := range Overrides {
		if Override(s) == o {
			return o, nil
		}
	}
	return "", fmt.Errorf("scout: invalid override %q", s)
}

// Autonomous result labels. Which of them are valid depends on the record's
// Comparison.
const (
	ResultMine     = "Mine"
	ResultOpponent = "Opponent"
	ResultRed      = "Red"
	ResultBlue     = "Blue"
	ResultTie      = "Tie"
	ResultUnknown  = "Unknown"
)

// Comparison selects how the autonomous result is recorded. It is fixed when
// a record is created.
type Comparison string

const (
	// ComparisonMineOpponent records whether the observed alliance or its
	// opponent scored more in auto.
	ComparisonMineOpponent Comparison = "mine_opponent"
	// ComparisonSideLabel records the winning alliance colour, which is then
	// compared against the record's own alliance.
	ComparisonSideLabel Comparison = "side_label"
)

// ParseComparison validates a comparison name. The empty string selects
// ComparisonMineOpponent.
func ParseComparison(s string) (Comparison, error) {
	switch Comparison(s) {
	case "", ComparisonMineOpponent:
		return ComparisonMineOpponent, nil
	case ComparisonSideLabel:
		return ComparisonSideLabel, nil
	}
	return "", fmt.Errorf("scout: invalid comparison %q", s)
}

// Results returns the autonomous result labels valid for c.
func (c Comparison) Results() []string {
	if c == ComparisonSideLabel {
		return []string{ResultRed, ResultTie, ResultBlue, ResultUnknown}
	}
	return []string{ResultMine, ResultTie, ResultOpponent, ResultUnknown}
}

// ValidateResult reports whether result is a valid label under c.
func (c Comparison) ValidateResult(result string) error {
	for _, r := range c.Results() {
		if r == result {
			return nil
		}
	}
	return fmt.Errorf("scout: invalid auto result %q for comparison %s", result, c)
}

// Leader is the normalized outcome of the autonomous phase from the
// observed alliance's point of view.
type Leader int

const (
	LeaderUnknown Leader = iota
	LeaderTie
	LeaderObserved
	LeaderOpponent
)

func (l Leader) String() string {
	switch l {
	case LeaderTie:
		return "tie"
	case LeaderObserved:
		return "observed"
	case LeaderOpponent:
		return "opponent"
	}
	return "unknown"
}

// Leader normalizes a validated result label into a Leader.
func (c Comparison) Leader(result string, alliance Alliance) (Leader, error) {
	if err := c.ValidateResult(result); err != nil {
		return LeaderUnknown, err
	}
	switch result {
	case ResultTie:
		return LeaderTie, nil
	case ResultUnknown:
		return LeaderUnknown, nil
	case ResultMine:
		return LeaderObserved, nil
	case ResultOpponent:
		return LeaderOpponent, nil
	}
	// Side label: compare the winning colour with our own.
	if Alliance(result) == alliance {
		return LeaderObserved, nil
	}
	return LeaderOpponent, nil
}

// Climb is the endgame tower level reached.
type Climb string

const (
	ClimbNone Climb = "None"
	ClimbL1   Climb = "L1"
	ClimbL2   Climb = "L2"
	ClimbL3   Climb = "L3"
)

// Climbs lists valid climb levels in display order.
var Climbs = []Climb{ClimbNone, ClimbL1, ClimbL2, ClimbL3}

// ParseClimb validates a climb label. The empty string is None.
func ParseClimb(s string) (Climb, error) {
	if s == "" {
		return ClimbNone, nil
	}
	for _, c := range Climbs {
		if Climb(s) == c {
			return c, nil
		}
	}
	return "", fmt.Errorf("scout: invalid climb %q", s)
}

// Behavior is one entry of the catalog of things a robot does while its hub
// is inactive.
type Behavior string

const (
	BehaviorDefense       Behavior = "Defense"
	BehaviorCollecting    Behavior = "Collecting"
	BehaviorFeeding       Behavior = "Feeding"
	BehaviorRepositioning Behavior = "Repositioning"
	BehaviorBlocked       Behavior = "Blocked"
	BehaviorIdle          Behavior = "Idle"
)

// Behaviors is the fixed catalog, in display and export order.
var Behaviors = []Behavior{
	BehaviorDefense,
	BehaviorCollecting,
	BehaviorFeeding,
	BehaviorRepositioning,
	BehaviorBlocked,
	BehaviorIdle,
}

// ParseBehavior validates a behavior label.
func ParseBehavior(s string) (Behavior, error) {
	for _, b := range Behaviors {
		if Behavior(s) == b {
			return b, nil
		}
	}
	return "", fmt.Errorf("scout: invalid behavior %q", s)
}

func behaviorRank(b Behavior) int {
	for i, c := range Behaviors {
		if c == b {
			return i
		}
	}
	return len(Behaviors)
}

// ClampCount floors a counter at zero.
func ClampCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// ClampRating keeps a rating in 1..5; anything at or below zero means unrated.
func ClampRating(n int) int {
	switch {
	case n <= 0:
		return 0
	case n > 5:
		return 5
	}
	return n
}
