package scout

import "fmt"

// Resolver computes the hub status of each teleop segment for one record's
// autonomous outcome and override. It has no side effects.
type Resolver struct {
	layout   Layout
	leader   Leader
	override Override
}

// NewResolver validates its inputs and returns a Resolver. Invalid enum
// values are rejected rather than defaulted.
func NewResolver(layout Layout, leader Leader, override Override) (Resolver, error) {
	if layout != LayoutFolded && layout != LayoutTerminal {
		return Resolver{}, fmt.Errorf("scout: invalid layout %q", layout)
	}
	if leader < LeaderUnknown || leader > LeaderOpponent {
		return Resolver{}, fmt.Errorf("scout: invalid leader %d", int(leader))
	}
	if _, err := ParseOverride(string(override)); err != nil || override == "" {
		return Resolver{}, fmt.Errorf("scout: invalid override %q", override)
	}
	return Resolver{layout: layout, leader: leader, override: override}, nil
}

// ResolverFor builds the Resolver for a record's current auto result and
// override.
func ResolverFor(r *Record) (Resolver, error) {
	leader, err := r.Comparison.Leader(r.AutoResult, r.Alliance)
	if err != nil {
		return Resolver{}, err
	}
	return NewResolver(r.Layout, leader, r.Override)
}

// Status returns Active or Inactive for the segment at idx. An index outside
// the layout is a caller bug and panics.
func (rv Resolver) Status(idx int) Status {
	defs := rv.layout.defs()
	if idx < 0 || idx >= len(defs) {
		panic(fmt.Sprintf("scout: segment index %d out of range [0,%d)", idx, len(defs)))
	}
	if defs[idx].Fixed {
		return StatusActive
	}
	// The fixed opening segment sits at index 0, so idx is the shift number.
	odd := idx%2 == 1
	if odd == rv.activeOnOdd() {
		return StatusActive
	}
	return StatusInactive
}

// Plan returns the status of every segment in layout order.
func (rv Resolver) Plan() []Status {
	out := make([]Status, rv.layout.Len())
	for i := range out {
		out[i] = rv.Status(i)
	}
	return out
}

// activeOnOdd applies the precedence table: an explicit override wins; in
// Auto the alliance that led the autonomous phase starts inactive, and an
// unknown or tied result starts active.
func (rv Resolver) activeOnOdd() bool {
	switch rv.override {
	case OverrideActiveFirst:
		return true
	case OverrideInactiveFirst:
		return false
	}
	switch rv.leader {
	case LeaderObserved:
		return false
	case LeaderOpponent, LeaderTie, LeaderUnknown:
		return true
	}
	return true
}
