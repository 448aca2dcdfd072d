package scout

// Transition describes what EnterSegment did to one segment.
type Transition struct {
	Index int
	From  Status
	To    Status
	Reset bool // favorable counters were zeroed
}

// Changed reports whether the segment's stored status moved.
func (t Transition) Changed() bool {
	return t.From != t.To
}

// EnterSegment must run every time the operator navigates into segment idx,
// before its fields are shown or edited. It recomputes the segment's status
// and, only if that differs from the stored one, commits it. A change into
// Active zeroes the segment's counters, since counts taken under the stale
// status no longer apply. A change into Inactive makes sure the behavior set
// exists. No other segment is touched.
//
// The record must hold valid enums and a segment list matching its layout;
// violations panic.
func EnterSegment(r *Record, idx int) Transition {
	rv, err := ResolverFor(r)
	if err != nil {
		panic(err)
	}
	next := rv.Status(idx)
	if len(r.Segments) != r.Layout.Len() {
		panic("scout: record segments do not match layout " + string(r.Layout))
	}

	seg := &r.Segments[idx]
	t := Transition{Index: idx, From: seg.Status, To: next}
	if seg.Status == next {
		return t
	}

	seg.Status = next
	switch next {
	case StatusActive:
		seg.favorable = FavorableBranch{}
		t.Reset = true
	case StatusInactive:
		if seg.unfavorable.Behaviors == nil {
			seg.unfavorable.Behaviors = []Behavior{}
		}
	}
	return t
}
