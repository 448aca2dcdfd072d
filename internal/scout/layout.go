package scout

import "fmt"

// Layout fixes the list of teleop segments for a record.
type Layout string

const (
	// LayoutFolded treats End Game as the last teleop segment (6 segments).
	LayoutFolded Layout = "folded"
	// LayoutTerminal leaves End Game to its own screen (5 segments).
	LayoutTerminal Layout = "terminal"
)

// SegmentDef describes one slot of a layout. Fixed segments are always
// active regardless of the autonomous result or override.
type SegmentDef struct {
	Key   string
	Label string
	Fixed bool
}

var terminalSegments = []SegmentDef{
	{Key: "TRANSITION", Label: "Transition Shift", Fixed: true},
	{Key: "SHIFT1", Label: "Shift 1"},
	{Key: "SHIFT2", Label: "Shift 2"},
	{Key: "SHIFT3", Label: "Shift 3"},
	{Key: "SHIFT4", Label: "Shift 4"},
}

var foldedSegments = append(append([]SegmentDef{}, terminalSegments...),
	SegmentDef{Key: "ENDGAME", Label: "End Game", Fixed: true})

// ParseLayout validates a layout name. The empty string selects LayoutFolded.
func ParseLayout(s string) (Layout, error) {
	switch Layout(s) {
	case "", LayoutFolded:
		return LayoutFolded, nil
	case LayoutTerminal:
		return LayoutTerminal, nil
	}
	return "", fmt.Errorf("scout: invalid layout %q", s)
}

func (l Layout) defs() []SegmentDef {
	if l == LayoutTerminal {
		return terminalSegments
	}
	return foldedSegments
}

// Segments returns a copy of the layout's segment definitions.
func (l Layout) Segments() []SegmentDef {
	return append([]SegmentDef(nil), l.defs()...)
}

// Len returns the number of teleop segments.
func (l Layout) Len() int {
	return len(l.defs())
}
