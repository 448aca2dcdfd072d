// Package session assembles one match record at a time and walks the
// operator through its steps. A Session is owned by a single goroutine.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/zulandar/hubscout/internal/logging"
	"github.com/zulandar/hubscout/internal/scout"
)

// Step is one screen of the record wizard.
type Step int

const (
	StepSetup Step = iota
	StepAuto
	StepAutoResult
	StepTeleop
	StepEndgame
	StepReview
)

var stepNames = [...]string{"setup", "auto", "auto_result", "teleop", "endgame", "review"}

func (s Step) String() string {
	if s < 0 || int(s) >= len(stepNames) {
		return fmt.Sprintf("Step(%d)", int(s))
	}
	return stepNames[s]
}

// Errors returned by field writers used outside the step or status they
// belong to.
var (
	ErrNotTeleop   = errors.New("session: not on a teleop segment")
	ErrNotActive   = errors.New("session: segment is not active")
	ErrNotInactive = errors.New("session: segment is not inactive")
)

// Appender persists a finished record.
type Appender interface {
	Append(ctx context.Context, r *scout.Record) error
}

// Options configures a Session.
type Options struct {
	Store      Appender
	Layout     scout.Layout
	Comparison scout.Comparison
	Event      string
	Scout      string
	Alliance   scout.Alliance
	Now        func() time.Time
	Logger     *slog.Logger
}

// Session owns the in-progress record and the wizard position.
type Session struct {
	opts    Options
	log     *slog.Logger
	record  *scout.Record
	step    Step
	segment int
	last    scout.Transition
	saved   int
}

// New validates opts and returns a Session on a blank record.
func New(opts Options) (*Session, error) {
	if opts.Store == nil {
		return nil, errors.New("session: store is required")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	s := &Session{opts: opts, log: opts.Logger}
	r, err := s.blank(opts.Event, opts.Scout, opts.Alliance, "")
	if err != nil {
		return nil, err
	}
	s.record = r
	return s, nil
}

func (s *Session) blank(event, scoutName string, alliance scout.Alliance, match string) (*scout.Record, error) {
	r, err := scout.NewRecord(scout.NewRecordOpts{
		Now:        s.opts.Now(),
		Layout:     s.opts.Layout,
		Comparison: s.opts.Comparison,
		Alliance:   alliance,
		Event:      event,
		Match:      match,
		Scout:      scoutName,
	})
	if err != nil {
		return nil, fmt.Errorf("session: new record: %w", err)
	}
	return r, nil
}

// Record returns the in-progress record. Callers must not edit segment
// branches directly; use the Session writers.
func (s *Session) Record() *scout.Record { return s.record }

// Step returns the current wizard step.
func (s *Session) Step() Step { return s.step }

// SegmentIndex returns the teleop segment last entered.
func (s *Session) SegmentIndex() int { return s.segment }

// Segment returns the current teleop segment, or nil outside teleop.
func (s *Session) Segment() *scout.Segment {
	if s.step != StepTeleop {
		return nil
	}
	return &s.record.Segments[s.segment]
}

// LastTransition reports what the most recent segment entry did.
func (s *Session) LastTransition() scout.Transition { return s.last }

// Saved returns how many records this session has stored.
func (s *Session) Saved() int { return s.saved }

// Next moves one screen forward. Review is terminal.
func (s *Session) Next() {
	switch s.step {
	case StepSetup, StepAuto:
		s.step++
	case StepAutoResult:
		s.enterSegment(0)
	case StepTeleop:
		if s.segment+1 < len(s.record.Segments) {
			s.enterSegment(s.segment + 1)
			return
		}
		s.step = StepEndgame
	case StepEndgame:
		s.step = StepReview
	}
}

// Back moves one screen backward. Setup is terminal.
func (s *Session) Back() {
	switch s.step {
	case StepAuto, StepAutoResult:
		s.step--
	case StepTeleop:
		if s.segment > 0 {
			s.enterSegment(s.segment - 1)
			return
		}
		s.step = StepAutoResult
	case StepEndgame:
		s.enterSegment(len(s.record.Segments) - 1)
	case StepReview:
		s.step = StepEndgame
	}
}

// JumpToSegment enters teleop segment i directly.
func (s *Session) JumpToSegment(i int) error {
	if i < 0 || i >= len(s.record.Segments) {
		return fmt.Errorf("session: segment %d out of range [0,%d)", i, len(s.record.Segments))
	}
	s.enterSegment(i)
	return nil
}

// JumpEndgame goes straight to the endgame screen.
func (s *Session) JumpEndgame() { s.step = StepEndgame }

// Review goes straight to the review screen.
func (s *Session) Review() { s.step = StepReview }

// enterSegment is the only way into the teleop step, so the segment's status
// is always recomputed before it can be shown or edited.
func (s *Session) enterSegment(i int) {
	s.step = StepTeleop
	s.segment = i
	s.last = scout.EnterSegment(s.record, i)
	if s.last.Changed() {
		s.log.Debug("segment status changed",
			"segment", s.record.Segments[i].Key,
			"from", s.last.From,
			"to", s.last.To,
			"reset", s.last.Reset,
		)
	}
}

// Reset discards the in-progress record and starts over on setup.
func (s *Session) Reset() error {
	r, err := s.blank(s.opts.Event, s.opts.Scout, s.opts.Alliance, "")
	if err != nil {
		return err
	}
	s.record = r
	s.step = StepSetup
	s.segment = 0
	s.last = scout.Transition{}
	return nil
}

// Save stores a snapshot of the record and starts a new one carrying the
// event, scout and alliance forward. A numeric match number is incremented.
func (s *Session) Save(ctx context.Context) error {
	if err := s.record.Validate(); err != nil {
		return fmt.Errorf("session: save: %w", err)
	}
	if err := s.opts.Store.Append(ctx, s.record.Clone()); err != nil {
		return fmt.Errorf("session: save: %w", err)
	}
	s.saved++
	s.log.Info("record saved",
		"key", s.record.Key(),
		"event", s.record.Event,
		"match", s.record.Match,
		"team", s.record.Team,
	)

	prev := s.record
	next, err := s.blank(prev.Event, prev.Scout, prev.Alliance, NextMatch(prev.Match))
	if err != nil {
		return err
	}
	s.record = next
	s.step = StepSetup
	s.segment = 0
	s.last = scout.Transition{}
	return nil
}

// NextMatch returns the match number after m, or "" if m is not a number.
func NextMatch(m string) string {
	n, err := strconv.Atoi(m)
	if err != nil || n < 0 {
		return ""
	}
	return strconv.Itoa(n + 1)
}

// Setup fields.

func (s *Session) SetEvent(v string) { s.record.Event = scout.NormalizeText(v) }
func (s *Session) SetMatch(v string) { s.record.Match = scout.NormalizeText(v) }
func (s *Session) SetScout(v string) { s.record.Scout = scout.NormalizeText(v) }
func (s *Session) SetTeam(v string)  { s.record.Team = scout.NormalizeText(v) }

func (s *Session) SetAlliance(v string) error { return s.record.SetAlliance(v) }

// Auto fields.

func (s *Session) AdjustAutoFuel(delta int) { s.record.AddAutoFuel(delta) }

func (s *Session) SetAutoResult(v string) error { return s.record.SetAutoResult(v) }

func (s *Session) SetOverride(v string) error { return s.record.SetOverride(v) }

// Teleop fields. Each applies only to the branch matching the current
// segment's status.

// AdjustFuel changes the current Active segment's fuel count.
func (s *Session) AdjustFuel(delta int) error {
	fav, err := s.favorable()
	if err != nil {
		return err
	}
	fav.AddFuel(delta)
	return nil
}

// AdjustCycles changes the current Active segment's cycle count.
func (s *Session) AdjustCycles(delta int) error {
	fav, err := s.favorable()
	if err != nil {
		return err
	}
	fav.AddCycles(delta)
	return nil
}

// ToggleBehavior flips b in the current Inactive segment's behavior set.
func (s *Session) ToggleBehavior(b scout.Behavior) error {
	seg := s.Segment()
	if seg == nil {
		return ErrNotTeleop
	}
	un, ok := seg.Unfavorable()
	if !ok {
		return ErrNotInactive
	}
	return un.Toggle(b)
}

func (s *Session) favorable() (*scout.FavorableBranch, error) {
	seg := s.Segment()
	if seg == nil {
		return nil, ErrNotTeleop
	}
	fav, ok := seg.Favorable()
	if !ok {
		return nil, ErrNotActive
	}
	return fav, nil
}

// Endgame fields.

func (s *Session) SetClimb(v string) error { return s.record.SetClimb(v) }

func (s *Session) SetScoredNoClimb(v bool) { s.record.ScoredNoClimb = v }

func (s *Session) SetRating(name string, v int) error { return s.record.Ratings.Set(name, v) }

func (s *Session) SetNotes(v string) { s.record.Notes = scout.NormalizeText(v) }
