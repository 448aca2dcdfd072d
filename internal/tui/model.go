// Package tui is the terminal record wizard. It renders a session.Session and
// turns keystrokes into session operations.
package tui

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zulandar/hubscout/internal/logging"
	"github.com/zulandar/hubscout/internal/scout"
	"github.com/zulandar/hubscout/internal/session"
)

// Setup screen fields, in focus order. The alliance selector follows the
// text inputs.
const (
	fieldEvent = iota
	fieldMatch
	fieldScout
	fieldTeam
	fieldAlliance
	fieldCount
)

var fieldLabels = [fieldCount]string{"Event", "Match #", "Scout", "Team #", "Alliance"}

// Model is the bubbletea model for one scouting session.
type Model struct {
	Session *session.Session
	Keys    KeyMap
	Width   int
	Height  int

	ctx    context.Context
	log    *slog.Logger
	inputs []textinput.Model
	focus  int
	notes  textinput.Model

	editingNotes bool
	rating       int
	flash        string
	err          error
	quitting     bool
}

// NewModel returns a Model driving s. ctx bounds store writes on save.
func NewModel(ctx context.Context, s *session.Session, log *slog.Logger) Model {
	if log == nil {
		log = logging.Discard()
	}
	m := Model{
		Session: s,
		Keys:    DefaultKeyMap(),
		ctx:     ctx,
		log:     log,
		inputs:  make([]textinput.Model, fieldAlliance),
	}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 64
		m.inputs[i] = ti
	}
	m.inputs[fieldMatch].Placeholder = "e.g. 12"
	m.inputs[fieldTeam].Placeholder = "e.g. 254"
	m.notes = textinput.New()
	m.notes.Prompt = "▸ "
	m.notes.Placeholder = "notes"
	m.notes.CharLimit = 500
	m.loadInputs()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Quitting reports whether the operator asked to leave.
func (m Model) Quitting() bool { return m.quitting }

// Err returns the last error shown to the operator.
func (m Model) Err() error { return m.err }

// loadInputs copies the record's setup fields into the text inputs and
// focuses the first one.
func (m *Model) loadInputs() {
	r := m.Session.Record()
	m.inputs[fieldEvent].SetValue(r.Event)
	m.inputs[fieldMatch].SetValue(r.Match)
	m.inputs[fieldScout].SetValue(r.Scout)
	m.inputs[fieldTeam].SetValue(r.Team)
	m.notes.SetValue(r.Notes)
	m.setFocus(fieldEvent)
}

// commitInputs writes the text inputs back to the record.
func (m *Model) commitInputs() {
	m.Session.SetEvent(m.inputs[fieldEvent].Value())
	m.Session.SetMatch(m.inputs[fieldMatch].Value())
	m.Session.SetScout(m.inputs[fieldScout].Value())
	m.Session.SetTeam(m.inputs[fieldTeam].Value())
}

func (m *Model) setFocus(f int) {
	m.focus = (f + fieldCount) % fieldCount
	for i := range m.inputs {
		if i == m.focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.Keys.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}
	if key.Matches(msg, m.Keys.Reset) {
		m.reset()
		return m, nil
	}
	m.flash = ""

	switch m.Session.Step() {
	case session.StepSetup:
		return m.handleSetupKey(msg)
	case session.StepEndgame:
		if m.editingNotes {
			return m.handleNotesKey(msg)
		}
	}

	switch {
	case key.Matches(msg, m.Keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.Keys.Next):
		m.Session.Next()
		m.err = nil
		return m, nil
	case key.Matches(msg, m.Keys.Prev):
		m.Session.Back()
		m.err = nil
		return m, nil
	case key.Matches(msg, m.Keys.Endgame):
		m.Session.JumpEndgame()
		return m, nil
	case key.Matches(msg, m.Keys.Review):
		m.Session.Review()
		return m, nil
	}

	switch m.Session.Step() {
	case session.StepAuto:
		m.handleAutoKey(msg)
	case session.StepAutoResult:
		m.handleAutoResultKey(msg)
	case session.StepTeleop:
		m.handleTeleopKey(msg)
	case session.StepEndgame:
		m.handleEndgameKey(msg)
	case session.StepReview:
		if key.Matches(msg, m.Keys.Save) {
			m.save()
		}
	}
	return m, nil
}

func (m Model) handleSetupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEnter:
		m.commitInputs()
		m.Session.Next()
		return m, nil
	case key.Matches(msg, m.Keys.NextField):
		m.setFocus(m.focus + 1)
		return m, nil
	case key.Matches(msg, m.Keys.PrevField):
		m.setFocus(m.focus - 1)
		return m, nil
	}

	if m.focus == fieldAlliance {
		if key.Matches(msg, m.Keys.Toggle) {
			next := scout.AllianceBlue
			if m.Session.Record().Alliance == scout.AllianceBlue {
				next = scout.AllianceRed
			}
			m.setErr(m.Session.SetAlliance(string(next)))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.commitInputs()
	return m, cmd
}

func (m *Model) handleAutoKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.Keys.Inc):
		m.Session.AdjustAutoFuel(1)
	case key.Matches(msg, m.Keys.Dec):
		m.Session.AdjustAutoFuel(-1)
	}
}

func (m *Model) handleAutoResultKey(msg tea.KeyMsg) {
	r := m.Session.Record()
	if key.Matches(msg, m.Keys.Override) {
		i := 0
		for j, o := range scout.Overrides {
			if o == r.Override {
				i = j
			}
		}
		next := scout.Overrides[(i+1)%len(scout.Overrides)]
		m.setErr(m.Session.SetOverride(string(next)))
		return
	}
	results := r.Comparison.Results()
	if d := digit(msg.String()); d > 0 && d <= len(results) {
		m.setErr(m.Session.SetAutoResult(results[d-1]))
	}
}

func (m *Model) handleTeleopKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.Keys.First):
		m.setErr(m.Session.JumpToSegment(0))
		return
	case key.Matches(msg, m.Keys.Inc):
		m.setErr(m.Session.AdjustFuel(1))
		return
	case key.Matches(msg, m.Keys.Dec):
		m.setErr(m.Session.AdjustFuel(-1))
		return
	case key.Matches(msg, m.Keys.IncCycles):
		m.setErr(m.Session.AdjustCycles(1))
		return
	case key.Matches(msg, m.Keys.DecCycles):
		m.setErr(m.Session.AdjustCycles(-1))
		return
	}
	if d := digit(msg.String()); d > 0 && d <= len(scout.Behaviors) {
		m.setErr(m.Session.ToggleBehavior(scout.Behaviors[d-1]))
	}
}

func (m *Model) handleEndgameKey(msg tea.KeyMsg) {
	r := m.Session.Record()
	switch {
	case key.Matches(msg, m.Keys.Climb):
		i := 0
		for j, c := range scout.Climbs {
			if c == r.Climb {
				i = j
			}
		}
		m.setErr(m.Session.SetClimb(string(scout.Climbs[(i+1)%len(scout.Climbs)])))
	case key.Matches(msg, m.Keys.NoClimb):
		m.Session.SetScoredNoClimb(!r.ScoredNoClimb)
	case key.Matches(msg, m.Keys.Rating):
		m.rating = (m.rating + 1) % len(scout.RatingNames)
	case key.Matches(msg, m.Keys.Notes):
		m.editingNotes = true
		m.notes.SetValue(r.Notes)
		m.notes.Focus()
	default:
		if d := digit(msg.String()); d > 0 && d <= 5 {
			m.setErr(m.Session.SetRating(scout.RatingNames[m.rating], d))
		}
	}
}

func (m Model) handleNotesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.Session.SetNotes(m.notes.Value())
		m.notes.Blur()
		m.editingNotes = false
		return m, nil
	}
	var cmd tea.Cmd
	m.notes, cmd = m.notes.Update(msg)
	return m, cmd
}

func (m *Model) save() {
	recKey := m.Session.Record().Key()
	if err := m.Session.Save(m.ctx); err != nil {
		m.log.Error("save failed", "key", recKey, "error", err)
		m.err = err
		return
	}
	m.err = nil
	m.flash = fmt.Sprintf("Saved %s (%d this session)", recKey, m.Session.Saved())
	m.rating = 0
	m.loadInputs()
}

func (m *Model) reset() {
	if err := m.Session.Reset(); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.flash = "Form reset"
	m.editingNotes = false
	m.rating = 0
	m.loadInputs()
}

func (m *Model) setErr(err error) {
	m.err = err
}
