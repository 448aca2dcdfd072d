package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/zulandar/hubscout/internal/scout"
	"github.com/zulandar/hubscout/internal/session"
)

var stepOrder = []session.Step{
	session.StepSetup,
	session.StepAuto,
	session.StepAutoResult,
	session.StepTeleop,
	session.StepEndgame,
	session.StepReview,
}

// View renders the current step.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")

	switch m.Session.Step() {
	case session.StepSetup:
		b.WriteString(m.viewSetup())
	case session.StepAuto:
		b.WriteString(m.viewAuto())
	case session.StepAutoResult:
		b.WriteString(m.viewAutoResult())
	case session.StepTeleop:
		b.WriteString(m.viewTeleop())
	case session.StepEndgame:
		b.WriteString(m.viewEndgame())
	case session.StepReview:
		b.WriteString(m.viewReview())
	}

	switch {
	case m.err != nil:
		b.WriteString("\n" + styleError.Render(m.err.Error()))
	case m.flash != "":
		b.WriteString("\n" + styleFlash.Render(m.flash))
	}
	b.WriteString("\n" + m.viewFooter())
	return b.String()
}

func (m Model) viewHeader() string {
	parts := make([]string, len(stepOrder))
	for i, s := range stepOrder {
		if s == m.Session.Step() {
			parts[i] = styleStepCurrent.Render(s.String())
		} else {
			parts[i] = styleStepOther.Render(s.String())
		}
	}
	return styleHeader.Render("hubscout") + " " + strings.Join(parts, styleStepOther.Render(" › "))
}

func row(label, value string) string {
	return styleLabel.Render(label) + styleValue.Render(value) + "\n"
}

func allianceLabel(a scout.Alliance) string {
	if a == scout.AllianceBlue {
		return styleAllianceBlue.Render(string(a))
	}
	return styleAllianceRed.Render(string(a))
}

func (m Model) viewSetup() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Match setup"))
	b.WriteString("\n")
	for i := 0; i < fieldCount; i++ {
		marker := "  "
		if i == m.focus {
			marker = styleSelected.Render(selectionIndicator) + " "
		}
		var value string
		if i == fieldAlliance {
			value = allianceLabel(m.Session.Record().Alliance)
		} else {
			value = m.inputs[i].View()
		}
		b.WriteString(marker + styleLabel.Render(fieldLabels[i]) + value + "\n")
	}
	return b.String()
}

func (m Model) viewAuto() string {
	r := m.Session.Record()
	return styleTitle.Render("Autonomous") + "\n" + row("Auto fuel", fmt.Sprint(r.AutoFuel))
}

func (m Model) viewAutoResult() string {
	r := m.Session.Record()
	var b strings.Builder
	b.WriteString(styleTitle.Render("Who scored more in auto?"))
	b.WriteString("\n")
	for i, res := range r.Comparison.Results() {
		line := fmt.Sprintf("%d  %s", i+1, res)
		if res == r.AutoResult {
			line = styleSelected.Render(selectionIndicator + " " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
	b.WriteString(row("Override", string(r.Override)))
	if rv, err := scout.ResolverFor(r); err == nil {
		plan := rv.Plan()
		names := make([]string, len(plan))
		for i, st := range plan {
			names[i] = string(st)[:1]
		}
		b.WriteString(row("Shift plan", strings.Join(names, " ")))
	}
	return b.String()
}

func (m Model) viewTeleop() string {
	r := m.Session.Record()
	seg := m.Session.Segment()
	var b strings.Builder
	b.WriteString(styleTitle.Render(fmt.Sprintf("Teleop: %s  (%d of %d)", seg.Label, m.Session.SegmentIndex()+1, len(r.Segments))))
	b.WriteString("\n")

	if fav, ok := seg.Favorable(); ok {
		b.WriteString(styleBannerActive.Render("HUB ACTIVE  fuel counts"))
		b.WriteString("\n\n")
		b.WriteString(row("Fuel", fmt.Sprint(fav.Fuel)))
		b.WriteString(row("Cycles", fmt.Sprint(fav.Cycles)))
		if m.Session.LastTransition().Reset && m.Session.LastTransition().From != scout.StatusUnknown {
			b.WriteString(styleError.Render("Status changed to Active: counters reset") + "\n")
		}
		return b.String()
	}

	un, _ := seg.Unfavorable()
	b.WriteString(styleBannerInactive.Render("HUB INACTIVE  fuel scores 0"))
	b.WriteString("\n\n")
	for i, beh := range scout.Behaviors {
		box := "[ ]"
		if un.Has(beh) {
			box = styleSelected.Render("[x]")
		}
		b.WriteString(fmt.Sprintf("%d %s %s\n", i+1, box, beh))
	}
	return b.String()
}

func (m Model) viewEndgame() string {
	r := m.Session.Record()
	var b strings.Builder
	b.WriteString(styleTitle.Render("End game"))
	b.WriteString("\n")
	b.WriteString(row("Climb", string(r.Climb)))
	b.WriteString(row("Scored, no climb", fmt.Sprint(r.ScoredNoClimb)))
	for i, name := range scout.RatingNames {
		v, _ := r.Ratings.Get(name)
		value := "-"
		if v > 0 {
			value = strings.Repeat("★", v)
		}
		label := name
		if i == m.rating {
			label = styleSelected.Render(selectionIndicator + name)
		}
		b.WriteString(styleLabel.Render(label) + value + "\n")
	}
	if m.editingNotes {
		b.WriteString(m.notes.View() + "\n")
	} else {
		b.WriteString(row("Notes", r.Notes))
	}
	return b.String()
}

func (m Model) viewReview() string {
	r := m.Session.Record()
	var b strings.Builder
	b.WriteString(styleTitle.Render("Review"))
	b.WriteString("\n")
	b.WriteString(row("Event", r.Event))
	b.WriteString(row("Match", r.Match))
	b.WriteString(styleLabel.Render("Team") + styleValue.Render(r.Team) + " " + allianceLabel(r.Alliance) + "\n")
	b.WriteString(row("Auto", fmt.Sprintf("%d fuel, %s", r.AutoFuel, r.AutoResult)))
	for _, seg := range r.Segments {
		snap := seg.Snapshot()
		var detail string
		switch snap.Status {
		case scout.StatusActive:
			detail = fmt.Sprintf("Active  fuel %d, cycles %d", snap.Fuel, snap.Cycles)
		case scout.StatusInactive:
			names := make([]string, len(snap.Behaviors))
			for i, beh := range snap.Behaviors {
				names[i] = string(beh)
			}
			detail = "Inactive  " + strings.Join(names, ", ")
		default:
			detail = "not visited"
		}
		b.WriteString(row(snap.Label, detail))
	}
	b.WriteString(row("Climb", string(r.Climb)))
	return b.String()
}

func (m Model) viewFooter() string {
	var bindings []key.Binding
	k := m.Keys
	switch m.Session.Step() {
	case session.StepSetup:
		bindings = []key.Binding{k.NextField, k.Toggle, k.Reset, k.ForceQuit}
	case session.StepAuto:
		bindings = []key.Binding{k.Inc, k.Dec, k.Next, k.Prev}
	case session.StepAutoResult:
		bindings = []key.Binding{k.Override, k.Next, k.Prev}
	case session.StepTeleop:
		bindings = []key.Binding{k.Inc, k.Dec, k.IncCycles, k.DecCycles, k.First, k.Next, k.Prev, k.Endgame, k.Review}
	case session.StepEndgame:
		bindings = []key.Binding{k.Climb, k.NoClimb, k.Rating, k.Notes, k.Review, k.Prev}
	case session.StepReview:
		bindings = []key.Binding{k.Save, k.Prev, k.Reset, k.Quit}
	}
	parts := make([]string, 0, len(bindings))
	for _, bnd := range bindings {
		h := bnd.Help()
		parts = append(parts, styleFooterKey.Render(h.Key)+" "+h.Desc)
	}
	return styleFooter.Render(strings.Join(parts, "  "))
}
