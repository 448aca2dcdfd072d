package main

import (
	"errors"
	"testing"

	"github.com/zulandar/hubscout/internal/config"
	"github.com/zulandar/hubscout/internal/logging"
	"github.com/zulandar/hubscout/internal/scout"
)

func TestScoutCmd_RequiresTerminal(t *testing.T) {
	orig := isTerminal
	isTerminal = func() bool { return false }
	defer func() { isTerminal = orig }()

	_, err := runCmd(t, "", "scout", "--config", writeTestConfig(t))
	if !errors.Is(err, errNotTerminal) {
		t.Errorf("error = %v, want errNotTerminal", err)
	}
}

func TestSessionOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Defaults.Event = "2026txhou"
	cfg.Defaults.Scout = "Sam"
	cfg.Layout = "terminal"
	cfg.Comparison = "side_label"
	e := &env{cfg: cfg, log: logging.Discard()}

	tests := []struct {
		name                   string
		event, scoutName, ally string
		wantEvent, wantScout   string
		wantAlliance           scout.Alliance
	}{
		{"config defaults", "", "", "", "2026txhou", "Sam", scout.AllianceRed},
		{"flags override", "2026casj", "Alex", "blue", "2026casj", "Alex", scout.AllianceBlue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := sessionOptions(e, tt.event, tt.scoutName, tt.ally)
			if err != nil {
				t.Fatalf("sessionOptions: %v", err)
			}
			if opts.Event != tt.wantEvent {
				t.Errorf("Event = %q, want %q", opts.Event, tt.wantEvent)
			}
			if opts.Scout != tt.wantScout {
				t.Errorf("Scout = %q, want %q", opts.Scout, tt.wantScout)
			}
			if opts.Alliance != tt.wantAlliance {
				t.Errorf("Alliance = %q, want %q", opts.Alliance, tt.wantAlliance)
			}
			if opts.Layout != scout.LayoutTerminal {
				t.Errorf("Layout = %q, want %q", opts.Layout, scout.LayoutTerminal)
			}
			if opts.Comparison != scout.ComparisonSideLabel {
				t.Errorf("Comparison = %q, want %q", opts.Comparison, scout.ComparisonSideLabel)
			}
			if opts.Store == nil {
				t.Error("Store is nil")
			}
		})
	}
}

func TestSessionOptions_BadAlliance(t *testing.T) {
	e := &env{cfg: config.Default(), log: logging.Discard()}
	if _, err := sessionOptions(e, "", "", "Green"); err == nil {
		t.Error("expected error for invalid alliance")
	}
}
