package tui

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zulandar/hubscout/internal/session"
)

// NewProgram creates a bubbletea program for s on the alternate screen.
func NewProgram(ctx context.Context, s *session.Session, log *slog.Logger, opts ...tea.ProgramOption) *tea.Program {
	allOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	}
	allOpts = append(allOpts, opts...)
	return tea.NewProgram(NewModel(ctx, s, log), allOpts...)
}

// Run runs the wizard until the operator quits.
func Run(ctx context.Context, s *session.Session, log *slog.Logger, opts ...tea.ProgramOption) error {
	if _, err := NewProgram(ctx, s, log, opts...).Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
