package tui

import (
	"context"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tennisoath/internal/engine"
	"tennisoath/internal/storage"
)

// ThemeStore persists the light/dark preference.
type ThemeStore interface {
	Get(ctx context.Context) (storage.Theme, error)
	Set(ctx context.Context, t storage.Theme) error
}

type Options struct {
	// ResetDelay keeps a signed checklist on screen before it is cleared.
	ResetDelay time.Duration
}

func RunBoard(ctx context.Context, tracker *engine.Tracker, themes ThemeStore, opts Options, out io.Writer) error {
	m := newBoardModel(ctx, tracker, themes, opts)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
