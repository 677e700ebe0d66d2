package root

import (
	"context"
	"log/slog"
	"time"

	"tennisoath/internal/config"
	"tennisoath/internal/engine"
	"tennisoath/internal/storage"
	"tennisoath/internal/ui"
)

// app carries what PersistentPreRunE resolved for the subcommands.
type app struct {
	configPath string
	dbOverride string

	cfg *config.Config
	log *slog.Logger
	// now is swapped in tests; nil means time.Now.
	now func() time.Time
}

type session struct {
	tracker *engine.Tracker
	themes  *storage.ThemeRepo
}

func (a *app) openKV(ctx context.Context) (storage.KV, error) {
	path, err := a.cfg.ResolveDBPath()
	if err != nil {
		return nil, err
	}
	a.log.Debug("opening storage", "engine", a.cfg.Storage.Engine, "path", path)
	return storage.NewByEngine(ctx, a.cfg.Storage.Engine, path)
}

// openSession loads the tracker and applies the stored theme to the styles.
func (a *app) openSession(ctx context.Context) (*session, func(), error) {
	kv, err := a.openKV(ctx)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = kv.Close()
	}

	tracker, err := engine.NewTracker(ctx, storage.NewRecordRepo(kv, a.log), a.log, a.now)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	themes := storage.NewThemeRepo(kv)
	theme, err := themes.Get(ctx)
	if err != nil {
		a.log.Warn("theme unavailable", "error", err)
	}
	ui.UseTheme(theme == storage.ThemeDark)

	return &session{tracker: tracker, themes: themes}, cleanup, nil
}
