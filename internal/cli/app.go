package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/afrotie/ethio/internal/catalog"
	"github.com/afrotie/ethio/internal/config"
	"github.com/afrotie/ethio/internal/emoji"
	"github.com/afrotie/ethio/internal/logger"
	"github.com/afrotie/ethio/internal/session"
	"github.com/afrotie/ethio/internal/storage"
	"github.com/afrotie/ethio/internal/ui"
)

// app bundles what every command needs: configuration, logging, the durable
// store and a session over the catalog
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	store   *storage.Store
	catalog *catalog.Catalog
	sess    *session.Session

	closers []io.Closer
}

type appOptions struct {
	// logToFile sends log lines to the log file instead of stderr; the TUI
	// owns the terminal
	logToFile bool
	// persistSaved forces a durable saved set regardless of configuration
	persistSaved bool
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.NewLoader().LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if verbose {
		cfg.Log.Verbose = true
	}
	if noEmoji {
		cfg.UI.NoEmoji = true
	}
	emoji.SetEmojiDisabled(cfg.UI.NoEmoji)
	ui.ConfigureColor(cfg.UI.ColorMode, noColor)
	return cfg, nil
}

func newApp(opts appOptions) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}
	if err := a.openLogger(opts.logToFile); err != nil {
		return nil, err
	}

	store, err := storage.OpenStore(cfg.DatabasePath())
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	a.store = store
	a.closers = append(a.closers, store)

	a.catalog = catalog.Default()
	if path := cfg.CatalogPath(); path != "" {
		c, err := catalog.Load(path)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.catalog = c
	}

	saved := session.NewSavedSet()
	if cfg.Storage.PersistSaved || opts.persistSaved {
		saved, err = session.NewPersistentSavedSet(store)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to load saved listings: %w", err)
		}
	}

	theme := session.NewTheme(store, ui.ThemeHint(cfg.UI.ThemeHint), ui.ApplyDarkBackground)
	a.sess = session.New(a.catalog, saved, theme)

	a.log.DebugWithFields("session ready", []logger.Field{
		logger.F("db", cfg.DatabasePath()),
		logger.F("theme", theme.Name()),
		logger.Count(len(a.catalog.Listings)),
	})
	return a, nil
}

func (a *app) openLogger(toFile bool) error {
	checker := func() bool { return a.cfg.Log.Verbose }
	if !toFile {
		a.log = logger.NewWithWriter("cli", &verboseFunc{checker}, os.Stderr, logger.FormatConsole)
		return nil
	}

	f, err := logger.OpenFile(a.cfg.LogPath())
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	a.closers = append(a.closers, f)
	a.log = logger.NewWithWriter("ethio", &verboseFunc{checker}, f, logger.FormatLogfmt)
	return nil
}

// Close releases everything the app opened, newest first
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && isVerbose() {
			fmt.Fprintf(os.Stderr, "Warning: failed to close resource: %v\n", err)
		}
	}
	a.closers = nil
}

type verboseFunc struct {
	fn func() bool
}

func (v *verboseFunc) IsVerbose() bool {
	return v.fn()
}
