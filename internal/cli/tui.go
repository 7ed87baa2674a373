package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/afrotie/ethio/internal/assist"
	"github.com/afrotie/ethio/internal/imaging"
	"github.com/afrotie/ethio/internal/logger"
	"github.com/afrotie/ethio/internal/netcheck"
	"github.com/afrotie/ethio/internal/session"
	"github.com/afrotie/ethio/internal/ui"
)

// runTUI opens the interactive client, or prints the browse summary when
// stdin or stdout is not a terminal
func runTUI(cmd *cobra.Command, args []string) error {
	if !isInteractive() {
		return runBrowse(cmd, args)
	}

	a, err := newApp(appOptions{logToFile: true})
	if err != nil {
		return err
	}
	defer a.Close()

	describer, err := assist.NewFromConfig(a.cfg.AI, a.log)
	if err != nil {
		return fmt.Errorf("failed to set up the description assistant: %w", err)
	}
	defer func() {
		if err := describer.Close(); err != nil {
			a.log.Warn("closing assistant: %v", err)
		}
	}()

	model := ui.New(ui.Options{
		Session:      a.sess,
		Splash:       session.NewSplash(splashTiming(a)),
		Describer:    describer,
		Photos:       imaging.NewRegistry(a.cfg.Storage.ThumbnailSize),
		Checker:      newChecker(a),
		Logger:       a.log,
		LoadingDelay: a.cfg.UI.LoadingDelay,
		CatalogPath:  a.cfg.CatalogPath(),
		WatchCatalog: a.cfg.Catalog.Watch,
	})

	a.log.InfoWithFields("starting interactive client", []logger.Field{
		logger.F("assistant", describer.Configured()),
		logger.F("offline", offline),
	})
	if err := ui.Run(model); err != nil {
		return fmt.Errorf("interactive client failed: %w", err)
	}
	return nil
}

func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func splashTiming(a *app) session.SplashTiming {
	t := session.DefaultSplashTiming()
	s := a.cfg.Splash
	if s.Step > 0 {
		t.Step = s.Step
	}
	if s.TickInterval > 0 {
		t.TickInterval = s.TickInterval
	}
	if s.HandoffDelay > 0 {
		t.HandoffDelay = s.HandoffDelay
	}
	if s.RetryDelay > 0 {
		t.RetryDelay = s.RetryDelay
	}
	return t
}

func newChecker(a *app) netcheck.Checker {
	if offline {
		return netcheck.Static(false)
	}
	return netcheck.NewProber(a.cfg.Splash.ProbeAddress, a.cfg.Splash.ProbeTimeout, a.log)
}
