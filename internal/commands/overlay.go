package commands

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/bmjump/internal/logging"
	"github.com/nikbrunner/bmjump/internal/overlay"
	"github.com/nikbrunner/bmjump/internal/tui"
	"github.com/nikbrunner/bmjump/internal/tui/layout"
)

func runOverlay(ctx context.Context, o *Options, args []string) error {
	if err := o.logToFile(); err != nil {
		return err
	}
	defer logging.Close()

	gw, release, err := o.gateway()
	if err != nil {
		return err
	}
	defer release()

	if ctx == nil {
		ctx = context.Background()
	}
	snapshot, listErr := gw.List(ctx)
	if listErr != nil {
		logging.Error("initial list failed", "remote", o.Remote, "err", listErr)
	}

	cfg := layout.DefaultConfig()
	cfg.Box.WidthPercent = o.cfg.UI.WidthPercent
	cfg.Box.TopPercent = o.cfg.UI.TopPercent

	app := tui.NewApp(tui.AppParams{
		Gateway:  gw,
		Snapshot: snapshot,
		Query:    strings.Join(args, " "),
		Resident: o.Resident,
		Layout:   &cfg,
	})
	if listErr != nil {
		app.Session().Notify(overlay.NoticeError, "Could not load bookmarks: "+listErr.Error())
	}

	logging.Info("overlay started", "resident", o.Resident, "remote", o.Remote, "bookmarks", len(snapshot))
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}
