// Package commands wires bmjump's cobra command tree.
package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/bmjump/internal/config"
	"github.com/nikbrunner/bmjump/internal/gateway"
	"github.com/nikbrunner/bmjump/internal/logging"
	"github.com/nikbrunner/bmjump/internal/storage"
)

// Options holds the flags shared by every subcommand and the config they
// resolve to.
type Options struct {
	ConfigPath string
	Remote     bool
	Resident   bool

	cfg *config.Config
}

// New returns the root command. Without a subcommand it opens the overlay,
// prefilled with the joined arguments.
func New() *cobra.Command {
	o := &Options{}

	cmd := &cobra.Command{
		Use:   "bmjump [query]",
		Short: "Jump to a bookmark from an overlay in the current terminal.",
		Example: `
bmjump
bmjump golang docs
bmjump --resident --remote
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOverlay(cmd.Context(), o, args)
		},
	}

	cmd.PersistentFlags().StringVar(&o.ConfigPath, "config", "",
		"Config file (default ~/.config/bmjump/config.json).")
	cmd.PersistentFlags().BoolVar(&o.Remote, "remote", false,
		"Talk to a running `bmjump serve` instead of opening the store directly.")
	cmd.Flags().BoolVar(&o.Resident, "resident", false,
		"Keep running after the overlay is dismissed; ctrl+o shows it again.")

	AddCommands(cmd, o)
	return cmd
}

// AddCommands attaches the subcommands to topLevel.
func AddCommands(topLevel *cobra.Command, o *Options) {
	addServe(topLevel, o)
	addList(topLevel, o)
	addImport(topLevel, o)
	addExport(topLevel, o)
}

func (o *Options) load() error {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return err
	}
	o.cfg = cfg
	return nil
}

// logToFile sends logs to the configured file; the terminal belongs to the
// command's own output.
func (o *Options) logToFile() error {
	return logging.Init(o.cfg.Log.File, o.cfg.Log.Level)
}

func (o *Options) openStorage() (storage.Storage, func(), error) {
	s, err := storage.Open(o.cfg.Storage.Backend, o.cfg.Storage.Path)
	if err != nil {
		return nil, nil, err
	}
	return s, func() { closeQuietly(s) }, nil
}

// gateway returns the Client when --remote is set and an in-process Local
// gateway otherwise. The returned func releases it.
func (o *Options) gateway() (gateway.Gateway, func(), error) {
	if o.Remote {
		c := gateway.NewClient(o.cfg.Socket)
		return c, func() { closeQuietly(c) }, nil
	}
	return o.local()
}

func (o *Options) local() (*gateway.Local, func(), error) {
	s, release, err := o.openStorage()
	if err != nil {
		return nil, nil, err
	}
	local := gateway.NewLocal(gateway.LocalParams{
		Storage: s,
		Opener:  gateway.SystemOpener(o.cfg.OpenCommand),
	})
	return local, release, nil
}

func closeQuietly(v interface{}) {
	if c, ok := v.(io.Closer); ok {
		if err := c.Close(); err != nil {
			logging.Warn("close failed", "err", err)
		}
	}
}
