package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/bmjump/internal/gateway"
	"github.com/nikbrunner/bmjump/internal/logging"
)

func addServe(topLevel *cobra.Command, o *Options) {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the gateway server that owns the bookmark store",
		Example: `
bmjump serve &
bmjump --remote
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := logging.InitWriter(os.Stderr, o.cfg.Log.Level); err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, o)
		},
	}

	topLevel.AddCommand(cmd)
}

func serve(ctx context.Context, o *Options) error {
	local, release, err := o.local()
	if err != nil {
		return err
	}
	defer release()

	ln, err := gateway.Listen(o.cfg.Socket)
	if err != nil {
		return err
	}
	defer os.Remove(o.cfg.Socket)

	logging.Info("gateway starting", "socket", o.cfg.Socket, "storage", o.cfg.Storage.Path)
	srv := gateway.NewServer(local, logging.WithPrefix("gateway"))
	return srv.Serve(ctx, ln)
}
