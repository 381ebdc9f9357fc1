package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/bmjump/internal/exporter"
	"github.com/nikbrunner/bmjump/internal/logging"
)

func addExport(topLevel *cobra.Command, o *Options) {
	cmd := &cobra.Command{
		Use:   "export [path]",
		Short: "Write the store as a Netscape HTML bookmark file",
		Example: `
bmjump export
bmjump export ~/bookmarks.html
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.logToFile(); err != nil {
				return err
			}
			defer logging.Close()

			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return exportFile(o, cmd.OutOrStdout(), path)
		},
	}

	topLevel.AddCommand(cmd)
}

func exportFile(o *Options, w io.Writer, path string) error {
	if path == "" {
		var err error
		path, err = exporter.DefaultExportPath()
		if err != nil {
			return fmt.Errorf("default export path: %w", err)
		}
	}

	s, release, err := o.openStorage()
	if err != nil {
		return err
	}
	defer release()

	store, err := s.Load()
	if err != nil {
		return fmt.Errorf("load bookmarks: %w", err)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := exporter.WriteHTML(out, store); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return err
	}

	logging.Info("exported bookmarks", "file", path, "bookmarks", len(store.Bookmarks))
	fmt.Fprintf(w, "Exported %d bookmarks, %d folders to %s\n",
		len(store.Bookmarks), len(store.Folders), path)
	return nil
}
