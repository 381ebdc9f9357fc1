package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/bmjump/internal/importer"
	"github.com/nikbrunner/bmjump/internal/logging"
)

func addImport(topLevel *cobra.Command, o *Options) {
	cmd := &cobra.Command{
		Use:   "import <file.html>",
		Short: "Merge a Netscape HTML bookmark export into the store",
		Example: `
bmjump import ~/Downloads/bookmarks.html
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.logToFile(); err != nil {
				return err
			}
			defer logging.Close()
			return importFile(o, cmd.OutOrStdout(), args[0])
		},
	}

	topLevel.AddCommand(cmd)
}

func importFile(o *Options, w io.Writer, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	folders, bookmarks, err := importer.ParseHTMLBookmarks(file)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
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

	added, skipped := store.ImportMerge(folders, bookmarks)
	if err := s.Save(store); err != nil {
		return fmt.Errorf("save bookmarks: %w", err)
	}

	logging.Info("imported bookmarks", "file", path, "added", added, "skipped", skipped)
	fmt.Fprintf(w, "Imported %d bookmarks, %d folders", added, len(folders))
	if skipped > 0 {
		fmt.Fprintf(w, " (%d duplicates skipped)", skipped)
	}
	fmt.Fprintln(w)
	return nil
}
