package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/bmjump/internal/logging"
	"github.com/nikbrunner/bmjump/internal/model"
	"github.com/nikbrunner/bmjump/internal/search"
)

func addList(topLevel *cobra.Command, o *Options) {
	cmd := &cobra.Command{
		Use:   "list [query]",
		Short: "Print the bookmarks matching query without opening the overlay",
		Example: `
bmjump list
bmjump list github
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.logToFile(); err != nil {
				return err
			}
			defer logging.Close()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return list(ctx, o, cmd.OutOrStdout(), strings.Join(args, " "))
		},
	}

	topLevel.AddCommand(cmd)
}

func list(ctx context.Context, o *Options, w io.Writer, query string) error {
	gw, release, err := o.gateway()
	if err != nil {
		return err
	}
	defer release()

	snapshot, err := gw.List(ctx)
	if err != nil {
		return fmt.Errorf("list bookmarks: %w", err)
	}

	results := snapshot
	if strings.TrimSpace(query) != "" {
		results = search.Filter(snapshot, query)
	}

	printBookmarks(w, results, len(snapshot))
	return nil
}

func printBookmarks(w io.Writer, bookmarks []model.Bookmark, total int) {
	faint := color.New(color.Faint)
	if len(bookmarks) == 0 {
		_, _ = faint.Fprintf(w, "No matches in %d bookmarks\n", total)
		return
	}

	bold := color.New(color.Bold)
	link := color.New(color.FgCyan)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.AddRow(bold.Sprint("#"), bold.Sprint("Title"), bold.Sprint("URL"))
	for i, b := range bookmarks {
		tbl.AddRow(faint.Sprint(i+1), b.Title, link.Sprint(b.URL))
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(w, tbl)
	_, _ = faint.Fprintf(w, "%d of %d\n", len(bookmarks), total)
}
