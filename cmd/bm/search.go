package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/navmarks/internal/picker"
	"github.com/nikbrunner/navmarks/internal/search"
	"github.com/nikbrunner/navmarks/internal/tui"
)

func newSearchCmd(a *app) *cobra.Command {
	var printOnly bool

	cmd := &cobra.Command{
		Use:   "search <query>...",
		Short: "Fuzzy-find a bookmark by title and open it",
		Long: "Fuzzy-find bookmarks by title. A single match is opened right away;\n" +
			"several matches open a picker where Enter opens and y copies the URL.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			bookmarks := a.session.Bookmarks()
			results := search.FuzzySearchBookmarks(bookmarks, query)
			out := cmd.OutOrStdout()

			if len(results) == 0 {
				faint.Fprintf(out, "No bookmarks found for %q\n", query)
				return nil
			}

			if printOnly {
				for _, r := range results {
					printBookmark(out, *r.Bookmark)
				}
				return nil
			}

			if len(results) == 1 {
				return a.open(cmd, results[0].Bookmark.URL)
			}

			p := tea.NewProgram(picker.New(results, query), tea.WithContext(cmd.Context()))
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("picker: %w", err)
			}

			chosen := final.(picker.Picker)
			b := chosen.SelectedBookmark()
			if chosen.Cancelled() || b == nil {
				return nil
			}

			switch chosen.Action() {
			case picker.ActionYank:
				if err := clipboard.WriteAll(b.URL); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				green.Fprintf(out, "Copied %s\n", b.URL)
			case picker.ActionOpen:
				return a.open(cmd, b.URL)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&printOnly, "print", "p", false, "Print the matches instead of opening one")
	return cmd
}

func (a *app) open(cmd *cobra.Command, url string) error {
	if err := a.openURL(url); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	faint.Fprintf(cmd.OutOrStdout(), "Opened %s\n", url)
	return nil
}

func runTUI(cmd *cobra.Command, a *app) error {
	browser := tui.NewApp(tui.AppParams{
		Session: a.session,
		Context: cmd.Context(),
		OpenURL: a.openURL,
	})

	p := tea.NewProgram(browser, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
