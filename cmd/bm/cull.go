package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/navmarks/internal/culler"
	"github.com/nikbrunner/navmarks/internal/logger"
)

func newCullCmd(a *app) *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:   "cull",
		Short: "Check every bookmark URL and report the dead ones",
		Long: "Check every bookmark URL. 404 and 410 responses count as dead,\n" +
			"unless the host is in cullExcludeDomains. Connection failures are\n" +
			"reported as unreachable and never deleted.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bookmarks := a.session.Bookmarks()
			if len(bookmarks) == 0 {
				faint.Fprintln(cmd.OutOrStdout(), "No bookmarks to check.")
				return nil
			}

			errOut := cmd.ErrOrStderr()
			start := time.Now()
			results := culler.CheckURLs(cmd.Context(), bookmarks, culler.Options{
				Concurrency:    a.cfg.CullConcurrency,
				Timeout:        a.cfg.CullTimeout,
				ExcludeDomains: a.cfg.CullExcludeDomains,
				Log:            a.log,
			}, func(completed, total int) {
				fmt.Fprintf(errOut, "\rChecking %d/%d", completed, total)
			})
			fmt.Fprintln(errOut)
			a.log.Info("cull finished",
				logger.Int("checked", len(results)),
				logger.Duration("elapsed", time.Since(start)))

			out := cmd.OutOrStdout()
			counts := culler.Count(results)
			fmt.Fprintf(out, "%s  %s  %s\n",
				green.Sprintf("%d healthy", counts[culler.Healthy]),
				red.Sprintf("%d dead", counts[culler.Dead]),
				faint.Sprintf("%d unreachable", counts[culler.Unreachable]))

			for _, r := range results {
				switch r.Status {
				case culler.Dead:
					fmt.Fprintf(out, "%s %s %s\n", red.Sprintf("%d", r.StatusCode), r.Bookmark.Title, cyan.Sprint(r.Bookmark.URL))
				case culler.Unreachable:
					fmt.Fprintf(out, "%s %s %s\n", faint.Sprint("--"), r.Bookmark.Title, faint.Sprintf("%s (%s)", r.Bookmark.URL, r.Error))
				}
			}

			dead := culler.FilterDead(results)
			if !remove || len(dead) == 0 {
				return nil
			}
			deadIDs := make([]string, len(dead))
			for i, r := range dead {
				deadIDs[i] = r.Bookmark.ID
			}
			removed, err := a.session.RemoveAll(cmd.Context(), deadIDs)
			if err != nil {
				return err
			}
			green.Fprintf(out, "Removed %d dead bookmark(s)\n", removed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&remove, "delete", false, "Remove the dead bookmarks")
	return cmd
}
