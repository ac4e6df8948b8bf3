package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/navmarks/internal/exporter"
	"github.com/nikbrunner/navmarks/internal/fetch"
	"github.com/nikbrunner/navmarks/internal/logger"
	"github.com/nikbrunner/navmarks/internal/model"
)

const fetchTimeout = 10 * time.Second

var errEmptyURL = errors.New("URL can't be empty")

func newListCmd(a *app) *cobra.Command {
	var (
		category string
		query    string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List bookmarks, optionally filtered by category and search text",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := a.session.Filter(category, query)
			out := cmd.OutOrStdout()

			if asJSON {
				text, err := exporter.ToJSON(list)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, text)
				return nil
			}

			if len(list) == 0 {
				faint.Fprintln(out, "No bookmarks match.")
				return nil
			}
			for _, b := range list {
				printBookmark(out, b)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only bookmarks in this category (exact match)")
	cmd.Flags().StringVarP(&query, "search", "s", "", "Only bookmarks whose title, description or categories contain this text")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}

// printBookmark writes a bookmark as two lines: id and title, then URL,
// categories and description.
func printBookmark(w io.Writer, b model.Bookmark) {
	fmt.Fprintf(w, "%s  %s\n", faint.Sprint(b.ID), bold.Sprint(b.Title))
	line := "    " + cyan.Sprint(b.URL)
	if len(b.Categories) > 0 {
		line += "  [" + strings.Join(b.Categories, ", ") + "]"
	}
	if b.Desc != "" {
		line += "  " + faint.Sprint(b.Desc)
	}
	fmt.Fprintln(w, line)
}

type bookmarkFlags struct {
	title      string
	url        string
	desc       string
	categories []string
	icon       string
}

func (f *bookmarkFlags) register(cmd *cobra.Command, withURL bool) {
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "Title")
	cmd.Flags().StringVarP(&f.desc, "desc", "d", "", "Description")
	cmd.Flags().StringSliceVar(&f.categories, "category", nil, "Category (repeatable or comma-separated)")
	cmd.Flags().StringVar(&f.icon, "icon", "", "Icon URL")
	if withURL {
		cmd.Flags().StringVar(&f.url, "url", "", "URL")
	}
}

// changed returns Fields holding only the flags the user actually set.
func (f *bookmarkFlags) changed(cmd *cobra.Command) model.Fields {
	var fields model.Fields
	flags := cmd.Flags()
	if flags.Changed("title") {
		fields.Title = model.StringPtr(strings.TrimSpace(f.title))
	}
	if flags.Changed("url") {
		fields.URL = model.StringPtr(strings.TrimSpace(f.url))
	}
	if flags.Changed("desc") {
		fields.Desc = model.StringPtr(strings.TrimSpace(f.desc))
	}
	if flags.Changed("category") {
		fields.Categories = model.ParseCategories(strings.Join(f.categories, ","))
	}
	if flags.Changed("icon") {
		fields.Icon = model.StringPtr(strings.TrimSpace(f.icon))
	}
	return fields
}

func anyBookmarkFlag(cmd *cobra.Command) bool {
	for _, name := range []string{"title", "url", "desc", "category", "icon"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func newAddCmd(a *app) *cobra.Command {
	var (
		flags   bookmarkFlags
		noFetch bool
	)

	cmd := &cobra.Command{
		Use:   "add <url>",
		Short: "Add a bookmark",
		Long: "Add a bookmark. Title, description and icon that aren't given are read\n" +
			"from the page itself unless --no-fetch is set.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := strings.TrimSpace(args[0])
			if url == "" {
				return errEmptyURL
			}
			fields := flags.changed(cmd)
			fields.URL = &url

			if a.session.Store().HasBookmarkURL(url) {
				faint.Fprintf(cmd.ErrOrStderr(), "Note: %s is already bookmarked\n", url)
			}

			if !noFetch && (fields.Title == nil || fields.Desc == nil || fields.Icon == nil) {
				fillFromPage(cmd.Context(), a.log, &fields, url)
			}
			if fields.Title == nil || *fields.Title == "" {
				fields.Title = &url
			}

			b, err := a.session.Add(cmd.Context(), fields)
			if err != nil {
				return err
			}

			green.Fprintf(cmd.OutOrStdout(), "Added %s\n", b.Title)
			printBookmark(cmd.OutOrStdout(), b)
			return nil
		},
	}

	flags.register(cmd, false)
	cmd.Flags().BoolVar(&noFetch, "no-fetch", false, "Don't read title, description and icon from the page")
	return cmd
}

// fillFromPage sets the fields left nil from the page's metadata. Fetch
// failures are logged and otherwise ignored.
func fillFromPage(ctx context.Context, log logger.Logger, fields *model.Fields, url string) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	page, err := fetch.Metadata(ctx, nil, url)
	if err != nil {
		log.Warn("reading page metadata failed", logger.String("url", url), logger.Error(err))
		return
	}

	if fields.Title == nil && page.Title != "" {
		fields.Title = model.StringPtr(page.Title)
	}
	if fields.Desc == nil && page.Description != "" {
		fields.Desc = model.StringPtr(page.Description)
	}
	if fields.Icon == nil && page.Icon != "" {
		fields.Icon = model.StringPtr(page.Icon)
	}
}

func newEditCmd(a *app) *cobra.Command {
	var flags bookmarkFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a bookmark",
		Long: "Change the fields of a bookmark. Only the flags given are changed;\n" +
			"--category replaces the whole category list (pass --category \"\" to clear it).",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := flags.changed(cmd)
			if !anyBookmarkFlag(cmd) {
				return fmt.Errorf("nothing to change: pass at least one of --title, --url, --desc, --category, --icon")
			}
			if fields.URL != nil && *fields.URL == "" {
				return errEmptyURL
			}

			updated, err := a.session.Update(cmd.Context(), args[0], fields)
			if err != nil {
				return err
			}
			if !updated {
				return fmt.Errorf("%w: %s", errNotFound, args[0])
			}

			b, _ := a.session.Get(args[0])
			green.Fprintf(cmd.OutOrStdout(), "Updated %s\n", b.Title)
			printBookmark(cmd.OutOrStdout(), b)
			return nil
		},
	}

	flags.register(cmd, true)
	return cmd
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove bookmarks by id",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := a.session.RemoveAll(cmd.Context(), args)
			if err != nil {
				return err
			}
			if removed > 0 {
				green.Fprintf(cmd.OutOrStdout(), "Removed %d bookmark(s)\n", removed)
			}
			if removed < len(args) {
				return fmt.Errorf("%w: %d of %d ids unknown", errNotFound, len(args)-removed, len(args))
			}
			return nil
		},
	}
}

func newCategoriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "categories",
		Aliases: []string{"cats"},
		Short:   "List categories with their bookmark counts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			counts := a.session.CategoryCounts()
			if len(counts) == 0 {
				faint.Fprintln(out, "No categories yet.")
				return nil
			}
			for _, c := range counts {
				fmt.Fprintf(out, "%s %s\n", c.Name, faint.Sprintf("(%d)", c.Count))
			}
			return nil
		},
	}
}
