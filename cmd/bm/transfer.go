package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/navmarks/internal/exporter"
	"github.com/nikbrunner/navmarks/internal/session"
)

func newExportCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export [path|-]",
		Short: "Export bookmarks as JSON, OPML or Netscape HTML",
		Long: "Export all bookmarks. Without a path the file goes to ~/Downloads as\n" +
			"<exportName>-YYYY-MM-DD.<format>. Use - for stdout.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := exporter.ParseFormat(format)
			if err != nil {
				return err
			}

			text, err := a.session.Export(f, exporter.Options{
				OPML: exporter.OPMLOptions{Title: a.cfg.OPMLTitle},
			})
			if err != nil {
				return err
			}

			var path string
			if len(args) == 1 {
				path = args[0]
			}
			if path == "-" {
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			}
			if path == "" {
				if path, err = exporter.DefaultExportPath(a.cfg.ExportName, f); err != nil {
					return err
				}
			}

			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(text+"\n"), 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}

			green.Fprintf(cmd.OutOrStdout(), "Exported %d bookmark(s) to %s\n", len(a.session.Bookmarks()), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(exporter.FormatJSON), "Export format: json, opml or html")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Merge bookmarks from a JSON array or a browser HTML export",
		Long: "Merge bookmarks from a file. Bookmarks whose URL is already saved are\n" +
			"skipped. Browser exports (.html) turn folders into categories.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			var res session.ImportResult
			if isHTML(args[0], data) {
				res, err = a.session.ImportHTML(cmd.Context(), bytes.NewReader(data))
			} else {
				res, err = a.session.ImportJSON(cmd.Context(), data)
			}
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}

			green.Fprintf(cmd.OutOrStdout(), "Imported %d bookmark(s)", res.Added)
			faint.Fprintf(cmd.OutOrStdout(), " (%d skipped)\n", res.Skipped)
			return nil
		},
	}
}

// isHTML picks the importer by file extension, falling back to sniffing
// for a leading tag.
func isHTML(path string, data []byte) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	case ".json":
		return false
	}
	return bytes.HasPrefix(bytes.TrimSpace(data), []byte("<"))
}
