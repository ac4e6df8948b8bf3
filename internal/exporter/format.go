package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"github.com/nikbrunner/navmarks/internal/model"
)

// Format is an export file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatOPML Format = "opml"
	FormatHTML Format = "html"
)

// ParseFormat accepts json, opml or html (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatOPML, FormatHTML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want json, opml or html)", s)
	}
}

// Options configures Export.
type Options struct {
	OPML OPMLOptions
}

// Export renders the list in the given format.
func Export(bookmarks []model.Bookmark, format Format, opts Options) (string, error) {
	switch format {
	case FormatJSON:
		return ToJSON(bookmarks)
	case FormatOPML:
		return ToOPML(bookmarks, opts.OPML), nil
	case FormatHTML:
		return ExportHTML(bookmarks), nil
	default:
		return "", fmt.Errorf("unknown export format %q", format)
	}
}

// DefaultExportName is the base name used when none is configured.
const DefaultExportName = "bookmarks-export"

// FileName returns the export file name for name and format.
// Format: <slug(name)>-YYYY-MM-DD.<ext>, DefaultExportName when name has no slug.
func FileName(name string, format Format, now time.Time) string {
	base := slug.Make(name)
	if base == "" {
		base = DefaultExportName
	}
	return fmt.Sprintf("%s-%s.%s", base, now.Format("2006-01-02"), format)
}

// DefaultExportPath returns the default export file path in ~/Downloads.
func DefaultExportPath(name string, format Format) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Downloads", FileName(name, format, time.Now())), nil
}
