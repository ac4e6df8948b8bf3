// Package fetch reads a web page's title, description and icon so new
// bookmarks can be filled in from just a URL.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

const (
	maxBodySize    = 2 << 20
	defaultTimeout = 10 * time.Second
	userAgent      = "Mozilla/5.0 (compatible; navmarks/1.0)"
)

// Page is the metadata read from a page. Icon is absolute or empty.
type Page struct {
	Title       string
	Description string
	Icon        string
}

// Metadata fetches rawURL and extracts its metadata. A nil client uses a
// client with a 10 second timeout.
func Metadata(ctx context.Context, client *http.Client, rawURL string) (Page, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Page{}, fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Page{}, fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}

	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Page{}, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := client.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Page{}, fmt.Errorf("fetch %s: %s", rawURL, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return Page{}, fmt.Errorf("read %s: %w", rawURL, err)
	}

	// Relative icon links resolve against the URL after redirects
	base := u
	if resp.Request != nil && resp.Request.URL != nil {
		base = resp.Request.URL
	}

	return parse(body, base)
}

// parse extracts metadata from an HTML document served at base.
func parse(body []byte, base *url.URL) (Page, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return Page{}, fmt.Errorf("parse html: %w", err)
	}

	page := Page{
		Title: clean(doc.Find("title").First().Text()),
		Description: firstContent(doc,
			`meta[name="description"]`,
			`meta[property="og:description"]`,
			`meta[name="twitter:description"]`,
		),
	}
	if page.Title == "" {
		page.Title = firstContent(doc, `meta[property="og:title"]`)
	}

	if href, ok := doc.Find(`link[rel~="icon"]`).First().Attr("href"); ok {
		page.Icon = resolve(base, href)
	}

	if page.Title == "" || page.Description == "" || page.Icon == "" {
		fillFromReadability(&page, body, base)
	}

	return page, nil
}

// fillFromReadability fills empty fields from the readable article.
func fillFromReadability(page *Page, body []byte, base *url.URL) {
	article, err := readability.FromReader(bytes.NewReader(body), base)
	if err != nil {
		return
	}
	if page.Title == "" {
		page.Title = clean(article.Title)
	}
	if page.Description == "" {
		page.Description = clean(article.Excerpt)
	}
	if page.Icon == "" && article.Favicon != "" {
		page.Icon = resolve(base, article.Favicon)
	}
}

func firstContent(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if content, ok := doc.Find(sel).First().Attr("content"); ok {
			if c := clean(content); c != "" {
				return c
			}
		}
	}
	return ""
}

// resolve makes href absolute against base. Only http(s) results are kept.
func resolve(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	abs := base.ResolveReference(ref)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return ""
	}
	return abs.String()
}

// clean collapses runs of whitespace.
func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
