// Package session owns the in-memory bookmark list and keeps it in step
// with storage. Every mutation that changes the list is saved before it
// returns; when the save fails the in-memory list is rolled back.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/nikbrunner/navmarks/internal/exporter"
	"github.com/nikbrunner/navmarks/internal/importer"
	"github.com/nikbrunner/navmarks/internal/logger"
	"github.com/nikbrunner/navmarks/internal/model"
	"github.com/nikbrunner/navmarks/internal/search"
)

// ErrNotInitialized is returned by operations called before Init.
var ErrNotInitialized = errors.New("session not initialized")

// Persister loads and saves the whole list. *storage.Storage satisfies it.
type Persister interface {
	Load(ctx context.Context) []model.Bookmark
	Save(ctx context.Context, bookmarks []model.Bookmark) error
}

// ImportResult reports what an import did.
type ImportResult struct {
	Added   int
	Skipped int
}

// Session is the single writer of the bookmark list.
type Session struct {
	persister Persister
	log       logger.Logger
	store     *model.Store
}

// New creates a session. It does no I/O; call Init before anything else.
func New(persister Persister, log logger.Logger) *Session {
	if log == nil {
		log = logger.Nop()
	}
	return &Session{persister: persister, log: log}
}

// Init loads the list, seeding storage with the defaults when it is empty.
// Calling Init again reloads from storage.
func (s *Session) Init(ctx context.Context) {
	s.store = model.NewStore(s.persister.Load(ctx)...)
	s.log.Debug("session initialized", logger.Int("count", len(s.store.Bookmarks)))
}

// Initialized reports whether Init has run.
func (s *Session) Initialized() bool {
	return s.store != nil
}

// Store returns the live store, nil before Init. Callers must not mutate it
// directly; use the session operations so changes are saved.
func (s *Session) Store() *model.Store {
	return s.store
}

// Bookmarks returns a copy of the current list.
func (s *Session) Bookmarks() []model.Bookmark {
	if s.store == nil {
		return nil
	}
	return s.store.Snapshot()
}

// Get returns the bookmark with id.
func (s *Session) Get(id string) (model.Bookmark, bool) {
	if s.store == nil {
		return model.Bookmark{}, false
	}
	if b := s.store.GetBookmarkByID(id); b != nil {
		return *b, true
	}
	return model.Bookmark{}, false
}

// Categories returns the sorted, de-duplicated category names.
func (s *Session) Categories() []string {
	if s.store == nil {
		return nil
	}
	return s.store.Categories()
}

// CategoryCounts returns every category with its bookmark count.
func (s *Session) CategoryCounts() []model.CategoryCount {
	if s.store == nil {
		return nil
	}
	return s.store.CategoryCounts()
}

// Filter applies the category and search filters to the current list.
func (s *Session) Filter(category, query string) []model.Bookmark {
	if s.store == nil {
		return nil
	}
	return search.Filter(s.store.Bookmarks, category, query)
}

// Add creates a bookmark from fields, prepends it and saves.
func (s *Session) Add(ctx context.Context, fields model.Fields) (model.Bookmark, error) {
	if s.store == nil {
		return model.Bookmark{}, ErrNotInitialized
	}

	before := s.store.Snapshot()
	b, err := s.store.Add(fields)
	if err != nil {
		return model.Bookmark{}, err
	}
	if err := s.commit(ctx, before); err != nil {
		return model.Bookmark{}, err
	}

	s.log.Info("bookmark added", logger.String("id", b.ID), logger.String("url", b.URL))
	return b, nil
}

// Update merges fields into the bookmark with id and saves. An unknown id
// reports false and saves nothing.
func (s *Session) Update(ctx context.Context, id string, fields model.Fields) (bool, error) {
	if s.store == nil {
		return false, ErrNotInitialized
	}

	before := s.store.Snapshot()
	if !s.store.Update(id, fields) {
		s.log.Debug("update of unknown bookmark ignored", logger.String("id", id))
		return false, nil
	}
	if err := s.commit(ctx, before); err != nil {
		return false, err
	}

	s.log.Info("bookmark updated", logger.String("id", id))
	return true, nil
}

// Remove deletes the bookmark with id and saves. An unknown id reports
// false and saves nothing.
func (s *Session) Remove(ctx context.Context, id string) (bool, error) {
	removed, err := s.RemoveAll(ctx, []string{id})
	return removed == 1, err
}

// RemoveAll deletes every bookmark whose id is listed and saves once.
// It returns how many were removed.
func (s *Session) RemoveAll(ctx context.Context, ids []string) (int, error) {
	if s.store == nil {
		return 0, ErrNotInitialized
	}

	before := s.store.Snapshot()
	removed := 0
	for _, id := range ids {
		if s.store.Remove(id) {
			removed++
		}
	}
	if removed == 0 {
		s.log.Debug("remove matched no bookmarks", logger.Int("requested", len(ids)))
		return 0, nil
	}
	if err := s.commit(ctx, before); err != nil {
		return 0, err
	}

	s.log.Info("bookmarks removed", logger.Int("count", removed))
	return removed, nil
}

// ImportJSON parses data as a JSON bookmark array and merges it into the
// list. A parse error leaves the list and storage untouched.
func (s *Session) ImportJSON(ctx context.Context, data []byte) (ImportResult, error) {
	if s.store == nil {
		return ImportResult{}, ErrNotInitialized
	}

	imported, err := importer.FromJSON(data)
	if err != nil {
		return ImportResult{}, err
	}
	return s.Import(ctx, imported)
}

// ImportHTML parses r as a Netscape bookmark file and merges it into the list.
func (s *Session) ImportHTML(ctx context.Context, r io.Reader) (ImportResult, error) {
	if s.store == nil {
		return ImportResult{}, ErrNotInitialized
	}

	imported, err := importer.ParseHTMLBookmarks(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("parse bookmark html: %w", err)
	}
	return s.Import(ctx, imported)
}

// Import merges already parsed bookmarks: items with an empty or known URL
// are skipped, the rest are prepended in order. Saves only when something
// was added.
func (s *Session) Import(ctx context.Context, imported []model.Bookmark) (ImportResult, error) {
	if s.store == nil {
		return ImportResult{}, ErrNotInitialized
	}

	before := s.store.Snapshot()
	added, skipped := s.store.ImportMerge(imported)
	result := ImportResult{Added: added, Skipped: skipped}
	if added == 0 {
		s.log.Info("import added nothing", logger.Int("skipped", skipped))
		return result, nil
	}
	if err := s.commit(ctx, before); err != nil {
		return ImportResult{}, err
	}

	s.log.Info("bookmarks imported", logger.Int("added", added), logger.Int("skipped", skipped))
	return result, nil
}

// Export renders the current list in format.
func (s *Session) Export(format exporter.Format, opts exporter.Options) (string, error) {
	if s.store == nil {
		return "", ErrNotInitialized
	}
	return exporter.Export(s.store.Bookmarks, format, opts)
}

// commit saves the list, restoring before when the save fails.
func (s *Session) commit(ctx context.Context, before []model.Bookmark) error {
	if err := s.persister.Save(ctx, s.store.Bookmarks); err != nil {
		s.store.Bookmarks = before
		s.log.Error("saving bookmarks failed", logger.Error(err))
		return err
	}
	return nil
}
