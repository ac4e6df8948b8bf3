package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nikbrunner/navmarks/internal/logger"
	"github.com/nikbrunner/navmarks/internal/model"
)

// ErrStorageWrite wraps every failure to persist the bookmark list.
var ErrStorageWrite = errors.New("storage write failed")

// Storage loads and saves the whole bookmark list through a Slot.
type Storage struct {
	slot Slot
	log  logger.Logger
}

// NewStorage creates a Storage on top of slot.
func NewStorage(slot Slot, log logger.Logger) *Storage {
	if log == nil {
		log = logger.Nop()
	}
	return &Storage{slot: slot, log: log}
}

// Slot returns the underlying slot.
func (s *Storage) Slot() Slot {
	return s.slot
}

// Load reads the bookmark list. An empty slot is seeded with the default
// bookmarks. Unreadable or corrupt content is logged and the defaults are
// returned, leaving the stored content untouched.
func (s *Storage) Load(ctx context.Context) []model.Bookmark {
	data, err := s.slot.Get(ctx)
	if err == nil && len(bytes.TrimSpace(data)) == 0 {
		err = ErrSlotEmpty
	}

	switch {
	case errors.Is(err, ErrSlotEmpty):
		defaults := DefaultBookmarks()
		if err := s.Save(ctx, defaults); err != nil {
			s.log.Warn("seeding default bookmarks failed", logger.Error(err))
		} else {
			s.log.Info("seeded default bookmarks", logger.Int("count", len(defaults)))
		}
		return defaults

	case err != nil:
		s.log.Warn("bookmark storage unavailable, using defaults", logger.Error(err))
		return DefaultBookmarks()
	}

	var bookmarks []model.Bookmark
	if err := json.Unmarshal(data, &bookmarks); err != nil {
		s.log.Warn("stored bookmarks are corrupt, using defaults", logger.Error(err))
		return DefaultBookmarks()
	}

	if bookmarks == nil {
		bookmarks = []model.Bookmark{}
	}
	for i := range bookmarks {
		if bookmarks[i].Categories == nil {
			bookmarks[i].Categories = []string{}
		}
	}

	s.log.Debug("loaded bookmarks", logger.Int("count", len(bookmarks)))
	return bookmarks
}

// Save serializes the whole list and overwrites the slot.
func (s *Storage) Save(ctx context.Context, bookmarks []model.Bookmark) error {
	if bookmarks == nil {
		bookmarks = []model.Bookmark{}
	}

	data, err := json.MarshalIndent(bookmarks, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrStorageWrite, err)
	}

	if err := s.slot.Set(ctx, data); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}
	return nil
}

// DefaultBookmarks returns the seed list with freshly generated IDs.
func DefaultBookmarks() []model.Bookmark {
	return []model.Bookmark{
		{
			ID:         model.GenerateID(),
			Title:      "Google",
			URL:        "https://www.google.com",
			Desc:       "搜索引擎",
			Categories: []string{"工具", "搜索"},
			Icon:       "https://www.google.com/favicon.ico",
		},
		{
			ID:         model.GenerateID(),
			Title:      "MDN Web Docs",
			URL:        "https://developer.mozilla.org",
			Desc:       "前端标准与文档",
			Categories: []string{"开发", "文档"},
			Icon:       "https://developer.mozilla.org/static/img/favicon144.png",
		},
		{
			ID:         model.GenerateID(),
			Title:      "GitHub",
			URL:        "https://github.com",
			Desc:       "代码托管平台",
			Categories: []string{"开发", "工具"},
			Icon:       "https://github.githubassets.com/favicons/favicon.png",
		},
	}
}
