package importer_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/nikbrunner/navmarks/internal/exporter"
	"github.com/nikbrunner/navmarks/internal/importer"
	"github.com/nikbrunner/navmarks/internal/model"
)

func TestFromJSON_FormatErrors(t *testing.T) {
	inputs := []string{
		"not an array",
		"{}",
		`"string"`,
		"42",
		"null",
		"[1, 2",
		"",
	}

	for _, input := range inputs {
		_, err := importer.FromJSON([]byte(input))
		if err == nil {
			t.Errorf("FromJSON(%q): expected error", input)
			continue
		}
		if !errors.Is(err, importer.ErrImportFormat) {
			t.Errorf("FromJSON(%q): expected ErrImportFormat, got %v", input, err)
		}
		var fe *importer.FormatError
		if !errors.As(err, &fe) {
			t.Errorf("FromJSON(%q): expected *FormatError, got %T", input, err)
		}
	}
}

func TestFromJSON_EmptyArray(t *testing.T) {
	got, err := importer.FromJSON([]byte("[]"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no bookmarks, got %d", len(got))
	}
}

func TestFromJSON_Normalization(t *testing.T) {
	input := `[
		{"id": "keep-me-not", "title": "Full", "url": "https://full.com", "desc": "d", "categories": ["a", "b"], "icon": "https://full.com/i.png"},
		{"name": "Named", "xmlUrl": "https://named.com", "tags": "x, y ,,z"},
		{"title": "", "name": "", "url": ""},
		{"title": 5, "url": ["no"], "categories": "not an array", "tags": ["t1", 2, "t2"]},
		{"title": "Both", "name": "Ignored", "url": "https://both.com", "xmlUrl": "https://ignored.com", "categories": [], "tags": "ignored"},
		"not an object",
		null
	]`

	got, err := importer.FromJSON([]byte(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("expected 5 bookmarks, got %d", len(got))
	}

	tests := []struct {
		title      string
		url        string
		desc       string
		categories []string
		icon       string
	}{
		{"Full", "https://full.com", "d", []string{"a", "b"}, "https://full.com/i.png"},
		{"Named", "https://named.com", "", []string{"x", "y", "z"}, ""},
		{importer.UntitledTitle, "", "", []string{}, ""},
		{importer.UntitledTitle, "", "", []string{"t1", "t2"}, ""},
		{"Both", "https://both.com", "", []string{}, ""},
	}

	for i, tt := range tests {
		b := got[i]
		if b.Title != tt.title || b.URL != tt.url || b.Desc != tt.desc || b.Icon != tt.icon {
			t.Errorf("item %d: got %+v", i, b)
		}
		if !reflect.DeepEqual(b.Categories, tt.categories) {
			t.Errorf("item %d: categories = %v, want %v", i, b.Categories, tt.categories)
		}
	}

	if got[0].ID == "keep-me-not" || got[0].ID == "" {
		t.Errorf("expected fresh id, got %q", got[0].ID)
	}
}

func TestFromJSON_FreshIDs(t *testing.T) {
	got, err := importer.FromJSON([]byte(`[{"id":"same","url":"https://a.com"},{"id":"same","url":"https://b.com"}]`))
	if err != nil {
		t.Fatal(err)
	}
	if got[0].ID == got[1].ID {
		t.Error("expected distinct ids")
	}
}

func TestFromJSON_ExportRoundTrip(t *testing.T) {
	list := []model.Bookmark{
		{ID: "1", Title: "Google", URL: "https://www.google.com", Desc: "搜索引擎", Categories: []string{"工具", "搜索"}, Icon: "https://www.google.com/favicon.ico"},
		{ID: "2", Title: "A&B <x>", URL: "https://a.com/?q=1&r=2", Desc: "", Categories: []string{}, Icon: ""},
	}

	out, err := exporter.ToJSON(list)
	if err != nil {
		t.Fatal(err)
	}

	got, err := importer.FromJSON([]byte(out))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(list) {
		t.Fatalf("expected %d bookmarks, got %d", len(list), len(got))
	}

	for i := range list {
		want := list[i]
		want.ID = got[i].ID // ids are regenerated
		if !reflect.DeepEqual(got[i], want) {
			t.Errorf("item %d: got %+v, want %+v", i, got[i], want)
		}
	}
}

func TestImportScenario_DuplicateURLSkipped(t *testing.T) {
	store := model.NewStore(model.Bookmark{ID: "x", Title: "X", URL: "https://x.com", Categories: []string{}})

	imported, err := importer.FromJSON([]byte(`[{"title":"X","url":"https://x.com"},{"title":"Y","url":"https://y.com"}]`))
	if err != nil {
		t.Fatal(err)
	}

	added, _ := store.ImportMerge(imported)
	if added != 1 {
		t.Errorf("expected addedCount 1, got %d", added)
	}
	if len(store.Bookmarks) != 2 {
		t.Fatalf("expected 2 bookmarks, got %d", len(store.Bookmarks))
	}
	if store.Bookmarks[0].URL != "https://y.com" || store.Bookmarks[0].Title != "Y" {
		t.Errorf("expected y.com prepended, got %+v", store.Bookmarks[0])
	}
}
