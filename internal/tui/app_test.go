package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/user/mindvault/internal/analyzer"
	"github.com/user/mindvault/internal/config"
	"github.com/user/mindvault/internal/storage"
	"github.com/user/mindvault/internal/vault"
)

func testModel(t *testing.T) model {
	t.Helper()
	cfg := &config.Config{DataDir: t.TempDir()}
	mem := &storage.Memory{}
	mem.Preload([]vault.Resource{
		vault.Normalize(vault.Resource{Title: "Go talk", Type: vault.TypeVideo, Tags: []string{"go"}}),
		vault.Normalize(vault.Resource{Title: "React article", Type: vault.TypeArticle, Tags: []string{"react"}}),
	})
	store := vault.Open(mem, nil)
	return initialModel(cfg, store, analyzer.New(cfg, nil))
}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestInitialModel_BrowseMode(t *testing.T) {
	m := testModel(t)

	if m.mode != modeBrowse {
		t.Errorf("expected browse mode on init, got %v", m.mode)
	}
	if m.searchInput.Focused() {
		t.Error("expected search input blurred on init")
	}
	if len(m.list.Items()) != 2 {
		t.Errorf("expected 2 items from the store, got %d", len(m.list.Items()))
	}
}

func TestUpdate_SlashEntersSearchMode(t *testing.T) {
	m := testModel(t)

	newModel, _ := m.Update(key('/'))
	m = newModel.(model)

	if m.mode != modeSearch {
		t.Error("expected search mode after pressing /")
	}
	if !m.searchInput.Focused() {
		t.Error("expected search input focused after pressing /")
	}
}

func TestUpdate_EscLeavesSearchMode(t *testing.T) {
	m := testModel(t)
	m.mode = modeSearch
	m.searchInput.Focus()

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	m = newModel.(model)

	if m.mode != modeBrowse {
		t.Error("expected browse mode after pressing esc")
	}
	if m.searchInput.Focused() {
		t.Error("expected search input blurred after pressing esc")
	}
}

func TestUpdate_TypeFilterKeys(t *testing.T) {
	m := testModel(t)

	newModel, _ := m.Update(key('2')) // VIDEO
	m = newModel.(model)

	if m.typeFilter != string(vault.TypeVideo) {
		t.Errorf("expected VIDEO filter, got %s", m.typeFilter)
	}
	if len(m.list.Items()) != 1 {
		t.Errorf("expected 1 video in the list, got %d", len(m.list.Items()))
	}

	newModel, _ = m.Update(key('0'))
	m = newModel.(model)
	if m.typeFilter != vault.FilterAll {
		t.Errorf("expected ALL filter after 0, got %s", m.typeFilter)
	}
}

func TestUpdate_DeleteRemovesSelected(t *testing.T) {
	m := testModel(t)

	newModel, _ := m.Update(key('d'))
	m = newModel.(model)

	if got := m.store.Len(); got != 1 {
		t.Errorf("expected 1 resource after delete, got %d", got)
	}
	if len(m.list.Items()) != 1 {
		t.Errorf("expected list refreshed to 1 item, got %d", len(m.list.Items()))
	}
}

func TestUpdate_SortToggle(t *testing.T) {
	m := testModel(t)

	newModel, _ := m.Update(key('s'))
	m = newModel.(model)
	if m.sortKey != vault.SortCreatedAsc {
		t.Error("expected ascending sort after first toggle")
	}

	newModel, _ = m.Update(key('s'))
	m = newModel.(model)
	if m.sortKey != vault.SortCreatedDesc {
		t.Error("expected descending sort after second toggle")
	}
}

func TestUpdate_QQuitsFromBrowse(t *testing.T) {
	m := testModel(t)

	_, cmd := m.Update(key('q'))
	if cmd == nil {
		t.Error("expected quit command when pressing q in browse mode")
	}
}

func TestCycleTag(t *testing.T) {
	m := testModel(t)

	m.cycleTag()
	if m.tagFilter != "go" {
		t.Errorf("expected first tag 'go', got %s", m.tagFilter)
	}
	m.cycleTag()
	if m.tagFilter != "react" {
		t.Errorf("expected second tag 'react', got %s", m.tagFilter)
	}
	m.cycleTag()
	if m.tagFilter != vault.FilterAll {
		t.Errorf("expected wrap back to ALL, got %s", m.tagFilter)
	}
}

func TestAddFormResource(t *testing.T) {
	f := newAddForm()
	setField := func(idx int, val string) {
		in := f.inputs[idx]
		in.SetValue(val)
		f.inputs[idx] = in
	}
	setField(fieldTitle, "  My Title  ")
	setField(fieldTags, "a, b ,, c")
	f.typeIdx = 1 // VIDEO

	r := f.resource()
	if r.Title != "My Title" {
		t.Errorf("expected trimmed title, got %q", r.Title)
	}
	if r.Type != vault.TypeVideo {
		t.Errorf("expected VIDEO, got %s", r.Type)
	}
	if len(r.Tags) != 3 || r.Tags[0] != "a" || r.Tags[1] != "b" || r.Tags[2] != "c" {
		t.Errorf("expected tags [a b c], got %v", r.Tags)
	}
}
