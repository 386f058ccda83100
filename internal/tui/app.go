package tui

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/user/mindvault/internal/analyzer"
	"github.com/user/mindvault/internal/config"
	"github.com/user/mindvault/internal/logger"
	"github.com/user/mindvault/internal/storage"
	"github.com/user/mindvault/internal/vault"
	"github.com/user/mindvault/internal/vault/impex"
)

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeAdd
	modeNotes
)

type model struct {
	cfg      *config.Config
	store    *vault.Store
	analyzer *analyzer.Analyzer

	searchInput textinput.Model
	notesInput  textinput.Model
	form        addForm
	list        list.Model

	typeFilter string // vault.FilterAll or one type
	tagFilter  string
	sortKey    vault.SortKey

	mode   mode
	width  int
	height int
	status string
	err    error
}

type resourceItem struct {
	resource vault.Resource
}

func (r resourceItem) Title() string {
	return fmt.Sprintf("%s %s", typeIcon(r.resource.Type), r.resource.Title)
}

func (r resourceItem) Description() string {
	if r.resource.Summary != "" {
		summary := r.resource.Summary
		if len(summary) > 80 {
			summary = summary[:80] + "..."
		}
		return summary
	}
	return r.resource.URL
}

func (r resourceItem) FilterValue() string {
	return r.resource.Title + " " + r.resource.Summary + " " + strings.Join(r.resource.Tags, " ")
}

func typeIcon(t vault.Type) string {
	switch t {
	case vault.TypeArticle:
		return "[A]"
	case vault.TypeVideo:
		return "[V]"
	case vault.TypeAudio:
		return "[P]"
	case vault.TypeTweet:
		return "[T]"
	default:
		return "[?]"
	}
}

func initialModel(cfg *config.Config, store *vault.Store, an *analyzer.Analyzer) model {
	ti := textinput.New()
	ti.Placeholder = "Search title, tags, notes..."
	ti.CharLimit = 256
	ti.Width = 50

	ni := textinput.New()
	ni.Placeholder = "Notes..."
	ni.CharLimit = 512
	ni.Width = 60

	delegate := list.NewDefaultDelegate()
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "MindVault"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	m := model{
		cfg:         cfg,
		store:       store,
		analyzer:    an,
		searchInput: ti,
		notesInput:  ni,
		list:        l,
		typeFilter:  vault.FilterAll,
		tagFilter:   vault.FilterAll,
		sortKey:     vault.SortCreatedDesc,
	}
	m.refresh()
	return m
}

type analyzedMsg struct {
	partial vault.Resource
	result  analyzer.Result
}

type exportedMsg struct {
	path string
	err  error
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) refresh() {
	view := vault.Search(m.store.List(), vault.Filters{
		Type:  m.typeFilter,
		Query: m.searchInput.Value(),
		Tag:   m.tagFilter,
		Sort:  m.sortKey,
	})
	items := make([]list.Item, 0, len(view))
	for _, r := range view {
		items = append(items, resourceItem{resource: r})
	}
	m.list.SetItems(items)
}

func (m model) analyzeAndAdd(partial vault.Resource) tea.Cmd {
	return func() tea.Msg {
		res := m.analyzer.Analyze(context.Background(), partial.Title, partial.ContentRaw, partial.Type)
		return analyzedMsg{partial: partial, result: res}
	}
}

func (m model) export() tea.Cmd {
	return func() tea.Msg {
		data, err := impex.Export(m.store.List())
		if err != nil {
			return exportedMsg{err: err}
		}
		path := filepath.Join(m.cfg.DataDir, impex.Filename(time.Now()))
		if err := os.WriteFile(path, data, 0644); err != nil {
			return exportedMsg{err: err}
		}
		return exportedMsg{path: path}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			switch msg.String() {
			case "esc":
				m.mode = modeBrowse
				m.searchInput.Blur()
				return m, nil
			case "enter":
				m.mode = modeBrowse
				m.searchInput.Blur()
				m.refresh()
				return m, nil
			}
		case modeNotes:
			switch msg.String() {
			case "esc":
				m.mode = modeBrowse
				m.notesInput.Blur()
				return m, nil
			case "enter":
				if item, ok := m.list.SelectedItem().(resourceItem); ok {
					m.store.UpdateNotes(item.resource.ID, m.notesInput.Value())
					m.status = "Notes updated."
				}
				m.mode = modeBrowse
				m.notesInput.Blur()
				m.refresh()
				return m, nil
			}
		case modeAdd:
			done, submit, summarize := m.form.handleKey(msg)
			if done {
				m.mode = modeBrowse
				if submit {
					partial := m.form.resource()
					if summarize {
						m.status = "Summarizing..."
						return m, m.analyzeAndAdd(partial)
					}
					added := m.store.Add(partial)
					m.status = fmt.Sprintf("Added %q.", added.Title)
					m.refresh()
				}
				return m, nil
			}
		case modeBrowse:
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "/":
				m.mode = modeSearch
				m.searchInput.Focus()
				return m, textinput.Blink
			case "a":
				m.mode = modeAdd
				m.form = newAddForm()
				return m, textinput.Blink
			case "n":
				if item, ok := m.list.SelectedItem().(resourceItem); ok {
					m.mode = modeNotes
					m.notesInput.SetValue(item.resource.UserNotes)
					m.notesInput.Focus()
					return m, textinput.Blink
				}
			case "d":
				if item, ok := m.list.SelectedItem().(resourceItem); ok {
					m.store.Delete(item.resource.ID)
					m.status = fmt.Sprintf("Deleted %q.", item.resource.Title)
					m.refresh()
				}
				return m, nil
			case "o":
				if item, ok := m.list.SelectedItem().(resourceItem); ok {
					openBrowser(item.resource.URL)
				}
			case "s":
				if m.sortKey == vault.SortCreatedDesc {
					m.sortKey = vault.SortCreatedAsc
				} else {
					m.sortKey = vault.SortCreatedDesc
				}
				m.refresh()
				return m, nil
			case "t":
				m.cycleTag()
				m.refresh()
				return m, nil
			case "e":
				return m, m.export()
			case "0":
				m.typeFilter = vault.FilterAll
				m.refresh()
				return m, nil
			case "1", "2", "3", "4":
				idx := int(msg.String()[0] - '1')
				m.typeFilter = string(vault.Types[idx])
				m.refresh()
				return m, nil
			case "j", "down":
				m.list.CursorDown()
				return m, nil
			case "k", "up":
				m.list.CursorUp()
				return m, nil
			case "g":
				m.list.Select(0)
				return m, nil
			case "G":
				if n := len(m.list.Items()); n > 0 {
					m.list.Select(n - 1)
				}
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-7)
		m.searchInput.Width = msg.Width - 20
		m.refresh()

	case analyzedMsg:
		partial := msg.partial
		partial.Summary = msg.result.Summary
		if len(partial.Tags) == 0 {
			partial.Tags = msg.result.Tags
		}
		added := m.store.Add(partial)
		if msg.result.Degraded {
			m.status = fmt.Sprintf("Added %q (AI fallback: %s).", added.Title, msg.result.Reason)
		} else {
			m.status = fmt.Sprintf("Added %q with AI summary.", added.Title)
		}
		m.refresh()

	case exportedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Export failed: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Exported to %s.", msg.path)
		}
	}

	switch m.mode {
	case modeSearch:
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		cmds = append(cmds, cmd)
		m.refresh() // live filter while typing
	case modeNotes:
		var cmd tea.Cmd
		m.notesInput, cmd = m.notesInput.Update(msg)
		cmds = append(cmds, cmd)
	case modeAdd:
		cmds = append(cmds, m.form.update(msg))
	default:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// cycleTag steps the tag filter through ALL plus every tag in use.
func (m *model) cycleTag() {
	tags := vault.AllTags(m.store.List())
	if len(tags) == 0 {
		m.tagFilter = vault.FilterAll
		return
	}
	if m.tagFilter == vault.FilterAll {
		m.tagFilter = tags[0]
		return
	}
	for i, t := range tags {
		if t == m.tagFilter {
			if i == len(tags)-1 {
				m.tagFilter = vault.FilterAll
			} else {
				m.tagFilter = tags[i+1]
			}
			return
		}
	}
	m.tagFilter = vault.FilterAll
}

func (m model) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err)
	}

	if m.mode == modeAdd {
		return m.form.view()
	}

	var b strings.Builder

	searchStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1)

	activeFilter := lipgloss.NewStyle().
		Foreground(lipgloss.Color("86")).
		Bold(true)

	inactiveFilter := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))

	filters := []string{}
	for _, label := range append([]string{vault.FilterAll}, typeLabels()...) {
		if label == m.typeFilter {
			filters = append(filters, activeFilter.Render(label))
		} else {
			filters = append(filters, inactiveFilter.Render(label))
		}
	}
	if m.tagFilter != vault.FilterAll {
		filters = append(filters, activeFilter.Render("#"+m.tagFilter))
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		searchStyle.Render(m.searchInput.View()),
		"  ",
		inactiveFilter.Render(strings.Join(filters, " ")),
	))
	b.WriteString("\n\n")

	if m.mode == modeNotes {
		b.WriteString("Notes: " + m.notesInput.View())
		b.WriteString("\n\n")
	}

	b.WriteString(m.list.View())

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		MarginTop(1)

	help := "[j/k]nav [/]search [a]dd [n]otes [d]elete [o]pen [t]ag [s]ort [e]xport [0-4]type [q]uit"
	if m.status != "" {
		help = m.status + "  " + help
	}
	b.WriteString(helpStyle.Render(help))

	return b.String()
}

func typeLabels() []string {
	labels := make([]string, len(vault.Types))
	for i, t := range vault.Types {
		labels[i] = string(t)
	}
	return labels
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	}
	if cmd != nil {
		cmd.Start()
	}
}

// Run opens the vault and starts the TUI.
func Run(cfg *config.Config, log logger.Logger) error {
	slot, err := storage.Open(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer slot.Close()

	store := vault.Open(slot, log)
	an := analyzer.New(cfg, log)

	p := tea.NewProgram(initialModel(cfg, store, an), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
