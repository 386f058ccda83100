package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/user/mindvault/internal/vault"
)

// Field order in the add form. The type row sits between url and platform
// and is cycled rather than typed.
const (
	fieldTitle = iota
	fieldURL
	fieldType
	fieldPlatform
	fieldTags
	fieldNotes
	fieldContent
	fieldCount
)

// addForm collects a partially-specified resource; missing fields get their
// defaults from vault.Normalize on submit.
type addForm struct {
	inputs  map[int]textinput.Model
	typeIdx int
	focus   int
}

func newAddForm() addForm {
	mk := func(placeholder string, width int) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 512
		ti.Width = width
		return ti
	}

	f := addForm{
		inputs: map[int]textinput.Model{
			fieldTitle:    mk("Title", 60),
			fieldURL:      mk("https://...", 60),
			fieldPlatform: mk("Platform (e.g. Zhihu, Bilibili, X)", 60),
			fieldTags:     mk("Tags, comma separated", 60),
			fieldNotes:    mk("Notes", 60),
			fieldContent:  mk("Raw content for AI analysis (optional)", 60),
		},
	}
	f.setFocus(fieldTitle)
	return f
}

func (f *addForm) setFocus(idx int) {
	f.focus = idx
	for i, in := range f.inputs {
		if i == idx {
			in.Focus()
		} else {
			in.Blur()
		}
		f.inputs[i] = in
	}
}

// handleKey processes one keypress. It reports whether the form is finished,
// and if so whether to submit and whether to request an AI summary first.
func (f *addForm) handleKey(msg tea.KeyMsg) (done, submit, summarize bool) {
	switch msg.String() {
	case "esc":
		return true, false, false
	case "enter":
		return true, true, false
	case "ctrl+s":
		return true, true, true
	case "tab", "down":
		f.setFocus((f.focus + 1) % fieldCount)
	case "shift+tab", "up":
		f.setFocus((f.focus + fieldCount - 1) % fieldCount)
	case "left":
		if f.focus == fieldType {
			f.typeIdx = (f.typeIdx + len(vault.Types) - 1) % len(vault.Types)
		}
	case "right":
		if f.focus == fieldType {
			f.typeIdx = (f.typeIdx + 1) % len(vault.Types)
		}
	}
	return false, false, false
}

func (f *addForm) update(msg tea.Msg) tea.Cmd {
	in, ok := f.inputs[f.focus]
	if !ok {
		return nil
	}
	var cmd tea.Cmd
	in, cmd = in.Update(msg)
	f.inputs[f.focus] = in
	return cmd
}

// resource assembles the partial descriptor from the form fields.
func (f *addForm) resource() vault.Resource {
	var tags []string
	for _, t := range strings.Split(f.inputs[fieldTags].Value(), ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	return vault.Resource{
		Title:      strings.TrimSpace(f.inputs[fieldTitle].Value()),
		URL:        strings.TrimSpace(f.inputs[fieldURL].Value()),
		Type:       vault.Types[f.typeIdx],
		Platform:   strings.TrimSpace(f.inputs[fieldPlatform].Value()),
		Tags:       tags,
		UserNotes:  f.inputs[fieldNotes].Value(),
		ContentRaw: f.inputs[fieldContent].Value(),
	}
}

func (f *addForm) view() string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Width(10)
	titleStyle := lipgloss.NewStyle().Bold(true).MarginBottom(1)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	activeType := lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Add resource"))
	b.WriteString("\n")

	rows := []struct {
		label string
		field int
	}{
		{"Title", fieldTitle},
		{"URL", fieldURL},
		{"Type", fieldType},
		{"Platform", fieldPlatform},
		{"Tags", fieldTags},
		{"Notes", fieldNotes},
		{"Content", fieldContent},
	}

	for _, row := range rows {
		b.WriteString(labelStyle.Render(row.label))
		if row.field == fieldType {
			marker := "  "
			if f.focus == fieldType {
				marker = "> "
			}
			b.WriteString(marker + activeType.Render(string(vault.Types[f.typeIdx])))
		} else {
			b.WriteString(f.inputs[row.field].View())
		}
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("[tab]next [←/→]type [enter]save [ctrl+s]save+AI summary [esc]cancel"))
	return b.String()
}
