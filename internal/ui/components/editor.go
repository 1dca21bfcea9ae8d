package components

import (
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
)

// TabWidth is how many spaces the tab key inserts.
const TabWidth = 4

// Editor is a multi-line code input built on bubbles/textarea.
type Editor struct {
	Model textarea.Model
}

// NewEditor creates a focused editor with line numbers.
func NewEditor(placeholder string) Editor {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.Focus()
	return Editor{Model: ta}
}

// SetSize resizes the editing area.
func (e *Editor) SetSize(width, height int) {
	e.Model.SetWidth(width)
	e.Model.SetHeight(height)
}

// Update handles messages. Tab inserts TabWidth spaces and enter keeps
// the current indentation, adding a level after a line ending in a colon.
func (e Editor) Update(msg tea.Msg) (Editor, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "tab":
			e.Model.InsertString(strings.Repeat(" ", TabWidth))
			return e, nil
		case "enter":
			e.Model.InsertString("\n" + NextIndent(e.currentLine()))
			return e, nil
		}
	}
	var cmd tea.Cmd
	e.Model, cmd = e.Model.Update(msg)
	return e, cmd
}

// View renders the editor.
func (e Editor) View() string {
	return e.Model.View()
}

// Value returns the full text.
func (e Editor) Value() string {
	return e.Model.Value()
}

// SetValue replaces the text.
func (e *Editor) SetValue(s string) {
	e.Model.SetValue(s)
}

func (e Editor) currentLine() string {
	lines := strings.Split(e.Model.Value(), "\n")
	if row := e.Model.Line(); row >= 0 && row < len(lines) {
		return lines[row]
	}
	return ""
}

// NextIndent returns the indentation for the line after line: one level
// deeper after a colon, one level shallower after a statement that ends
// a block, otherwise unchanged.
func NextIndent(line string) string {
	indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasSuffix(trimmed, ":"):
		return indent + strings.Repeat(" ", TabWidth)
	case endsBlock(trimmed):
		return indent[:max(len(indent)-TabWidth, 0)]
	}
	return indent
}

func endsBlock(stmt string) bool {
	switch stmt {
	case "pass", "break", "continue", "return":
		return true
	}
	return strings.HasPrefix(stmt, "return ")
}
