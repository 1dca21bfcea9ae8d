package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// Filter is a one-line text input used to narrow lists as the player types.
type Filter struct {
	Model textinput.Model
}

// NewFilter creates an unfocused filter input.
func NewFilter(placeholder string, maxLen int) Filter {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "/ "
	if maxLen > 0 {
		ti.CharLimit = maxLen
	}
	return Filter{Model: ti}
}

// Focus starts accepting input.
func (f *Filter) Focus() tea.Cmd {
	return f.Model.Focus()
}

// Blur stops accepting input and keeps the current value.
func (f *Filter) Blur() {
	f.Model.Blur()
}

// Focused reports whether the input has focus.
func (f Filter) Focused() bool {
	return f.Model.Focused()
}

// Reset clears the value.
func (f *Filter) Reset() {
	f.Model.SetValue("")
}

// Update handles messages.
func (f Filter) Update(msg tea.Msg) (Filter, tea.Cmd) {
	var cmd tea.Cmd
	f.Model, cmd = f.Model.Update(msg)
	return f, cmd
}

// View renders the input.
func (f Filter) View() string {
	return f.Model.View()
}

// Value returns the trimmed query.
func (f Filter) Value() string {
	return strings.TrimSpace(f.Model.Value())
}

// Match reports whether any of fields contains the query, ignoring case.
// An empty query matches everything.
func (f Filter) Match(fields ...string) bool {
	q := strings.ToLower(f.Value())
	if q == "" {
		return true
	}
	for _, s := range fields {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}
