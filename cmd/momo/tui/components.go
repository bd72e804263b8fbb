package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmationDialog is a yes/no dialog.
type ConfirmationDialog struct {
	Title       string
	Message     string
	YesSelected bool
}

// ConfirmMsg carries the dialog decision back to the owning model.
// Mutating the model from inside the dialog would only touch a copy of
// the receiver, so the decision travels as a message instead.
type ConfirmMsg struct {
	Confirmed bool
}

// NewConfirmationDialog creates a dialog with "No" preselected.
func NewConfirmationDialog(title, message string) ConfirmationDialog {
	return ConfirmationDialog{Title: title, Message: message}
}

// Update handles dialog key events.
func (d *ConfirmationDialog) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "left", "h":
		d.YesSelected = true
	case "right", "l":
		d.YesSelected = false
	case "enter":
		confirmed := d.YesSelected
		return func() tea.Msg {
			return ConfirmMsg{Confirmed: confirmed}
		}
	}
	return nil
}

// View renders the dialog.
func (d ConfirmationDialog) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(d.Title))
	b.WriteString("\n\n")
	b.WriteString(d.Message)
	b.WriteString("\n\n")

	yesButton := inactiveButtonStyle.Render("Yes")
	noButton := inactiveButtonStyle.Render("No")
	if d.YesSelected {
		yesButton = activeButtonStyle.Render("Yes")
	} else {
		noButton = activeButtonStyle.Render("No")
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Left, yesButton, "  ", noButton))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(FormatKey("←/→", "navigate") + " • " + FormatKey("enter", "confirm") + " • " + FormatKey("esc/q", "cancel")))

	return boxStyle.Render(b.String())
}

// MigrationItem is one migration in the list.
type MigrationItem struct {
	Version   string
	Name      string
	Status    string
	AppliedAt string
}

func (i MigrationItem) FilterValue() string { return i.Name }

func (i MigrationItem) Title() string {
	return fmt.Sprintf("%s %s - %s", FormatStatus(i.Status), i.Version, i.Name)
}

func (i MigrationItem) Description() string {
	if i.AppliedAt != "" {
		return mutedStyle.Render("Applied: " + i.AppliedAt)
	}
	return mutedStyle.Render("Not applied")
}

// MigrationItemDelegate renders migration list items.
type MigrationItemDelegate struct{}

func (d MigrationItemDelegate) Height() int                             { return 2 }
func (d MigrationItemDelegate) Spacing() int                            { return 1 }
func (d MigrationItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d MigrationItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(MigrationItem)
	if !ok {
		return
	}

	var s string
	if index == m.Index() {
		s = selectedItemStyle.Render("▸ " + i.Title() + "\n  " + i.Description())
	} else {
		s = unselectedItemStyle.Render("  " + i.Title() + "\n  " + i.Description())
	}
	_, _ = fmt.Fprint(w, s)
}

// LogView shows the most recent execution log lines.
type LogView struct {
	Lines  []string
	MaxLen int
}

// NewLogView creates a log view keeping at most maxLen lines.
func NewLogView(maxLen int) LogView {
	return LogView{MaxLen: maxLen}
}

// Add appends a log line, evicting the oldest when full.
func (l *LogView) Add(line string) {
	l.Lines = append(l.Lines, line)
	if len(l.Lines) > l.MaxLen {
		l.Lines = l.Lines[1:]
	}
}

// View renders the log view.
func (l LogView) View() string {
	if len(l.Lines) == 0 {
		return mutedStyle.Render("No logs")
	}
	var b strings.Builder
	for _, line := range l.Lines {
		b.WriteString(mutedStyle.Render("• "))
		b.WriteString(line)
		b.WriteString("\n")
	}
	return boxStyle.Render(b.String())
}
