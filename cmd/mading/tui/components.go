package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stembase/mading/pkg/paginate"
)

// noticeTTL is how long a banner stays up before auto-dismissing.
const noticeTTL = 3 * time.Second

// NoticeKind selects the banner variant.
type NoticeKind int

const (
	NoticeError NoticeKind = iota
	NoticeSuccess
	NoticeLoading
)

type noticeExpiredMsg struct{ seq int }

// Notice is a transient notification banner. Every Show supersedes the
// previous one; the expiry of a superseded banner is ignored.
type Notice struct {
	seq  int
	kind NoticeKind
	text string
}

// Show displays a banner and returns the command that expires it after
// noticeTTL.
func (n *Notice) Show(kind NoticeKind, text string) tea.Cmd {
	n.seq++
	n.kind = kind
	n.text = text
	seq := n.seq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// Update clears the banner when its own expiry arrives.
func (n *Notice) Update(msg tea.Msg) {
	if expired, ok := msg.(noticeExpiredMsg); ok && expired.seq == n.seq {
		n.text = ""
	}
}

// Clear drops the banner immediately.
func (n *Notice) Clear() { n.text = "" }

// Visible reports whether a banner is showing.
func (n Notice) Visible() bool { return n.text != "" }

// View renders the banner, empty when nothing is showing.
func (n Notice) View() string {
	if n.text == "" {
		return ""
	}
	switch n.kind {
	case NoticeSuccess:
		return bannerSuccessStyle.Render(n.text)
	case NoticeLoading:
		return bannerLoadingStyle.Render(n.text)
	default:
		return bannerErrorStyle.Render(n.text)
	}
}

// ConfirmationDialog is a yes/no modal used before destructive actions.
type ConfirmationDialog struct {
	Title       string
	Message     string
	YesSelected bool
	OnConfirm   func() tea.Cmd
	OnCancel    func() tea.Cmd
}

// NewConfirmationDialog creates a dialog with "No" preselected.
func NewConfirmationDialog(title, message string) ConfirmationDialog {
	return ConfirmationDialog{Title: title, Message: message}
}

// Update handles dialog key presses.
func (d *ConfirmationDialog) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "left", "h":
			d.YesSelected = true
		case "right", "l":
			d.YesSelected = false
		case "enter":
			if d.YesSelected && d.OnConfirm != nil {
				return d.OnConfirm()
			}
			if !d.YesSelected && d.OnCancel != nil {
				return d.OnCancel()
			}
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
	b.WriteString(helpStyle.Render(FormatKey("←/→", "navigate") + " • " + FormatKey("enter", "confirm") + " • " + FormatKey("esc", "cancel")))
	return boxStyle.Render(b.String())
}

// LoginPromptDialog intercepts like/comment attempts from logged-out
// users before any network call.
type LoginPromptDialog struct{}

// View renders the prompt.
func (LoginPromptDialog) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Login Required"))
	b.WriteString("\n\n")
	b.WriteString("Please log in to like or comment on articles.\n")
	b.WriteString(mutedStyle.Render("Run: mading login --username <name>"))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(FormatKey("esc", "close")))
	return boxStyle.Render(b.String())
}

// FormField is a labeled text input inside a modal form.
type FormField struct {
	Label string
	Name  string
	Input textinput.Model
}

// NewFormField creates a field with the given label and placeholder.
func NewFormField(label, name, placeholder string) FormField {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = 0
	input.Width = 48
	return FormField{Label: label, Name: name, Input: input}
}

// RenderFields draws a form's fields with the focused one highlighted,
// plus an optional inline error line.
func RenderFields(title string, fields []FormField, focus int, errMsg string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	for i, f := range fields {
		label := mutedStyle.Render(f.Label)
		if i == focus {
			label = infoStyle.Render(f.Label)
		}
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(f.Input.View())
		b.WriteString("\n\n")
	}
	if errMsg != "" {
		b.WriteString(dangerStyle.Render(errMsg))
		b.WriteString("\n\n")
	}
	b.WriteString(helpStyle.Render(FormatKey("tab", "next field") + " • " + FormatKey("enter", "submit") + " • " + FormatKey("esc", "cancel")))
	return boxStyle.Render(b.String())
}

// PaginationBar renders the page selector for a list screen.
func PaginationBar(page, total, perPage int) string {
	nums := paginate.Numbers(total, perPage)
	if len(nums) <= 1 {
		return ""
	}
	parts := make([]string, 0, len(nums)+2)
	parts = append(parts, mutedStyle.Render("‹"))
	for _, n := range nums {
		label := pageStyle.Render(strconv.Itoa(n))
		if n == page {
			label = pageActiveStyle.Render(strconv.Itoa(n))
		}
		parts = append(parts, label)
	}
	parts = append(parts, mutedStyle.Render("›"))
	return lipgloss.JoinHorizontal(lipgloss.Left, parts...)
}
