package terminal

import "github.com/charmbracelet/lipgloss"

// Styles colours the lines a session prints.
type Styles struct {
	Error   lipgloss.Style
	Alert   lipgloss.Style
	Success lipgloss.Style
	Muted   lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("167")),
		Alert:   lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("71")).Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// PlainStyles renders text unchanged.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{Error: plain, Alert: plain, Success: plain, Muted: plain}
}
