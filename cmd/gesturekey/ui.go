package main

import "github.com/charmbracelet/lipgloss"

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAF00"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5F87FF"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00D7D7"))
)

func successText(s string) string { return successStyle.Render("✓ " + s) }
func errorText(s string) string   { return errorStyle.Render("✗ " + s) }
func warningText(s string) string { return warningStyle.Render("! " + s) }
func infoText(s string) string    { return infoStyle.Render(s) }
func headerText(s string) string  { return headerStyle.Render(s) }
