package main

import (
	"github.com/charmbracelet/glamour"
	gansi "github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/lipgloss"
)

// maxWidth is the widest a rendered readme gets.
const maxWidth = 120

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#777777"))
	shaStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#A3A322"))
	urnStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#00AAFF"))
	lineDigitStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("239"))
	lineBarStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	dirnameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00AAFF"))
	filenameStyle  = lipgloss.NewStyle()
)

// styleConfig returns the Glamour style configuration.
func styleConfig() gansi.StyleConfig {
	noColor := ""
	s := glamour.DarkStyleConfig
	s.Document.StylePrimitive.Color = &noColor
	s.CodeBlock.Chroma.Text.Color = &noColor
	s.CodeBlock.Chroma.Name.Color = &noColor
	// This fixes an issue with the default style config. For example
	// highlighting empty spaces with red in Dockerfile type.
	s.CodeBlock.Chroma.Error.BackgroundColor = &noColor
	return s
}

func glamourize(w int, md string) (string, error) {
	if w <= 0 || w > maxWidth {
		w = maxWidth
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStyles(styleConfig()),
		glamour.WithWordWrap(w),
	)
	if err != nil {
		return "", err
	}

	return tr.Render(md)
}
