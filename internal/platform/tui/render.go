package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gridsnake/internal/config"
	"github.com/vovakirdan/gridsnake/internal/core"
)

// Theme maps semantic colour roles to lipgloss styles.
type Theme struct {
	Name   string
	styles map[core.Color]lipgloss.Style
}

func fg(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

// DarkTheme is tuned for dark terminal backgrounds.
func DarkTheme() Theme {
	return Theme{
		Name: config.ThemeDark,
		styles: map[core.Color]lipgloss.Style{
			core.ColorDefault:   fg("252"),
			core.ColorHUD:       fg("229").Bold(true),
			core.ColorBorder:    fg("240"),
			core.ColorSnakeHead: fg("46").Bold(true),
			core.ColorSnakeBody: fg("34"),
			core.ColorFood:      fg("203"),
			core.ColorAccent:    fg("111"),
			core.ColorDim:       fg("245"),
			core.ColorDanger:    fg("196").Bold(true),
		},
	}
}

// LightTheme is tuned for light terminal backgrounds.
func LightTheme() Theme {
	return Theme{
		Name: config.ThemeLight,
		styles: map[core.Color]lipgloss.Style{
			core.ColorDefault:   fg("236"),
			core.ColorHUD:       fg("25").Bold(true),
			core.ColorBorder:    fg("248"),
			core.ColorSnakeHead: fg("28").Bold(true),
			core.ColorSnakeBody: fg("70"),
			core.ColorFood:      fg("160"),
			core.ColorAccent:    fg("62"),
			core.ColorDim:       fg("243"),
			core.ColorDanger:    fg("124").Bold(true),
		},
	}
}

// ThemeByName returns the named theme, falling back to dark.
func ThemeByName(name string) Theme {
	if name == config.ThemeLight {
		return LightTheme()
	}
	return DarkTheme()
}

// Next returns the other theme.
func (t Theme) Next() Theme {
	if t.Name == config.ThemeLight {
		return DarkTheme()
	}
	return LightTheme()
}

// Style returns the style for a colour role.
func (t Theme) Style(c core.Color) lipgloss.Style {
	if s, ok := t.styles[c]; ok {
		return s
	}
	return t.styles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen, theme Theme) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(theme.Style(startColor).Render(run.String()))
		}
	}
	return sb.String()
}
