package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the table, both handles and the stats panel.
type Theme struct {
	Name    string
	Table   lipgloss.Color
	Handle1 lipgloss.Color
	Handle2 lipgloss.Color
	Cursor  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Accent  lipgloss.Color
	Warning lipgloss.Color
}

var (
	ThemeRink = Theme{
		Name:    "rink",
		Table:   lipgloss.Color("#8ecae6"),
		Handle1: lipgloss.Color("#ff4d6d"),
		Handle2: lipgloss.Color("#4dabf7"),
		Cursor:  lipgloss.Color("#ffd166"),
		Text:    lipgloss.Color("#f1f3f5"),
		Muted:   lipgloss.Color("#6c757d"),
		Accent:  lipgloss.Color("#06d6a0"),
		Warning: lipgloss.Color("#ffaa00"),
	}

	ThemeRetroGreen = Theme{
		Name:    "retro",
		Table:   lipgloss.Color("#00cc00"), // Green phosphor
		Handle1: lipgloss.Color("#00ff00"),
		Handle2: lipgloss.Color("#88ff88"),
		Cursor:  lipgloss.Color("#ffff00"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Accent:  lipgloss.Color("#88ff88"),
		Warning: lipgloss.Color("#ffff00"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Table:   lipgloss.Color("#cccccc"),
		Handle1: lipgloss.Color("#ffffff"),
		Handle2: lipgloss.Color("#0088ff"),
		Cursor:  lipgloss.Color("#888888"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Accent:  lipgloss.Color("#0088ff"),
		Warning: lipgloss.Color("#ffaa00"),
	}

	Themes = []Theme{
		ThemeRink,
		ThemeRetroGreen,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name, falling back to the rink theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeRink
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func nextTheme(current Theme) Theme {
	for i, t := range Themes {
		if t.Name == current.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}
