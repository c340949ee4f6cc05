package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"bfhl/src/panels/editor"
	"bfhl/src/panels/filter"
	"bfhl/src/panels/result"
)

// ThemeIcons defines the symbols used in the UI
type ThemeIcons struct {
	ActiveIndicator string `json:"activeIndicator"` // Active/selected indicator (▶)
	ChipRemove      string `json:"chipRemove"`      // Trailing mark on a filter chip
	DropdownClosed  string `json:"dropdownClosed"`
	DropdownOpen    string `json:"dropdownOpen"`
	Checked         string `json:"checked"` // Selected row in the filter list
}

// ThemeColors defines all colors used in the application
type ThemeColors struct {
	Primary     string `json:"primary"`     // Main accent color
	Secondary   string `json:"secondary"`   // Secondary accent color
	Border      string `json:"border"`      // Border colors
	BorderFocus string `json:"borderFocus"` // Focused border colors
	Text        string `json:"text"`        // Main text color
	TextMuted   string `json:"textMuted"`   // Muted text color
	TextAccent  string `json:"textAccent"`  // Accent text color
	Success     string `json:"success"`
	Warning     string `json:"warning"`
	Error       string `json:"error"`
	Cursor      string `json:"cursor"` // Cursor/selection color
	Chip        string `json:"chip"`   // Filter chip background
	Alphabets   string `json:"alphabets"`
	Numbers     string `json:"numbers"`
	Highest     string `json:"highest"`
}

// ThemeConfig represents the complete theme configuration
type ThemeConfig struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Colors      ThemeColors `json:"colors"`
	Icons       ThemeIcons  `json:"icons"`
}

// Theme holds the active theme and provides styled components
type Theme struct {
	Config ThemeConfig

	FocusedStyle     lipgloss.Style
	BlurredStyle     lipgloss.Style
	TitleStyle       lipgloss.Style
	CursorStyle      lipgloss.Style
	HeaderStyle      lipgloss.Style
	StatusOkStyle    lipgloss.Style
	ErrorStyle       lipgloss.Style
	WarningStyle     lipgloss.Style
	MutedStyle       lipgloss.Style
	ButtonStyle      lipgloss.Style
	ChipStyle        lipgloss.Style
	ChipFocusedStyle lipgloss.Style
	LabelStyles      map[filter.Label]lipgloss.Style
}

func defaultTheme() ThemeConfig {
	return ThemeConfig{
		Name:        "Default",
		Description: "Default bfhl theme",
		Colors: ThemeColors{
			Primary:     "62",  // Purple/blue
			Secondary:   "86",  // Green
			Border:      "240", // Gray border
			BorderFocus: "62",  // Purple border when focused
			Text:        "230", // Light text
			TextMuted:   "241", // Muted text
			TextAccent:  "86",  // Green accent text
			Success:     "46",  // Green
			Warning:     "220", // Yellow
			Error:       "196", // Red
			Cursor:      "212", // Pink/purple cursor
			Chip:        "238",
			Alphabets:   "33",  // Blue
			Numbers:     "34",  // Green
			Highest:     "135", // Purple
		},
		Icons: ThemeIcons{
			ActiveIndicator: "▶",
			ChipRemove:      "×",
			DropdownClosed:  "▾",
			DropdownOpen:    "▴",
			Checked:         "✓",
		},
	}
}

// NewTheme creates a new theme instance with styles
func NewTheme(config ThemeConfig) *Theme {
	theme := &Theme{Config: config}
	theme.buildStyles()
	return theme
}

func (t *Theme) buildStyles() {
	colors := t.Config.Colors

	t.FocusedStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colors.BorderFocus))

	t.BlurredStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colors.Border))

	t.TitleStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(colors.Primary)).
		Foreground(lipgloss.Color(colors.Text)).
		Padding(0, 1)

	t.CursorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Cursor)).
		Bold(true)

	t.HeaderStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.TextMuted))

	t.StatusOkStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Success))

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Error))

	t.WarningStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Warning))

	t.MutedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.TextMuted))

	t.ButtonStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(colors.Primary)).
		Foreground(lipgloss.Color(colors.Text)).
		Padding(0, 2).
		Bold(true)

	t.ChipStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(colors.Chip)).
		Foreground(lipgloss.Color(colors.Text)).
		Padding(0, 1).
		MarginRight(1)

	t.ChipFocusedStyle = t.ChipStyle.
		Background(lipgloss.Color(colors.Cursor)).
		Foreground(lipgloss.Color("0"))

	t.LabelStyles = map[filter.Label]lipgloss.Style{
		filter.Alphabets:       lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Alphabets)),
		filter.Numbers:         lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Numbers)),
		filter.HighestAlphabet: lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Highest)),
	}
}

func (t *Theme) EditorStyles() editor.Styles {
	return editor.Styles{
		Focused: t.FocusedStyle,
		Blurred: t.BlurredStyle,
		Title:   t.TitleStyle,
		Error:   t.ErrorStyle,
		Button:  t.ButtonStyle,
		Muted:   t.MutedStyle,
	}
}

func (t *Theme) FilterStyles() filter.Styles {
	return filter.Styles{
		Focused:     t.FocusedStyle,
		Blurred:     t.BlurredStyle,
		Title:       t.TitleStyle,
		Chip:        t.ChipStyle,
		ChipFocused: t.ChipFocusedStyle,
		Cursor:      t.CursorStyle,
		Muted:       t.MutedStyle,
	}
}

func (t *Theme) FilterIcons() filter.Icons {
	icons := t.Config.Icons
	return filter.Icons{
		Remove:   icons.ChipRemove,
		Expand:   icons.DropdownClosed,
		Collapse: icons.DropdownOpen,
		Checked:  icons.Checked,
	}
}

func (t *Theme) ResultStyles() result.Styles {
	return result.Styles{
		Focused: t.FocusedStyle,
		Blurred: t.BlurredStyle,
		Title:   t.TitleStyle,
		Status:  t.MutedStyle,
		Label:   t.LabelStyles,
	}
}

// LoadTheme loads a theme from file with fallback to default
func LoadTheme(themeName string) *Theme {
	if themeName == "" || strings.EqualFold(themeName, "default") {
		return NewTheme(defaultTheme())
	}
	if config, err := loadThemeFromFile(themeName); err == nil {
		return NewTheme(config)
	}
	return NewTheme(defaultTheme())
}

// loadThemeFromFile tries the user config directory, then ./themes
func loadThemeFromFile(themeName string) (ThemeConfig, error) {
	if dir, err := configDir(); err == nil {
		themePath := filepath.Join(dir, "themes", themeName+".json")
		if config, err := readThemeFile(themePath); err == nil {
			return config, nil
		}
	}

	builtinPath := filepath.Join("themes", themeName+".json")
	if config, err := readThemeFile(builtinPath); err == nil {
		return config, nil
	}

	return ThemeConfig{}, os.ErrNotExist
}

func readThemeFile(path string) (ThemeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ThemeConfig{}, err
	}

	var config ThemeConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return ThemeConfig{}, err
	}

	return mergeWithDefault(config), nil
}

// mergeWithDefault fills missing theme values with defaults
func mergeWithDefault(theme ThemeConfig) ThemeConfig {
	def := defaultTheme()

	fill := func(dst *string, fallback string) {
		if *dst == "" {
			*dst = fallback
		}
	}

	fill(&theme.Name, def.Name)
	fill(&theme.Description, def.Description)

	fill(&theme.Colors.Primary, def.Colors.Primary)
	fill(&theme.Colors.Secondary, def.Colors.Secondary)
	fill(&theme.Colors.Border, def.Colors.Border)
	fill(&theme.Colors.BorderFocus, def.Colors.BorderFocus)
	fill(&theme.Colors.Text, def.Colors.Text)
	fill(&theme.Colors.TextMuted, def.Colors.TextMuted)
	fill(&theme.Colors.TextAccent, def.Colors.TextAccent)
	fill(&theme.Colors.Success, def.Colors.Success)
	fill(&theme.Colors.Warning, def.Colors.Warning)
	fill(&theme.Colors.Error, def.Colors.Error)
	fill(&theme.Colors.Cursor, def.Colors.Cursor)
	fill(&theme.Colors.Chip, def.Colors.Chip)
	fill(&theme.Colors.Alphabets, def.Colors.Alphabets)
	fill(&theme.Colors.Numbers, def.Colors.Numbers)
	fill(&theme.Colors.Highest, def.Colors.Highest)

	fill(&theme.Icons.ActiveIndicator, def.Icons.ActiveIndicator)
	fill(&theme.Icons.ChipRemove, def.Icons.ChipRemove)
	fill(&theme.Icons.DropdownClosed, def.Icons.DropdownClosed)
	fill(&theme.Icons.DropdownOpen, def.Icons.DropdownOpen)
	fill(&theme.Icons.Checked, def.Icons.Checked)

	return theme
}

// GetAvailableThemes returns list of available theme names
func GetAvailableThemes() []string {
	themes := []string{"default"}

	add := func(dir string) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return
		}
		for _, entry := range entries {
			if filepath.Ext(entry.Name()) != ".json" {
				continue
			}
			name := strings.TrimSuffix(entry.Name(), ".json")
			if !slices.Contains(themes, name) {
				themes = append(themes, name)
			}
		}
	}

	add("themes")
	if dir, err := configDir(); err == nil {
		add(filepath.Join(dir, "themes"))
	}

	return themes
}
