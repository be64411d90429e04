package ui

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/TylerBrock/colorjson"
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
	"github.com/olekukonko/tablewriter"
	"github.com/ygelfand/mpvctl/internal/config"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// MpvPurple is the accent of the default theme.
var MpvPurple = lipgloss.Color("#8f5dd1")

type MpvctlTint struct{}

func (t *MpvctlTint) DisplayName() string { return "mpvctl" }
func (t *MpvctlTint) ID() string          { return "mpvctl" }
func (t *MpvctlTint) About() string       { return "mpvctl default theme" }

func (t *MpvctlTint) Fg() lipgloss.TerminalColor          { return lipgloss.Color("#cccccc") }
func (t *MpvctlTint) Bg() lipgloss.TerminalColor          { return lipgloss.Color("#1a1a1a") }
func (t *MpvctlTint) SelectionBg() lipgloss.TerminalColor { return lipgloss.Color("#333333") }
func (t *MpvctlTint) Cursor() lipgloss.TerminalColor      { return MpvPurple }

func (t *MpvctlTint) BrightBlack() lipgloss.TerminalColor  { return lipgloss.Color("#4d4d4d") }
func (t *MpvctlTint) BrightBlue() lipgloss.TerminalColor   { return lipgloss.Color("#5bc0de") }
func (t *MpvctlTint) BrightCyan() lipgloss.TerminalColor   { return lipgloss.Color("#5bc0de") }
func (t *MpvctlTint) BrightGreen() lipgloss.TerminalColor  { return lipgloss.Color("#5cb85c") }
func (t *MpvctlTint) BrightPurple() lipgloss.TerminalColor { return lipgloss.Color("#b48ee8") }
func (t *MpvctlTint) BrightRed() lipgloss.TerminalColor    { return lipgloss.Color("#d9534f") }
func (t *MpvctlTint) BrightWhite() lipgloss.TerminalColor  { return lipgloss.Color("#ffffff") }
func (t *MpvctlTint) BrightYellow() lipgloss.TerminalColor { return lipgloss.Color("#f0ad4e") }

func (t *MpvctlTint) Black() lipgloss.TerminalColor  { return lipgloss.Color("#000000") }
func (t *MpvctlTint) Blue() lipgloss.TerminalColor   { return lipgloss.Color("#337ab7") }
func (t *MpvctlTint) Cyan() lipgloss.TerminalColor   { return lipgloss.Color("#5bc0de") }
func (t *MpvctlTint) Green() lipgloss.TerminalColor  { return lipgloss.Color("#5cb85c") }
func (t *MpvctlTint) Purple() lipgloss.TerminalColor { return MpvPurple }
func (t *MpvctlTint) Red() lipgloss.TerminalColor    { return lipgloss.Color("#d9534f") }
func (t *MpvctlTint) White() lipgloss.TerminalColor  { return lipgloss.Color("#cccccc") }
func (t *MpvctlTint) Yellow() lipgloss.TerminalColor { return lipgloss.Color("#f0ad4e") }

var MpvctlTheme = &MpvctlTint{}

// Themes lists the built-in theme followed by the bubbletint defaults.
func Themes() []tint.Tint {
	return append([]tint.Tint{MpvctlTheme}, tint.DefaultTints()...)
}

// ThemeByID returns the theme with the given id, falling back to the default.
func ThemeByID(id string) tint.Tint {
	for _, t := range Themes() {
		if t.ID() == id {
			return t
		}
	}
	return MpvctlTheme
}

// CurrentTheme returns the theme currently configured in config.Get()
func CurrentTheme() tint.Tint {
	return ThemeByID(config.Get().Theme)
}

// Accent returns the primary accent color for the theme (purple for our theme, cyan for others)
func Accent(t tint.Tint) lipgloss.TerminalColor {
	if t.ID() == "mpvctl" {
		return MpvPurple
	}
	return t.BrightCyan()
}

func TitleStyle(t tint.Tint) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(Accent(t)).
		MarginBottom(1)
}

func LabelStyle(t tint.Tint) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.BrightWhite()).
		Width(20)
}

func ValueStyle(t tint.Tint) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.White())
}

func ErrorStyle(t tint.Tint) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.BrightRed()).
		Bold(true)
}

func SuccessStyle(t tint.Tint) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.BrightGreen()).
		Bold(true)
}

// RenderError prints a styled error message
func RenderError(err error) {
	fmt.Fprintf(os.Stderr, "%s %v\n", ErrorStyle(CurrentTheme()).Render("Error:"), err)
}

// RenderSuccess prints a styled success message
func RenderSuccess(msg string) {
	fmt.Println(SuccessStyle(CurrentTheme()).Render(msg))
}

// outputFormats are the values accepted for the output setting.
var outputFormats = map[string]bool{
	"table": true, "json": true, "json-pretty": true, "yaml": true, "csv": true, "txt": true, "text": true,
}

// ValidOutputFormat reports whether format is one OutputData.Print understands.
func ValidOutputFormat(format string) bool {
	return outputFormats[format]
}

// OutputData represents data that can be printed in multiple formats
type OutputData struct {
	Title   string
	Headers []string
	Rows    [][]string
	Raw     interface{} // Used for JSON/YAML
}

// Print handles the output based on the configured format
func (d OutputData) Print() error {
	cfg := config.Get()
	// Robustly handle potentially quoted format strings from config
	format := strings.Trim(strings.ToLower(cfg.OutputFormat), "\"")

	switch format {
	case "json":
		return d.printJSON()
	case "json-pretty":
		return d.printJSONPretty()
	case "yaml":
		return d.printYAML()
	case "csv":
		return d.printCSV()
	case "txt", "text":
		return d.printText()
	case "table":
		fallthrough
	default:
		return d.printTable()
	}
}

func (d OutputData) printJSONPretty() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		b, err := json.MarshalIndent(d.Raw, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(b))
		return nil
	}

	rawJSON, err := json.Marshal(d.Raw)
	if err != nil {
		return err
	}
	var obj any
	if err := json.Unmarshal(rawJSON, &obj); err != nil {
		return err
	}

	f := colorjson.NewFormatter()
	f.Indent = 2
	b, err := f.Marshal(obj)
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func (d OutputData) printJSON() error {
	b, err := json.Marshal(d.Raw)
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func (d OutputData) printYAML() error {
	b, err := yaml.Marshal(d.Raw)
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func (d OutputData) printCSV() error {
	w := csv.NewWriter(os.Stdout)
	if err := w.Write(d.Headers); err != nil {
		return err
	}
	if err := w.WriteAll(d.Rows); err != nil {
		return err
	}
	w.Flush()
	return nil
}

func (d OutputData) printText() error {
	theme := CurrentTheme()
	if d.Title != "" {
		fmt.Println(TitleStyle(theme).Render(d.Title))
	}
	for _, row := range d.Rows {
		for i, val := range row {
			if i < len(d.Headers) {
				fmt.Printf("%s %s\n", LabelStyle(theme).Render(d.Headers[i]+":"), ValueStyle(theme).Render(val))
			}
		}
		fmt.Println()
	}
	return nil
}

func (d OutputData) printTable() error {
	if d.Title != "" {
		fmt.Println(TitleStyle(CurrentTheme()).Render(d.Title))
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header(d.Headers)
	table.Bulk(d.Rows)
	return table.Render()
}

// RenderSummary renders a list of key-value pairs
func RenderSummary(title string, items []struct{ Label, Value string }) {
	theme := CurrentTheme()
	if title != "" {
		fmt.Println(TitleStyle(theme).Render(title))
	}

	var b strings.Builder
	for _, item := range items {
		b.WriteString(fmt.Sprintf("%s %s\n", LabelStyle(theme).Render(item.Label+":"), ValueStyle(theme).Render(item.Value)))
	}
	fmt.Println(b.String())
}
