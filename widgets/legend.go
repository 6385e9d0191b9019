package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"msc-monitor/theme"
)

// RenderSwatch renders a single colored block
func RenderSwatch(color theme.RGB) string {
	style := lipgloss.NewStyle().Foreground(theme.Lipgloss(color))
	return style.Render("■")
}

// RenderLegendItem renders a single legend item: "■ Name - description"
func RenderLegendItem(color theme.RGB, name, desc string) string {
	return fmt.Sprintf("  %s %-8s %s", RenderSwatch(color), name, desc)
}

// RenderBacklightLegend lists what each backlight color means.
func RenderBacklightLegend(bl theme.Backlight) string {
	return strings.Join([]string{
		RenderLegendItem(bl.Pass, "PASS", "show control passes through"),
		RenderLegendItem(bl.Paused, "PAUSED", "thru blocked, relay energized"),
		RenderLegendItem(bl.Disabled, "DISABLED", "pause button ignored"),
		RenderLegendItem(bl.Flash, "RX", "command received"),
	}, "\n")
}

// RenderMeter draws the debounce counter as a bar with the hysteresis
// thresholds marked.
func RenderMeter(sym theme.Symbols, value, max int, marks ...int) string {
	var out strings.Builder
	for i := 0; i < max; i++ {
		mark := false
		for _, m := range marks {
			if i == m {
				mark = true
			}
		}
		switch {
		case mark:
			out.WriteRune(sym.MeterMark)
		case i < value:
			out.WriteRune(sym.MeterFull)
		default:
			out.WriteRune(sym.MeterEmpty)
		}
	}
	return out.String()
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}
