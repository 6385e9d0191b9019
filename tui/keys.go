package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"msc-monitor/widgets"
)

type keyMap struct {
	Press      key.Binding
	Interrupt  key.Binding
	Enable     key.Binding
	Dimmer     key.Binding
	Brighter   key.Binding
	ClearLCD   key.Binding
	ToggleHelp key.Binding
	Quit       key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Press: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "press pause button"),
		),
		Interrupt: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "hardware button edge"),
		),
		Enable: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "toggle enable switch"),
		),
		Dimmer: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "dim backlight"),
		),
		Brighter: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "brighten backlight"),
		),
		ClearLCD: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "reset display"),
		),
		ToggleHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// panelKeys only make sense with the simulated panel.
func (k keyMap) panelKeys() []key.Binding {
	return []key.Binding{k.Press, k.Interrupt, k.Enable, k.Dimmer, k.Brighter}
}

func (k keyMap) sections(simulated bool) []widgets.KeySection {
	var out []widgets.KeySection
	if simulated {
		out = append(out, section("Panel", k.panelKeys()))
	}
	out = append(out, section("Display", []key.Binding{k.ClearLCD, k.ToggleHelp, k.Quit}))
	return out
}

func section(title string, bindings []key.Binding) widgets.KeySection {
	sec := widgets.KeySection{Title: title}
	for _, b := range bindings {
		h := b.Help()
		sec.Keys = append(sec.Keys, widgets.KeyBinding{Key: h.Key, Desc: h.Desc})
	}
	return sec
}
