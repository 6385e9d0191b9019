package theme

import (
	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	// Status lamps
	LampOn  rune // ● relay energized / thru open
	LampOff rune // ○

	// Debounce meter
	MeterFull  rune // █ counter above the cell
	MeterEmpty rune // ░
	MeterMark  rune // │ hysteresis threshold
}

// DefaultPalette is the UI chrome ramp, dark to bright.
func DefaultPalette() *Palette {
	return &Palette{
		Name: "console",
		Colors: []RGB{
			{0x12, 0x12, 0x16},
			{0x2a, 0x2a, 0x33},
			{0x5c, 0x5f, 0x6b},
			{0xb8, 0xbc, 0xc8},
			{0xff, 0xb0, 0x3b},
			{0xff, 0x5f, 0x56},
			{0x6b, 0xdd, 0x8b},
		},
	}
}

func New(palette *Palette) *Theme {
	if palette == nil || len(palette.Colors) == 0 {
		palette = DefaultPalette()
	}
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			LampOn:  '●',
			LampOff: '○',

			MeterFull:  '█',
			MeterEmpty: '░',
			MeterMark:  '│',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0
	RoleSurface = 0.17
	RoleMuted   = 0.33
	RoleFG      = 0.5
	RoleAccent  = 0.67
	RoleWarning = 0.83
	RoleSuccess = 1.0
)

// Style helpers

func (t *Theme) BG() lipgloss.Color {
	return Lipgloss(t.Palette.Lookup(RoleBG))
}

func (t *Theme) Surface() lipgloss.Color {
	return Lipgloss(t.Palette.Lookup(RoleSurface))
}

func (t *Theme) FG() lipgloss.Color {
	return Lipgloss(t.Palette.Lookup(RoleFG))
}

func (t *Theme) Accent() lipgloss.Color {
	return Lipgloss(t.Palette.Lookup(RoleAccent))
}

func (t *Theme) Muted() lipgloss.Color {
	return Lipgloss(t.Palette.Lookup(RoleMuted))
}

func (t *Theme) Warning() lipgloss.Color {
	return Lipgloss(t.Palette.Lookup(RoleWarning))
}

func (t *Theme) Success() lipgloss.Color {
	return Lipgloss(t.Palette.Lookup(RoleSuccess))
}

// Lamp renders an on/off indicator in the success or muted color.
func (t *Theme) Lamp(on bool) string {
	if on {
		return lipgloss.NewStyle().Foreground(t.Success()).Render(string(t.Symbols.LampOn))
	}
	return lipgloss.NewStyle().Foreground(t.Muted()).Render(string(t.Symbols.LampOff))
}

// LCDStyle is the character cell style for a backlight color at the given
// brightness. Text goes dark on bright backlights and light on dim ones.
func (t *Theme) LCDStyle(backlight RGB, brightness float64) lipgloss.Style {
	bg := backlight.Scale(brightness)
	fg := RGB{0x10, 0x10, 0x10}
	if luma(bg) < 0x60 {
		fg = t.Palette.Lookup(RoleFG)
	}
	return lipgloss.NewStyle().
		Background(Lipgloss(bg)).
		Foreground(Lipgloss(fg))
}

// Lipgloss converts a color for lipgloss.
func Lipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(c.Hex())
}

func luma(c RGB) int {
	return (299*int(c[0]) + 587*int(c[1]) + 114*int(c[2])) / 1000
}
