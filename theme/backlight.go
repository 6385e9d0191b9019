package theme

import "fmt"

// Backlight colors of the character display (0xRRGGBB).
var (
	Red   = FromHex24(0xff0000)
	Green = FromHex24(0x00ff00)
	Blue  = FromHex24(0x0000ff)
	Cyan  = FromHex24(0x00ffff)
)

// Backlight is the color table the control core picks from.
type Backlight struct {
	Pass     RGB
	Paused   RGB
	Disabled RGB
	Flash    RGB
}

func DefaultBacklight() Backlight {
	return Backlight{
		Pass:     Green,
		Paused:   Red,
		Disabled: Cyan,
		Flash:    Blue,
	}
}

// BacklightFromPalette reads the table from the first four palette entries
// in the order pass, paused, disabled, flash.
func BacklightFromPalette(p *Palette) (Backlight, error) {
	if p == nil || len(p.Colors) < 4 {
		return Backlight{}, fmt.Errorf("backlight palette needs 4 colors (pass, paused, disabled, flash)")
	}
	return Backlight{
		Pass:     p.Index(0),
		Paused:   p.Index(1),
		Disabled: p.Index(2),
		Flash:    p.Index(3),
	}, nil
}

// LoadBacklight loads a .gpl backlight table; an empty path gives the defaults.
func LoadBacklight(path string) (Backlight, error) {
	if path == "" {
		return DefaultBacklight(), nil
	}
	p, err := LoadGPL(path)
	if err != nil {
		return Backlight{}, err
	}
	return BacklightFromPalette(p)
}
