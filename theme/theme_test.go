package theme

import (
	"os"
	"path/filepath"
	"testing"
)

func writeGPL(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "backlight.gpl")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write palette: %v", err)
	}
	return path
}

func TestRGB_ScaleInvertHex(t *testing.T) {
	c := RGB{200, 100, 50}
	if got := c.Scale(0.5); got != (RGB{100, 50, 25}) {
		t.Fatalf("expected half, got %v", got)
	}
	if got := c.Scale(2); got != c {
		t.Fatalf("expected clamp at 1, got %v", got)
	}
	if got := c.Scale(-1); got != (RGB{}) {
		t.Fatalf("expected off below 0, got %v", got)
	}
	if got := Green.Invert(); got != (RGB{0xff, 0, 0xff}) {
		t.Fatalf("unexpected invert %v", got)
	}
	if got := FromHex24(0xff9090).Hex(); got != "#ff9090" {
		t.Fatalf("unexpected hex %s", got)
	}
}

func TestLoadBacklight(t *testing.T) {
	def, err := LoadBacklight("")
	if err != nil || def != DefaultBacklight() {
		t.Fatalf("expected defaults for empty path, got %+v err=%v", def, err)
	}

	path := writeGPL(t, `GIMP Palette
Name: stage
Columns: 4
# pass paused disabled flash
  0 128   0	pass
255   0   0	paused
 10 300  -4	disabled
  0   0 255	flash
`)
	bl, err := LoadBacklight(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if bl.Pass != (RGB{0, 128, 0}) || bl.Disabled != (RGB{10, 255, 0}) || bl.Flash != Blue {
		t.Fatalf("unexpected table %+v", bl)
	}

	short := writeGPL(t, "GIMP Palette\n1 2 3\n")
	if _, err := LoadBacklight(short); err == nil {
		t.Fatalf("expected error for a palette with fewer than 4 colors")
	}
}

func TestPalette_LookupAndIndex(t *testing.T) {
	p := &Palette{Colors: []RGB{{0, 0, 0}, {200, 100, 0}}}
	if got := p.Lookup(0.5); got != (RGB{100, 50, 0}) {
		t.Fatalf("expected midpoint, got %v", got)
	}
	if p.Index(-1) != p.Colors[0] || p.Index(9) != p.Colors[1] {
		t.Fatalf("Index must clamp")
	}
}

func TestTheme_DefaultsAndLCDStyle(t *testing.T) {
	th := New(nil)
	if th.Palette.Name != "console" {
		t.Fatalf("expected default palette, got %q", th.Palette.Name)
	}
	if th.Lamp(true) == th.Lamp(false) {
		t.Fatalf("lamp states must differ")
	}

	bright := th.LCDStyle(Green, 1)
	if bright.GetForeground() != Lipgloss(RGB{0x10, 0x10, 0x10}) {
		t.Fatalf("expected dark text on a bright backlight")
	}
	dim := th.LCDStyle(Green, 0.1)
	if dim.GetForeground() == Lipgloss(RGB{0x10, 0x10, 0x10}) {
		t.Fatalf("expected light text on a dim backlight")
	}
}
