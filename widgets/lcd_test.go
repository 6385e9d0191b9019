package widgets

import (
	"strings"
	"testing"

	"msc-monitor/control"
	"msc-monitor/msc"
	"msc-monitor/theme"
)

func TestLCD_BootScreen(t *testing.T) {
	rows := NewLCD().Rows()
	want := [LCDRows]string{
		"CUE#:               ",
		"LIST:          ID:  ",
		"WAITING FOR DATA... ",
		"                    ",
	}
	if rows != want {
		t.Fatalf("unexpected boot screen:\n%q", rows)
	}
}

func TestLCD_ShowCommand(t *testing.T) {
	l := NewLCD()
	l.ShowStatus(control.StatusPass)

	// F0 7F 01 02 10 01 31 32 2E 33 F7
	cmd := msc.Decode(msc.Encode(1, msc.TypeSound, msc.CodeGo, "12.3", ""))
	l.ShowCommand(cmd)
	rows := l.Rows()

	if rows[0] != "CUE#:12.3      SOUND" {
		t.Fatalf("row 0: %q", rows[0])
	}
	if rows[1] != "LIST:          ID:01" {
		t.Fatalf("row 1: %q", rows[1])
	}
	if rows[2] != "F07F0102100131322E33" {
		t.Fatalf("row 2: %q", rows[2])
	}
	// status marker prefix stays at col 8, command overwrites from col 9
	if rows[3] != "F7      -GO         " {
		t.Fatalf("row 3: %q", rows[3])
	}
}

func TestLCD_LongPacketAndUnknownType(t *testing.T) {
	l := NewLCD()
	frame := []byte{0xF0, 0x7F, 0x05, 0x02, 0x22, 0x01}
	frame = append(frame, []byte("123456789")...)
	cmd := msc.Decode(frame)
	l.ShowCommand(cmd)
	rows := l.Rows()

	if !strings.HasSuffix(rows[0], "  ???") {
		t.Fatalf("expected unknown type marker, got %q", rows[0])
	}
	if rows[3][:8] != "353637.." {
		t.Fatalf("expected truncation marker, got %q", rows[3])
	}
	if !strings.Contains(rows[3], "GO") {
		t.Fatalf("expected command name, got %q", rows[3])
	}
}

func TestLCD_StatusAndShorterCue(t *testing.T) {
	l := NewLCD()
	l.ShowCommand(msc.Decode(msc.Encode(0x7F, msc.TypeLighting, msc.CodeStop, "123.45", "6")))
	l.ShowCommand(msc.Decode(msc.Encode(0x7F, msc.TypeFireworks, msc.CodeFire, "", "")))
	l.ShowStatus(control.StatusPaused)
	rows := l.Rows()

	if rows[0] != "CUE#:"+strings.Repeat(" ", 11)+"PYRO" {
		t.Fatalf("expected cleared cue and PYRO, got %q", rows[0])
	}
	if rows[1] != "LIST:          ID:7F" {
		t.Fatalf("expected cleared list, got %q", rows[1])
	}
	if rows[3][8:] != "-MSC*PAUSED*" {
		t.Fatalf("expected paused marker, got %q", rows[3])
	}
}

func TestTypeLabel(t *testing.T) {
	for _, tt := range []struct {
		typ  msc.Type
		want string
	}{
		{msc.TypeLighting, "LIGHT"},
		{msc.TypeSound, "SOUND"},
		{msc.TypeFireworks, " PYRO"},
		{msc.TypeAll, "  ALL"},
		{msc.TypeUnknown, "  ???"},
	} {
		if got := TypeLabel(tt.typ); got != tt.want {
			t.Fatalf("%s: expected %q, got %q", tt.typ, tt.want, got)
		}
	}
}

func TestRenderMeter(t *testing.T) {
	sym := theme.New(nil).Symbols
	got := RenderMeter(sym, 3, 6, 4)
	if got != "███░│░" {
		t.Fatalf("unexpected meter %q", got)
	}
}

func TestRenderKeyHelp(t *testing.T) {
	out := RenderKeyHelp([]KeySection{{Title: "Panel", Keys: []KeyBinding{{Key: "space", Desc: "press"}}}})
	if out != "Panel\n  space        press" {
		t.Fatalf("unexpected help %q", out)
	}
}
