package msc

import "testing"

func TestCatalog_Size(t *testing.T) {
	if CatalogSize != 21 {
		t.Fatalf("expected 21 catalog slots, got %d", CatalogSize)
	}
	if len(Codes()) != 15 {
		t.Fatalf("expected 15 valid commands, got %d", len(Codes()))
	}
}

func TestCatalog_Names(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{CodeGo, "GO"},
		{CodeTimedGo, "TIMED GO"},
		{CodeAllOff, "ALL OFF"},
		{CodeGoOff, "GO-OFF"},
		{CodeStandbyPlus, "STANDBY+"},
		{CodeSequenceMinus, "SEQUENCE-"},
		{CodeInvalid, "INVALID"},
		{Code(0x0E), "INVALID"},
		{Code(200), "INVALID"},
	}
	for _, tt := range tests {
		if got := tt.code.Name(); got != tt.want {
			t.Fatalf("code 0x%02x: expected %q, got %q", uint8(tt.code), tt.want, got)
		}
	}
}

func TestCatalog_ParseType(t *testing.T) {
	known := map[byte]Type{0x01: TypeLighting, 0x10: TypeSound, 0x61: TypeFireworks, 0x7F: TypeAll}
	for b := 0; b < 256; b++ {
		want, ok := known[byte(b)]
		if !ok {
			want = TypeUnknown
		}
		if got := ParseType(byte(b)); got != want {
			t.Fatalf("byte 0x%02x: expected %s, got %s", b, want, got)
		}
	}
}

func TestCatalog_ByName(t *testing.T) {
	for _, code := range Codes() {
		got, ok := CodeByName(code.Name())
		if !ok || got != code {
			t.Fatalf("lookup of %q returned %s ok=%v", code.Name(), got, ok)
		}
	}
	if got, ok := CodeByName("timed_go"); !ok || got != CodeTimedGo {
		t.Fatalf("expected timed_go to resolve, got %s ok=%v", got, ok)
	}
	if _, ok := CodeByName("explode"); ok {
		t.Fatalf("expected unknown name to fail")
	}
	if got, ok := TypeByName("pyro"); !ok || got != TypeFireworks {
		t.Fatalf("expected pyro to resolve to FIREWORKS, got %s ok=%v", got, ok)
	}
}

func TestCatalog_Nameable(t *testing.T) {
	var names []Nameable = []Nameable{TypeSound, CodeStop, TypeUnknown, CodeInvalid}
	want := []string{"SOUND", "STOP", "UNKNOWN", "INVALID"}
	for i, n := range names {
		if n.Name() != want[i] {
			t.Fatalf("expected %q, got %q", want[i], n.Name())
		}
	}
}
