package control

import (
	"testing"
	"time"

	"msc-monitor/theme"
)

func TestModeController_GuardWindow(t *testing.T) {
	rec := &recorder{}
	m := NewModeController(rec, 0, theme.DefaultBacklight())
	t0 := time.Unix(50, 0)

	if !m.OnEdge(EdgeRising, t0) {
		t.Fatalf("expected first press to toggle")
	}
	if m.OnEdge(EdgeRising, t0.Add(299*time.Millisecond)) {
		t.Fatalf("expected press within 300ms to be ignored")
	}
	if !m.Paused() {
		t.Fatalf("expected still paused after ignored press")
	}
	if !m.OnEdge(EdgeRising, t0.Add(300*time.Millisecond)) {
		t.Fatalf("expected press after the guard to toggle")
	}
	if len(rec.applied) != 2 {
		t.Fatalf("expected 2 directives, got %d", len(rec.applied))
	}
}

func TestModeController_FallingEdgeConsumed(t *testing.T) {
	rec := &recorder{}
	m := NewModeController(rec, 0, theme.DefaultBacklight())

	if m.OnEdge(EdgeFalling, time.Unix(1, 0)) {
		t.Fatalf("falling edge must not toggle")
	}
	if len(rec.applied) != 0 {
		t.Fatalf("expected no directive, got %d", len(rec.applied))
	}
}

func TestModeController_DirectiveTable(t *testing.T) {
	tests := []struct {
		paused, enabled bool
		color           theme.RGB
		status          string
	}{
		{true, true, theme.Red, StatusPaused},
		{false, true, theme.Green, StatusPass},
		{true, false, theme.Cyan, StatusPaused},
		{false, false, theme.Cyan, StatusPass},
	}
	for _, tt := range tests {
		d := directiveFor(tt.paused, tt.enabled, theme.DefaultBacklight())
		if d.Backlight != tt.color || d.Status != tt.status {
			t.Fatalf("paused=%v enabled=%v: got %+v", tt.paused, tt.enabled, d)
		}
		if d.RelayEnergized != tt.paused || d.PassthroughEnabled == tt.paused {
			t.Fatalf("paused=%v: relay/passthrough wrong: %+v", tt.paused, d)
		}
	}
}

func TestModeController_SetEnabledEmitsOnChangeOnly(t *testing.T) {
	rec := &recorder{}
	m := NewModeController(rec, 0, theme.DefaultBacklight())

	m.SetEnabled(true)
	if len(rec.applied) != 0 {
		t.Fatalf("no change must not emit")
	}
	m.SetEnabled(false)
	if len(rec.applied) != 1 || rec.last().Backlight != theme.Cyan {
		t.Fatalf("expected cyan directive, got %+v", rec.applied)
	}
	if m.OnEdge(EdgeRising, time.Unix(1, 0)) {
		t.Fatalf("disabled controller must ignore edges")
	}
}
