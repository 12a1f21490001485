package scenario

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/airhockey/internal/geom"
	"github.com/san-kum/airhockey/internal/handle"
)

const testScript = `
description: keeper drill
jitter: 0.1
launch:
  - {x: 0, y: -2}
events:
  - {at: 0, kind: down, handle: 2, pointer: 5, x: 0, y: -250}
  - {at: 800, kind: up, pointer: 5}
drags:
  - {handle: 1, pointer: 6, from: {x: 0, y: 250}, to: {x: 0, y: 100}, start: 1000, duration: 100, steps: 2}
`

func TestParse(t *testing.T) {
	sc, err := Parse([]byte(testScript), "drill")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if sc.Name != "drill" || sc.Description != "keeper drill" {
		t.Errorf("got name %q description %q", sc.Name, sc.Description)
	}
	if sc.Launch[0] != geom.V(0, -2) || sc.Launch[1] != geom.Zero {
		t.Errorf("launch = %v", sc.Launch)
	}
	if len(sc.Events) != 6 {
		t.Fatalf("expected 2 events plus 4 drag events, got %d", len(sc.Events))
	}
	if e := sc.Events[0]; e.Kind != Down || e.Handle != handle.Two || e.Pointer != 5 {
		t.Errorf("first event = %+v", e)
	}
	if sc.Duration() != 1100 {
		t.Errorf("Duration() = %v, want 1100", sc.Duration())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"bad yaml", "events: [unterminated"},
		{"bad kind", "events:\n  - {at: 0, kind: tap}"},
		{"bad handle", "events:\n  - {at: 0, kind: down, handle: 3}"},
		{"bad drag handle", "drags:\n  - {handle: 0}"},
		{"too many launches", "launch: [{x: 1}, {x: 2}, {x: 3}]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.script), "x"); !errors.Is(err, ErrInvalidScript) {
				t.Errorf("expected ErrInvalidScript, got %v", err)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drill.yaml")
	if err := os.WriteFile(path, []byte(testScript), 0644); err != nil {
		t.Fatal(err)
	}

	sc, err := Resolve(path)
	if err != nil {
		t.Fatalf("resolve file failed: %v", err)
	}
	if sc.Name != "drill" {
		t.Errorf("expected name from file, got %q", sc.Name)
	}

	if sc, err := Resolve("wall"); err != nil || sc.Name != "wall" {
		t.Errorf("resolve preset: %v, %v", sc.Name, err)
	}
	if _, err := Resolve("missing.yml"); err == nil {
		t.Error("expected error for missing file")
	}
}
