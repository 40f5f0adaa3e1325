package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/midi-editor/pianoroll"
	"github.com/midi-editor/pianoroll/editor"
)

func testResult() result {
	m := editor.NewModel(editor.WithNotes(pianoroll.Notes{{ID: "a", Tick: 480, Duration: 240, NoteNumber: 60, Velocity: 90, Lyric: "la"}}))
	return result{
		Notes:          m.Notes(),
		History:        m.History().Log(),
		SelectionTicks: 960,
		Tempo:          m.Tempo().Value(),
		ScaleX:         m.ScaleX(),
	}
}

func TestRenderDefaultTemplate(t *testing.T) {
	var buf bytes.Buffer
	if err := render(&buf, "", testResult()); err != nil {
		t.Fatalf("render() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"tick=480", "duration=240", "velocity=90", `lyric="la"`, "1 notes", "position 960", "tempo 120"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q does not contain %q", out, want)
		}
	}
}

func TestRenderTemplateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.tmpl")
	if err := os.WriteFile(path, []byte(`{{ range .Notes }}{{ .Tick | add 1 }}{{ end }}`), 0o644); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := render(&buf, path, testResult()); err != nil {
		t.Fatalf("render() error = %v", err)
	}
	if got := buf.String(); got != "481" {
		t.Errorf("output = %q, want 481", got)
	}
	if err := render(&buf, filepath.Join(t.TempDir(), "missing"), testResult()); err == nil {
		t.Error("expected an error for a missing template")
	}
}

func TestDrainMessages(t *testing.T) {
	broker := editor.NewBroker()
	m := editor.NewModel(editor.WithBroker(broker))
	in := editor.NewInteraction(m)
	in.KeyDown(editor.KeyEvent{Code: "Space"})
	in.KeyDown(editor.KeyEvent{Code: "Space"})
	var log bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&log, &slog.HandlerOptions{Level: slog.LevelDebug}))
	counts := drainMessages(logger, broker)
	if counts["TogglePlay"] != 2 {
		t.Errorf("counts = %v, want 2 TogglePlay", counts)
	}
	if len(broker.ToGUI) != 0 {
		t.Errorf("%d messages left in the broker", len(broker.ToGUI))
	}
	if !strings.Contains(log.String(), "kind=TogglePlay") {
		t.Errorf("log = %q", log.String())
	}
	if counts := drainMessages(logger, broker); len(counts) != 0 {
		t.Errorf("second drain = %v, want nothing", counts)
	}
}
