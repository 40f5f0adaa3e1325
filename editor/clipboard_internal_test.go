package editor

import (
	"errors"
	"testing"

	"github.com/midi-editor/pianoroll"
)

func swapSystemClipboard(t *testing.T, read func() (string, error), write func(string) error) {
	t.Helper()
	oldRead, oldWrite := clipboardReadAll, clipboardWriteAll
	clipboardReadAll, clipboardWriteAll = read, write
	t.Cleanup(func() {
		clipboardReadAll, clipboardWriteAll = oldRead, oldWrite
	})
}

func TestSystemClipboardRoundTrip(t *testing.T) {
	var system string
	swapSystemClipboard(t,
		func() (string, error) { return system, nil },
		func(s string) error { system = s; return nil },
	)
	cfg := NewDefaultConfig()
	cfg.SystemClipboard = true
	src := NewModel(WithConfig(cfg), WithNotes(pianoroll.Notes{{ID: "a", Tick: 480, Duration: 240, NoteNumber: 60, Selected: true}}))
	src.Copy().Do()
	if system == "" {
		t.Fatal("copy did not write the system clipboard")
	}

	dst := NewModel(WithConfig(cfg))
	if !dst.Paste().Enabled() {
		t.Fatal("paste should be enabled with the system clipboard")
	}
	dst.SetSelectionTicks(960)
	dst.Paste().Do()
	notes := dst.Notes()
	if len(notes) != 1 || notes[0].Tick != 960 || notes[0].Duration != 240 || notes[0].ID == "a" {
		t.Errorf("pasted notes = %+v", notes)
	}
}

func TestSystemClipboardFailureIsNotFatal(t *testing.T) {
	swapSystemClipboard(t,
		func() (string, error) { return "", errors.New("no clipboard utility") },
		func(string) error { return errors.New("no clipboard utility") },
	)
	cfg := NewDefaultConfig()
	cfg.SystemClipboard = true
	m := NewModel(WithConfig(cfg), WithNotes(pianoroll.Notes{{ID: "a", Duration: 240, NoteNumber: 60, Selected: true}}))
	m.Copy().Do()
	if m.Clipboard().Empty() {
		t.Error("internal clipboard should still be filled")
	}

	empty := NewModel(WithConfig(cfg))
	empty.Paste().Do()
	if len(empty.Notes()) != 0 || empty.History().Log().Head != 0 {
		t.Error("failed paste changed the model")
	}
}
