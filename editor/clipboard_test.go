package editor_test

import (
	"errors"
	"testing"

	"github.com/midi-editor/pianoroll"
	"github.com/midi-editor/pianoroll/editor"
)

func cmd(code string) editor.KeyEvent {
	return editor.KeyEvent{Code: code, Mods: editor.Modifiers{Meta: true}}
}

func TestCopyPasteShiftsToTimelinePosition(t *testing.T) {
	m, in := newInteraction(
		newNote("a", 100, 100, 60, true),
		newNote("b", 200, 100, 62, true),
		newNote("c", 0, 50, 40, false),
	)
	if !in.KeyDown(cmd("KeyC")) {
		t.Fatal("copy was not consumed")
	}
	if c := m.Clipboard(); c.Region != (editor.Region{Start: 100, Width: 200}) || len(c.Notes) != 2 {
		t.Fatalf("clipboard = %+v", c)
	}
	m.SetSelectionTicks(500)
	in.KeyDown(cmd("KeyV"))
	notes := m.Notes()
	if len(notes) != 5 {
		t.Fatalf("notes = %+v", notes)
	}
	pasted := notes.Selected()
	if len(pasted) != 2 {
		t.Fatalf("selection after paste = %+v", pasted)
	}
	if pasted[0].Tick != 500 || pasted[1].Tick != 600 || pasted[1].End() != 700 {
		t.Errorf("pasted notes = %+v, want [500, 700)", pasted)
	}
	for _, n := range pasted {
		if n.ID == "a" || n.ID == "b" {
			t.Errorf("pasted note reuses id %s", n.ID)
		}
	}
	if findNote(t, m, "a").Selected || findNote(t, m, "b").Selected {
		t.Error("paste should clear the previous selection")
	}
	m.History().Undo().Do()
	if len(m.Notes()) != 3 {
		t.Errorf("undo of paste left %d notes", len(m.Notes()))
	}
}

func TestCutDeletesAndCopies(t *testing.T) {
	m, in := newInteraction(
		newNote("a", 100, 100, 60, true),
		newNote("b", 0, 50, 40, false),
	)
	in.KeyDown(editor.KeyEvent{Code: "KeyX", Mods: editor.Modifiers{Ctrl: true}})
	if len(m.Notes()) != 1 || m.Notes()[0].ID != "b" {
		t.Errorf("notes after cut = %+v", m.Notes())
	}
	if c := m.Clipboard(); len(c.Notes) != 1 || c.Notes[0].ID != "a" {
		t.Errorf("clipboard = %+v", c)
	}
}

func TestPasteWithEmptyClipboardDoesNothing(t *testing.T) {
	m, in := newInteraction(newNote("a", 0, 480, 60, true))
	if m.Paste().Enabled() {
		t.Error("paste should be disabled")
	}
	in.KeyDown(cmd("KeyV"))
	if len(m.Notes()) != 1 || !m.Notes()[0].Selected {
		t.Errorf("notes = %+v", m.Notes())
	}
}

func TestKeyboardCommands(t *testing.T) {
	m, in := newInteraction(
		newNote("a", 0, 480, 60, true),
		newNote("b", 480, 480, 62, false),
	)
	if in.KeyDown(editor.KeyEvent{Code: "Backspace", InTextInput: true}) {
		t.Error("delete inside a text input should not be consumed")
	}
	if len(m.Notes()) != 2 {
		t.Fatal("delete inside a text input deleted notes")
	}
	in.KeyDown(editor.KeyEvent{Code: "Delete"})
	if len(m.Notes()) != 1 {
		t.Fatalf("notes after delete = %+v", m.Notes())
	}
	in.KeyDown(cmd("KeyZ"))
	if len(m.Notes()) != 2 {
		t.Errorf("undo did not restore the deleted note")
	}
	in.KeyDown(editor.KeyEvent{Code: "KeyZ", Mods: editor.Modifiers{Meta: true, Shift: true}})
	if len(m.Notes()) != 1 {
		t.Errorf("redo did not delete the note again")
	}
	in.KeyDown(cmd("KeyA"))
	if n := m.Notes().Selected(); len(n) != 1 || n[0].ID != "b" {
		t.Errorf("select all = %+v", n)
	}
	in.KeyDown(cmd("ArrowUp"))
	if n := findNote(t, m, "b"); n.NoteNumber != 74 {
		t.Errorf("octave up: note number = %d", n.NoteNumber)
	}
	in.KeyDown(cmd("ArrowDown"))
	in.KeyDown(cmd("ArrowDown"))
	if n := findNote(t, m, "b"); n.NoteNumber != 50 {
		t.Errorf("octave down: note number = %d", n.NoteNumber)
	}
	if in.KeyDown(editor.KeyEvent{Code: "KeyC"}) {
		t.Error("plain C should not be consumed")
	}
	if in.KeyDown(cmd("KeyQ")) {
		t.Error("unbound key should not be consumed")
	}
}

func TestSpaceTogglesPlayback(t *testing.T) {
	broker := editor.NewBroker()
	m := editor.NewModel(editor.WithBroker(broker))
	in := editor.NewInteraction(m)
	m.SetSelectionTicks(960)
	for len(broker.ToGUI) > 0 {
		<-broker.ToGUI
	}
	if !in.KeyDown(editor.KeyEvent{Code: "Space"}) {
		t.Fatal("space was not consumed")
	}
	msg := <-broker.ToGUI
	if msg.Kind != editor.GUIMessageTogglePlay || msg.Param != 960 {
		t.Errorf("message = %+v", msg)
	}
}

func TestClipboardText(t *testing.T) {
	c := editor.NewClipboard(pianoroll.Notes{newNote("a", 100, 100, 60, true), newNote("b", 250, 100, 61, false)})
	data, err := c.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	got, err := editor.UnmarshalClipboard(data)
	if err != nil {
		t.Fatalf("UnmarshalClipboard() error = %v", err)
	}
	if got.Region != (editor.Region{Start: 100, Width: 250}) || len(got.Notes) != 2 || got.Notes[1].Tick != 250 {
		t.Errorf("clipboard = %+v", got)
	}
	if _, err := editor.UnmarshalClipboard([]byte("region: {start: 0}")); !errors.Is(err, editor.ErrEmptyClipboard) {
		t.Errorf("error = %v, want ErrEmptyClipboard", err)
	}
	if _, err := editor.UnmarshalClipboard([]byte("notes: [")); err == nil {
		t.Error("expected a parse error")
	}
}
