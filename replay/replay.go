// Package replay drives the piano roll editor from a recorded script of input
// events. Scripts are YAML documents:
//
//	scale_x: 0.5
//	notes:
//	  - {tick: 0, duration: 480, note: 60, velocity: 64}
//	events:
//	  - {type: down, x: 10, y: 1080}
//	  - {type: move, x: 10, y: 1032}
//	  - {type: up, x: 10, y: 1032}
//	  - {type: key, code: KeyZ, meta: true}
package replay

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/midi-editor/pianoroll"
	"github.com/midi-editor/pianoroll/editor"
	"gopkg.in/yaml.v3"
)

var ErrUnknownEvent = errors.New("unknown event type")

type (
	EventType string

	Script struct {
		ScaleX float64         `yaml:"scale_x"`
		Notes  pianoroll.Notes `yaml:"notes"`
		Events []Event         `yaml:"events"`
	}

	// Event is one input event. Which fields are used depends on Type.
	Event struct {
		Type        EventType `yaml:"type"`
		X           float64   `yaml:"x"`
		Y           float64   `yaml:"y"`
		Pointer     int       `yaml:"pointer"`
		DeltaY      float64   `yaml:"delta_y"`
		Code        string    `yaml:"code"`
		Text        string    `yaml:"text"`
		Shift       bool      `yaml:"shift"`
		Alt         bool      `yaml:"alt"`
		Ctrl        bool      `yaml:"ctrl"`
		Meta        bool      `yaml:"meta"`
		InTextInput bool      `yaml:"in_text_input"`
	}
)

const (
	Down        EventType = "down"
	Move        EventType = "move"
	Up          EventType = "up"
	Cancel      EventType = "cancel"
	DoubleClick EventType = "double_click"
	Wheel       EventType = "wheel"
	Key         EventType = "key"
	Undo        EventType = "undo"
	Redo        EventType = "redo"
	// Lyric sets the lyric of the note under X, Y to Text.
	Lyric EventType = "lyric"
	// Tempo enters Text as the tempo.
	Tempo EventType = "tempo"
)

func (t EventType) Valid() bool {
	switch t {
	case Down, Move, Up, Cancel, DoubleClick, Wheel, Key, Undo, Redo, Lyric, Tempo:
		return true
	}
	return false
}

// Load reads and validates a script.
func Load(r io.Reader) (Script, error) {
	var s Script
	if err := yaml.NewDecoder(r).Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Script{}, fmt.Errorf("could not decode script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Script{}, err
	}
	return s, nil
}

func LoadFile(path string) (Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return Script{}, fmt.Errorf("could not open script: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func (s Script) Validate() error {
	for i, e := range s.Events {
		if !e.Type.Valid() {
			return fmt.Errorf("event %d: %w %q", i, ErrUnknownEvent, e.Type)
		}
	}
	return nil
}

// NewModel returns a model holding the initial notes of the script, at the
// zoom of the script.
func (s Script) NewModel(opts ...editor.Option) *editor.Model {
	m := editor.NewModel(append(opts, editor.WithNotes(s.Notes))...)
	if s.ScaleX > 0 {
		m.SetScaleX(s.ScaleX)
	}
	return m
}

// Run feeds the events to the interaction in order. It stops at the first
// event of an unknown type.
func Run(in *editor.Interaction, events []Event) error {
	tempo := editor.NewTempoDrag(in.Model().Tempo().Int())
	for i, e := range events {
		mods := editor.Modifiers{Shift: e.Shift, Alt: e.Alt, Ctrl: e.Ctrl, Meta: e.Meta}
		p := editor.PointerEvent{X: e.X, Y: e.Y, PointerID: e.Pointer, Mods: mods}
		switch e.Type {
		case Down:
			in.PointerDown(p)
		case Move:
			in.PointerMove(p)
		case Up:
			in.PointerUp(p)
		case Cancel:
			in.LostCapture()
		case DoubleClick:
			in.DoubleClick(p)
		case Wheel:
			in.Wheel(editor.WheelEvent{DeltaY: e.DeltaY, Mods: mods})
		case Key:
			in.KeyDown(editor.KeyEvent{Code: e.Code, Mods: mods, InTextInput: e.InTextInput})
		case Undo:
			in.Model().History().Undo().Do()
		case Redo:
			in.Model().History().Redo().Do()
		case Lyric:
			if n, ok := in.Model().NoteAt(e.X, e.Y); ok {
				in.Model().UpdateLyric(n.ID, e.Text)
			}
		case Tempo:
			tempo.Enter(e.Text)
		default:
			return fmt.Errorf("event %d: %w %q", i, ErrUnknownEvent, e.Type)
		}
	}
	return nil
}
