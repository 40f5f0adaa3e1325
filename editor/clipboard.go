package editor

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/midi-editor/pianoroll"
	"gopkg.in/yaml.v3"
)

var ErrEmptyClipboard = errors.New("clipboard has no notes")

type (
	// Clipboard holds copied notes together with the tick span they cover.
	Clipboard struct {
		Notes  pianoroll.Notes `yaml:"notes"`
		Region Region          `yaml:"region"`
	}

	Region struct {
		Start int `yaml:"start"`
		Width int `yaml:"width"`
	}
)

var (
	clipboardWriteAll = clipboard.WriteAll
	clipboardReadAll  = clipboard.ReadAll
)

func NewClipboard(notes pianoroll.Notes) Clipboard {
	start, end, _ := notes.Span()
	return Clipboard{
		Notes:  notes.Copy(),
		Region: Region{Start: start, Width: end - start},
	}
}

func (c Clipboard) Empty() bool { return len(c.Notes) == 0 }

// Shifted returns the notes moved so that the start of the region is at tick.
func (c Clipboard) Shifted(tick int) pianoroll.Notes {
	ret := make(pianoroll.Notes, len(c.Notes))
	for i, n := range c.Notes {
		n.Tick = tick + n.Tick - c.Region.Start
		ret[i] = n
	}
	return ret
}

func (c Clipboard) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// UnmarshalClipboard parses clipboard text written by Clipboard.Marshal.
func UnmarshalClipboard(data []byte) (Clipboard, error) {
	var c Clipboard
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Clipboard{}, fmt.Errorf("could not parse clipboard: %w", err)
	}
	if c.Empty() {
		return Clipboard{}, ErrEmptyClipboard
	}
	return c, nil
}

func (m *Model) Clipboard() Clipboard { return m.clipboard }

// Copy returns an Action to copy the selected notes to the clipboard.
func (m *Model) Copy() Action { return MakeAction((*copyNotes)(m)) }

type copyNotes Model

func (m *copyNotes) Enabled() bool { return hasSelected(m.d.Notes) }
func (m *copyNotes) Do() {
	m.clipboard = NewClipboard(m.d.Notes.Selected())
	if m.config.SystemClipboard {
		(*Model)(m).writeSystemClipboard()
	}
}

// Cut returns an Action to copy the selected notes to the clipboard and then
// delete them.
func (m *Model) Cut() Action { return MakeAction((*cutNotes)(m)) }

type cutNotes Model

func (m *cutNotes) Enabled() bool { return hasSelected(m.d.Notes) }
func (m *cutNotes) Do() {
	(*Model)(m).Copy().Do()
	(*Model)(m).DeleteSelected().Do()
}

// Paste returns an Action to add the notes of the clipboard at the timeline
// position. The pasted notes get new IDs and become the selection.
func (m *Model) Paste() Action { return MakeAction((*pasteNotes)(m)) }

type pasteNotes Model

func (m *pasteNotes) Enabled() bool { return !m.clipboard.Empty() || m.config.SystemClipboard }
func (m *pasteNotes) Do() {
	c := m.clipboard
	if c.Empty() {
		var err error
		if c, err = (*Model)(m).readSystemClipboard(); err != nil {
			m.logger.Warn("paste failed", "error", err)
			return
		}
	}
	(*Model)(m).UnselectAll()
	(*Model)(m).AddNotes(c.Shifted(m.d.SelectionTicks))
}

func (m *Model) writeSystemClipboard() {
	data, err := m.clipboard.Marshal()
	if err != nil {
		m.logger.Warn("could not encode clipboard", "error", err)
		return
	}
	if err := clipboardWriteAll(string(data)); err != nil {
		m.logger.Warn("could not write system clipboard", "error", err)
	}
}

func (m *Model) readSystemClipboard() (Clipboard, error) {
	if !m.config.SystemClipboard {
		return Clipboard{}, ErrEmptyClipboard
	}
	text, err := clipboardReadAll()
	if err != nil {
		return Clipboard{}, fmt.Errorf("could not read system clipboard: %w", err)
	}
	return UnmarshalClipboard([]byte(text))
}
