package editor

import (
	"io"
	"log/slog"
	"math"

	"github.com/midi-editor/pianoroll"
	"github.com/midi-editor/pianoroll/grid"
	"golang.org/x/exp/slices"
)

// Model implements the mutable state of the piano roll editor.
//
// Go does not have immutable slices, so every operation builds a new note
// slice instead of writing to the current one. This keeps the slices returned
// by Notes() and the snapshots referenced by the history valid after later
// edits. The model is owned by the GUI goroutine.
type (
	// modelData is the part of the model that describes the document being
	// edited.
	modelData struct {
		Notes          pianoroll.Notes
		SelectionRange Range
		HasSelection   bool
		SelectionTicks int
		LastVelocity   int
		LastDuration   int
		Tempo          int
	}

	Model struct {
		d       modelData
		history HistoryLog
		buffer  *ModificationBuffer
		gesture int
		scaleX  float64

		config    Config
		clipboard Clipboard
		broker    *Broker
		logger    *slog.Logger
	}

	// Range is a span of ticks on the timeline, Start inclusive, End
	// exclusive.
	Range struct {
		Start, End int
	}

	// ModificationBuffer is the snapshot of the notes taken when a pointer
	// gesture starts. Every frame of the gesture is computed from it, never
	// from the previous frame. Anchor is the note that was grabbed (or
	// created) by the gesture; it is the reference for snapping.
	ModificationBuffer struct {
		Notes        pianoroll.Notes
		Anchor       pianoroll.Note
		HasAnchor    bool
		InitX, InitY float64
		Gesture      int
	}

	Option func(*Model)
)

func WithConfig(c Config) Option {
	return func(m *Model) { m.config = c }
}

func WithBroker(b *Broker) Option {
	return func(m *Model) { m.broker = b }
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithNotes sets the initial notes of the model. The notes are clamped and
// notes without an ID get a fresh one.
func WithNotes(notes pianoroll.Notes) Option {
	return func(m *Model) {
		ret := make(pianoroll.Notes, 0, len(notes))
		used := map[pianoroll.NoteID]bool{}
		for _, n := range notes {
			if n.ID == "" || used[n.ID] {
				n.ID = pianoroll.NewNoteID()
			}
			used[n.ID] = true
			ret = append(ret, n.Clamp())
		}
		m.d.Notes = ret
	}
}

func NewModel(opts ...Option) *Model {
	ret := &Model{
		config: NewDefaultConfig(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(ret)
	}
	ret.d.LastVelocity = pianoroll.ClampVelocity(ret.config.DefaultVelocity)
	ret.d.LastDuration = pianoroll.ClampDuration(ret.config.DefaultDuration)
	ret.d.Tempo = ret.Tempo().Range().Clamp(ret.config.Tempo)
	ret.scaleX = max(ret.config.ScaleX, ret.config.MinScaleX())
	ret.history = newHistoryLog()
	return ret
}

// Notes returns the current notes in draw order. The returned slice must not
// be modified.
func (m *Model) Notes() pianoroll.Notes { return m.d.Notes }

func (m *Model) Config() Config { return m.config }

func (m *Model) PitchRange() grid.PitchRange { return m.config.PitchRange() }

func (m *Model) ScaleX() float64 { return m.scaleX }

// SetScaleX sets the horizontal zoom, never below the zoom at which the whole
// timeline fits the minimum canvas.
func (m *Model) SetScaleX(value float64) {
	if math.IsNaN(value) {
		return
	}
	value = max(value, m.config.MinScaleX())
	if value == m.scaleX {
		return
	}
	m.scaleX = value
	m.send(MsgToGUI{Kind: GUIMessageScaleChanged})
}

// SelectionRange returns the tick span selected on the timeline. ok is false
// when nothing is selected.
func (m *Model) SelectionRange() (r Range, ok bool) {
	return m.d.SelectionRange, m.d.HasSelection
}

func (m *Model) SetSelectionRange(r Range) {
	if r.End < r.Start {
		r.Start, r.End = r.End, r.Start
	}
	r.Start, r.End = pianoroll.ClampTick(r.Start), pianoroll.ClampTick(r.End)
	if m.d.HasSelection && m.d.SelectionRange == r {
		return
	}
	m.d.SelectionRange, m.d.HasSelection = r, true
	m.send(MsgToGUI{Kind: GUIMessageSelectionChanged})
}

func (m *Model) ClearSelectionRange() {
	if !m.d.HasSelection {
		return
	}
	m.d.SelectionRange, m.d.HasSelection = Range{}, false
	m.send(MsgToGUI{Kind: GUIMessageSelectionChanged})
}

// SelectionTicks returns the timeline position: where pasted notes go and
// where the playback would start.
func (m *Model) SelectionTicks() int { return m.d.SelectionTicks }

func (m *Model) SetSelectionTicks(ticks int) {
	ticks = pianoroll.ClampTick(ticks)
	if ticks == m.d.SelectionTicks {
		return
	}
	m.d.SelectionTicks = ticks
	m.send(MsgToGUI{Kind: GUIMessageSelectionChanged, Param: ticks})
}

// NoteAt returns the topmost note under the pixel position.
func (m *Model) NoteAt(x, y float64) (pianoroll.Note, bool) {
	i := grid.HitTest(m.noteRects(m.d.Notes), x, y)
	if i < 0 {
		return pianoroll.Note{}, false
	}
	return m.d.Notes[i], true
}

// NoteRect returns the on-screen rectangle of the note at the current zoom.
func (m *Model) NoteRect(n pianoroll.Note) grid.Rect {
	return m.PitchRange().NoteRect(m.scaleX, n.Tick, n.Duration, n.NoteNumber)
}

func (m *Model) noteRects(notes pianoroll.Notes) []grid.Rect {
	ret := make([]grid.Rect, len(notes))
	for i, n := range notes {
		ret[i] = m.NoteRect(n)
	}
	return ret
}

// ModificationBuffer returns the snapshot of the ongoing gesture.
func (m *Model) ModificationBuffer() (ModificationBuffer, bool) {
	if m.buffer == nil {
		return ModificationBuffer{}, false
	}
	return *m.buffer, true
}

// SetModificationBuffer starts a gesture: it snapshots either all the notes or
// only the selected ones, together with the pointer position. anchor is the
// note the gesture grabbed; it must be part of the snapshot, otherwise the
// buffer has no anchor.
func (m *Model) SetModificationBuffer(all bool, initX, initY float64, anchor pianoroll.NoteID) {
	notes := m.d.Notes.Selected()
	if all {
		notes = m.d.Notes.Copy()
	}
	m.gesture++
	b := &ModificationBuffer{
		Notes:   notes,
		InitX:   initX,
		InitY:   initY,
		Gesture: m.gesture,
	}
	if anchor != "" {
		b.Anchor, b.HasAnchor = notes.Find(anchor)
	}
	m.buffer = b
	m.logger.Debug("gesture started", "gesture", b.Gesture, "notes", len(notes), "all", all)
}

func (m *Model) ClearModificationBuffer() {
	if m.buffer == nil {
		return
	}
	m.logger.Debug("gesture ended", "gesture", m.buffer.Gesture)
	m.buffer = nil
}

// FocusNote asks the presentation layer to focus the inline lyric editor of
// the note.
func (m *Model) FocusNote(id pianoroll.NoteID) {
	if m.d.Notes.Index(id) < 0 {
		return
	}
	m.send(MsgToGUI{Kind: GUIMessageFocusNote, ID: id})
}

// setNotes replaces the note collection and informs the GUI. The selection
// predicate lives in the notes, so a change of the selection is a change of
// the notes too.
func (m *Model) setNotes(notes pianoroll.Notes) {
	selectionChanged := !slices.EqualFunc(m.d.Notes.Selected(), notes.Selected(), func(a, b pianoroll.Note) bool { return a.ID == b.ID })
	m.d.Notes = notes
	m.send(MsgToGUI{Kind: GUIMessageNotesChanged, Param: len(notes)})
	if selectionChanged {
		m.send(MsgToGUI{Kind: GUIMessageSelectionChanged, Param: m.d.SelectionTicks})
	}
}

func (m *Model) send(msg MsgToGUI) {
	if m.broker == nil {
		return
	}
	TrySend(m.broker.ToGUI, msg)
}
