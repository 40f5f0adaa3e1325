package editor

import (
	"github.com/midi-editor/pianoroll"
	"golang.org/x/text/unicode/norm"
)

type (
	// Action describes a user action that can be performed on the model, which
	// can be initiated by calling the Do() method. It is usually initiated by a
	// key press or a menu item. Action advertises whether it is enabled, so
	// the UI can e.g. gray out menu items when the underlying action is not
	// allowed. The underlying Doer can optionally implement the Enabler
	// interface to decide if the action is enabled or not; if it does not
	// implement the Enabler interface, the action is always allowed.
	Action struct {
		doer Doer
	}

	// Doer is an interface that defines a single Do() method, which is called
	// when an action is performed.
	Doer interface {
		Do()
	}

	// Enabler is an interface that defines a single Enabled() method, which
	// is used by the UI to check if the Action is enabled or not.
	Enabler interface {
		Enabled() bool
	}
)

// vibrato defaults of a new note
const (
	defaultVibratoDepth      = 10
	defaultVibratoRate       = 30
	defaultVibratoDelayRatio = 0.3
)

// scaling of the vibrato gestures, per pixel of pointer movement
const (
	vibratoDepthPerPixel = 0.6
	vibratoDelayPerPixel = 4
	vibratoRatePerPixel  = 0.15
)

// Action methods

func MakeAction(doer Doer) Action {
	return Action{doer: doer}
}

func (a Action) Do() {
	e, ok := a.doer.(Enabler)
	if ok && !e.Enabled() {
		return
	}
	if a.doer != nil {
		a.doer.Do()
	}
}

func (a Action) Enabled() bool {
	if a.doer == nil {
		return false // no doer, not allowed
	}
	e, ok := a.doer.(Enabler)
	if !ok {
		return true // not enabler, always allowed
	}
	return e.Enabled()
}

// AddNote creates a selected note at the tick and note number, using the last
// used velocity and duration. It returns the ID of the new note.
func (m *Model) AddNote(tick, noteNumber int) pianoroll.NoteID {
	n := m.newNote(tick, noteNumber)
	m.setNotes(concatNotes(m.d.Notes, pianoroll.Notes{n}))
	m.commit(HistoryEntry{Kind: HistoryAdd, Notes: pianoroll.Notes{n}})
	return n.ID
}

func (m *Model) newNote(tick, noteNumber int) pianoroll.Note {
	return pianoroll.Note{
		ID:           pianoroll.NewNoteID(),
		Tick:         tick,
		Duration:     m.d.LastDuration,
		NoteNumber:   noteNumber,
		Velocity:     m.d.LastVelocity,
		Lyric:        m.config.DefaultLyric,
		Selected:     true,
		VibratoDepth: defaultVibratoDepth,
		VibratoRate:  defaultVibratoRate,
		VibratoDelay: defaultVibratoDelayRatio * float64(m.d.LastDuration),
		VibratoMode:  pianoroll.VibratoNormal,
	}.Clamp()
}

// AddNotes appends copies of the notes with fresh IDs, recorded as a single
// history entry. It returns the new IDs.
func (m *Model) AddNotes(notes pianoroll.Notes) []pianoroll.NoteID {
	if len(notes) == 0 {
		return nil
	}
	added := make(pianoroll.Notes, len(notes))
	ids := make([]pianoroll.NoteID, len(notes))
	for i, n := range notes {
		n.ID = pianoroll.NewNoteID()
		added[i] = n.Clamp()
		ids[i] = n.ID
	}
	m.setNotes(concatNotes(m.d.Notes, added))
	m.commit(HistoryEntry{Kind: HistoryAdd, Notes: added})
	return ids
}

// ModifyNotes replaces the notes sharing an ID with clamped versions of the
// given notes, keeping their place in the draw order. Unknown IDs are
// ignored.
//
// During a gesture, the history gets at most one entry per gesture, holding
// the notes as they were when the gesture started; frames that bring the
// notes back to that state record nothing. Outside a gesture, every change
// records the previous versions of the notes.
func (m *Model) ModifyNotes(notes pianoroll.Notes) {
	clamped := make(pianoroll.Notes, 0, len(notes))
	for _, n := range notes {
		if m.d.Notes.Index(n.ID) >= 0 {
			clamped = append(clamped, n.Clamp())
		}
	}
	if len(clamped) == 0 {
		return
	}
	next, previous := replaceNotes(m.d.Notes, clamped)
	if sameNotes(next, m.d.Notes) {
		return
	}
	m.setNotes(next)
	if b := m.buffer; b != nil {
		top := m.history.Top()
		if sameNotes(clamped, b.Notes) || (top.Kind == HistoryModify && top.Gesture == b.Gesture) {
			return
		}
		m.commit(HistoryEntry{Kind: HistoryModify, Notes: b.Notes, Gesture: b.Gesture})
		return
	}
	m.commit(HistoryEntry{Kind: HistoryModify, Notes: previous})
}

// DeleteSelected returns an Action to delete the selected notes. It also
// clears the selection range of the timeline.
func (m *Model) DeleteSelected() Action { return MakeAction((*deleteSelected)(m)) }

type deleteSelected Model

func (m *deleteSelected) Enabled() bool { return hasSelected(m.d.Notes) }
func (m *deleteSelected) Do() {
	notes, removed, positions := removeNotes(m.d.Notes, m.d.Notes.Selected().IDs())
	(*Model)(m).setNotes(notes)
	(*Model)(m).commit(HistoryEntry{Kind: HistoryDelete, Notes: removed, Positions: positions})
	(*Model)(m).ClearSelectionRange()
}

// ToggleSelectedVibratoMode returns an Action to flip the vibrato mode of the
// selected notes. The change is undoable like any other modification.
func (m *Model) ToggleSelectedVibratoMode() Action {
	return MakeAction((*toggleSelectedVibratoMode)(m))
}

type toggleSelectedVibratoMode Model

func (m *toggleSelectedVibratoMode) Enabled() bool { return hasSelected(m.d.Notes) }
func (m *toggleSelectedVibratoMode) Do() {
	(*Model)(m).adjustSelected(func(_, n pianoroll.Note) pianoroll.Note {
		n.VibratoMode = n.VibratoMode.Toggle()
		return n
	})
}

// VibratoAdjust changes the vibrato depth and delay of the selected notes by
// offsets given in pixels of pointer movement. During a gesture, the offsets
// are applied to the notes as they were when the gesture started.
func (m *Model) VibratoAdjust(depthOffset, delayOffset float64) {
	m.adjustSelected(func(base, n pianoroll.Note) pianoroll.Note {
		n.VibratoDepth = base.VibratoDepth + vibratoDepthPerPixel*depthOffset
		n.VibratoDelay = base.VibratoDelay - vibratoDelayPerPixel*delayOffset
		return n
	})
}

// VibratoRateAdjust changes the vibrato rate of the selected notes, like
// VibratoAdjust.
func (m *Model) VibratoRateAdjust(rateOffset float64) {
	m.adjustSelected(func(base, n pianoroll.Note) pianoroll.Note {
		n.VibratoRate = base.VibratoRate - vibratoRatePerPixel*rateOffset
		return n
	})
}

// TransposeSelected moves the selected notes by semitones.
func (m *Model) TransposeSelected(semitones int) {
	m.adjustSelected(func(_, n pianoroll.Note) pianoroll.Note {
		n.NoteNumber += semitones
		return n
	})
}

func (m *Model) UpOctave() Action   { return MakeAction(transpose{m, 12}) }
func (m *Model) DownOctave() Action { return MakeAction(transpose{m, -12}) }

type transpose struct {
	*Model
	semitones int
}

func (t transpose) Enabled() bool { return hasSelected(t.d.Notes) }
func (t transpose) Do()           { t.TransposeSelected(t.semitones) }

// adjustSelected applies f to every selected note and routes the result
// through ModifyNotes. base is the note in the modification buffer when there
// is a gesture going on, the current note otherwise.
func (m *Model) adjustSelected(f func(base, n pianoroll.Note) pianoroll.Note) {
	var buffered pianoroll.Notes
	if m.buffer != nil {
		buffered = m.buffer.Notes
	}
	var ret pianoroll.Notes
	for _, n := range m.d.Notes {
		if !n.Selected {
			continue
		}
		base := n
		if b, ok := buffered.Find(n.ID); ok {
			base = b
		}
		ret = append(ret, f(base, n))
	}
	m.ModifyNotes(ret)
}

// UpdateLyric sets the lyric of the note. The text is stored in Unicode
// normalization form C, so that equal lyrics compare equal.
func (m *Model) UpdateLyric(id pianoroll.NoteID, lyric string) {
	n, ok := m.d.Notes.Find(id)
	if !ok {
		return
	}
	n.Lyric = norm.NFC.String(lyric)
	m.ModifyNotes(pianoroll.Notes{n})
}

// MoveToLatest moves the note to the end of the draw order, so that it is
// drawn on top of the others. It is not recorded in the history.
func (m *Model) MoveToLatest(id pianoroll.NoteID) {
	i := m.d.Notes.Index(id)
	if i < 0 || i == len(m.d.Notes)-1 {
		return
	}
	ret := make(pianoroll.Notes, 0, len(m.d.Notes))
	ret = append(ret, m.d.Notes[:i]...)
	ret = append(ret, m.d.Notes[i+1:]...)
	ret = append(ret, m.d.Notes[i])
	m.setNotes(ret)
}

// SelectNote adds the note to the selection.
func (m *Model) SelectNote(id pianoroll.NoteID) {
	i := m.d.Notes.Index(id)
	if i < 0 || m.d.Notes[i].Selected {
		return
	}
	ret := m.d.Notes.Copy()
	ret[i].Selected = true
	m.setNotes(ret)
}

// UnselectAll clears the selection.
func (m *Model) UnselectAll() {
	m.setSelectedAll(false)
}

// SelectAll returns an Action to select every note.
func (m *Model) SelectAll() Action { return MakeAction((*selectAll)(m)) }

type selectAll Model

func (m *selectAll) Enabled() bool { return len(m.d.Notes) > 0 }
func (m *selectAll) Do()           { (*Model)(m).setSelectedAll(true) }

func (m *Model) setSelectedAll(value bool) {
	changed := false
	for _, n := range m.d.Notes {
		if n.Selected != value {
			changed = true
			break
		}
	}
	if !changed {
		return
	}
	ret := m.d.Notes.Copy()
	for i := range ret {
		ret[i].Selected = value
	}
	m.setNotes(ret)
}

func hasSelected(notes pianoroll.Notes) bool {
	for _, n := range notes {
		if n.Selected {
			return true
		}
	}
	return false
}

func concatNotes(a, b pianoroll.Notes) pianoroll.Notes {
	ret := make(pianoroll.Notes, 0, len(a)+len(b))
	ret = append(ret, a...)
	return append(ret, b...)
}

// sameNotes reports whether the two collections hold equal notes, regardless
// of their order.
func sameNotes(a, b pianoroll.Notes) bool {
	if len(a) != len(b) {
		return false
	}
	byID := make(map[pianoroll.NoteID]pianoroll.Note, len(a))
	for _, n := range a {
		byID[n.ID] = n
	}
	for _, n := range b {
		if o, ok := byID[n.ID]; !ok || o != n {
			return false
		}
	}
	return true
}
