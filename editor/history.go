package editor

import (
	"github.com/midi-editor/pianoroll"
	"golang.org/x/exp/slices"
)

type (
	HistoryKind int

	// HistoryEntry records one change of the notes. Notes holds the added
	// notes for Add, the removed notes for Delete and the notes as they were
	// before the change for Modify. Positions holds the index of each removed
	// note for Delete.
	HistoryEntry struct {
		Kind      HistoryKind
		Notes     pianoroll.Notes
		Positions []int
		Gesture   int
	}

	// HistoryLog is a linear undo log. Entries[0] is always the Init entry,
	// so Head is always a valid index. Entries are never rewritten: the image
	// needed to redo an entry is captured when it is undone and stored aside.
	HistoryLog struct {
		Head    int
		Entries []HistoryEntry

		redo []HistoryEntry
	}

	// HistoryModel is the view of the model for stepping through the history.
	HistoryModel Model
)

const (
	HistoryInit HistoryKind = iota
	HistoryAdd
	HistoryModify
	HistoryDelete
)

func (k HistoryKind) String() string {
	switch k {
	case HistoryAdd:
		return "Add"
	case HistoryModify:
		return "Modify"
	case HistoryDelete:
		return "Delete"
	default:
		return "Init"
	}
}

func newHistoryLog() HistoryLog {
	return HistoryLog{
		Entries: []HistoryEntry{{Kind: HistoryInit}},
		redo:    []HistoryEntry{{Kind: HistoryInit}},
	}
}

// Top returns the entry at the head of the log.
func (h *HistoryLog) Top() HistoryEntry { return h.Entries[h.Head] }

func (h *HistoryLog) CanUndo() bool { return h.Head > 0 }
func (h *HistoryLog) CanRedo() bool { return h.Head < len(h.Entries)-1 }

// push discards the entries after the head and appends the entry.
func (h *HistoryLog) push(e HistoryEntry) {
	h.Entries = append(h.Entries[:h.Head+1:h.Head+1], e)
	h.redo = append(h.redo[:h.Head+1:h.Head+1], HistoryEntry{})
	h.Head++
}

// History returns the History view of the model, containing methods to
// manipulate the undo/redo history.
func (m *Model) History() *HistoryModel { return (*HistoryModel)(m) }

// Log returns a copy of the history log.
func (m *HistoryModel) Log() HistoryLog {
	h := m.history
	return HistoryLog{
		Head:    h.Head,
		Entries: slices.Clone(h.Entries),
		redo:    slices.Clone(h.redo),
	}
}

// Undo returns an Action to undo the change at the head of the history.
func (m *HistoryModel) Undo() Action { return MakeAction((*historyUndo)(m)) }

type historyUndo HistoryModel

func (m *historyUndo) Enabled() bool { return m.history.CanUndo() }
func (m *historyUndo) Do() {
	h := &m.history
	e := h.Entries[h.Head]
	notes := m.d.Notes
	var image HistoryEntry
	switch e.Kind {
	case HistoryAdd:
		notes, image.Notes, image.Positions = removeNotes(notes, e.Notes.IDs())
	case HistoryDelete:
		notes = insertNotes(notes, e.Notes, e.Positions)
	case HistoryModify:
		notes, image.Notes = replaceNotes(notes, e.Notes)
	}
	image.Kind = e.Kind
	h.redo[h.Head] = image
	h.Head--
	(*Model)(m).logger.Debug("undo", "kind", e.Kind, "notes", len(e.Notes), "head", h.Head)
	(*Model)(m).setNotes(notes)
}

// Redo returns an Action to redo the last undone change.
func (m *HistoryModel) Redo() Action { return MakeAction((*historyRedo)(m)) }

type historyRedo HistoryModel

func (m *historyRedo) Enabled() bool { return m.history.CanRedo() }
func (m *historyRedo) Do() {
	h := &m.history
	h.Head++
	e, image := h.Entries[h.Head], h.redo[h.Head]
	notes := m.d.Notes
	switch e.Kind {
	case HistoryAdd:
		notes = insertNotes(notes, image.Notes, image.Positions)
	case HistoryDelete:
		notes, _, _ = removeNotes(notes, e.Notes.IDs())
	case HistoryModify:
		notes, _ = replaceNotes(notes, image.Notes)
	}
	(*Model)(m).logger.Debug("redo", "kind", e.Kind, "notes", len(e.Notes), "head", h.Head)
	(*Model)(m).setNotes(notes)
}

// commit records a history entry. All the changes to the notes that can be
// undone go through here.
func (m *Model) commit(e HistoryEntry) {
	m.history.push(e)
	m.logger.Debug("history commit", "kind", e.Kind, "notes", len(e.Notes), "gesture", e.Gesture, "head", m.history.Head)
}

// removeNotes returns a new collection without the notes in ids, together
// with the removed notes and their indices in the original collection.
func removeNotes(notes pianoroll.Notes, ids map[pianoroll.NoteID]bool) (ret, removed pianoroll.Notes, positions []int) {
	ret = make(pianoroll.Notes, 0, len(notes))
	for i, n := range notes {
		if ids[n.ID] {
			removed = append(removed, n)
			positions = append(positions, i)
			continue
		}
		ret = append(ret, n)
	}
	return ret, removed, positions
}

// insertNotes is the inverse of removeNotes: positions are the indices the
// notes had, in increasing order.
func insertNotes(notes, inserted pianoroll.Notes, positions []int) pianoroll.Notes {
	ret := make(pianoroll.Notes, 0, len(notes)+len(inserted))
	ret = append(ret, notes...)
	for i, n := range inserted {
		pos := len(ret)
		if i < len(positions) {
			pos = min(max(positions[i], 0), len(ret))
		}
		ret = slices.Insert(ret, pos, n)
	}
	return ret
}

// replaceNotes replaces the notes sharing an ID with the given ones, keeping
// the order of the collection. It returns the previous versions of the
// replaced notes; IDs that are not found are ignored.
func replaceNotes(notes, replacements pianoroll.Notes) (ret, previous pianoroll.Notes) {
	byID := make(map[pianoroll.NoteID]pianoroll.Note, len(replacements))
	for _, n := range replacements {
		byID[n.ID] = n
	}
	ret = notes.Copy()
	for i, n := range ret {
		if r, ok := byID[n.ID]; ok {
			previous = append(previous, n)
			ret[i] = r
		}
	}
	return ret, previous
}
