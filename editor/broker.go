package editor

import (
	"time"

	"github.com/midi-editor/pianoroll"
)

type (
	// Broker carries the messages from the model to the presentation layer.
	// The model never blocks on it: when the channel is full, the message is
	// dropped and the presentation layer is expected to re-read the model
	// state on the next message anyway.
	Broker struct {
		ToGUI chan MsgToGUI
	}

	MsgToGUI struct {
		Kind  GUIMessageKind
		Param int
		ID    pianoroll.NoteID
	}

	GUIMessageKind int
)

const (
	GUIMessageKindNone GUIMessageKind = iota
	GUIMessageNotesChanged
	GUIMessageSelectionChanged
	GUIMessageScaleChanged
	GUIMessageTempoChanged
	// GUIMessageFocusNote asks the presentation layer to move the keyboard
	// focus to the inline lyric editor of the note ID.
	GUIMessageFocusNote
	GUIMessageTogglePlay
)

func NewBroker() *Broker {
	return &Broker{
		ToGUI: make(chan MsgToGUI, 1024),
	}
}

func (k GUIMessageKind) String() string {
	switch k {
	case GUIMessageNotesChanged:
		return "NotesChanged"
	case GUIMessageSelectionChanged:
		return "SelectionChanged"
	case GUIMessageScaleChanged:
		return "ScaleChanged"
	case GUIMessageTempoChanged:
		return "TempoChanged"
	case GUIMessageFocusNote:
		return "FocusNote"
	case GUIMessageTogglePlay:
		return "TogglePlay"
	default:
		return "None"
	}
}

// TrySend is a helper function to send a value to a channel if it is not full.
// It is guaranteed to be non-blocking. Return true if the value was sent, false
// otherwise.
func TrySend[T any](c chan<- T, v T) bool {
	select {
	case c <- v:
	default:
		return false
	}
	return true
}

// TimeoutReceive waits up to t for a message on c. ok is false on timeout or
// when c is closed.
func TimeoutReceive[T any](c <-chan T, t time.Duration) (v T, ok bool) {
	select {
	case v, ok = <-c:
		return v, ok
	case <-time.After(t):
		return v, false
	}
}
