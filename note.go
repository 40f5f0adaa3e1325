package pianoroll

import (
	"math"

	"github.com/google/uuid"
	"gitlab.com/gomidi/midi/v2"
)

type (
	// NoteID identifies a note for its whole lifetime. Copies of a note (in the
	// clipboard, in the undo history, in a gesture buffer) share the ID with
	// the note they were copied from.
	NoteID string

	// Note is a single note on the piano roll: a start position and duration
	// in ticks, a pitch, a velocity and the vibrato and lyric parameters used
	// by singing synthesizers.
	Note struct {
		ID           NoteID      `yaml:"id"`
		Tick         int         `yaml:"tick"`
		Duration     int         `yaml:"duration"`
		NoteNumber   int         `yaml:"note"`
		Velocity     int         `yaml:"velocity"`
		Lyric        string      `yaml:"lyric,omitempty"`
		Selected     bool        `yaml:"selected,omitempty"`
		VibratoDepth float64     `yaml:"vibrato_depth"`
		VibratoRate  float64     `yaml:"vibrato_rate"`
		VibratoDelay float64     `yaml:"vibrato_delay"`
		VibratoMode  VibratoMode `yaml:"vibrato_mode"`
	}

	// Notes is an ordered collection of notes; the order is the draw order,
	// later notes are drawn on top of earlier ones.
	Notes []Note

	VibratoMode int
)

const (
	VibratoNormal VibratoMode = iota
	VibratoAlternate
)

const (
	MinNoteNumber   = 0
	MaxNoteNumber   = 127
	MinVelocity     = 0
	MaxVelocity     = 127
	MinDuration     = 1
	MinVibratoDepth = 0
	MaxVibratoDepth = 200
	MinVibratoRate  = 5
	MaxVibratoRate  = 200

	// MaxVibratoDelayRatio bounds the vibrato delay to a fraction of the note
	// duration.
	MaxVibratoDelayRatio = 0.9
)

// NewNoteID returns a fresh random note ID.
func NewNoteID() NoteID {
	return NoteID(uuid.NewString())
}

// Toggle returns the other vibrato mode.
func (m VibratoMode) Toggle() VibratoMode {
	return (m + 1) % 2
}

func (m VibratoMode) String() string {
	switch m {
	case VibratoAlternate:
		return "alternate"
	default:
		return "normal"
	}
}

// End returns the tick right after the last tick of the note.
func (n Note) End() int {
	return n.Tick + n.Duration
}

// PitchName returns the human readable name of the note number, e.g. "C5".
func (n Note) PitchName() string {
	return midi.Note(uint8(ClampNoteNumber(n.NoteNumber))).String()
}

// Clamp returns a copy of the note with all the numeric fields clamped to
// their valid ranges. The vibrato delay is clamped after the duration, as its
// upper bound depends on it.
func (n Note) Clamp() Note {
	n.Tick = ClampTick(n.Tick)
	n.Duration = ClampDuration(n.Duration)
	n.NoteNumber = ClampNoteNumber(n.NoteNumber)
	n.Velocity = ClampVelocity(n.Velocity)
	n.VibratoDepth = clampFloat(n.VibratoDepth, MinVibratoDepth, MaxVibratoDepth)
	n.VibratoRate = clampFloat(n.VibratoRate, MinVibratoRate, MaxVibratoRate)
	n.VibratoDelay = ClampVibratoDelay(n.VibratoDelay, n.Duration)
	if n.VibratoMode != VibratoAlternate {
		n.VibratoMode = VibratoNormal
	}
	return n
}

// Valid reports whether all the fields of the note are within their ranges.
func (n Note) Valid() bool {
	return n == n.Clamp()
}

func ClampTick(tick int) int {
	return max(tick, 0)
}

func ClampDuration(duration int) int {
	return max(duration, MinDuration)
}

func ClampNoteNumber(noteNumber int) int {
	return min(max(noteNumber, MinNoteNumber), MaxNoteNumber)
}

func ClampVelocity(velocity int) int {
	return min(max(velocity, MinVelocity), MaxVelocity)
}

func ClampVibratoDelay(delay float64, duration int) float64 {
	return clampFloat(delay, 0, float64(duration)*MaxVibratoDelayRatio)
}

func clampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(math.Min(v, hi), lo)
}

// Copy returns a copy of the collection, so that the caller can build a new
// collection without touching the one the copy was made from.
func (n Notes) Copy() Notes {
	if n == nil {
		return nil
	}
	ret := make(Notes, len(n))
	copy(ret, n)
	return ret
}

// Selected returns the selected notes, in draw order.
func (n Notes) Selected() Notes {
	var ret Notes
	for _, note := range n {
		if note.Selected {
			ret = append(ret, note)
		}
	}
	return ret
}

// Unselected returns the notes that are not selected, in draw order.
func (n Notes) Unselected() Notes {
	var ret Notes
	for _, note := range n {
		if !note.Selected {
			ret = append(ret, note)
		}
	}
	return ret
}

// Index returns the position of the note with the given id, or -1.
func (n Notes) Index(id NoteID) int {
	for i, note := range n {
		if note.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the note with the given id.
func (n Notes) Find(id NoteID) (Note, bool) {
	if i := n.Index(id); i >= 0 {
		return n[i], true
	}
	return Note{}, false
}

// IDs returns the set of ids in the collection.
func (n Notes) IDs() map[NoteID]bool {
	ret := make(map[NoteID]bool, len(n))
	for _, note := range n {
		ret[note.ID] = true
	}
	return ret
}

// Span returns the first tick and the end tick of the notes. ok is false for
// an empty collection.
func (n Notes) Span() (start, end int, ok bool) {
	if len(n) == 0 {
		return 0, 0, false
	}
	start, end = math.MaxInt, math.MinInt
	for _, note := range n {
		start = min(start, note.Tick)
		end = max(end, note.End())
	}
	return start, end, true
}
