package editor

import (
	"math"

	"github.com/midi-editor/pianoroll"
)

type (
	Int struct {
		IntData
	}

	IntData interface {
		Value() int
		Range() IntRange

		setValue(int)
	}

	IntRange struct {
		Min, Max int
	}

	LastVelocity Model
	LastDuration Model
	Tempo        Model
)

func (v Int) Add(delta int) (ok bool) {
	return v.Set(v.Value() + delta)
}

// Set clamps the value to the range and stores it. ok is false when the value
// did not change.
func (v Int) Set(value int) (ok bool) {
	value = v.Range().Clamp(value)
	if value == v.Value() {
		return false
	}
	v.setValue(value)
	return true
}

func (r IntRange) Clamp(value int) int {
	return max(min(value, r.Max), r.Min)
}

// Model methods

func (m *Model) LastVelocity() *LastVelocity { return (*LastVelocity)(m) }
func (m *Model) LastDuration() *LastDuration { return (*LastDuration)(m) }
func (m *Model) Tempo() *Tempo               { return (*Tempo)(m) }

// LastVelocity is the velocity of new notes; velocity gestures update it.

func (v *LastVelocity) Int() Int           { return Int{v} }
func (v *LastVelocity) Value() int         { return v.d.LastVelocity }
func (v *LastVelocity) setValue(value int) { v.d.LastVelocity = value }
func (v *LastVelocity) Range() IntRange {
	return IntRange{pianoroll.MinVelocity, pianoroll.MaxVelocity}
}

// LastDuration is the duration of new notes; trim and extend gestures update
// it.

func (v *LastDuration) Int() Int           { return Int{v} }
func (v *LastDuration) Value() int         { return v.d.LastDuration }
func (v *LastDuration) setValue(value int) { v.d.LastDuration = value }
func (v *LastDuration) Range() IntRange    { return IntRange{pianoroll.MinDuration, math.MaxInt32} }

// Tempo is not part of the note history.

func (v *Tempo) Int() Int        { return Int{v} }
func (v *Tempo) Value() int      { return v.d.Tempo }
func (v *Tempo) Range() IntRange { return IntRange{MinTempo, MaxTempo} }
func (v *Tempo) setValue(value int) {
	v.d.Tempo = value
	(*Model)(v).send(MsgToGUI{Kind: GUIMessageTempoChanged, Param: value})
}
