package editor

import (
	"math"

	"github.com/midi-editor/pianoroll"
	"github.com/midi-editor/pianoroll/grid"
)

type (
	// Mode is what the ongoing pointer gesture does to the notes.
	Mode int

	// Guard is the precision of an ongoing drag. It escalates as the pointer
	// gets further from where the gesture started and never goes back down
	// within a gesture.
	Guard int

	Modifiers struct {
		Shift, Alt, Ctrl, Meta bool
	}

	// PointerEvent is a pointer event in pixels, relative to the top left
	// corner of the piano roll canvas.
	PointerEvent struct {
		X, Y      float64
		PointerID int
		Mods      Modifiers
	}

	WheelEvent struct {
		DeltaY float64
		Mods   Modifiers
	}

	Cursor string

	// Interaction is the pointer state machine of the piano roll. It turns
	// the raw pointer events into changes of the Model.
	Interaction struct {
		m         *Model
		mode      Mode
		guard     Guard
		pointerID int
		startX    float64
		startY    float64
		cursor    Cursor
		keys      KeyMap
	}
)

const (
	Idle Mode = iota
	DragMove
	TrimStart
	ExtendEnd
	MarqueeSelect
	VibratoAdjust
	VelocityAdjust
)

const (
	UnderThreshold Guard = iota
	FineTune
	SnapToGrid
)

const (
	CursorDefault   Cursor = "default"
	CursorColResize Cursor = "col-resize"
)

const (
	// fineTuneTicks is how far a note must be dragged before it starts to
	// follow the pointer tick by tick.
	fineTuneTicks = 96
	// velocityPixels is the drag distance that changes the velocity by one.
	velocityPixels = 3
	// zoomPerWheelUnit is the relative zoom change per unit of wheel delta.
	zoomPerWheelUnit = 0.01
)

func (m Mode) String() string {
	switch m {
	case DragMove:
		return "DragMove"
	case TrimStart:
		return "TrimStart"
	case ExtendEnd:
		return "ExtendEnd"
	case MarqueeSelect:
		return "MarqueeSelect"
	case VibratoAdjust:
		return "VibratoAdjust"
	case VelocityAdjust:
		return "VelocityAdjust"
	default:
		return "Idle"
	}
}

func (g Guard) String() string {
	switch g {
	case FineTune:
		return "FineTune"
	case SnapToGrid:
		return "SnapToGrid"
	default:
		return "UnderThreshold"
	}
}

// Command reports whether the platform command modifier (Meta or Ctrl) is
// held. It creates notes on empty space and adjusts velocity on notes.
func (m Modifiers) Command() bool { return m.Meta || m.Ctrl }

func NewInteraction(m *Model) *Interaction {
	return &Interaction{m: m, cursor: CursorDefault, keys: NewKeyMap(m.config.KeyBindings)}
}

func (in *Interaction) Mode() Mode      { return in.mode }
func (in *Interaction) Guard() Guard    { return in.guard }
func (in *Interaction) Cursor() Cursor  { return in.cursor }
func (in *Interaction) Model() *Model   { return in.m }
func (in *Interaction) Active() bool    { return in.mode != Idle }
func (in *Interaction) PointerID() int  { return in.pointerID }
func (in *Interaction) scaleX() float64 { return in.m.ScaleX() }

// Marquee returns the rectangle of the ongoing marquee selection.
func (in *Interaction) Marquee(x, y float64) (grid.Rect, bool) {
	if in.mode != MarqueeSelect {
		return grid.Rect{}, false
	}
	return grid.Marquee(in.startX, in.startY, x, y), true
}

// PointerDown starts a gesture. A note under the pointer is grabbed; with the
// command modifier a new note is created on empty space; otherwise a marquee
// selection starts.
func (in *Interaction) PointerDown(e PointerEvent) {
	m := in.m
	if in.mode != Idle {
		in.finish()
	}
	in.guard = UnderThreshold
	in.pointerID = e.PointerID
	in.startX, in.startY = e.X, e.Y
	m.ClearSelectionRange()
	hit, ok := m.NoteAt(e.X, e.Y)
	switch {
	case ok:
		if !hit.Selected && !e.Mods.Shift {
			m.UnselectAll()
		}
		m.SelectNote(hit.ID)
		m.SetSelectionTicks(hit.Tick)
		m.MoveToLatest(hit.ID)
		in.mode = in.modeForNote(hit, e)
		m.SetModificationBuffer(false, e.X, e.Y, hit.ID)
	case e.Mods.Command():
		m.UnselectAll()
		tick := grid.RoundDownToGrid(int(math.Floor(grid.TickFromOffsetX(in.scaleX(), e.X))), in.scaleX())
		noteNumber := pianoroll.ClampNoteNumber(m.PitchRange().NoteNumFromOffsetY(e.Y))
		id := m.AddNote(tick, noteNumber)
		m.SetSelectionTicks(tick)
		m.SetModificationBuffer(false, e.X, e.Y, id)
		in.mode = DragMove
	default:
		if !e.Mods.Shift {
			m.UnselectAll()
		}
		m.SetSelectionTicks(grid.NearestGridTick(in.tickAt(e.X), in.scaleX()))
		m.SetModificationBuffer(true, e.X, e.Y, "")
		in.mode = MarqueeSelect
	}
	m.logger.Debug("pointer down", "mode", in.mode, "x", e.X, "y", e.Y)
}

func (in *Interaction) modeForNote(n pianoroll.Note, e PointerEvent) Mode {
	r := in.m.NoteRect(n)
	switch {
	case r.RightMarginHit(e.X, e.Y):
		in.m.SetSelectionTicks(n.End())
		return ExtendEnd
	case r.LeftMarginHit(e.X, e.Y):
		return TrimStart
	case e.Mods.Alt:
		return VibratoAdjust
	case e.Mods.Command():
		return VelocityAdjust
	default:
		return DragMove
	}
}

// PointerMove continues the gesture. Every frame is computed from the notes
// and the pointer position at the start of the gesture, so repeating a move
// has the same result as doing it once. Without a gesture, it only updates
// the cursor hint.
func (in *Interaction) PointerMove(e PointerEvent) {
	if in.mode == Idle {
		in.updateCursor(e)
		return
	}
	if e.PointerID != in.pointerID {
		return
	}
	b, ok := in.m.ModificationBuffer()
	if !ok {
		return
	}
	dx, dy := e.X-b.InitX, e.Y-b.InitY
	pr := in.m.PitchRange()
	deltaTicks := int(math.Round(grid.TickFromOffsetX(in.scaleX(), dx)))
	deltaPitch := pr.NoteNumFromOffsetY(e.Y) - pr.NoteNumFromOffsetY(b.InitY)
	in.escalate(deltaTicks)
	switch in.mode {
	case DragMove:
		in.dragMove(b, deltaTicks, deltaPitch)
	case TrimStart:
		in.trimStart(b, deltaTicks)
	case ExtendEnd:
		in.extendEnd(b, deltaTicks)
	case MarqueeSelect:
		in.marqueeSelect(b, e)
	case VibratoAdjust:
		if e.Mods.Shift {
			in.m.VibratoRateAdjust(dy)
		} else {
			in.m.VibratoAdjust(dy, dx)
		}
	case VelocityAdjust:
		in.velocityAdjust(b, dy)
	}
}

func (in *Interaction) escalate(deltaTicks int) {
	d := deltaTicks
	if d < 0 {
		d = -d
	}
	switch {
	case d > grid.TickInGrid(in.scaleX()):
		in.guard = SnapToGrid
	case d > fineTuneTicks && in.guard < FineTune:
		in.guard = FineTune
	}
}

// snap returns the shift that brings edge+deltaTicks onto the nearest anchor,
// with the grid phased to phase. ok is false when no anchor is close enough;
// the frame is then skipped.
func (in *Interaction) snap(edge, deltaTicks, phase int) (shift int, ok bool) {
	a := grid.NearestAnchor(edge+deltaTicks, in.scaleX(), grid.GridOffsetOfTick(phase, in.scaleX()))
	if !a.Proximity {
		return 0, false
	}
	return a.Tick - edge, true
}

func (in *Interaction) dragMove(b ModificationBuffer, deltaTicks, deltaPitch int) {
	anchor := b.Anchor
	var shift int
	switch in.guard {
	case SnapToGrid:
		var ok bool
		if shift, ok = in.snap(anchor.Tick, deltaTicks, anchor.Tick); !ok {
			return
		}
	case FineTune:
		shift = deltaTicks
	}
	notes := make(pianoroll.Notes, len(b.Notes))
	for i, n := range b.Notes {
		n.NoteNumber += deltaPitch
		n.Tick += shift
		notes[i] = n
	}
	if in.guard != UnderThreshold {
		in.m.SetSelectionTicks(anchor.Tick + shift)
	}
	in.m.ModifyNotes(notes)
}

func (in *Interaction) trimStart(b ModificationBuffer, deltaTicks int) {
	anchor := b.Anchor
	var shift int
	switch in.guard {
	case SnapToGrid:
		var ok bool
		target := min(anchor.End()-1, anchor.Tick+deltaTicks)
		if shift, ok = in.snap(anchor.Tick, target-anchor.Tick, anchor.Tick); !ok {
			return
		}
	case FineTune:
		shift = deltaTicks
	}
	notes := make(pianoroll.Notes, len(b.Notes))
	for i, n := range b.Notes {
		notes[i] = trimmed(n, shift)
	}
	a := trimmed(anchor, shift)
	if in.guard != UnderThreshold {
		in.m.LastDuration().Int().Set(a.Duration)
		in.m.SetSelectionTicks(a.Tick)
	}
	in.m.ModifyNotes(notes)
}

// trimmed moves the start of the note by shift, keeping its end where it is.
func trimmed(n pianoroll.Note, shift int) pianoroll.Note {
	end := n.End()
	n.Tick = min(max(n.Tick+shift, 0), end-pianoroll.MinDuration)
	n.Duration = end - n.Tick
	return n
}

func (in *Interaction) extendEnd(b ModificationBuffer, deltaTicks int) {
	anchor := b.Anchor
	var shift int
	switch in.guard {
	case SnapToGrid:
		var ok bool
		if shift, ok = in.snap(anchor.End(), deltaTicks, anchor.End()); !ok {
			return
		}
	case FineTune:
		shift = deltaTicks
	}
	notes := make(pianoroll.Notes, len(b.Notes))
	for i, n := range b.Notes {
		notes[i] = extended(n, shift)
	}
	a := extended(anchor, shift)
	in.m.LastDuration().Int().Set(a.Duration)
	if in.guard != UnderThreshold {
		in.m.SetSelectionTicks(a.End())
	}
	in.m.ModifyNotes(notes)
}

func extended(n pianoroll.Note, shift int) pianoroll.Note {
	n.Duration = max(n.Duration+shift, pianoroll.MinDuration)
	return n
}

// marqueeSelect toggles the selection of every note touched by the marquee,
// starting from the selection at the start of the gesture, and selects the
// tick span of the marquee on the timeline.
func (in *Interaction) marqueeSelect(b ModificationBuffer, e PointerEvent) {
	rect := grid.Marquee(b.InitX, b.InitY, e.X, e.Y)
	notes := b.Notes.Copy()
	for i, n := range notes {
		if grid.InMarquee(in.m.NoteRect(n), rect) {
			notes[i].Selected = !n.Selected
		}
	}
	in.m.ModifyNotes(notes)
	from := grid.NearestGridTick(in.tickAt(b.InitX), in.scaleX())
	to := grid.NearestGridTick(in.tickAt(e.X), in.scaleX())
	in.m.SetSelectionRange(Range{Start: min(from, to), End: max(from, to)})
}

func (in *Interaction) velocityAdjust(b ModificationBuffer, dy float64) {
	notes := make(pianoroll.Notes, len(b.Notes))
	for i, n := range b.Notes {
		n.Velocity = velocityAfter(n.Velocity, dy)
		notes[i] = n
	}
	in.m.ModifyNotes(notes)
	in.m.LastVelocity().Int().Set(velocityAfter(b.Anchor.Velocity, dy))
}

func velocityAfter(velocity int, dy float64) int {
	return pianoroll.ClampVelocity(int(math.Round(float64(velocity) - dy/velocityPixels)))
}

// PointerUp ends the gesture. After a marquee selection, the timeline
// position moves to the end of the selected notes and the selection range.
// The gesture always ends, whatever happened to the selection.
func (in *Interaction) PointerUp(e PointerEvent) {
	if in.mode == Idle || e.PointerID != in.pointerID {
		return
	}
	defer in.finish()
	if in.mode != MarqueeSelect {
		return
	}
	selected := in.m.Notes().Selected()
	_, end, ok := selected.Span()
	if !ok {
		return
	}
	if r, ok := in.m.SelectionRange(); ok {
		end = max(end, r.End)
	}
	in.m.SetSelectionTicks(end)
}

// LostCapture ends the gesture like PointerUp does. The changes made so far
// are kept.
func (in *Interaction) LostCapture() {
	if in.mode == Idle {
		return
	}
	in.PointerUp(PointerEvent{PointerID: in.pointerID})
}

func (in *Interaction) finish() {
	in.m.logger.Debug("pointer up", "mode", in.mode, "guard", in.guard)
	in.mode = Idle
	in.m.ClearModificationBuffer()
}

// DoubleClick on a note toggles the vibrato mode of the selected notes when
// Alt is held, and otherwise asks for the lyric editor of the note.
func (in *Interaction) DoubleClick(e PointerEvent) {
	hit, ok := in.m.NoteAt(e.X, e.Y)
	if !ok {
		return
	}
	if e.Mods.Alt {
		in.m.ToggleSelectedVibratoMode().Do()
		return
	}
	in.m.FocusNote(hit.ID)
}

// Wheel zooms horizontally when the command modifier is held. It reports
// whether the event was consumed.
func (in *Interaction) Wheel(e WheelEvent) bool {
	if !e.Mods.Command() {
		return false
	}
	in.m.SetScaleX(in.scaleX() * (1 - zoomPerWheelUnit*e.DeltaY))
	return true
}

func (in *Interaction) updateCursor(e PointerEvent) {
	in.cursor = CursorDefault
	hit, ok := in.m.NoteAt(e.X, e.Y)
	if !ok {
		return
	}
	r := in.m.NoteRect(hit)
	if r.LeftMarginHit(e.X, e.Y) || r.RightMarginHit(e.X, e.Y) {
		in.cursor = CursorColResize
	}
}

func (in *Interaction) tickAt(x float64) int {
	return int(math.Round(grid.TickFromOffsetX(in.scaleX(), x)))
}
