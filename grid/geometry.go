package grid

import "math"

const (
	// LaneHeight is the height of one pitch lane, in pixels.
	LaneHeight = 16.0
	// EdgeMargin is the width of the grab area at both ends of a note, in
	// pixels. Narrow notes use a quarter of their width instead.
	EdgeMargin = 5.0
)

type (
	// PitchRange is the range of note numbers shown on the piano roll, from
	// Start (bottom lane) to Start+NumOfKeys-1 (top lane).
	PitchRange struct {
		Start     int
		NumOfKeys int
	}

	Rect struct {
		X, Y, W, H float64
	}

	// Lane is the background stripe of one note number.
	Lane struct {
		NoteNumber int
		Rect       Rect
		Black      bool
	}
)

// TickFromOffsetX converts a horizontal pixel offset to ticks.
func TickFromOffsetX(scaleX, x float64) float64 {
	if scaleX <= 0 {
		return 0
	}
	return x / (BasePixelsPerBeat * scaleX) * TicksPerBeat
}

// OffsetXFromTick converts ticks to a horizontal pixel offset.
func OffsetXFromTick(scaleX, tick float64) float64 {
	return tick / TicksPerBeat * BasePixelsPerBeat * scaleX
}

// CanvasWidth returns the unscaled width of a timeline of tickRange ticks.
func CanvasWidth(tickRange int) float64 {
	return float64(tickRange) / TicksPerBeat * BasePixelsPerBeat
}

func (p PitchRange) CanvasHeight() float64 {
	return float64(p.NumOfKeys) * LaneHeight
}

// NoteNumFromOffsetY returns the note number of the lane at y. Offsets above
// or below the canvas give note numbers outside the range; callers clamp.
func (p PitchRange) NoteNumFromOffsetY(y float64) int {
	return p.Start + p.NumOfKeys - 1 - int(math.Floor(y/LaneHeight))
}

// OffsetYFromNoteNum returns the top edge of the lane of noteNumber.
func (p PitchRange) OffsetYFromNoteNum(noteNumber int) float64 {
	return float64(p.Start+p.NumOfKeys-1-noteNumber) * LaneHeight
}

// NoteRect returns the on-screen rectangle of a note.
func (p PitchRange) NoteRect(scaleX float64, tick, duration, noteNumber int) Rect {
	return Rect{
		X: OffsetXFromTick(scaleX, float64(tick)),
		Y: p.OffsetYFromNoteNum(noteNumber),
		W: OffsetXFromTick(scaleX, float64(duration)),
		H: LaneHeight,
	}
}

// Lanes returns the background lanes, from the top lane down.
func (p PitchRange) Lanes(width float64) []Lane {
	ret := make([]Lane, 0, max(p.NumOfKeys, 0))
	for n := p.Start + p.NumOfKeys - 1; n >= p.Start; n-- {
		ret = append(ret, Lane{
			NoteNumber: n,
			Rect:       Rect{X: 0, Y: p.OffsetYFromNoteNum(n), W: width, H: LaneHeight},
			Black:      IsBlackKey(n),
		})
	}
	return ret
}

// IsBlackKey reports whether the note number is a black key on a piano
// keyboard.
func IsBlackKey(noteNumber int) bool {
	switch ((noteNumber % 12) + 12) % 12 {
	case 1, 3, 6, 8, 10:
		return true
	}
	return false
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Intersects reports whether the two rectangles overlap with a positive area.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

func (r Rect) margin() float64 {
	return math.Min(EdgeMargin, r.W/4)
}

// LeftMarginHit reports whether x is within the left grab area of r.
func (r Rect) LeftMarginHit(x, y float64) bool {
	return r.Contains(x, y) && x-r.X < r.margin()
}

// RightMarginHit reports whether x is within the right grab area of r.
func (r Rect) RightMarginHit(x, y float64) bool {
	return r.Contains(x, y) && r.Right()-x <= r.margin()
}

// HitTest returns the index of the topmost rectangle containing the point, or
// -1. Later rectangles are drawn on top of earlier ones.
func HitTest(rects []Rect, x, y float64) int {
	for i := len(rects) - 1; i >= 0; i-- {
		if rects[i].Contains(x, y) {
			return i
		}
	}
	return -1
}

// Marquee returns the rectangle spanned by two corner points, in any order.
func Marquee(x1, y1, x2, y2 float64) Rect {
	return Rect{
		X: math.Min(x1, x2),
		Y: math.Min(y1, y2),
		W: math.Abs(x2 - x1),
		H: math.Abs(y2 - y1),
	}
}

// InMarquee reports whether r intersects the marquee. A marquee without area
// selects nothing.
func InMarquee(r, marquee Rect) bool {
	if marquee.W <= 0 || marquee.H <= 0 {
		return false
	}
	return r.Intersects(marquee)
}
