package editor

import (
	"math"
	"strconv"
	"strings"
)

// TempoDrag edits an Int by dragging the pointer vertically: one pixel up is
// one unit more. It also accepts typed values.
type TempoDrag struct {
	value    Int
	initY    float64
	buffered int
	dragging bool
}

func NewTempoDrag(value Int) *TempoDrag {
	return &TempoDrag{value: value}
}

func (t *TempoDrag) PointerDown(y float64) {
	t.initY = y
	t.buffered = t.value.Value()
	t.dragging = true
}

func (t *TempoDrag) PointerMove(y float64) {
	if !t.dragging {
		return
	}
	t.value.Set(int(math.Round(float64(t.buffered) - (y - t.initY))))
}

func (t *TempoDrag) PointerUp() {
	t.dragging = false
}

func (t *TempoDrag) Dragging() bool { return t.dragging }

// Enter sets the value from text typed by the user. Text that is not a
// number leaves the value untouched and returns false.
func (t *TempoDrag) Enter(text string) bool {
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	r := t.value.Range()
	t.value.Set(int(math.Round(math.Max(math.Min(f, float64(r.Max)), float64(r.Min)))))
	return true
}
