// Package grid converts between the pixel space of the piano roll and musical
// time, and computes the snapping grid for the current zoom.
//
// All the functions are pure. The zoom is given as scaleX, a multiplier of
// BasePixelsPerBeat; scaleX = 1 draws one beat BasePixelsPerBeat pixels wide.
package grid

import "math"

const (
	TicksPerBeat      = 480
	BasePixelsPerBeat = 48.0
	// MinGridPixel is the minimum distance between two grid lines, in pixels.
	// The grid resolution is chosen so that the lines are between
	// MinGridPixel and 2*MinGridPixel apart.
	MinGridPixel = 20.0
	// MinTicksInGrid is the finest grid resolution: a 1/32 of a beat.
	MinTicksInGrid = TicksPerBeat / 32
	// ProximityRatio is the fraction of a grid unit within which a tick can
	// snap to an anchor.
	ProximityRatio = 0.4
)

// Anchor is a candidate grid tick to snap to. Proximity is false when the
// anchor is too far away from the tick; callers should not snap then.
type Anchor struct {
	Tick      int
	Proximity bool
}

// TickInGrid returns the number of ticks between two grid lines at the zoom.
// Grid lines are kept at least MinGridPixel apart, but the spacing never
// drops below MinTicksInGrid, so at extreme zoom a grid cell is wider than
// the pixel band.
func TickInGrid(scaleX float64) int {
	pixelsPerBeat := BasePixelsPerBeat * scaleX
	ticks := TicksPerBeat
	if !(pixelsPerBeat > 0) || math.IsInf(pixelsPerBeat, 0) {
		return ticks
	}
	if pixelsPerBeat < MinGridPixel {
		for pixelsPerBeat < MinGridPixel && ticks < math.MaxInt32 {
			pixelsPerBeat *= 2
			ticks *= 2
		}
		return ticks
	}
	for pixelsPerBeat/2 >= MinGridPixel && ticks%2 == 0 && ticks/2 >= MinTicksInGrid {
		pixelsPerBeat /= 2
		ticks /= 2
	}
	return ticks
}

// NearestGridTick rounds tick to the closest grid line. Ties go to the upper
// grid line.
func NearestGridTick(tick int, scaleX float64) int {
	ticksInGrid := TickInGrid(scaleX)
	lower := floorDiv(tick, ticksInGrid) * ticksInGrid
	return closer(tick, lower, lower+ticksInGrid)
}

// NearestGridTickWithOffset rounds tick to the closest line of a grid that is
// shifted by offset ticks. Ties go to the upper grid line.
func NearestGridTickWithOffset(tick int, scaleX float64, offset int) int {
	ticksInGrid := TickInGrid(scaleX)
	gridAnchor := floorDiv(tick, ticksInGrid)*ticksInGrid + offset
	if tick < gridAnchor {
		return closer(tick, gridAnchor-ticksInGrid, gridAnchor)
	}
	return closer(tick, gridAnchor, gridAnchor+ticksInGrid)
}

// NearestAnchor picks the closer of the nearest grid tick and the nearest
// offset grid tick. When both are equally close, the offset one wins.
func NearestAnchor(tick int, scaleX float64, offset int) Anchor {
	ticksInGrid := TickInGrid(scaleX)
	plain := NearestGridTick(tick, scaleX)
	shifted := NearestGridTickWithOffset(tick, scaleX, offset)
	anchor := shifted
	if abs(plain-tick) < abs(shifted-tick) {
		anchor = plain
	}
	return Anchor{
		Tick:      anchor,
		Proximity: float64(abs(anchor-tick)) < ProximityRatio*float64(ticksInGrid),
	}
}

// GridOffsetOfTick returns the phase of tick inside its grid cell, in the
// range [0, TickInGrid(scaleX)).
func GridOffsetOfTick(tick int, scaleX float64) int {
	ticksInGrid := TickInGrid(scaleX)
	return tick - floorDiv(tick, ticksInGrid)*ticksInGrid
}

// RoundDownToGrid returns the grid line at or before tick.
func RoundDownToGrid(tick int, scaleX float64) int {
	ticksInGrid := TickInGrid(scaleX)
	return floorDiv(tick, ticksInGrid) * ticksInGrid
}

func closer(tick, lower, upper int) int {
	if upper-tick <= tick-lower {
		return upper
	}
	return lower
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
