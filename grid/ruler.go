package grid

import "math"

type (
	// Counts holds one value per kind of grid line.
	Counts struct {
		Bar     int
		HalfBar int
		Quarter int
		Quavers int
	}

	// Separation holds, per kind of grid line, the distance between two lines
	// in beats.
	Separation struct {
		Bar     float64
		HalfBar float64
		Quarter float64
		Quavers float64
	}

	LineKind int
)

const (
	BarLine LineKind = iota
	HalfBarLine
	QuarterLine
	QuaverLine
)

const beatsPerBar = 4

// NumOfGrid returns how many lines of each kind fit on an unscaled canvas.
func NumOfGrid(canvasWidth float64) Counts {
	quarter := int(math.Ceil(canvasWidth / BasePixelsPerBeat))
	return Counts{
		Bar:     int(math.Ceil(canvasWidth / (BasePixelsPerBeat * beatsPerBar))),
		HalfBar: int(math.Ceil(canvasWidth / (BasePixelsPerBeat * beatsPerBar / 2))),
		Quarter: quarter,
		Quavers: quarter,
	}
}

// SeparationFactor returns, per kind of line, how many lines to skip so that
// the drawn lines stay at least MinGridPixel apart: only every N-th line is
// drawn. For quavers it is the number of subdivisions of a beat that fit
// instead. All factors are powers of two and at least 1.
func SeparationFactor(scaleX float64) Counts {
	ppb := scaleX * BasePixelsPerBeat
	if !(ppb > 0) {
		return Counts{Bar: 1, HalfBar: 1, Quarter: 1, Quavers: 1}
	}
	return Counts{
		Bar:     ceilPowerOfTwo(MinGridPixel / (ppb * beatsPerBar)),
		HalfBar: ceilPowerOfTwo(MinGridPixel / (ppb * beatsPerBar / 2)),
		Quarter: ceilPowerOfTwo(MinGridPixel / ppb),
		Quavers: floorPowerOfTwo(ppb / MinGridPixel),
	}
}

// BaseSeparation returns the distance between two adjacent lines of each
// kind, in beats, before skipping.
func BaseSeparation(factor Counts) Separation {
	return Separation{
		Bar:     beatsPerBar,
		HalfBar: beatsPerBar / 2,
		Quarter: 1,
		Quavers: 1 / float64(max(factor.Quavers, 1)),
	}
}

// Markers returns the x offsets, in pixels, of the lines of the given kind
// that should be drawn on a canvas of canvasWidth unscaled pixels.
func Markers(kind LineKind, canvasWidth, scaleX float64) []float64 {
	num := NumOfGrid(canvasWidth)
	factor := SeparationFactor(scaleX)
	sep := BaseSeparation(factor)
	ppb := BasePixelsPerBeat * scaleX
	var count, skip int
	var beats float64
	switch kind {
	case BarLine:
		count, skip, beats = num.Bar, factor.Bar, sep.Bar
	case HalfBarLine:
		count, skip, beats = num.HalfBar, factor.HalfBar, sep.HalfBar
	case QuarterLine:
		count, skip, beats = num.Quarter, factor.Quarter, sep.Quarter
	case QuaverLine:
		count, skip, beats = num.Quavers*factor.Quavers, 1, sep.Quavers
	default:
		return nil
	}
	var ret []float64
	for i := 0; i < count; i += skip {
		ret = append(ret, float64(i)*ppb*beats)
	}
	return ret
}

func ceilPowerOfTwo(x float64) int {
	ret := 1
	for float64(ret) < x && ret < math.MaxInt32 {
		ret *= 2
	}
	return ret
}

func floorPowerOfTwo(x float64) int {
	ret := 1
	for float64(ret*2) <= x && ret < math.MaxInt32 {
		ret *= 2
	}
	return ret
}
