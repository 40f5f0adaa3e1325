package grid_test

import (
	"math"
	"testing"

	"github.com/midi-editor/pianoroll/grid"
)

func TestTickInGrid(t *testing.T) {
	for _, tc := range []struct {
		scaleX float64
		want   int
	}{
		{0.1, 3840},
		{0.25, 960},
		{0.5, 480},
		{1, 240},
		{2, 120},
		{4, 60},
		{8, 30},
		{16, 15},
		{64, 15},
	} {
		if got := grid.TickInGrid(tc.scaleX); got != tc.want {
			t.Errorf("TickInGrid(%v) = %d, want %d", tc.scaleX, got, tc.want)
		}
	}
}

func TestTickInGridPixelBand(t *testing.T) {
	for scaleX := 0.05; scaleX < 10; scaleX *= 1.07 {
		ticks := grid.TickInGrid(scaleX)
		if ticks == grid.MinTicksInGrid {
			continue
		}
		px := grid.OffsetXFromTick(scaleX, float64(ticks))
		if px < grid.MinGridPixel || px >= 2*grid.MinGridPixel {
			t.Errorf("scaleX %v: grid of %d ticks is %v px wide, want [%v,%v)", scaleX, ticks, px, grid.MinGridPixel, 2*grid.MinGridPixel)
		}
	}
}

func TestTickInGridFloorOutgrowsPixelBand(t *testing.T) {
	for _, scaleX := range []float64{32, 100} {
		ticks := grid.TickInGrid(scaleX)
		if ticks != grid.MinTicksInGrid {
			t.Fatalf("TickInGrid(%v) = %d, want %d", scaleX, ticks, grid.MinTicksInGrid)
		}
		if px := grid.OffsetXFromTick(scaleX, float64(ticks)); px < 2*grid.MinGridPixel {
			t.Errorf("scaleX %v: grid is %v px wide, want at least %v", scaleX, px, 2*grid.MinGridPixel)
		}
	}
}

func TestNearestGridTick(t *testing.T) {
	for _, tc := range []struct {
		tick int
		want int
	}{
		{700, 480},
		{720, 960}, // tie goes up
		{721, 960},
		{480, 480},
		{0, 0},
		{-100, 0},
		{-300, -480},
	} {
		if got := grid.NearestGridTick(tc.tick, 0.5); got != tc.want {
			t.Errorf("NearestGridTick(%d) = %d, want %d", tc.tick, got, tc.want)
		}
	}
}

func TestNearestGridTickWithOffset(t *testing.T) {
	for _, tc := range []struct {
		tick, offset int
		want         int
	}{
		{700, 100, 580},
		{500, 100, 580},
		{300, 100, 100},
		{340, 100, 580}, // tie goes up
		{700, 0, 480},
	} {
		if got := grid.NearestGridTickWithOffset(tc.tick, 0.5, tc.offset); got != tc.want {
			t.Errorf("NearestGridTickWithOffset(%d, %d) = %d, want %d", tc.tick, tc.offset, got, tc.want)
		}
	}
}

func TestNearestAnchor(t *testing.T) {
	a := grid.NearestAnchor(700, 0.5, 100)
	if a.Tick != 580 || !a.Proximity {
		t.Errorf("NearestAnchor(700, 100) = %+v, want {580 true}", a)
	}
	a = grid.NearestAnchor(700, 0.5, 0)
	if a.Tick != 480 || a.Proximity {
		t.Errorf("NearestAnchor(700, 0) = %+v, want {480 false}", a)
	}
}

func TestNearestAnchorIsCandidateAndProximity(t *testing.T) {
	for _, scaleX := range []float64{0.25, 0.5, 1, 3} {
		ticksInGrid := grid.TickInGrid(scaleX)
		for tick := -1000; tick < 3000; tick += 37 {
			for offset := 0; offset < ticksInGrid; offset += 23 {
				a := grid.NearestAnchor(tick, scaleX, offset)
				plain := grid.NearestGridTick(tick, scaleX)
				shifted := grid.NearestGridTickWithOffset(tick, scaleX, offset)
				if a.Tick != plain && a.Tick != shifted {
					t.Fatalf("anchor %d for tick %d is neither %d nor %d", a.Tick, tick, plain, shifted)
				}
				dist := a.Tick - tick
				if dist < 0 {
					dist = -dist
				}
				far := float64(dist) >= grid.ProximityRatio*float64(ticksInGrid)
				if far == a.Proximity {
					t.Fatalf("tick %d offset %d: anchor %d at distance %d has proximity %v", tick, offset, a.Tick, dist, a.Proximity)
				}
			}
		}
	}
}

func TestGridOffsetOfTick(t *testing.T) {
	if got := grid.GridOffsetOfTick(700, 0.5); got != 220 {
		t.Errorf("GridOffsetOfTick(700) = %d, want 220", got)
	}
	if got := grid.GridOffsetOfTick(-100, 0.5); got != 380 {
		t.Errorf("GridOffsetOfTick(-100) = %d, want 380", got)
	}
	if got := grid.RoundDownToGrid(700, 0.5); got != 480 {
		t.Errorf("RoundDownToGrid(700) = %d, want 480", got)
	}
}

func TestSeparationFactor(t *testing.T) {
	if got, want := grid.SeparationFactor(1), (grid.Counts{Bar: 1, HalfBar: 1, Quarter: 1, Quavers: 2}); got != want {
		t.Errorf("SeparationFactor(1) = %+v, want %+v", got, want)
	}
	if got, want := grid.SeparationFactor(0.1), (grid.Counts{Bar: 2, HalfBar: 4, Quarter: 8, Quavers: 1}); got != want {
		t.Errorf("SeparationFactor(0.1) = %+v, want %+v", got, want)
	}
	for scaleX := 0.01; scaleX < 20; scaleX *= 1.3 {
		f := grid.SeparationFactor(scaleX)
		for _, v := range []int{f.Bar, f.HalfBar, f.Quarter, f.Quavers} {
			if v < 1 || v&(v-1) != 0 {
				t.Errorf("scaleX %v: factor %d is not a power of two", scaleX, v)
			}
		}
	}
}

func TestMarkers(t *testing.T) {
	width := grid.CanvasWidth(16 * grid.TicksPerBeat)
	quarters := grid.Markers(grid.QuarterLine, width, 1)
	if len(quarters) != 16 || quarters[1] != 48 {
		t.Errorf("quarter markers at scale 1 = %v", quarters)
	}
	scaleX := 0.1
	quarters = grid.Markers(grid.QuarterLine, width, scaleX)
	if len(quarters) != 2 || math.Abs(quarters[1]-8*grid.BasePixelsPerBeat*scaleX) > 1e-9 {
		t.Errorf("quarter markers at scale 0.1 = %v", quarters)
	}
	bars := grid.Markers(grid.BarLine, width, 1)
	if len(bars) != 4 || bars[1] != 192 {
		t.Errorf("bar markers = %v", bars)
	}
	quavers := grid.Markers(grid.QuaverLine, width, 1)
	if len(quavers) != 32 || quavers[1] != 24 {
		t.Errorf("quaver markers = %v", quavers)
	}
}

func TestPitchRange(t *testing.T) {
	p := grid.PitchRange{Start: 0, NumOfKeys: 128}
	for _, tc := range []struct {
		y    float64
		want int
	}{
		{0, 127},
		{15.9, 127},
		{16, 126},
		{p.OffsetYFromNoteNum(60), 60},
		{p.OffsetYFromNoteNum(60) + 8, 60},
	} {
		if got := p.NoteNumFromOffsetY(tc.y); got != tc.want {
			t.Errorf("NoteNumFromOffsetY(%v) = %d, want %d", tc.y, got, tc.want)
		}
	}
	r := p.NoteRect(1, 480, 480, 60)
	if r != (grid.Rect{X: 48, Y: 67 * 16, W: 48, H: 16}) {
		t.Errorf("NoteRect = %+v", r)
	}
	if !r.LeftMarginHit(50, r.Y+1) || r.LeftMarginHit(60, r.Y+1) {
		t.Error("left margin hit test is wrong")
	}
	if !r.RightMarginHit(95, r.Y+1) || r.RightMarginHit(80, r.Y+1) || r.RightMarginHit(96, r.Y+1) {
		t.Error("right margin hit test is wrong")
	}
	if lanes := p.Lanes(100); len(lanes) != 128 || lanes[0].NoteNumber != 127 || !lanes[127-61].Black {
		t.Errorf("unexpected lanes")
	}
}

func TestInMarquee(t *testing.T) {
	r := grid.Rect{X: 10, Y: 10, W: 10, H: 10}
	if !grid.InMarquee(r, grid.Marquee(25, 25, 15, 15)) {
		t.Error("overlapping marquee should select")
	}
	if grid.InMarquee(r, grid.Marquee(15, 15, 15, 15)) {
		t.Error("marquee without area should not select")
	}
	if grid.InMarquee(r, grid.Marquee(20, 0, 30, 30)) {
		t.Error("touching marquee should not select")
	}
}
