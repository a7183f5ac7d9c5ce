package render

import "fmt"

// A preset is a fixed-width track of background glyphs with a single marker
// glyph dropped on top at the current progress index. Presets only differ in
// glyphs and cell count; the placement maths is shared.
type preset struct {
	background []rune
	marker     rune
}

var presets = map[int]preset{
	1: {background: []rune("▬▬▬▬▬▬▬▬▬▬"), marker: '♡'},
	2: {background: []rune("◇◇◇◇◇◇◇◇◇◇"), marker: '◆'},
	3: {background: []rune("▂▄▆█▆▄▂▄"), marker: '●'},
	4: {background: []rune("░░░░░░░░"), marker: '█'},
	5: {background: []rune("━━━━━━━━━━"), marker: '◉'},
}

// Bar renders the progress track for a preset. Output length is constant per
// preset no matter the progress, and the marker always occupies exactly one
// cell: floor(p * (cells-1)) for normalized progress p.
func Bar(presetID int, positionMs, durationMs int64) string {
	pr, ok := presets[presetID]
	if !ok {
		pr = presets[1]
	}

	d := durationMs
	if d < 1 {
		d = 1
	}
	p := float64(positionMs) / float64(d)
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}

	cells := make([]rune, len(pr.background))
	copy(cells, pr.background)
	cells[int(p*float64(len(cells)-1))] = pr.marker
	return string(cells)
}

// Clock formats milliseconds as M:SS with seconds truncated, not rounded.
// 59.9 seconds is still 0:59; nobody wants to see 0:60.
func Clock(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	total := ms / 1000
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
