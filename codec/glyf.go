package codec

import (
	"encoding/binary"
	"math"
)

// glyphBounds is a quantized glyph bounding box in font units.
type glyphBounds struct {
	xMin, yMin int16
	xMax, yMax int16
}

// quantized is one glyph's outline snapped to the font-unit grid.
type quantized struct {
	ends   []uint16 // last point index of each contour
	xs, ys []int16
	on     []bool
	bounds glyphBounds
}

// quantizeGlyph rounds a glyph's contours to integer font units. Glyphs
// without outline return an empty quantization.
func quantizeGlyph(g glyph) quantized {
	var q quantized
	first := true
	for _, c := range g.contours {
		for _, p := range c {
			x := clampInt16(math.Round(p.x))
			y := clampInt16(math.Round(p.y))
			q.xs = append(q.xs, x)
			q.ys = append(q.ys, y)
			q.on = append(q.on, p.on)
			if first {
				q.bounds = glyphBounds{x, y, x, y}
				first = false
				continue
			}
			q.bounds.xMin = min16(q.bounds.xMin, x)
			q.bounds.xMax = max16(q.bounds.xMax, x)
			q.bounds.yMin = min16(q.bounds.yMin, y)
			q.bounds.yMax = max16(q.bounds.yMax, y)
		}
		q.ends = append(q.ends, uint16(len(q.xs)-1))
	}
	return q
}

// encodeGlyph serializes a simple glyph. Empty glyphs encode to nothing, which
// the index table represents as a zero-length entry.
func encodeGlyph(q quantized) []byte {
	if len(q.xs) == 0 {
		return nil
	}

	n := len(q.xs)
	size := 10 + 2*len(q.ends) + 2 + n + 4*n
	data := make([]byte, 0, size)
	be := binary.BigEndian

	data = be.AppendUint16(data, uint16(len(q.ends)))
	data = be.AppendUint16(data, uint16(q.bounds.xMin))
	data = be.AppendUint16(data, uint16(q.bounds.yMin))
	data = be.AppendUint16(data, uint16(q.bounds.xMax))
	data = be.AppendUint16(data, uint16(q.bounds.yMax))
	for _, end := range q.ends {
		data = be.AppendUint16(data, end)
	}
	// No hinting instructions.
	data = be.AppendUint16(data, 0)

	// Plain two-byte deltas keep the encoder simple; the size cost is
	// negligible at icon glyph counts.
	for _, on := range q.on {
		var flag byte
		if on {
			flag = 0x01
		}
		data = append(data, flag)
	}
	prev := int16(0)
	for _, x := range q.xs {
		data = be.AppendUint16(data, uint16(x-prev))
		prev = x
	}
	prev = 0
	for _, y := range q.ys {
		data = be.AppendUint16(data, uint16(y-prev))
		prev = y
	}
	return data
}

// buildGlyfLoca lays out all glyph records and the long-format index. The
// returned quantizations feed the metric tables.
func buildGlyfLoca(glyphs []quantized) (glyf, loca []byte) {
	be := binary.BigEndian
	loca = be.AppendUint32(loca, 0)
	for _, q := range glyphs {
		data := encodeGlyph(q)
		glyf = append(glyf, data...)
		// Glyph records start on even offsets.
		if len(glyf)%2 != 0 {
			glyf = append(glyf, 0)
		}
		loca = be.AppendUint32(loca, uint32(len(glyf)))
	}
	return glyf, loca
}

func clampInt16(v float64) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}

func min16(a, b int16) int16 {
	if a < b {
		return a
	}
	return b
}

func max16(a, b int16) int16 {
	if a > b {
		return a
	}
	return b
}
