package codec

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// macEpochDelta converts Unix seconds to the sfnt longDateTime epoch
// (1904-01-01).
const macEpochDelta = 2082844800

// SVGFontToTTF compiles an SVG font container into a TrueType font.
// Identical input and options yield identical bytes.
func SVGFontToTTF(svgFont []byte, opts TTFOptions) ([]byte, error) {
	f, err := parseSVGFont(svgFont, opts)
	if err != nil {
		return nil, err
	}

	// Glyph 0 is the empty .notdef required of every font.
	quantizedGlyphs := make([]quantized, 1, len(f.glyphs)+1)
	for _, g := range f.glyphs {
		quantizedGlyphs = append(quantizedGlyphs, quantizeGlyph(g))
	}
	glyf, loca := buildGlyfLoca(quantizedGlyphs)

	m := measureFont(f, quantizedGlyphs)

	name, err := buildNameTable(f, opts)
	if err != nil {
		return nil, err
	}

	tables := []table{
		{"head", buildHeadTable(f, opts, m)},
		{"hhea", buildHheaTable(f, m, len(quantizedGlyphs))},
		{"maxp", buildMaxpTable(quantizedGlyphs)},
		{"hmtx", buildHmtxTable(f, quantizedGlyphs)},
		{"cmap", buildCmapTable(f.glyphs)},
		{"glyf", glyf},
		{"loca", loca},
		{"name", name},
		{"post", buildPostTable()},
		{"OS/2", buildOS2Table(f, m)},
	}
	return assembleSFNT(tables), nil
}

// fontMeasure aggregates per-glyph extremes for the metric tables.
type fontMeasure struct {
	xMin, yMin      int16
	xMax, yMax      int16
	advanceMax      uint16
	minLSB, minRSB  int16
	xMaxExtent      int16
	avgAdvance      int16
	firstCP, lastCP uint16
}

func measureFont(f *font, quantizedGlyphs []quantized) fontMeasure {
	m := fontMeasure{}
	first := true
	var advanceSum, advanceCount int

	for i, g := range f.glyphs {
		q := quantizedGlyphs[i+1]
		advanceSum += int(g.advance)
		advanceCount++
		if g.advance > m.advanceMax {
			m.advanceMax = g.advance
		}
		if len(q.xs) == 0 {
			continue
		}
		lsb := q.bounds.xMin
		rsb := int16(int(g.advance) - int(q.bounds.xMax))
		if first {
			m.xMin, m.yMin = q.bounds.xMin, q.bounds.yMin
			m.xMax, m.yMax = q.bounds.xMax, q.bounds.yMax
			m.minLSB, m.minRSB = lsb, rsb
			m.xMaxExtent = q.bounds.xMax
			first = false
			continue
		}
		m.xMin = min16(m.xMin, q.bounds.xMin)
		m.yMin = min16(m.yMin, q.bounds.yMin)
		m.xMax = max16(m.xMax, q.bounds.xMax)
		m.yMax = max16(m.yMax, q.bounds.yMax)
		m.minLSB = min16(m.minLSB, lsb)
		m.minRSB = min16(m.minRSB, rsb)
		m.xMaxExtent = max16(m.xMaxExtent, q.bounds.xMax)
	}
	if advanceCount > 0 {
		m.avgAdvance = int16(advanceSum / advanceCount)
	} else {
		m.avgAdvance = int16(f.unitsPerEm)
	}
	if len(f.glyphs) > 0 {
		m.firstCP = uint16(f.glyphs[0].unicode)
		m.lastCP = uint16(f.glyphs[len(f.glyphs)-1].unicode)
	}
	return m
}

func buildHeadTable(f *font, opts TTFOptions, m fontMeasure) []byte {
	be := binary.BigEndian
	data := make([]byte, 54)
	be.PutUint32(data[0:], 0x00010000)
	be.PutUint32(data[4:], versionFixed(opts.Version))
	// checkSumAdjustment at offset 8 is patched during assembly.
	be.PutUint32(data[12:], 0x5F0F3CF5)
	be.PutUint16(data[16:], 0x0003) // baseline at y=0, lsb at x=0
	be.PutUint16(data[18:], uint16(f.unitsPerEm))
	ts := uint64(opts.Timestamp + macEpochDelta)
	be.PutUint64(data[20:], ts)
	be.PutUint64(data[28:], ts)
	be.PutUint16(data[36:], uint16(m.xMin))
	be.PutUint16(data[38:], uint16(m.yMin))
	be.PutUint16(data[40:], uint16(m.xMax))
	be.PutUint16(data[42:], uint16(m.yMax))
	be.PutUint16(data[44:], macStyle(f))
	be.PutUint16(data[46:], 8) // lowestRecPPEM
	be.PutUint16(data[48:], 2) // fontDirectionHint
	be.PutUint16(data[50:], 1) // indexToLocFormat: long offsets
	return data
}

func buildHheaTable(f *font, m fontMeasure, numGlyphs int) []byte {
	be := binary.BigEndian
	data := make([]byte, 36)
	be.PutUint32(data[0:], 0x00010000)
	be.PutUint16(data[4:], uint16(int16(f.ascent)))
	be.PutUint16(data[6:], uint16(int16(f.descent)))
	be.PutUint16(data[8:], 0) // lineGap
	be.PutUint16(data[10:], m.advanceMax)
	be.PutUint16(data[12:], uint16(m.minLSB))
	be.PutUint16(data[14:], uint16(m.minRSB))
	be.PutUint16(data[16:], uint16(m.xMaxExtent))
	be.PutUint16(data[18:], 1) // caretSlopeRise
	// caretSlopeRun, caretOffset, reserved, metricDataFormat all zero.
	be.PutUint16(data[34:], uint16(numGlyphs)) // numberOfHMetrics
	return data
}

func buildMaxpTable(quantizedGlyphs []quantized) []byte {
	maxPoints, maxContours := 0, 0
	for _, q := range quantizedGlyphs {
		if len(q.xs) > maxPoints {
			maxPoints = len(q.xs)
		}
		if len(q.ends) > maxContours {
			maxContours = len(q.ends)
		}
	}
	be := binary.BigEndian
	data := make([]byte, 32)
	be.PutUint32(data[0:], 0x00010000)
	be.PutUint16(data[4:], uint16(len(quantizedGlyphs)))
	be.PutUint16(data[6:], uint16(maxPoints))
	be.PutUint16(data[8:], uint16(maxContours))
	be.PutUint16(data[14:], 2) // maxZones
	return data
}

func buildHmtxTable(f *font, quantizedGlyphs []quantized) []byte {
	be := binary.BigEndian
	data := make([]byte, 0, 4*len(quantizedGlyphs))
	data = be.AppendUint16(data, uint16(f.unitsPerEm)) // .notdef advance
	data = be.AppendUint16(data, 0)
	for i, g := range f.glyphs {
		q := quantizedGlyphs[i+1]
		lsb := int16(0)
		if len(q.xs) > 0 {
			lsb = q.bounds.xMin
		}
		data = be.AppendUint16(data, g.advance)
		data = be.AppendUint16(data, uint16(lsb))
	}
	return data
}

type cmapSegment struct {
	start, end uint16
	delta      uint16
}

// buildCmapTable emits a single format 4 subtable for the Windows Unicode BMP
// platform. Glyphs arrive sorted by code point; glyph ids follow that order.
func buildCmapTable(glyphs []glyph) []byte {
	var segs []cmapSegment
	for i, g := range glyphs {
		cp := uint16(g.unicode)
		gid := uint16(i + 1)
		if n := len(segs); n > 0 && segs[n-1].end+1 == cp {
			// Glyph ids are sequential, so a code point run extends the
			// segment without changing its delta.
			segs[n-1].end = cp
			continue
		}
		segs = append(segs, cmapSegment{start: cp, end: cp, delta: gid - cp})
	}
	if n := len(segs); n == 0 || segs[n-1].end != 0xFFFF {
		segs = append(segs, cmapSegment{start: 0xFFFF, end: 0xFFFF, delta: 1})
	}

	segCount := len(segs)
	entrySelector := 0
	for 1<<(entrySelector+1) <= segCount {
		entrySelector++
	}
	searchRange := 2 << entrySelector

	subLength := 16 + 8*segCount
	be := binary.BigEndian
	data := make([]byte, 12+subLength)
	// Header: one encoding record for platform 3 (Windows), encoding 1 (BMP).
	be.PutUint16(data[0:], 0)
	be.PutUint16(data[2:], 1)
	be.PutUint16(data[4:], 3)
	be.PutUint16(data[6:], 1)
	be.PutUint32(data[8:], 12)

	sub := data[12:]
	be.PutUint16(sub[0:], 4)
	be.PutUint16(sub[2:], uint16(subLength))
	be.PutUint16(sub[4:], 0) // language
	be.PutUint16(sub[6:], uint16(2*segCount))
	be.PutUint16(sub[8:], uint16(searchRange))
	be.PutUint16(sub[10:], uint16(entrySelector))
	be.PutUint16(sub[12:], uint16(2*segCount-searchRange))

	endCodes := sub[14:]
	startCodes := sub[14+2*segCount+2:] // after reservedPad
	deltas := sub[14+4*segCount+2:]
	rangeOffsets := sub[14+6*segCount+2:]
	for i, s := range segs {
		be.PutUint16(endCodes[2*i:], s.end)
		be.PutUint16(startCodes[2*i:], s.start)
		be.PutUint16(deltas[2*i:], s.delta)
		be.PutUint16(rangeOffsets[2*i:], 0)
	}
	return data
}

// Windows platform name record constants.
const (
	namePlatformWindows = 3
	nameEncodingBMP     = 1
	nameLanguageEnUS    = 0x0409
)

func buildNameTable(f *font, opts TTFOptions) ([]byte, error) {
	subfamily := fontSubfamily(f)
	version := opts.Version
	if version == "" {
		version = "1.0"
	}

	type nameEntry struct {
		id    uint16
		value string
	}
	entries := []nameEntry{
		{0, opts.Copyright},
		{1, f.family},
		{2, subfamily},
		{3, f.family + ":" + version},
		{4, f.family},
		{5, "Version " + version},
		{6, postScriptName(f.family)},
		{10, opts.Description},
		{11, opts.URL},
	}

	enc := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder()
	var records []nameEntry
	var encoded [][]byte
	for _, e := range entries {
		if e.value == "" {
			continue
		}
		b, err := enc.Bytes([]byte(e.value))
		if err != nil {
			return nil, fmt.Errorf("codec: name %d: %w", e.id, err)
		}
		records = append(records, e)
		encoded = append(encoded, b)
	}

	be := binary.BigEndian
	count := len(records)
	stringOffset := 6 + 12*count
	data := make([]byte, stringOffset)
	be.PutUint16(data[2:], uint16(count))
	be.PutUint16(data[4:], uint16(stringOffset))

	offset := 0
	var strdata []byte
	for i, e := range records {
		rec := data[6+12*i:]
		be.PutUint16(rec[0:], namePlatformWindows)
		be.PutUint16(rec[2:], nameEncodingBMP)
		be.PutUint16(rec[4:], nameLanguageEnUS)
		be.PutUint16(rec[6:], e.id)
		be.PutUint16(rec[8:], uint16(len(encoded[i])))
		be.PutUint16(rec[10:], uint16(offset))
		strdata = append(strdata, encoded[i]...)
		offset += len(encoded[i])
	}
	return append(data, strdata...), nil
}

// buildPostTable emits version 3.0, which carries no glyph names.
func buildPostTable() []byte {
	data := make([]byte, 32)
	binary.BigEndian.PutUint32(data[0:], 0x00030000)
	return data
}

func buildOS2Table(f *font, m fontMeasure) []byte {
	be := binary.BigEndian
	data := make([]byte, 96)
	upem := f.unitsPerEm

	be.PutUint16(data[0:], 4) // version
	be.PutUint16(data[2:], uint16(m.avgAdvance))
	be.PutUint16(data[4:], weightClass(f.weight))
	be.PutUint16(data[6:], 5) // usWidthClass: medium
	be.PutUint16(data[8:], 0) // fsType: installable

	be.PutUint16(data[10:], uint16(upem*65/100)) // ySubscriptXSize
	be.PutUint16(data[12:], uint16(upem*60/100))
	be.PutUint16(data[14:], 0)
	be.PutUint16(data[16:], uint16(upem*75/1000))
	be.PutUint16(data[18:], uint16(upem*65/100)) // ySuperscriptXSize
	be.PutUint16(data[20:], uint16(upem*60/100))
	be.PutUint16(data[22:], 0)
	be.PutUint16(data[24:], uint16(upem*35/100))
	be.PutUint16(data[26:], uint16(upem*5/100))  // yStrikeoutSize
	be.PutUint16(data[28:], uint16(upem*22/100)) // yStrikeoutPosition

	// sFamilyClass 0, PANOSE all zero (any).

	var range1, range2 uint32
	for _, g := range f.glyphs {
		if g.unicode < 0x80 {
			range1 |= 1 << 0 // Basic Latin
		}
		if g.unicode >= 0xE000 && g.unicode <= 0xF8FF {
			range2 |= 1 << 28 // Private Use Area
		}
	}
	be.PutUint32(data[42:], range1)
	be.PutUint32(data[46:], range2)

	copy(data[58:], "UKWN") // achVendID

	fsSelection := uint16(0x0040) // regular
	style := macStyle(f)
	if style != 0 {
		fsSelection = 0
		if style&0x01 != 0 {
			fsSelection |= 0x0020 // bold
		}
		if style&0x02 != 0 {
			fsSelection |= 0x0001 // italic
		}
	}
	be.PutUint16(data[62:], fsSelection)
	be.PutUint16(data[64:], m.firstCP)
	be.PutUint16(data[66:], m.lastCP)

	be.PutUint16(data[68:], uint16(int16(f.ascent)))
	be.PutUint16(data[70:], uint16(int16(f.descent)))
	be.PutUint16(data[72:], 0) // sTypoLineGap

	winAscent := f.ascent
	if int(m.yMax) > winAscent {
		winAscent = int(m.yMax)
	}
	winDescent := -f.descent
	if int(-m.yMin) > winDescent {
		winDescent = int(-m.yMin)
	}
	if winAscent < 0 {
		winAscent = 0
	}
	if winDescent < 0 {
		winDescent = 0
	}
	be.PutUint16(data[74:], uint16(winAscent))
	be.PutUint16(data[76:], uint16(winDescent))

	be.PutUint32(data[78:], 1)                       // ulCodePageRange1: Latin 1
	be.PutUint16(data[86:], uint16(upem/2))          // sxHeight
	be.PutUint16(data[88:], uint16(int16(f.ascent))) // sCapHeight
	// usDefaultChar 0, usBreakChar 0, usMaxContext 0.
	return data
}

// macStyle derives the head table style bits from the face attributes.
func macStyle(f *font) uint16 {
	var style uint16
	if weightClass(f.weight) >= 600 {
		style |= 0x01
	}
	s := strings.ToLower(f.style)
	if s == "italic" || s == "oblique" {
		style |= 0x02
	}
	return style
}

func fontSubfamily(f *font) string {
	bold := weightClass(f.weight) >= 600
	italic := macStyle(f)&0x02 != 0
	switch {
	case bold && italic:
		return "Bold Italic"
	case bold:
		return "Bold"
	case italic:
		return "Italic"
	}
	return "Regular"
}

// weightClass maps a CSS font-weight value to an OS/2 weight class.
func weightClass(weight string) uint16 {
	switch strings.ToLower(strings.TrimSpace(weight)) {
	case "", "normal", "regular":
		return 400
	case "bold":
		return 700
	case "bolder":
		return 800
	case "lighter":
		return 200
	}
	if n, err := strconv.Atoi(strings.TrimSpace(weight)); err == nil && n >= 1 && n <= 1000 {
		return uint16(n)
	}
	return 400
}

// postScriptName strips characters the PostScript name record disallows.
func postScriptName(family string) string {
	var b strings.Builder
	for _, r := range family {
		if r > 32 && r < 127 && !strings.ContainsRune(`[](){}<>/%`, r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "iconfont"
	}
	return b.String()
}

// versionFixed converts a dotted version string to 16.16 fixed point for the
// head table's fontRevision.
func versionFixed(version string) uint32 {
	s := strings.TrimSpace(version)
	s = strings.TrimPrefix(s, "Version ")
	if i := strings.IndexByte(s, '.'); i >= 0 {
		if j := strings.IndexByte(s[i+1:], '.'); j >= 0 {
			s = s[:i+1+j]
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0x00010000
	}
	return uint32(v * 65536)
}
