package codec

import (
	"testing"
)

func TestParseSVGFontMetrics(t *testing.T) {
	f, err := parseSVGFont([]byte(testSVGFont), TTFOptions{})
	if err != nil {
		t.Fatalf("parseSVGFont: %v", err)
	}
	if f.family != "Test Icons" {
		t.Errorf("family = %q, want %q", f.family, "Test Icons")
	}
	if f.unitsPerEm != 1024 || f.ascent != 819 || f.descent != -205 {
		t.Errorf("metrics = %d/%d/%d, want 1024/819/-205", f.unitsPerEm, f.ascent, f.descent)
	}
	if len(f.glyphs) != 2 {
		t.Fatalf("glyphs = %d, want 2", len(f.glyphs))
	}
	if f.glyphs[0].unicode != 0xEA01 || f.glyphs[1].unicode != 0xEA02 {
		t.Errorf("glyph order = %#x, %#x, want sorted by code point",
			f.glyphs[0].unicode, f.glyphs[1].unicode)
	}
	if f.glyphs[0].name != "warn" {
		t.Errorf("glyph name = %q, want %q", f.glyphs[0].name, "warn")
	}
}

func TestParseSVGFontTransform(t *testing.T) {
	f, err := parseSVGFont([]byte(testSVGFont), TTFOptions{})
	if err != nil {
		t.Fatalf("parseSVGFont: %v", err)
	}

	// The 24x24 viewBox maps onto the em square: x spans 0..1024 and y
	// runs from the ascent down to the descent.
	q := quantizeGlyph(f.glyphs[0])
	if q.bounds.xMin != 0 || q.bounds.xMax != 1024 {
		t.Errorf("x bounds = %d..%d, want 0..1024", q.bounds.xMin, q.bounds.xMax)
	}
	if q.bounds.yMax != 819 || q.bounds.yMin != -205 {
		t.Errorf("y bounds = %d..%d, want -205..819", q.bounds.yMin, q.bounds.yMax)
	}
}

func TestParseSVGFontGlyphWithoutOutline(t *testing.T) {
	const svg = `<svg xmlns="http://www.w3.org/2000/svg"><defs><font id="x">` +
		`<font-face font-family="x" units-per-em="1024" ascent="819" descent="-205"/>` +
		`<glyph glyph-name="blank" unicode="&#xEA01;"/>` +
		`</font></defs></svg>`
	f, err := parseSVGFont([]byte(svg), TTFOptions{})
	if err != nil {
		t.Fatalf("parseSVGFont: %v", err)
	}
	if len(f.glyphs) != 1 {
		t.Fatalf("glyphs = %d, want 1", len(f.glyphs))
	}
	if len(f.glyphs[0].contours) != 0 {
		t.Errorf("contours = %d, want none", len(f.glyphs[0].contours))
	}
	if data := encodeGlyph(quantizeGlyph(f.glyphs[0])); data != nil {
		t.Errorf("empty glyph encodes to %d bytes, want none", len(data))
	}
}

func TestParseSVGFontDefaultName(t *testing.T) {
	const svg = `<svg xmlns="http://www.w3.org/2000/svg"><defs><font id="x">` +
		`<font-face font-family="x" units-per-em="1024" ascent="819" descent="-205"/>` +
		`<glyph unicode="&#xEA07;"><path d="M0 0h1v1H0z"/></glyph>` +
		`</font></defs></svg>`
	f, err := parseSVGFont([]byte(svg), TTFOptions{})
	if err != nil {
		t.Fatalf("parseSVGFont: %v", err)
	}
	if got, want := f.glyphs[0].name, "uniEA07"; got != want {
		t.Errorf("glyph name = %q, want %q", got, want)
	}
}
