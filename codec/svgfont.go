package codec

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/iconfont/internal/xmltree"
)

// font is the in-memory model between the SVG font container and the sfnt
// table builders. All glyph geometry is already in font units with the
// TrueType y axis (up is positive, baseline at zero).
type font struct {
	id     string
	family string
	style  string
	weight string

	unitsPerEm int
	ascent     int
	descent    int // negative, as in the container

	glyphs []glyph
}

// glyph is one mapped glyph. Contours are quadratic outlines in font units.
type glyph struct {
	name     string
	unicode  rune
	advance  uint16
	contours []contour
}

// rawGlyph holds a glyph before the coordinate transform, while the common
// scale across the whole set is still unknown.
type rawGlyph struct {
	name     string
	unicode  rune
	advance  uint16
	contours []contour

	// Design box: the body's declared viewBox, or the contour bounding
	// box when the body declares none.
	minX, minY float64
	width      float64
	height     float64

	viewBox    [4]float64
	hasViewBox bool
}

// parseSVGFont reads the SVG font container into the glyph model, converting
// every path to quadratic contours and mapping user units to font units.
func parseSVGFont(svgFont []byte, opts TTFOptions) (*font, error) {
	doc, err := xmltree.Parse(string(svgFont))
	if err != nil {
		return nil, fmt.Errorf("codec: svg font: %w", err)
	}
	fontNode := findElement(doc, "font")
	if fontNode == nil {
		return nil, fmt.Errorf("codec: svg font: no font element")
	}

	f := &font{
		family:     "iconfont",
		style:      "normal",
		weight:     "normal",
		unitsPerEm: 1000,
	}
	if id, ok := fontNode.Attr("id"); ok {
		f.id = id
	}
	defaultAdvance := 0
	if v, ok := fontNode.Attr("horiz-adv-x"); ok {
		defaultAdvance = attrInt(v, 0)
	}

	if face := childElement(fontNode, "font-face"); face != nil {
		if v, ok := face.Attr("font-family"); ok {
			f.family = v
		}
		if v, ok := face.Attr("font-style"); ok {
			f.style = v
		}
		if v, ok := face.Attr("font-weight"); ok {
			f.weight = v
		}
		if v, ok := face.Attr("units-per-em"); ok {
			f.unitsPerEm = attrInt(v, f.unitsPerEm)
		}
		f.ascent = attrInt(attrOr(face, "ascent", ""), f.unitsPerEm*4/5)
		f.descent = attrInt(attrOr(face, "descent", ""), f.ascent-f.unitsPerEm)
	} else {
		f.ascent = f.unitsPerEm * 4 / 5
		f.descent = f.ascent - f.unitsPerEm
	}
	if defaultAdvance == 0 {
		defaultAdvance = f.unitsPerEm
	}

	raw, err := parseGlyphs(fontNode, defaultAdvance)
	if err != nil {
		return nil, err
	}

	round := opts.Round
	if round <= 0 {
		round = defaultRound
	}

	// In proportional mode one scale fits the tallest glyph to the em
	// square and applies to every glyph, preserving relative icon sizes.
	// Normalized mode scales each glyph independently.
	var maxHeight float64
	for _, g := range raw {
		if g.height > maxHeight {
			maxHeight = g.height
		}
	}

	for _, g := range raw {
		scale := 0.0
		switch {
		case opts.Normalize && g.height > 0:
			scale = float64(f.unitsPerEm) / g.height
		case maxHeight > 0:
			scale = float64(f.unitsPerEm) / maxHeight
		}
		f.glyphs = append(f.glyphs, transformGlyph(g, f.ascent, scale, round, opts.CenterHorizontally))
	}
	sortGlyphs(f.glyphs)
	return f, nil
}

// parseGlyphs extracts the raw glyph set from the font element.
func parseGlyphs(fontNode *xmltree.Node, defaultAdvance int) ([]rawGlyph, error) {
	var raw []rawGlyph
	for _, child := range fontNode.Children {
		if child.Name != "glyph" {
			continue
		}
		uattr, ok := child.Attr("unicode")
		if !ok || uattr == "" {
			continue
		}
		cp := []rune(uattr)[0]

		g := rawGlyph{unicode: cp, advance: uint16(defaultAdvance)}
		if cp > 0xFFFF {
			return nil, fmt.Errorf("codec: glyph U+%X: %w", cp, ErrOutsideBMP)
		}
		if name, ok := child.Attr("glyph-name"); ok && name != "" {
			g.name = name
		} else {
			g.name = fmt.Sprintf("uni%04X", cp)
		}
		if v, ok := child.Attr("horiz-adv-x"); ok {
			g.advance = uint16(attrInt(v, defaultAdvance))
		}

		if err := collectOutline(child, &g); err != nil {
			return nil, fmt.Errorf("codec: glyph %q: %w", g.name, err)
		}
		if vb, ok := findViewBoxAttr(child); ok {
			g.viewBox, g.hasViewBox = vb, true
		}
		measureGlyph(&g)
		raw = append(raw, g)
	}
	return raw, nil
}

// collectOutline walks the glyph body and converts every path element's data
// into contours. Non-path shapes carry no outline and are skipped.
func collectOutline(node *xmltree.Node, g *rawGlyph) error {
	if node.Name == "path" {
		if d, ok := node.Attr("d"); ok && d != "" {
			contours, err := parsePathData(d)
			if err != nil {
				return err
			}
			g.contours = append(g.contours, contours...)
		}
	}
	for _, child := range node.Children {
		if err := collectOutline(child, g); err != nil {
			return err
		}
	}
	return nil
}

// measureGlyph fixes the glyph's design box: the declared viewBox when the
// body has one, otherwise the outline's bounding box.
func measureGlyph(g *rawGlyph) {
	// The glyph body is usually a whole svg document with a viewBox.
	if g.hasViewBox {
		g.minX, g.minY = g.viewBox[0], g.viewBox[1]
		g.width, g.height = g.viewBox[2], g.viewBox[3]
		return
	}
	first := true
	var minX, minY, maxX, maxY float64
	for _, c := range g.contours {
		for _, p := range c {
			if first {
				minX, maxX = p.x, p.x
				minY, maxY = p.y, p.y
				first = false
				continue
			}
			minX = math.Min(minX, p.x)
			maxX = math.Max(maxX, p.x)
			minY = math.Min(minY, p.y)
			maxY = math.Max(maxY, p.y)
		}
	}
	if first {
		return
	}
	g.minX, g.minY = minX, minY
	g.width, g.height = maxX-minX, maxY-minY
}

// transformGlyph maps user units to font units: scale, translate the design
// box to the origin and flip the y axis so the box top lands on the ascent
// line.
func transformGlyph(g rawGlyph, ascent int, scale, round float64, center bool) glyph {
	out := glyph{name: g.name, unicode: g.unicode, advance: g.advance}
	xOffset := 0.0
	if center && scale > 0 {
		xOffset = (float64(g.advance) - g.width*scale) / 2
	}
	for _, c := range g.contours {
		tc := make(contour, len(c))
		for i, p := range c {
			x := (p.x-g.minX)*scale + xOffset
			y := float64(ascent) - (p.y-g.minY)*scale
			tc[i] = outlinePoint{
				x:  math.Round(x*round) / round,
				y:  math.Round(y*round) / round,
				on: p.on,
			}
		}
		out.contours = append(out.contours, tc)
	}
	return out
}

// sortGlyphs orders glyphs by code point, as the character map requires.
// Ordering is stable against the container because code points are unique.
func sortGlyphs(glyphs []glyph) {
	for i := 1; i < len(glyphs); i++ {
		for j := i; j > 0 && glyphs[j].unicode < glyphs[j-1].unicode; j-- {
			glyphs[j], glyphs[j-1] = glyphs[j-1], glyphs[j]
		}
	}
}

// findViewBoxAttr locates the first parseable viewBox attribute in the glyph
// body, searching depth first.
func findViewBoxAttr(node *xmltree.Node) ([4]float64, bool) {
	if vb, ok := node.Attr("viewBox"); ok {
		fields := strings.FieldsFunc(vb, func(r rune) bool {
			return r == ' ' || r == ',' || r == '\t' || r == '\n' || r == '\r'
		})
		if len(fields) == 4 {
			var nums [4]float64
			good := true
			for i, field := range fields {
				n, err := strconv.ParseFloat(field, 64)
				if err != nil {
					good = false
					break
				}
				nums[i] = n
			}
			if good && nums[2] > 0 && nums[3] > 0 {
				return nums, true
			}
		}
	}
	for _, child := range node.Children {
		if vb, ok := findViewBoxAttr(child); ok {
			return vb, true
		}
	}
	return [4]float64{}, false
}

// findElement returns the first element with the given local name, searching
// depth first.
func findElement(node *xmltree.Node, name string) *xmltree.Node {
	if node.Name == name {
		return node
	}
	for _, child := range node.Children {
		if found := findElement(child, name); found != nil {
			return found
		}
	}
	return nil
}

// childElement returns the first direct child with the given local name.
func childElement(node *xmltree.Node, name string) *xmltree.Node {
	for _, child := range node.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

func attrOr(node *xmltree.Node, name, fallback string) string {
	if v, ok := node.Attr(name); ok {
		return v
	}
	return fallback
}

// attrInt parses a numeric attribute, tolerating fractional values.
func attrInt(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fallback
	}
	return int(math.Round(n))
}
