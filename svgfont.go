package iconfont

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/iconfont/internal/xmltree"
)

// buildSVGFont assembles the SVG font container feeding the binary codecs:
// one glyph element per icon, in icon order, with the body markup passed
// through untouched. Glyph advances derive from each body's declared
// viewBox aspect ratio; the codec owns all actual geometry.
//
// An empty icon list forces normalized advances so the downstream vector
// font assembly never sees degenerate geometry. That is a defect workaround,
// not a policy: callers must not rely on empty-case output beyond "does not
// fail".
func buildSVGFont(icons []Icon, o *options) string {
	normalize := o.normalize || len(icons) == 0

	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" standalone=\"no\"?>\n")
	b.WriteString("<svg xmlns=\"http://www.w3.org/2000/svg\">\n")
	if o.metadata != "" {
		fmt.Fprintf(&b, "<metadata>%s</metadata>\n", xmlEscape(o.metadata))
	}
	b.WriteString("<defs>\n")
	fmt.Fprintf(&b, "<font id=\"%s\" horiz-adv-x=\"%d\">\n", xmlEscape(o.fontID), o.fontHeight)
	fmt.Fprintf(&b,
		"<font-face font-family=\"%s\" font-style=\"%s\" font-weight=\"%s\" units-per-em=\"%d\" ascent=\"%d\" descent=\"%d\"/>\n",
		xmlEscape(o.fontFamily), xmlEscape(o.fontStyle), xmlEscape(o.fontWeight),
		o.fontHeight, o.ascent, -o.descent)
	fmt.Fprintf(&b, "<missing-glyph horiz-adv-x=\"%d\"/>\n", o.fontHeight)

	for _, icon := range icons {
		adv := o.fontHeight
		if !o.fixedWidth && !normalize {
			adv = glyphAdvance(icon.Markup, o.fontHeight)
		}
		fmt.Fprintf(&b, "<glyph glyph-name=\"%s\" unicode=\"&#x%X;\" horiz-adv-x=\"%d\">%s</glyph>\n",
			xmlEscape(icon.Name), icon.Unicode, adv, icon.Markup)
	}

	b.WriteString("</font>\n</defs>\n</svg>\n")
	return b.String()
}

// glyphAdvance derives a glyph's advance width from its body's viewBox
// aspect ratio, falling back to a square advance when the body declares
// none. Reading an attribute is as far as the container goes: path data is
// never touched here.
func glyphAdvance(markup string, fontHeight int) int {
	node, err := xmltree.Parse(markup)
	if err != nil {
		return fontHeight
	}
	vb, ok := node.Attr("viewBox")
	if !ok {
		return fontHeight
	}
	_, _, w, h, ok := parseViewBox(vb)
	if !ok || h <= 0 || w <= 0 {
		return fontHeight
	}
	return int(float64(fontHeight)*w/h + 0.5)
}

// parseViewBox splits a viewBox attribute into its four numbers.
func parseViewBox(vb string) (minX, minY, w, h float64, ok bool) {
	fields := strings.FieldsFunc(vb, func(r rune) bool { return r == ' ' || r == ',' || r == '\t' || r == '\n' })
	if len(fields) != 4 {
		return 0, 0, 0, 0, false
	}
	nums := make([]float64, 4)
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return 0, 0, 0, 0, false
		}
		nums[i] = n
	}
	return nums[0], nums[1], nums[2], nums[3], true
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func xmlEscape(s string) string {
	return xmlEscaper.Replace(s)
}
