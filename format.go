package iconfont

import (
	"fmt"
	"strings"
)

// Format names one producible artifact.
type Format string

// The closed set of formats. FormatSVGFont is the SVG font container every
// binary format is derived from; FormatSVG is the standalone symbol sprite
// for inline reuse, unrelated to the font binaries.
const (
	FormatSVGFont Format = "svgfont"
	FormatTTF     Format = "ttf"
	FormatEOT     Format = "eot"
	FormatWOFF    Format = "woff"
	FormatWOFF2   Format = "woff2"
	FormatSVG     Format = "svg"
	FormatJS      Format = "js"
	FormatCSS     Format = "css"
	FormatHTML    Format = "html"
)

// formatDeps is the artifact dependency graph: generating a format first
// requires every format it maps to. The graph is the single source of truth
// for activation; there is no other implication logic.
var formatDeps = map[Format][]Format{
	FormatSVGFont: nil,
	FormatTTF:     {FormatSVGFont},
	FormatEOT:     {FormatTTF},
	FormatWOFF:    {FormatTTF},
	FormatWOFF2:   {FormatTTF},
	FormatSVG:     nil,
	FormatJS:      {FormatSVG},
	FormatCSS:     nil,
	FormatHTML:    nil,
}

// AllFormats returns every requestable format in generation order.
func AllFormats() []Format {
	return []Format{
		FormatSVGFont, FormatTTF, FormatEOT, FormatWOFF, FormatWOFF2,
		FormatSVG, FormatJS, FormatCSS, FormatHTML,
	}
}

// ParseFormat converts a format name to a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := formatDeps[f]; !ok {
		return "", fmt.Errorf("iconfont: unknown format %q", s)
	}
	return f, nil
}

// resolveFormats expands the requested formats to their transitive
// dependency closure. An empty request activates everything. Each format
// appears in the result at most once no matter how many times it is implied.
func resolveFormats(requested []Format) (map[Format]bool, error) {
	if len(requested) == 0 {
		requested = AllFormats()
	}
	active := make(map[Format]bool, len(formatDeps))
	var visit func(f Format) error
	visit = func(f Format) error {
		deps, ok := formatDeps[f]
		if !ok {
			return fmt.Errorf("iconfont: unknown format %q", f)
		}
		if active[f] {
			return nil
		}
		active[f] = true
		for _, dep := range deps {
			if err := visit(dep); err != nil {
				return err
			}
		}
		return nil
	}
	for _, f := range requested {
		if err := visit(f); err != nil {
			return nil, err
		}
	}
	return active, nil
}
