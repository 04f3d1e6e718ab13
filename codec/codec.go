// Package codec implements the binary font codecs behind the compiler's
// default pipeline: assembling a TTF from an SVG font container, and
// wrapping the TTF bytes into the EOT, WOFF and WOFF2 delivery formats.
//
// Every codec is a pure function of its input buffer. The package has no
// knowledge of the icon registry or compile options beyond TTFOptions; the
// compiler drives it exclusively through the four entry points.
//
// Limitations: glyph outlines are read from path elements (other shape
// elements and transform attributes are ignored), and code points must stay
// within the Basic Multilingual Plane, which covers the private-use range
// icon fonts draw from.
package codec

import "errors"

// TTFOptions parameterizes SVGFontToTTF.
type TTFOptions struct {
	// Name table metadata.
	Copyright   string
	Description string
	URL         string
	Version     string

	// Timestamp is the font creation time in Unix seconds. Zero keeps
	// the epoch so identical input yields identical bytes.
	Timestamp int64

	// Round is the coordinate rounding precision applied before glyph
	// quantization. Zero selects the default precision.
	Round float64

	// Normalize scales every glyph to the full font height independently
	// instead of preserving relative icon sizes.
	Normalize bool

	// CenterHorizontally centers each glyph inside its advance width.
	CenterHorizontally bool
}

// defaultRound is the coordinate rounding precision when TTFOptions.Round
// is unset.
const defaultRound = 10e12

var (
	// ErrNotSFNT reports input that does not start with a TTF offset table.
	ErrNotSFNT = errors.New("codec: input is not an sfnt font")

	// ErrOutsideBMP reports a glyph code point the TTF character map
	// cannot represent.
	ErrOutsideBMP = errors.New("codec: code point outside the basic multilingual plane")
)
