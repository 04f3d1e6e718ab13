package iconfont

import "github.com/gogpu/iconfont/codec"

// CodecOptions parameterizes the SVG-font-to-TTF codec invocation.
type CodecOptions struct {
	FormatOptions

	// Round is the coordinate rounding precision.
	Round float64

	// Normalize scales every glyph to the full font height.
	Normalize bool

	// CenterHorizontally centers each glyph inside its advance width.
	CenterHorizontally bool
}

// Codecs bundles the opaque binary font codecs the orchestrator drives.
// Each is a pure transform of its input buffer; a failure aborts the whole
// compile. Only the orchestrator ever calls into them.
type Codecs struct {
	SVGFontToTTF func(svgFont []byte, opts CodecOptions) ([]byte, error)
	TTFToEOT     func(ttf []byte) ([]byte, error)
	TTFToWOFF    func(ttf []byte) ([]byte, error)
	TTFToWOFF2   func(ttf []byte) ([]byte, error)
}

// DefaultCodecs returns the codecs from the codec package.
func DefaultCodecs() Codecs {
	return Codecs{
		SVGFontToTTF: func(svgFont []byte, opts CodecOptions) ([]byte, error) {
			return codec.SVGFontToTTF(svgFont, codec.TTFOptions{
				Copyright:          opts.Copyright,
				Description:        opts.Description,
				URL:                opts.URL,
				Version:            opts.Version,
				Timestamp:          opts.Timestamp,
				Round:              opts.Round,
				Normalize:          opts.Normalize,
				CenterHorizontally: opts.CenterHorizontally,
			})
		},
		TTFToEOT:   codec.TTFToEOT,
		TTFToWOFF:  codec.TTFToWOFF,
		TTFToWOFF2: codec.TTFToWOFF2,
	}
}
