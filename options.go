package iconfont

// FormatOptions carries the metadata embedded by the font-container wrapper
// codec when it assembles the TTF binary.
type FormatOptions struct {
	Copyright   string
	Description string
	URL         string
	Version     string

	// Timestamp is the font creation time in Unix seconds. Zero keeps the
	// epoch, which keeps repeated compiles byte-identical.
	Timestamp int64
}

// options is the immutable configuration snapshot of one compile run,
// resolved once at the start by merging defaults, manifest-embedded
// attributes and caller overrides, in that priority order.
type options struct {
	fontFamily         string
	fontID             string
	fontStyle          string
	fontWeight         string
	fixedWidth         bool
	centerHorizontally bool
	normalize          bool
	fontHeight         int
	round              float64
	descent            int
	ascent             int
	ascentSet          bool
	metadata           string
	startUnicode       rune
	prependUnicode     bool
	cssPrefix          string
	cssPrefixSet       bool
	fileName           string
	hash               string
	ttf                FormatOptions

	fs     FS
	codecs Codecs
}

// Option overrides one compile option. Caller options are applied after
// manifest attributes and win over them.
//
// Example:
//
//	res, err := iconfont.CompileManifest(text, path, nil,
//	    iconfont.WithFontFamily("ui-icons"),
//	    iconfont.WithCSSPrefix("i"))
type Option func(*options)

// defaultOptions returns the compile options before any override.
func defaultOptions() options {
	return options{
		fontFamily:   "iconfont",
		fontStyle:    "normal",
		fontWeight:   "normal",
		fontHeight:   1024,
		round:        10e12,
		startUnicode: DefaultStartUnicode,
		fs:           DefaultFS,
		codecs:       DefaultCodecs(),
	}
}

// resolve fills the fields whose defaults derive from other fields.
// Called once, after every override has been applied.
func (o *options) resolve() {
	if o.fontID == "" {
		o.fontID = o.fontFamily
	}
	if o.fileName == "" {
		o.fileName = o.fontFamily
	}
	if o.fontHeight <= 0 {
		o.fontHeight = 1024
	}
	if !o.ascentSet {
		o.ascent = o.fontHeight - o.descent
	}
	if !o.cssPrefixSet {
		o.cssPrefix = o.fileName
	}
}

// WithFontFamily sets the generated font's family name.
func WithFontFamily(name string) Option {
	return func(o *options) { o.fontFamily = name }
}

// WithFontID sets the font identifier used inside the SVG font container
// and in the stylesheet's SVG source fragment. Defaults to the family name.
func WithFontID(id string) Option {
	return func(o *options) { o.fontID = id }
}

// WithFontStyle sets the CSS font-style the bundle declares.
func WithFontStyle(style string) Option {
	return func(o *options) { o.fontStyle = style }
}

// WithFontWeight sets the CSS font-weight the bundle declares.
func WithFontWeight(weight string) Option {
	return func(o *options) { o.fontWeight = weight }
}

// WithFixedWidth forces every glyph onto the same advance width.
func WithFixedWidth(fixed bool) Option {
	return func(o *options) { o.fixedWidth = fixed }
}

// WithCenterHorizontally centers each glyph inside its advance width.
func WithCenterHorizontally(center bool) Option {
	return func(o *options) { o.centerHorizontally = center }
}

// WithNormalize scales every icon to the full font height.
func WithNormalize(normalize bool) Option {
	return func(o *options) { o.normalize = normalize }
}

// WithFontHeight sets the font's units-per-em.
func WithFontHeight(height int) Option {
	return func(o *options) { o.fontHeight = height }
}

// WithRound sets the coordinate rounding precision used by the TTF codec.
func WithRound(round float64) Option {
	return func(o *options) { o.round = round }
}

// WithDescent sets the font's descent in font units.
func WithDescent(descent int) Option {
	return func(o *options) { o.descent = descent }
}

// WithAscent sets the font's ascent in font units.
// Defaults to fontHeight minus descent.
func WithAscent(ascent int) Option {
	return func(o *options) {
		o.ascent = ascent
		o.ascentSet = true
	}
}

// WithMetadata embeds a metadata string in the SVG font container.
func WithMetadata(metadata string) Option {
	return func(o *options) { o.metadata = metadata }
}

// WithStartUnicode sets the first automatically assigned code point.
func WithStartUnicode(start rune) Option {
	return func(o *options) { o.startUnicode = start }
}

// WithPrependUnicode enables reading a uXXXX- filename prefix as the icon's
// declared code point.
func WithPrependUnicode(enabled bool) Option {
	return func(o *options) { o.prependUnicode = enabled }
}

// WithCSSPrefix sets the class prefix of generated selectors. An explicitly
// empty prefix emits bare class selectors; when unset the prefix defaults
// to the output base filename.
func WithCSSPrefix(prefix string) Option {
	return func(o *options) {
		o.cssPrefix = prefix
		o.cssPrefixSet = true
	}
}

// WithFileName sets the output base filename referenced by generated URLs.
// Defaults to the family name.
func WithFileName(name string) Option {
	return func(o *options) { o.fileName = name }
}

// WithHash sets the cache-busting token appended to generated URLs. When
// unset, a deterministic hash of the collected icon markup is used.
func WithHash(hash string) Option {
	return func(o *options) { o.hash = hash }
}

// WithFormatOptions sets the metadata embedded by the TTF wrapper codec.
func WithFormatOptions(fo FormatOptions) Option {
	return func(o *options) { o.ttf = fo }
}

// WithFS injects the filesystem capability used to resolve manifest
// sources. Nil keeps the real filesystem.
func WithFS(fs FS) Option {
	return func(o *options) {
		if fs != nil {
			o.fs = fs
		}
	}
}

// WithCodecs injects the binary font codecs.
func WithCodecs(c Codecs) Option {
	return func(o *options) { o.codecs = c }
}
