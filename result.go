package iconfont

// Icon is one registered icon with its resolved identity. Icons are created
// by the collector and immutable once registered; their position in
// Result.Icons is their output order, which is significant for the sprite,
// the stylesheet and deterministic automatic code point assignment.
type Icon struct {
	// Name uniquely identifies the icon within the compile run.
	Name string

	// ClassName is the unique CSS class the stylesheet and sprite use.
	ClassName string

	// Unicode is the code point selecting the icon's glyph.
	Unicode rune

	// AutoUnicode records that Unicode was assigned from the cursor
	// rather than declared by the source.
	AutoUnicode bool

	// Title is the human-readable label shown in the preview.
	Title string

	// Markup is the icon's serialized vector body, passed through to the
	// font codecs untouched.
	Markup string
}

// GlobDependency records one glob pattern a compile expanded, with the
// directory it was resolved against. Callers implementing watch/rebuild use
// it to re-trigger when matching files appear or disappear.
type GlobDependency struct {
	Glob string
	Dir  string
}

// Result is the aggregate one compile invocation populates and returns.
// It is created at the start of the run, filled by the collector and the
// format orchestrator, and shares no state with any other invocation.
//
// On failure none of the output fields should be persisted: the compile
// either produces every requested artifact or fails as a whole.
type Result struct {
	// Icons holds the registered icons in source-visitation order.
	Icons []Icon

	// Dependencies lists every file the compile read, manifest excluded.
	Dependencies []string

	// GlobDependencies lists every glob pattern the compile expanded.
	GlobDependencies []GlobDependency

	// FileName is the resolved output base filename the stylesheet's
	// artifact URLs assume.
	FileName string

	// Binary artifacts, set only when their format was activated.
	SVGFont []byte
	TTF     []byte
	EOT     []byte
	WOFF    []byte
	WOFF2   []byte

	// Text artifacts, set only when their format was activated.
	CSS    string
	HTML   string
	Sprite string
	JS     string

	reg *registry
}
