// Package iconfont compiles vector icon sources into a multi-format
// icon-font bundle.
//
// # Overview
//
// iconfont reads icons from a manifest document or an explicit source list,
// assigns each a deterministic, collision-free identity (name, CSS class,
// Unicode code point) and produces font binaries (SVG font container, TTF,
// EOT, WOFF, WOFF2) alongside text companions (CSS stylesheet, HTML preview,
// SVG symbol sprite, JS sprite injector).
//
// # Quick Start
//
//	import "github.com/gogpu/iconfont"
//
//	text, _ := os.ReadFile("icons.xml")
//	res, err := iconfont.CompileManifest(string(text), "icons.xml",
//	    []iconfont.Format{iconfont.FormatWOFF2, iconfont.FormatCSS})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("iconfont.woff2", res.WOFF2, 0o644)
//	os.WriteFile("iconfont.css", []byte(res.CSS), 0o644)
//
// # Manifest
//
// The manifest is an XML document whose root tag "iconfont" wraps per-icon
// "svg" declarations. A declaration either carries an inline body, a literal
// src path, or a glob pattern resolved against the manifest's directory.
// Root attributes configure every compile option by string value. A document
// with any other root tag compiles as a single inline icon.
//
//	<iconfont name="ui-icons" cssPrefix="i" startUnicode="0xea01">
//	  <svg name="warn"><path d="M0 0h24v24H0z"/></svg>
//	  <svg src="icons/**/*.svg"/>
//	</iconfont>
//
// # Formats
//
// Requesting a format activates everything on its dependency chain: "woff2"
// implies "ttf" implies the SVG font container, "js" implies the sprite.
// Each activated artifact is generated exactly once per compile.
//
// # Determinism
//
// Identities are assigned in source-visitation order and collisions resolve
// by deterministic disambiguation, so compiling unchanged input yields
// byte-identical text artifacts. Compiles share no state: every invocation
// owns its registry, and independent compiles may run concurrently.
//
// # Architecture
//
// The library is organized into:
//   - Public API: CompileManifest, CompileSources, Result, Format, Option
//   - codec: the default binary font codecs (SVG font to TTF, TTF wrappers)
//   - internal/xmltree: markup-preserving XML tree used by the collector
//
// The binary codecs and the filesystem are injectable collaborators; see
// WithCodecs and WithFS.
package iconfont

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
