package iconfont

import (
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/gogpu/iconfont/internal/xmltree"
)

// CompileManifest compiles the manifest document in text into the requested
// formats. manifestPath locates the manifest on the injected filesystem and
// anchors relative src attributes and glob patterns. An empty format list
// requests every format; requesting a format activates everything on its
// dependency chain.
//
// The returned Result is complete or the error is fatal: no output field of
// a failed compile is meaningful.
func CompileManifest(text, manifestPath string, formats []Format, opts ...Option) (*Result, error) {
	doc, err := xmltree.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("iconfont: manifest: %w", err)
	}

	o := defaultOptions()
	if doc.Name == manifestRootTag {
		if err := applyManifestAttrs(&o, doc.Attrs); err != nil {
			return nil, err
		}
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.resolve()

	res := &Result{reg: newRegistry(o.startUnicode)}
	c := &collector{o: &o, res: res}
	if err := c.collectManifest(doc, manifestPath); err != nil {
		return nil, err
	}
	if err := generate(res, &o, formats); err != nil {
		return nil, err
	}
	return res, nil
}

// CompileSources compiles explicitly supplied sources, bypassing the
// manifest. Options that a manifest would embed must be supplied as caller
// options.
func CompileSources(sources []Source, formats []Format, opts ...Option) (*Result, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	o.resolve()

	res := &Result{reg: newRegistry(o.startUnicode)}
	c := &collector{o: &o, res: res}
	if err := c.collectSources(sources); err != nil {
		return nil, err
	}
	if err := generate(res, &o, formats); err != nil {
		return nil, err
	}
	return res, nil
}

// errNoCodec reports a requested binary format whose codec was injected as
// nil.
var errNoCodec = errors.New("iconfont: no codec configured")

// generate runs the format orchestrator: it expands the requested formats
// to their dependency closure and produces each activated artifact exactly
// once, in dependency order. Binary branches thread buffers forward
// (container to TTF to the wrapped formats); the text artifacts depend only
// on the finalized icon list.
func generate(res *Result, o *options, formats []Format) error {
	active, err := resolveFormats(formats)
	if err != nil {
		return err
	}
	if o.hash == "" {
		o.hash = contentHash(res.Icons)
	}
	res.FileName = o.fileName

	log := Logger()
	log.Debug("iconfont: generating artifacts",
		"icons", len(res.Icons),
		"formats", len(active))

	if active[FormatSVGFont] {
		res.SVGFont = []byte(buildSVGFont(res.Icons, o))
	}
	if active[FormatTTF] {
		if o.codecs.SVGFontToTTF == nil {
			return fmt.Errorf("%w for %q", errNoCodec, FormatTTF)
		}
		// An empty icon list forces normalized mode: the degenerate
		// geometry otherwise fails inside the vector font assembly.
		ttf, err := o.codecs.SVGFontToTTF(res.SVGFont, CodecOptions{
			FormatOptions:      o.ttf,
			Round:              o.round,
			Normalize:          o.normalize || len(res.Icons) == 0,
			CenterHorizontally: o.centerHorizontally,
		})
		if err != nil {
			return fmt.Errorf("iconfont: encode ttf: %w", err)
		}
		res.TTF = ttf
	}
	if active[FormatEOT] {
		if o.codecs.TTFToEOT == nil {
			return fmt.Errorf("%w for %q", errNoCodec, FormatEOT)
		}
		eot, err := o.codecs.TTFToEOT(res.TTF)
		if err != nil {
			return fmt.Errorf("iconfont: encode eot: %w", err)
		}
		res.EOT = eot
	}
	if active[FormatWOFF] {
		if o.codecs.TTFToWOFF == nil {
			return fmt.Errorf("%w for %q", errNoCodec, FormatWOFF)
		}
		woff, err := o.codecs.TTFToWOFF(res.TTF)
		if err != nil {
			return fmt.Errorf("iconfont: encode woff: %w", err)
		}
		res.WOFF = woff
	}
	if active[FormatWOFF2] {
		if o.codecs.TTFToWOFF2 == nil {
			return fmt.Errorf("%w for %q", errNoCodec, FormatWOFF2)
		}
		woff2, err := o.codecs.TTFToWOFF2(res.TTF)
		if err != nil {
			return fmt.Errorf("iconfont: encode woff2: %w", err)
		}
		res.WOFF2 = woff2
	}

	if active[FormatSVG] {
		sprite, err := buildSprite(res.Icons)
		if err != nil {
			return err
		}
		res.Sprite = sprite
	}
	if active[FormatJS] {
		res.JS = buildInjectionScript(res.Sprite)
	}
	if active[FormatCSS] {
		res.CSS = buildStylesheet(res.Icons, o)
	}
	if active[FormatHTML] {
		html, err := buildPreview(res.Icons, o)
		if err != nil {
			return err
		}
		res.HTML = html
	}

	log.Info("iconfont: compile complete",
		"icons", len(res.Icons),
		"svgfont", len(res.SVGFont),
		"ttf", len(res.TTF),
		"eot", len(res.EOT),
		"woff", len(res.WOFF),
		"woff2", len(res.WOFF2))
	return nil
}

// contentHash derives the default cache-busting token from the collected
// icons, so unchanged input keeps identical output and any icon change
// busts caches.
func contentHash(icons []Icon) string {
	h := fnv.New32a()
	for _, icon := range icons {
		h.Write([]byte(icon.Name))
		h.Write([]byte{0})
		h.Write([]byte(icon.Markup))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%08x", h.Sum32())
}
