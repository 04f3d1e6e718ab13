package iconfont

import "testing"

func TestWithOptions(t *testing.T) {
	o := defaultOptions()
	for _, opt := range []Option{
		WithFontFamily("ui"),
		WithFontID("ui-id"),
		WithFontStyle("italic"),
		WithFontWeight("bold"),
		WithFixedWidth(true),
		WithCenterHorizontally(true),
		WithNormalize(true),
		WithFontHeight(2048),
		WithRound(1000),
		WithDescent(205),
		WithMetadata("meta"),
		WithStartUnicode(0xF000),
		WithPrependUnicode(true),
		WithFileName("bundle"),
		WithHash("deadbeef"),
		WithFormatOptions(FormatOptions{Version: "2.0"}),
	} {
		opt(&o)
	}
	o.resolve()

	if o.fontFamily != "ui" || o.fontID != "ui-id" || o.fileName != "bundle" {
		t.Errorf("naming = %q/%q/%q", o.fontFamily, o.fontID, o.fileName)
	}
	if o.fontStyle != "italic" || o.fontWeight != "bold" {
		t.Errorf("face = %q/%q", o.fontStyle, o.fontWeight)
	}
	if !o.fixedWidth || !o.centerHorizontally || !o.normalize || !o.prependUnicode {
		t.Error("boolean options not applied")
	}
	if o.fontHeight != 2048 || o.round != 1000 || o.descent != 205 {
		t.Errorf("metrics = %d/%g/%d", o.fontHeight, o.round, o.descent)
	}
	if o.ascent != 2048-205 {
		t.Errorf("ascent = %d, want derived %d", o.ascent, 2048-205)
	}
	if o.startUnicode != 0xF000 || o.hash != "deadbeef" || o.metadata != "meta" {
		t.Errorf("options = %#x/%q/%q", o.startUnicode, o.hash, o.metadata)
	}
	if o.ttf.Version != "2.0" {
		t.Errorf("ttf version = %q", o.ttf.Version)
	}
	// The explicit file name feeds the default css prefix.
	if o.cssPrefix != "bundle" {
		t.Errorf("cssPrefix = %q, want %q", o.cssPrefix, "bundle")
	}
}

func TestWithAscentOverridesDerivation(t *testing.T) {
	o := defaultOptions()
	WithAscent(900)(&o)
	WithDescent(300)(&o)
	o.resolve()
	if o.ascent != 900 {
		t.Errorf("ascent = %d, want the explicit 900", o.ascent)
	}
}

func TestWithFSNilKeepsDefault(t *testing.T) {
	o := defaultOptions()
	WithFS(nil)(&o)
	if o.fs == nil {
		t.Error("nil FS should keep the default filesystem")
	}
}
