package iconfont

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// manifestRootTag is the reserved wrapper tag of a manifest document. A
// document with any other root tag is treated as a single inline icon.
const manifestRootTag = "iconfont"

// manifestIconTag names one icon declaration inside the wrapper.
const manifestIconTag = "svg"

// applyManifestAttrs configures options from the manifest root's attributes.
// Attribute values are strings: booleans are false only for the literal
// "false", numbers accept decimal, 0x-prefixed hex and percentage forms.
// Unrecognized attributes are ignored so manifests stay forward compatible.
//
// Recognized attributes: name, id, fontStyle, fontWeight, fixedWidth,
// centerHorizontally, normalize, fontHeight, round, descent, ascent,
// metadata, startUnicode, prependUnicode, cssPrefix, fileName, hash,
// copyright, description, ts, url, version.
func applyManifestAttrs(o *options, attrs []xml.Attr) error {
	for _, a := range attrs {
		if err := applyManifestAttr(o, a.Name.Local, a.Value); err != nil {
			return err
		}
	}
	return nil
}

func applyManifestAttr(o *options, name, value string) error {
	var err error
	switch name {
	case "name":
		o.fontFamily = value
	case "id":
		o.fontID = value
	case "fontStyle":
		o.fontStyle = value
	case "fontWeight":
		o.fontWeight = value
	case "fixedWidth":
		o.fixedWidth = manifestBool(value)
	case "centerHorizontally":
		o.centerHorizontally = manifestBool(value)
	case "normalize":
		o.normalize = manifestBool(value)
	case "fontHeight":
		o.fontHeight, err = manifestInt(value)
	case "round":
		o.round, err = manifestNumber(value)
	case "descent":
		o.descent, err = manifestInt(value)
	case "ascent":
		o.ascent, err = manifestInt(value)
		o.ascentSet = err == nil
	case "metadata":
		o.metadata = value
	case "startUnicode":
		var start int
		start, err = manifestInt(value)
		o.startUnicode = rune(start)
	case "prependUnicode":
		o.prependUnicode = manifestBool(value)
	case "cssPrefix":
		o.cssPrefix = value
		o.cssPrefixSet = true
	case "fileName":
		o.fileName = value
	case "hash":
		o.hash = value
	case "copyright":
		o.ttf.Copyright = value
	case "description":
		o.ttf.Description = value
	case "ts":
		var ts int
		ts, err = manifestInt(value)
		o.ttf.Timestamp = int64(ts)
	case "url":
		o.ttf.URL = value
	case "version":
		o.ttf.Version = value
	}
	if err != nil {
		return fmt.Errorf("iconfont: manifest attribute %s=%q: %w", name, value, err)
	}
	return nil
}

// manifestBool interprets a manifest boolean: only the literal "false" is
// false, anything else (including the empty attribute) is true.
func manifestBool(value string) bool {
	return value != "false"
}

// manifestNumber parses a manifest numeric literal: decimal, 0x-prefixed
// hex, or a percentage (divided by 100).
func manifestNumber(value string) (float64, error) {
	s := strings.TrimSpace(value)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		n, err := strconv.ParseUint(s[2:], 16, 32)
		if err != nil {
			return 0, err
		}
		return float64(n), nil
	}
	if strings.HasSuffix(s, "%") {
		n, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, err
		}
		return n / 100, nil
	}
	return strconv.ParseFloat(s, 64)
}

func manifestInt(value string) (int, error) {
	n, err := manifestNumber(value)
	return int(n), err
}

// parseUnicodeAttr interprets an explicit unicode declaration: either a
// 0x-prefixed hex literal or a single printable character. Anything else is
// not a declaration and the icon falls back to automatic assignment.
func parseUnicodeAttr(value string) (rune, bool) {
	s := strings.TrimSpace(value)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		n, err := strconv.ParseUint(s[2:], 16, 32)
		if err != nil || n == 0 || n > unicode.MaxRune {
			return 0, false
		}
		return rune(n), true
	}
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		if r != utf8.RuneError && unicode.IsPrint(r) {
			return r, true
		}
	}
	return 0, false
}
