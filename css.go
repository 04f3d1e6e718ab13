package iconfont

import (
	"fmt"
	"strings"
	"text/template"
)

// stylesheetTemplate renders one @font-face block referencing the binary
// artifact URLs, a grouped rule applying the font to every icon selector,
// and one content rule per icon.
var stylesheetTemplate = template.Must(template.New("css").Parse(`@font-face {
  font-family: "{{.FontFamily}}";
  src: url("{{.EOTURL}}");
  src: url("{{.EOTURL}}#iefix") format("embedded-opentype"),
    url("{{.WOFF2URL}}") format("woff2"),
    url("{{.WOFFURL}}") format("woff"),
    url("{{.TTFURL}}") format("truetype"),
    url("{{.SVGURL}}#{{.FontID}}") format("svg");
  font-weight: {{.FontWeight}};
  font-style: {{.FontStyle}};
}
{{if .Selectors}}
{{.Selectors}} {
  font-family: "{{.FontFamily}}";
  font-style: normal;
  font-weight: normal;
  font-variant: normal;
  text-transform: none;
  line-height: 1;
  -webkit-font-smoothing: antialiased;
  -moz-osx-font-smoothing: grayscale;
}
{{end}}{{range .Rules}}
{{.Selector}} { content: "\{{.Hex}}"; }{{end}}
`))

type stylesheetData struct {
	FontFamily string
	FontID     string
	FontWeight string
	FontStyle  string
	EOTURL     string
	WOFF2URL   string
	WOFFURL    string
	TTFURL     string
	SVGURL     string
	Selectors  string
	Rules      []stylesheetRule
}

type stylesheetRule struct {
	Selector string
	Hex      string
}

// buildStylesheet renders the CSS artifact from the finalized icon list. It
// reads no binary output: artifact URLs derive from the output base
// filename and the cache-busting token alone.
func buildStylesheet(icons []Icon, o *options) string {
	data := stylesheetData{
		FontFamily: o.fontFamily,
		FontID:     o.fontID,
		FontWeight: o.fontWeight,
		FontStyle:  o.fontStyle,
		EOTURL:     artifactURL(o, "eot"),
		WOFF2URL:   artifactURL(o, "woff2"),
		WOFFURL:    artifactURL(o, "woff"),
		TTFURL:     artifactURL(o, "ttf"),
		SVGURL:     artifactURL(o, "svg"),
	}

	selectors := make([]string, 0, len(icons))
	for _, icon := range icons {
		sel := classSelector(o.cssPrefix, icon.ClassName)
		selectors = append(selectors, sel)
		data.Rules = append(data.Rules, stylesheetRule{
			Selector: sel,
			Hex:      fmt.Sprintf("%x", icon.Unicode),
		})
	}
	data.Selectors = strings.Join(selectors, ",\n")

	var b strings.Builder
	// The template only fails on invalid data types, which the fixed
	// stylesheetData layout rules out.
	if err := stylesheetTemplate.Execute(&b, data); err != nil {
		panic(err)
	}
	return b.String()
}

// classSelector builds an icon's selector: "{prefix}-{class}" when a
// non-empty prefix is configured, the bare class otherwise.
func classSelector(prefix, className string) string {
	if prefix == "" {
		return "." + className + "::before"
	}
	return "." + prefix + "-" + className + "::before"
}

// artifactURL derives the URL the stylesheet references for one binary
// artifact, appending the cache-busting token when present.
func artifactURL(o *options, ext string) string {
	if o.hash == "" {
		return o.fileName + "." + ext
	}
	return o.fileName + "." + ext + "?" + o.hash
}
