package iconfont

import (
	"fmt"
	"strings"

	"github.com/gogpu/iconfont/internal/xmltree"
)

// buildSprite assembles the symbol sprite: one visually hidden SVG document
// wrapping every icon body as a named symbol for inline reuse. The symbol
// id is the body's own declared id when it has one, the icon's class name
// otherwise.
func buildSprite(icons []Icon) (string, error) {
	var b strings.Builder
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" style="position:absolute;width:0;height:0;overflow:hidden" aria-hidden="true">`)
	for _, icon := range icons {
		node, err := xmltree.Parse(icon.Markup)
		if err != nil {
			return "", fmt.Errorf("iconfont: sprite: icon %q: %w", icon.Name, err)
		}
		b.WriteString(`<symbol id="`)
		b.WriteString(xmlEscape(spriteSymbolID(node, icon)))
		b.WriteString(`"`)
		for _, a := range node.Attrs {
			// Width and height would pin the symbol's rendered size;
			// namespace declarations and the id are already handled.
			if a.Name.Space != "" || a.Name.Local == "id" ||
				a.Name.Local == "xmlns" || a.Name.Local == "width" || a.Name.Local == "height" {
				continue
			}
			fmt.Fprintf(&b, ` %s="%s"`, a.Name.Local, xmlEscape(a.Value))
		}
		b.WriteString(">")
		b.WriteString(node.Inner)
		b.WriteString("</symbol>")
	}
	b.WriteString("</svg>")
	return b.String(), nil
}

func spriteSymbolID(node *xmltree.Node, icon Icon) string {
	if id, ok := node.Attr("id"); ok && id != "" {
		return id
	}
	return icon.ClassName
}

// buildInjectionScript wraps the sprite in a self-invoking routine that
// injects it at the start of the document body, retrying on a short delay
// until a body exists.
func buildInjectionScript(sprite string) string {
	var b strings.Builder
	b.WriteString("(function () {\n")
	b.WriteString("  var sprite = '")
	b.WriteString(escapeJSString(sprite))
	b.WriteString("';\n")
	b.WriteString("  function inject() {\n")
	b.WriteString("    var body = document.body;\n")
	b.WriteString("    if (!body) {\n")
	b.WriteString("      setTimeout(inject, 15);\n")
	b.WriteString("      return;\n")
	b.WriteString("    }\n")
	b.WriteString("    body.insertAdjacentHTML('afterbegin', sprite);\n")
	b.WriteString("  }\n")
	b.WriteString("  inject();\n")
	b.WriteString("})();\n")
	return b.String()
}

// jsEscaper makes arbitrary markup safe inside a single-quoted script
// string literal: backslashes and quotes are escaped, line separators become
// escape sequences, and "</" is broken up so the payload cannot terminate a
// surrounding script element.
var jsEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\r\n", `\n`,
	"\n", `\n`,
	"\r", `\n`,
	" ", `\u2028`,
	" ", `\u2029`,
	"</", `<\/`,
)

func escapeJSString(s string) string {
	return jsEscaper.Replace(s)
}
