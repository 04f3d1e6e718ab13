package iconfont

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/gogpu/iconfont/internal/xmltree"
)

// previewTemplate renders the self-contained preview page. Icon titles and
// class names are user-controlled, so they flow through html/template's
// contextual escaping; only the sprite, which this package assembled itself,
// is injected as trusted markup.
var previewTemplate = template.Must(template.New("html").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.FontFamily}} preview</title>
<style>
body { font-family: sans-serif; margin: 2rem; background: #fafafa; color: #222; }
h1 { font-weight: normal; }
ul { list-style: none; padding: 0; display: grid; grid-template-columns: repeat(auto-fill, minmax(16rem, 1fr)); gap: .5rem; }
li { background: #fff; border: 1px solid #ddd; border-radius: 4px; padding: .75rem; display: flex; align-items: center; gap: .75rem; cursor: pointer; }
li svg { width: 2rem; height: 2rem; fill: currentColor; flex: none; }
li .meta { display: flex; flex-direction: column; min-width: 0; }
li code { color: #555; }
li small { color: #999; }
</style>
</head>
<body>
<h1>{{.FontFamily}}</h1>
{{.Sprite}}
<ul>
{{- range .Entries}}
<li data-copy="{{.Class}}" title="Click to copy">
<svg aria-hidden="true"><use href="#{{.SymbolID}}"></use></svg>
<span class="meta">
{{- if .ShowTitle}}
<strong>{{.Title}}</strong>
{{- end}}
<code>{{.Class}}</code>
<small>{{.Codepoint}}</small>
</span>
</li>
{{- end}}
</ul>
<script>
document.querySelectorAll("li[data-copy]").forEach(function (item) {
  item.addEventListener("click", function () {
    navigator.clipboard.writeText(item.getAttribute("data-copy"));
  });
});
</script>
</body>
</html>
`))

type previewData struct {
	FontFamily string
	Sprite     template.HTML
	Entries    []previewEntry
}

type previewEntry struct {
	Class     string
	SymbolID  string
	Title     string
	ShowTitle bool
	Codepoint string
}

// buildPreview renders the HTML listing: one entry per icon in icon order,
// showing the rendered glyph, the title when it differs from the class, the
// class name and the code point.
func buildPreview(icons []Icon, o *options) (string, error) {
	sprite, err := buildSprite(icons)
	if err != nil {
		return "", err
	}

	data := previewData{
		FontFamily: o.fontFamily,
		Sprite:     template.HTML(sprite),
	}
	for _, icon := range icons {
		class := strings.TrimSuffix(strings.TrimPrefix(classSelector(o.cssPrefix, icon.ClassName), "."), "::before")
		symbolID := icon.ClassName
		if node, err := xmltree.Parse(icon.Markup); err == nil {
			symbolID = spriteSymbolID(node, icon)
		}
		data.Entries = append(data.Entries, previewEntry{
			Class:     class,
			SymbolID:  symbolID,
			Title:     icon.Title,
			ShowTitle: icon.Title != class && icon.Title != icon.ClassName,
			Codepoint: fmt.Sprintf("U+%04X", icon.Unicode),
		})
	}

	var b strings.Builder
	if err := previewTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("iconfont: preview: %w", err)
	}
	return b.String(), nil
}
