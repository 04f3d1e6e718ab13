package iconfont

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/gogpu/iconfont/internal/xmltree"
)

// Source is one explicitly supplied icon. Either Path or Content must be
// set; Content wins when both are. The identity fields are optional
// overrides and still pass through the registry, so caller-supplied
// duplicates are silently disambiguated, never rejected.
type Source struct {
	Path      string
	Content   string
	Name      string
	ClassName string
	Title     string

	// Unicode is the declared code point; zero requests automatic
	// assignment.
	Unicode rune
}

// collector walks manifest declarations or explicit sources and appends
// fully allocated icons to the result. Collection is strictly sequential:
// each source is read and its identity committed before the next source is
// visited, which keeps identities deterministic across runs.
type collector struct {
	o   *options
	res *Result
}

// candidate is one accepted source before identity allocation.
type candidate struct {
	name       string
	className  string
	title      string
	unicode    rune
	hasUnicode bool
	markup     string
	sourcePath string
}

// unicodePrefix matches the uXXXX- filename convention declaring an icon's
// code point in its source filename.
var unicodePrefix = regexp.MustCompile(`^u([0-9A-Fa-f]{4,6})-`)

// collectManifest walks a parsed manifest. The reserved root tag wraps
// per-icon declarations; any other root makes the whole document a single
// inline icon.
func (c *collector) collectManifest(doc *xmltree.Node, manifestPath string) error {
	if doc.Name != manifestRootTag {
		c.add(candidateFromNode(doc, doc.Outer))
		return nil
	}

	dir := manifestDir(manifestPath)
	for _, node := range doc.Children {
		if node.Name != manifestIconTag {
			continue
		}
		src, hasSrc := node.Attr("src")
		switch {
		case !hasSrc:
			c.add(candidateFromNode(node, node.Outer))

		case isGlob(src):
			globDir := dir
			if globDir == "" {
				globDir = "."
			}
			c.res.GlobDependencies = appendGlobDependency(c.res.GlobDependencies, GlobDependency{Glob: src, Dir: globDir})
			matches, err := c.o.fs.Glob(src, dir)
			if err != nil {
				return fmt.Errorf("iconfont: glob %q: %w", src, err)
			}
			if len(matches) == 0 {
				return fmt.Errorf("iconfont: glob %q matched no files in %q", src, globDir)
			}
			for _, match := range matches {
				if err := c.collectFile(node, match); err != nil {
					return err
				}
			}

		default:
			if err := c.collectFile(node, joinPath(dir, src)); err != nil {
				return err
			}
		}
	}
	return nil
}

// collectFile reads one icon file and registers it, recording the read as a
// dependency. The manifest node's attributes apply to every file it matched;
// identity conflicts are resolved by the registry.
func (c *collector) collectFile(node *xmltree.Node, filePath string) error {
	content, err := c.o.fs.ReadText(filePath)
	if err != nil {
		return fmt.Errorf("iconfont: read %q: %w", filePath, err)
	}
	c.res.Dependencies = append(c.res.Dependencies, filePath)

	cand := candidateFromNode(node, content)
	cand.sourcePath = filePath
	c.add(cand)
	return nil
}

// collectSources registers explicitly supplied sources in order.
func (c *collector) collectSources(sources []Source) error {
	for _, s := range sources {
		markup := s.Content
		if markup == "" {
			if s.Path == "" {
				return fmt.Errorf("iconfont: source %q has neither path nor content", s.Name)
			}
			content, err := c.o.fs.ReadText(s.Path)
			if err != nil {
				return fmt.Errorf("iconfont: read %q: %w", s.Path, err)
			}
			c.res.Dependencies = append(c.res.Dependencies, s.Path)
			markup = content
		}
		c.add(candidate{
			name:       s.Name,
			className:  s.ClassName,
			title:      s.Title,
			unicode:    s.Unicode,
			hasUnicode: s.Unicode > 0,
			markup:     markup,
			sourcePath: s.Path,
		})
	}
	return nil
}

// add allocates the candidate's identity and appends the icon. Allocation
// is a total operation: collisions disambiguate, invalid code points fall
// back, nothing is rejected.
func (c *collector) add(cand candidate) {
	name := cand.name
	unicode, hasUnicode := cand.unicode, cand.hasUnicode

	if name == "" && cand.sourcePath != "" {
		base := strings.TrimSuffix(path.Base(filepath.ToSlash(cand.sourcePath)), path.Ext(cand.sourcePath))
		if c.o.prependUnicode {
			if m := unicodePrefix.FindStringSubmatch(base); m != nil {
				if !hasUnicode {
					cp, err := strconv.ParseUint(m[1], 16, 32)
					if err == nil && cp > 0 {
						unicode, hasUnicode = rune(cp), true
					}
				}
				base = base[len(m[0]):]
			}
		}
		name = base
	}
	if name == "" {
		name = "icon"
	}
	name = c.res.reg.uniqueName(name)

	className := cand.className
	if className == "" {
		className = name
	}
	className = c.res.reg.uniqueClassName(className)

	title := cand.title
	if title == "" {
		title = name
	}

	icon := Icon{
		Name:      name,
		ClassName: className,
		Title:     title,
		Markup:    cand.markup,
	}
	if hasUnicode {
		icon.Unicode = c.res.reg.explicitUnicode(unicode)
	} else {
		icon.Unicode = c.res.reg.autoUnicode()
		icon.AutoUnicode = true
	}
	c.res.Icons = append(c.res.Icons, icon)

	Logger().Debug("iconfont: collected icon",
		"name", icon.Name,
		"class", icon.ClassName,
		"unicode", fmt.Sprintf("U+%04X", icon.Unicode),
		"auto", icon.AutoUnicode)
}

// candidateFromNode reads the identity attributes a manifest declaration
// may carry.
func candidateFromNode(node *xmltree.Node, markup string) candidate {
	cand := candidate{markup: markup}
	cand.name, _ = node.Attr("name")
	cand.className, _ = node.Attr("class")
	cand.title, _ = node.Attr("title")
	if v, ok := node.Attr("unicode"); ok {
		cand.unicode, cand.hasUnicode = parseUnicodeAttr(v)
	}
	return cand
}

func manifestDir(manifestPath string) string {
	if manifestPath == "" {
		return ""
	}
	dir := path.Dir(filepath.ToSlash(manifestPath))
	if dir == "." {
		return ""
	}
	return dir
}

func appendGlobDependency(deps []GlobDependency, dep GlobDependency) []GlobDependency {
	for _, d := range deps {
		if d == dep {
			return deps
		}
	}
	return append(deps, dep)
}
