// Package xmltree parses an XML document into a generic node tree while
// preserving the raw markup of every element.
//
// The compiler treats icon bodies as opaque serialized markup: it needs the
// element structure and attributes for identity resolution, but must pass
// the original bytes through to the font codecs untouched. encoding/xml's
// struct unmarshalling cannot give both views at once, so this package walks
// the token stream and records, for each element, the byte range of its
// outer markup and of its content.
package xmltree

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Node is one element of a parsed document.
type Node struct {
	// Name is the element's local name; namespace prefixes are resolved
	// by the decoder and not needed by callers.
	Name string

	// Attrs holds the element's attributes in document order.
	Attrs []xml.Attr

	// Children holds the direct child elements in document order.
	Children []*Node

	// Inner is the raw markup between the start and end tags.
	Inner string

	// Outer is the raw markup of the whole element, tags included.
	Outer string
}

// ErrNoRoot is returned when the document contains no element.
var ErrNoRoot = errors.New("xmltree: document has no root element")

// Parse reads an XML document and returns its root node.
func Parse(text string) (*Node, error) {
	d := xml.NewDecoder(strings.NewReader(text))

	var (
		root  *Node
		stack []*Node
		// Byte offsets of the outer and inner start of every open element.
		outerStart []int64
		innerStart []int64
	)

	prev := d.InputOffset()
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("xmltree: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{
				Name:  t.Name.Local,
				Attrs: append([]xml.Attr(nil), t.Attr...),
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			} else if root == nil {
				root = n
			}
			stack = append(stack, n)
			outerStart = append(outerStart, prev)
			innerStart = append(innerStart, d.InputOffset())

		case xml.EndElement:
			n := stack[len(stack)-1]
			n.Inner = text[innerStart[len(innerStart)-1]:prev]
			n.Outer = text[outerStart[len(outerStart)-1]:d.InputOffset()]
			stack = stack[:len(stack)-1]
			outerStart = outerStart[:len(outerStart)-1]
			innerStart = innerStart[:len(innerStart)-1]
		}
		prev = d.InputOffset()
	}

	if root == nil {
		return nil, ErrNoRoot
	}
	return root, nil
}

// Attr returns the value of the attribute with the given local name.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}
