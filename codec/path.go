package codec

import (
	"fmt"
	"strconv"
	"strings"
)

// outlinePoint is one quadratic outline point in SVG user units.
type outlinePoint struct {
	x, y float64
	on   bool
}

// contour is one closed outline loop. TrueType contours are implicitly
// closed, so no terminator point is stored.
type contour []outlinePoint

// pathParser consumes SVG path data and accumulates quadratic contours.
type pathParser struct {
	lex lexer

	contours []contour
	current  contour

	pos       point // current position
	start     point // first point of the open contour
	lastCtrl  point // reflection base for S and T
	lastCmd   byte
	havePoint bool
}

// parsePathData converts one path's data attribute into quadratic contours.
func parsePathData(d string) ([]contour, error) {
	p := &pathParser{lex: lexer{src: d}}
	if err := p.run(); err != nil {
		return nil, fmt.Errorf("codec: path data %.20q: %w", d, err)
	}
	p.closeContour()
	return p.contours, nil
}

func (p *pathParser) run() error {
	for {
		cmd, ok := p.lex.command()
		if !ok {
			return p.lex.err
		}
		if cmd == 0 {
			return nil
		}
		if err := p.apply(cmd); err != nil {
			return err
		}
	}
}

// apply executes one command with all its repeated argument groups.
func (p *pathParser) apply(cmd byte) error {
	rel := cmd >= 'a'
	upper := cmd &^ 0x20

	for first := true; first || p.lex.hasNumber(); first = false {
		switch upper {
		case 'M':
			pt, err := p.lex.point()
			if err != nil {
				return err
			}
			pt = p.abs(pt, rel)
			if first {
				p.closeContour()
				p.moveTo(pt)
			} else {
				// Extra coordinate pairs after a moveto are
				// implicit linetos.
				p.lineTo(pt)
			}

		case 'L':
			pt, err := p.lex.point()
			if err != nil {
				return err
			}
			p.lineTo(p.abs(pt, rel))

		case 'H':
			x, err := p.lex.number()
			if err != nil {
				return err
			}
			if rel {
				x += p.pos.x
			}
			p.lineTo(point{x, p.pos.y})

		case 'V':
			y, err := p.lex.number()
			if err != nil {
				return err
			}
			if rel {
				y += p.pos.y
			}
			p.lineTo(point{p.pos.x, y})

		case 'C':
			c1, err := p.lex.point()
			if err != nil {
				return err
			}
			c2, err := p.lex.point()
			if err != nil {
				return err
			}
			end, err := p.lex.point()
			if err != nil {
				return err
			}
			p.cubicTo(p.abs(c1, rel), p.abs(c2, rel), p.abs(end, rel))

		case 'S':
			c2, err := p.lex.point()
			if err != nil {
				return err
			}
			end, err := p.lex.point()
			if err != nil {
				return err
			}
			c1 := p.pos
			if p.lastCmd == 'C' || p.lastCmd == 'S' {
				c1 = reflect(p.lastCtrl, p.pos)
			}
			p.cubicTo(c1, p.abs(c2, rel), p.abs(end, rel))
			p.lastCmd = 'S'

		case 'Q':
			ctrl, err := p.lex.point()
			if err != nil {
				return err
			}
			end, err := p.lex.point()
			if err != nil {
				return err
			}
			p.quadTo(p.abs(ctrl, rel), p.abs(end, rel))

		case 'T':
			end, err := p.lex.point()
			if err != nil {
				return err
			}
			ctrl := p.pos
			if p.lastCmd == 'Q' || p.lastCmd == 'T' {
				ctrl = reflect(p.lastCtrl, p.pos)
			}
			p.quadTo(ctrl, p.abs(end, rel))
			p.lastCtrl = ctrl
			p.lastCmd = 'T'

		case 'A':
			rx, err := p.lex.number()
			if err != nil {
				return err
			}
			ry, err := p.lex.number()
			if err != nil {
				return err
			}
			rot, err := p.lex.number()
			if err != nil {
				return err
			}
			large, err := p.lex.flag()
			if err != nil {
				return err
			}
			sweep, err := p.lex.flag()
			if err != nil {
				return err
			}
			end, err := p.lex.point()
			if err != nil {
				return err
			}
			to := p.abs(end, rel)
			for _, c := range arcToCubics(p.pos, rx, ry, rot, large, sweep, to) {
				p.cubicTo(c.p1, c.p2, c.p3)
			}

		case 'Z':
			p.closeContour()
			p.pos = p.start

		default:
			return fmt.Errorf("unknown command %q", string(cmd))
		}

		if upper != 'S' && upper != 'T' {
			p.lastCmd = upper
		}
		if upper == 'Z' {
			return nil
		}
	}
	return nil
}

func (p *pathParser) abs(pt point, rel bool) point {
	if rel {
		return point{pt.x + p.pos.x, pt.y + p.pos.y}
	}
	return pt
}

func (p *pathParser) moveTo(pt point) {
	p.current = contour{{x: pt.x, y: pt.y, on: true}}
	p.pos = pt
	p.start = pt
	p.havePoint = true
}

func (p *pathParser) lineTo(pt point) {
	p.ensureContour()
	p.current = append(p.current, outlinePoint{x: pt.x, y: pt.y, on: true})
	p.pos = pt
}

func (p *pathParser) quadTo(ctrl, end point) {
	p.ensureContour()
	p.current = append(p.current,
		outlinePoint{x: ctrl.x, y: ctrl.y},
		outlinePoint{x: end.x, y: end.y, on: true})
	p.pos = end
	p.lastCtrl = ctrl
}

func (p *pathParser) cubicTo(c1, c2, end point) {
	p.ensureContour()
	for _, q := range cubicToQuads(cubic{p0: p.pos, p1: c1, p2: c2, p3: end}) {
		p.current = append(p.current,
			outlinePoint{x: q.ctrl.x, y: q.ctrl.y},
			outlinePoint{x: q.end.x, y: q.end.y, on: true})
	}
	p.pos = end
	p.lastCtrl = c2
}

// ensureContour starts an implicit contour at the current position when
// path data begins with a drawing command.
func (p *pathParser) ensureContour() {
	if p.current == nil {
		p.current = contour{{x: p.pos.x, y: p.pos.y, on: true}}
		p.start = p.pos
	}
}

// closeContour commits the open contour. Loops too small to enclose area
// are dropped.
func (p *pathParser) closeContour() {
	if len(p.current) >= 3 {
		// A trailing point equal to the start duplicates the implicit
		// closing edge.
		last := p.current[len(p.current)-1]
		first := p.current[0]
		if last.on && last.x == first.x && last.y == first.y {
			p.current = p.current[:len(p.current)-1]
		}
	}
	if len(p.current) >= 2 {
		p.contours = append(p.contours, p.current)
	}
	p.current = nil
}

// reflect mirrors a control point through the current position.
func reflect(ctrl, about point) point {
	return point{2*about.x - ctrl.x, 2*about.y - ctrl.y}
}

// lexer tokenizes SVG path data: commands, numbers and arc flags, separated
// by whitespace or commas.
type lexer struct {
	src string
	i   int
	err error
}

func (l *lexer) skipSeparators() {
	for l.i < len(l.src) {
		switch l.src[l.i] {
		case ' ', '\t', '\n', '\r', ',':
			l.i++
		default:
			return
		}
	}
}

// command returns the next command letter, or 0 at the end of input.
func (l *lexer) command() (byte, bool) {
	l.skipSeparators()
	if l.i >= len(l.src) {
		return 0, true
	}
	c := l.src[l.i]
	if !isCommand(c) {
		l.err = fmt.Errorf("expected command at byte %d, found %q", l.i, string(c))
		return 0, false
	}
	l.i++
	return c, true
}

// hasNumber reports whether another argument group follows for the current
// command.
func (l *lexer) hasNumber() bool {
	l.skipSeparators()
	if l.i >= len(l.src) {
		return false
	}
	c := l.src[l.i]
	return c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9')
}

func (l *lexer) number() (float64, error) {
	l.skipSeparators()
	start := l.i
	i := l.i
	if i < len(l.src) && (l.src[i] == '-' || l.src[i] == '+') {
		i++
	}
	for i < len(l.src) && l.src[i] >= '0' && l.src[i] <= '9' {
		i++
	}
	if i < len(l.src) && l.src[i] == '.' {
		i++
		for i < len(l.src) && l.src[i] >= '0' && l.src[i] <= '9' {
			i++
		}
	}
	if i < len(l.src) && (l.src[i] == 'e' || l.src[i] == 'E') {
		j := i + 1
		if j < len(l.src) && (l.src[j] == '-' || l.src[j] == '+') {
			j++
		}
		digits := false
		for j < len(l.src) && l.src[j] >= '0' && l.src[j] <= '9' {
			j++
			digits = true
		}
		if digits {
			i = j
		}
	}
	if i == start {
		return 0, fmt.Errorf("expected number at byte %d", start)
	}
	n, err := strconv.ParseFloat(l.src[start:i], 64)
	if err != nil {
		return 0, fmt.Errorf("number at byte %d: %w", start, err)
	}
	l.i = i
	return n, nil
}

// flag reads one arc flag. Flags are single digits and may be packed
// without separators ("11" is two flags).
func (l *lexer) flag() (bool, error) {
	l.skipSeparators()
	if l.i >= len(l.src) {
		return false, fmt.Errorf("expected arc flag at byte %d", l.i)
	}
	switch l.src[l.i] {
	case '0':
		l.i++
		return false, nil
	case '1':
		l.i++
		return true, nil
	}
	return false, fmt.Errorf("expected arc flag at byte %d, found %q", l.i, string(l.src[l.i]))
}

func (l *lexer) point() (point, error) {
	x, err := l.number()
	if err != nil {
		return point{}, err
	}
	y, err := l.number()
	if err != nil {
		return point{}, err
	}
	return point{x, y}, nil
}

func isCommand(c byte) bool {
	return strings.IndexByte("MmLlHhVvCcSsQqTtAaZz", c) >= 0
}
