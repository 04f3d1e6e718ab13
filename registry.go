package iconfont

import "strconv"

// DefaultStartUnicode is the first code point assigned to icons that do not
// declare one. It sits at the start of the Unicode private-use area commonly
// reserved for icon fonts, so generated glyphs never collide with real text.
const DefaultStartUnicode rune = 0xEA01

// registry allocates collision-free icon names, CSS class names and code
// points for one compile run. All three sets only ever grow; allocation is
// deterministic given the order of calls, so repeated compiles of the same
// input produce identical identities.
//
// A registry is owned by exactly one compile invocation. Keeping it off any
// package-level state is what makes concurrent independent compiles safe.
type registry struct {
	names       map[string]struct{}
	classNames  map[string]struct{}
	unicodes    map[rune]struct{}
	nextUnicode rune
}

func newRegistry(start rune) *registry {
	if start <= 0 {
		start = DefaultStartUnicode
	}
	return &registry{
		names:       make(map[string]struct{}),
		classNames:  make(map[string]struct{}),
		unicodes:    make(map[rune]struct{}),
		nextUnicode: start,
	}
}

// uniqueString registers candidate in set, disambiguating an occupied
// candidate with a 1-based counter suffix starting at 2 ("x", "x-2", "x-3").
// It never fails: some probe is always free.
func uniqueString(candidate string, set map[string]struct{}) string {
	if _, used := set[candidate]; !used {
		set[candidate] = struct{}{}
		return candidate
	}
	for i := 2; ; i++ {
		probe := candidate + "-" + strconv.Itoa(i)
		if _, used := set[probe]; !used {
			set[probe] = struct{}{}
			return probe
		}
	}
}

func (r *registry) uniqueName(candidate string) string {
	return uniqueString(candidate, r.names)
}

func (r *registry) uniqueClassName(candidate string) string {
	return uniqueString(candidate, r.classNames)
}

// explicitUnicode registers the declared code point, walking forward past
// occupied points. A non-positive candidate (no valid declaration) falls
// back to DefaultStartUnicode. The auto-assignment cursor is not moved:
// explicit declarations never steer automatic numbering.
func (r *registry) explicitUnicode(candidate rune) rune {
	if candidate <= 0 {
		candidate = DefaultStartUnicode
	}
	for {
		if _, used := r.unicodes[candidate]; !used {
			break
		}
		candidate++
	}
	r.unicodes[candidate] = struct{}{}
	return candidate
}

// autoUnicode assigns the next free code point at or above the cursor and
// advances the cursor past it, so later automatic assignments continue from
// the highest point reached even if earlier points were never used.
func (r *registry) autoUnicode() rune {
	cp := r.nextUnicode
	for {
		if _, used := r.unicodes[cp]; !used {
			break
		}
		cp++
	}
	r.unicodes[cp] = struct{}{}
	r.nextUnicode = cp + 1
	return cp
}
