package shader

import (
	"fmt"
	"strings"
)

// Origin is the file and 1-based line that an output line came from.
type Origin struct {
	Path string
	Line int
}

func (o Origin) String() string {
	return fmt.Sprintf("%s:%d", o.Path, o.Line)
}

// Unit is a flattened compilation unit.
type Unit struct {
	// Source is the flattened WGSL text.
	Source string
	// Origins holds the origin of each line of Source; Origins[i] is line i+1.
	Origins []Origin
	// Files lists every file that contributed to Source, in inlining order.
	Files []string

	// replacedStart is the first 1-based line rewritten by [Unit.Replace],
	// or zero for units that were not rewritten.
	replacedStart int
}

// Origin returns the origin of the given 1-based line of the unit's source.
func (u *Unit) Origin(line int) (Origin, bool) {
	if line < 1 || line > len(u.Origins) {
		return Origin{}, false
	}

	return u.Origins[line-1], true
}

// Lines returns the number of lines in the unit.
func (u *Unit) Lines() int {
	return len(u.Origins)
}

// Replace returns a unit whose source is src, a variant of the unit's source
// with one contiguous region rewritten (as by template substitution). Lines
// outside the region keep their origins; lines inside it inherit the origin of
// the first rewritten line.
func (u *Unit) Replace(src string) *Unit {
	oldLines := splitLines(u.Source)
	newLines := splitLines(src)

	limit := min(len(oldLines), len(newLines))

	prefix := 0
	for prefix < limit && oldLines[prefix] == newLines[prefix] {
		prefix++
	}

	suffix := 0
	for suffix < limit-prefix &&
		oldLines[len(oldLines)-1-suffix] == newLines[len(newLines)-1-suffix] {
		suffix++
	}

	origins := make([]Origin, len(newLines))
	for i := range origins {
		switch {
		case i < prefix:
			origins[i] = u.origin(i)
		case i >= len(newLines)-suffix:
			origins[i] = u.origin(len(oldLines) - (len(newLines) - i))
		default:
			origins[i] = u.origin(prefix)
		}
	}

	out := &Unit{Source: src, Origins: origins, Files: u.Files}
	if prefix < len(newLines)-suffix {
		out.replacedStart = prefix + 1
	}

	return out
}

// replacedOrigin returns the origin of the rewritten region when line starts
// the function that encloses it.
func (u *Unit) replacedOrigin(line int) (Origin, bool) {
	if u.replacedStart == 0 || line < 1 || line >= u.replacedStart {
		return Origin{}, false
	}

	lines := splitLines(u.Source)
	if line > len(lines) || !isFunctionStart(lines[line-1]) {
		return Origin{}, false
	}

	for _, l := range lines[line : u.replacedStart-1] {
		if isFunctionStart(l) {
			return Origin{}, false
		}
	}

	return u.Origin(u.replacedStart)
}

func isFunctionStart(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "fn ")
}

func (u *Unit) origin(i int) Origin {
	if len(u.Origins) == 0 {
		return Origin{}
	}

	return u.Origins[min(i, len(u.Origins)-1)]
}

// splitLines splits s into lines, ignoring a single trailing newline.
func splitLines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
