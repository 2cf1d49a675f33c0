package shader

import (
	"path"
	"regexp"
	"strings"
)

var (
	importRe           = regexp.MustCompile(`^\s*#\s*import\s+(\S.*?)\s*$`)
	defineImportPathRe = regexp.MustCompile(`^\s*#\s*define_import_path\s+(\S.*?)\s*$`)
)

// Directive is an `#import` line found in a shader source.
type Directive struct {
	// Path is the referenced path, as written (without quotes or brackets).
	Path string
	// Line is the 1-based line number of the directive.
	Line int
}

// Directives returns the `#import` directives in src, in source order.
func Directives(src string) []Directive {
	var ds []Directive
	for i, line := range strings.Split(src, "\n") {
		if p, ok := parseImport(line); ok {
			ds = append(ds, Directive{Path: p, Line: i + 1})
		}
	}

	return ds
}

func parseImport(line string) (string, bool) {
	return matchDirective(importRe, line)
}

func parseDefineImportPath(line string) (string, bool) {
	return matchDirective(defineImportPathRe, line)
}

func matchDirective(re *regexp.Regexp, line string) (string, bool) {
	line = stripComment(strings.TrimSuffix(line, "\r"))

	m := re.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}

	return unquote(m[1]), true
}

func stripComment(line string) string {
	if i := strings.Index(line, "//"); i >= 0 {
		return line[:i]
	}

	return line
}

// unquote removes a matching pair of double quotes or angle brackets.
func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '<' && s[len(s)-1] == '>') {
			return strings.TrimSpace(s[1 : len(s)-1])
		}
	}

	return s
}

// importBase returns the directory set by the last `#define_import_path`
// directive in lines, or "" if there is none.
func importBase(lines []string) string {
	base := ""
	for _, line := range lines {
		if p, ok := parseDefineImportPath(line); ok {
			base = p
		}
	}

	return base
}

// resolvePath maps an import reference to a loader path. References starting
// with "./" or "../" are relative to the importing file; all others are
// relative to base (or the loader root when base is empty).
func resolvePath(from, base, ref string) (string, bool) {
	var p string

	switch {
	case strings.HasPrefix(ref, "./"), strings.HasPrefix(ref, "../"):
		p = path.Join(path.Dir(from), ref)
	case base != "":
		p = path.Join(base, ref)
	default:
		p = ref
	}

	return cleanPath(p)
}

func cleanPath(p string) (string, bool) {
	p = strings.TrimPrefix(path.Clean(p), "/")
	if p == "" || p == "." || p == ".." || strings.HasPrefix(p, "../") {
		return p, false
	}

	return p, true
}
