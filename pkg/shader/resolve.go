package shader

import (
	"io/fs"
	"slices"
	"strings"
)

// Resolve flattens the entry shader and everything it imports into a single
// source string.
func Resolve(loader Loader, entry string) (string, error) {
	u, err := ResolveUnit(loader, entry)
	if err != nil {
		return "", err
	}

	return u.Source, nil
}

// ResolveUnit flattens the entry shader like [Resolve], additionally
// recording where each output line came from.
func ResolveUnit(loader Loader, entry string) (*Unit, error) {
	p, ok := cleanPath(entry)
	if !ok {
		return nil, &ImportError{Kind: NotFound, Path: entry, Err: fs.ErrInvalid}
	}

	r := &resolver{
		loader: loader,
		done:   map[string]bool{},
	}

	src, err := r.load(p, "", 0)
	if err != nil {
		return nil, err
	}

	err = r.resolve(p, src)
	if err != nil {
		return nil, err
	}

	out := strings.Join(r.lines, "\n")
	if strings.HasSuffix(src, "\n") {
		out += "\n"
	}

	return &Unit{Source: out, Origins: r.origins, Files: r.files}, nil
}

type resolver struct {
	loader  Loader
	done    map[string]bool
	stack   []string
	lines   []string
	origins []Origin
	files   []string
}

func (r *resolver) load(p, from string, line int) (string, error) {
	src, err := r.loader.Load(p)
	if err != nil {
		return "", &ImportError{Kind: NotFound, Path: p, From: from, Line: line, Err: err}
	}

	return src, nil
}

// resolve appends the lines of src, the contents of p, inlining its imports.
func (r *resolver) resolve(p, src string) error {
	r.stack = append(r.stack, p)
	r.files = append(r.files, p)

	lines := splitLines(strings.ReplaceAll(src, "\r\n", "\n"))
	base := importBase(lines)

	for i, line := range lines {
		if _, ok := parseDefineImportPath(line); ok {
			continue
		}

		ref, ok := parseImport(line)
		if !ok {
			r.lines = append(r.lines, line)
			r.origins = append(r.origins, Origin{Path: p, Line: i + 1})

			continue
		}

		target, ok := resolvePath(p, base, ref)
		if !ok {
			return &ImportError{Kind: NotFound, Path: ref, From: p, Line: i + 1, Err: fs.ErrInvalid}
		}

		if slices.Contains(r.stack, target) {
			chain := append(slices.Clone(r.stack), target)
			return &ImportError{Kind: Cycle, Path: target, From: p, Line: i + 1, Chain: chain}
		}

		if r.done[target] {
			continue
		}

		imported, err := r.load(target, p, i+1)
		if err != nil {
			return err
		}

		err = r.resolve(target, imported)
		if err != nil {
			return err
		}
	}

	r.stack = r.stack[:len(r.stack)-1]
	r.done[p] = true

	return nil
}
