// Package ruleset holds named cellular-automaton rulesets and their
// configuration.
package ruleset

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode"

	"github.com/sahilm/fuzzy"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	xstrings "github.com/charmbracelet/x/exp/strings"

	"github.com/macropower/lifegen/pkg/rule"
)

// DefaultName is the ruleset used when none is configured.
const DefaultName = "conway"

var (
	ErrUnknownRuleset = errors.New("unknown ruleset")
	ErrInvalidRuleset = errors.New("invalid ruleset")
)

// Ruleset is a named rule expression.
type Ruleset struct {
	// Human-readable summary, usually in B/S notation.
	Description string `json:"description,omitempty" jsonschema:"title=Description"`
	// Rule expression deciding whether a cell is alive in the next generation.
	Rule string `json:"rule" jsonschema:"title=Rule,minLength=1"`
}

// Compile compiles the ruleset's rule expression.
func (r *Ruleset) Compile() (*rule.Rule, error) {
	return rule.Compile(r.Rule) //nolint:wrapcheck // Positioned compile errors.
}

// Builtins returns the rulesets that are always available.
func Builtins() map[string]*Ruleset {
	return map[string]*Ruleset{
		"conway": {
			Description: "Conway's Game of Life (B3/S23)",
			Rule:        "if (is_alive) num_neighbors == 2 or num_neighbors == 3 else num_neighbors == 3",
		},
		"highlife": {
			Description: "HighLife (B36/S23)",
			Rule: "if (is_alive) num_neighbors == 2 or num_neighbors == 3 " +
				"else num_neighbors == 3 or num_neighbors == 6",
		},
		"seeds": {
			Description: "Seeds (B2/S)",
			Rule:        "not is_alive and num_neighbors == 2",
		},
		"daynight": {
			Description: "Day & Night (B3678/S34678)",
			Rule: "if (is_alive) num_neighbors == 3 or num_neighbors == 4 or num_neighbors >= 6 " +
				"else num_neighbors == 3 or num_neighbors >= 6",
		},
		"life-without-death": {
			Description: "Life without Death (B3/S012345678)",
			Rule:        "is_alive or num_neighbors == 3",
		},
	}
}

// Config selects and defines rulesets.
type Config struct {
	// Rulesets by name. Built-in rulesets are added unless overridden.
	Rulesets map[string]*Ruleset `json:"rulesets,omitempty" jsonschema:"title=Rulesets"`
	// Name of the ruleset used when none is requested.
	Default string `json:"default,omitempty" jsonschema:"title=Default Ruleset"`
}

// NewConfig returns a [Config] containing the built-in rulesets.
func NewConfig() *Config {
	c := &Config{}
	c.EnsureDefaults()

	return c
}

// EnsureDefaults adds missing built-in rulesets and the default name.
func (c *Config) EnsureDefaults() {
	if c.Default == "" {
		c.Default = DefaultName
	}

	if c.Rulesets == nil {
		c.Rulesets = map[string]*Ruleset{}
	}

	for name, rs := range Builtins() {
		if _, ok := c.Rulesets[name]; !ok {
			c.Rulesets[name] = rs
		}
	}
}

// Validate compiles every ruleset and checks that the default exists.
func (c *Config) Validate() error {
	var errs []error

	for _, name := range c.Names() {
		rs := c.Rulesets[name]
		if rs == nil {
			errs = append(errs, fmt.Errorf("%w %q: empty definition", ErrInvalidRuleset, name))

			continue
		}

		_, err := rs.Compile()
		if err != nil {
			errs = append(errs, fmt.Errorf("%w %q: %w", ErrInvalidRuleset, name, err))
		}
	}

	if c.Default != "" {
		_, err := c.Get(c.Default)
		if err != nil {
			errs = append(errs, fmt.Errorf("default: %w", err))
		}
	}

	return errors.Join(errs...)
}

// Names returns the configured ruleset names in sorted order.
func (c *Config) Names() []string {
	return slices.Sorted(maps.Keys(c.Rulesets))
}

// Get returns the named ruleset, or the default when name is empty.
// Unknown names produce an error suggesting the closest match.
func (c *Config) Get(name string) (*Ruleset, error) {
	if name == "" {
		name = c.Default
	}

	rs, ok := c.Rulesets[name]
	if ok && rs != nil {
		return rs, nil
	}

	if suggestion := c.suggest(name); suggestion != "" {
		return nil, fmt.Errorf("%w %q, did you mean %q?", ErrUnknownRuleset, name, suggestion)
	}

	if len(c.Rulesets) == 0 {
		return nil, fmt.Errorf("%w %q", ErrUnknownRuleset, name)
	}

	return nil, fmt.Errorf("%w %q, configured rulesets are %s",
		ErrUnknownRuleset, name, xstrings.EnglishJoin(c.Names(), true))
}

// suggest returns the closest configured name. Names are compared without
// case or diacritics, so "Cönway" suggests "conway".
func (c *Config) suggest(name string) string {
	names := c.Names()

	folded := make([]string, len(names))
	for i, n := range names {
		folded[i] = normalize(n)
	}

	matches := fuzzy.Find(normalize(name), folded)
	if len(matches) == 0 {
		return ""
	}

	return names[matches[0].Index]
}

func normalize(in string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	out, _, err := transform.String(t, in)
	if err != nil {
		out = in
	}

	return strings.ToLower(out)
}
