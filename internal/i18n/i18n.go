// Package i18n looks up user-facing strings by dotted key ("snake.score") in
// an embedded YAML catalogue. Missing translations fall back to English, and
// missing keys fall back to the key itself.
package i18n

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Lang is a language code.
type Lang string

const (
	English Lang = "en"
	Arabic  Lang = "ar"
)

// Supported lists the languages the catalogue carries, in toggle order.
var Supported = []Lang{English, Arabic}

// ErrUnsupported is returned by Parse for unknown language codes.
var ErrUnsupported = errors.New("i18n: unsupported language")

// Parse validates a language code.
func Parse(code string) (Lang, error) {
	l := Lang(strings.ToLower(strings.TrimSpace(code)))
	for _, s := range Supported {
		if l == s {
			return l, nil
		}
	}
	return English, fmt.Errorf("%w: %q", ErrUnsupported, code)
}

// Next returns the language after l in Supported, wrapping around.
func Next(l Lang) Lang {
	for i, s := range Supported {
		if s == l {
			return Supported[(i+1)%len(Supported)]
		}
	}
	return English
}

// RTL reports whether the language is written right to left.
func (l Lang) RTL() bool {
	return l == Arabic
}

// Catalog holds the parsed translations.
type Catalog struct {
	langs map[Lang]map[string]any
}

// ParseCatalog builds a Catalog from YAML shaped as lang -> nested maps -> string.
func ParseCatalog(data []byte) (*Catalog, error) {
	var raw map[string]map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("i18n: cannot parse catalogue: %w", err)
	}
	c := &Catalog{langs: make(map[Lang]map[string]any, len(raw))}
	for code, tree := range raw {
		c.langs[Lang(code)] = tree
	}
	if _, ok := c.langs[English]; !ok {
		return nil, errors.New("i18n: catalogue has no English section")
	}
	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded catalogue. It panics if the embedded file is
// malformed, which tests catch.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := ParseCatalog(catalogYAML)
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// T returns the translation of key in lang.
func (c *Catalog) T(lang Lang, key string) string {
	if s, ok := lookup(c.langs[lang], key); ok {
		return s
	}
	if s, ok := lookup(c.langs[English], key); ok {
		return s
	}
	return key
}

// Tf formats the translation of key with args.
func (c *Catalog) Tf(lang Lang, key string, args ...any) string {
	return fmt.Sprintf(c.T(lang, key), args...)
}

func lookup(tree map[string]any, key string) (string, bool) {
	if tree == nil {
		return "", false
	}
	var node any = tree
	for _, part := range strings.Split(key, ".") {
		m, ok := node.(map[string]any)
		if !ok {
			return "", false
		}
		node, ok = m[part]
		if !ok {
			return "", false
		}
	}
	s, ok := node.(string)
	return s, ok
}

// T is shorthand for Default().T.
func T(lang Lang, key string) string {
	return Default().T(lang, key)
}
