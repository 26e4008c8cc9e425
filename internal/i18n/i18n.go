// Package i18n loads translation bundles and resolves namespaced keys.
//
// Bundles live in locales/<lang>/<namespace>.yaml and are embedded in the
// binary. There is no process-wide instance: callers construct a Catalog once
// and pass Localizers down explicitly.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Fallback is consulted when a key is missing from the requested language.
const Fallback = "en"

//go:embed locales
var bundled embed.FS

// Catalog holds every loaded language as lang → namespace → flattened key → text.
type Catalog struct {
	langs map[string]map[string]map[string]string
}

// Load reads the embedded bundles.
func Load() (*Catalog, error) {
	sub, err := fs.Sub(bundled, "locales")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub)
}

// LoadFS reads bundles from fsys laid out as <lang>/<namespace>.yaml.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	c := &Catalog{langs: make(map[string]map[string]map[string]string)}
	files, err := fs.Glob(fsys, "*/*.yaml")
	if err != nil {
		return nil, err
	}
	for _, file := range files {
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		var tree map[string]any
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		lang := path.Dir(file)
		ns := strings.TrimSuffix(path.Base(file), ".yaml")
		if c.langs[lang] == nil {
			c.langs[lang] = make(map[string]map[string]string)
		}
		flat := make(map[string]string)
		flatten("", tree, flat)
		c.langs[lang][ns] = flat
	}
	return c, nil
}

// Languages lists the loaded language codes in sorted order.
func (c *Catalog) Languages() []string {
	out := make([]string, 0, len(c.langs))
	for lang := range c.langs {
		out = append(out, lang)
	}
	slices.Sort(out)
	return out
}

// Has reports whether lang was loaded.
func (c *Catalog) Has(lang string) bool {
	_, ok := c.langs[lang]
	return ok
}

// Localizer returns a translator for lang. Unknown languages translate
// through Fallback.
func (c *Catalog) Localizer(lang string) *Localizer {
	if !c.Has(lang) {
		lang = Fallback
	}
	return &Localizer{catalog: c, lang: lang}
}

// Localizer translates keys of the form "namespace:dotted.key".
type Localizer struct {
	catalog *Catalog
	lang    string
}

// Lang is the effective language code.
func (l *Localizer) Lang() string { return l.lang }

// Args are interpolation values for {{name}} placeholders.
type Args map[string]any

var placeholder = regexp.MustCompile(`\{\{\s*(\w+)\s*\}\}`)

// T resolves key in the localizer language, then in Fallback, and finally
// returns the key itself.
func (l *Localizer) T(key string, args ...Args) string {
	text, ok := l.lookup(l.lang, key)
	if !ok && l.lang != Fallback {
		text, ok = l.lookup(Fallback, key)
	}
	if !ok {
		return key
	}
	if len(args) == 0 {
		return text
	}
	return placeholder.ReplaceAllStringFunc(text, func(m string) string {
		name := placeholder.FindStringSubmatch(m)[1]
		for _, a := range args {
			if v, ok := a[name]; ok {
				return fmt.Sprint(v)
			}
		}
		return m
	})
}

func (l *Localizer) lookup(lang, key string) (string, bool) {
	ns, rest, ok := strings.Cut(key, ":")
	if !ok {
		return "", false
	}
	text, ok := l.catalog.langs[lang][ns][rest]
	return text, ok
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch t := v.(type) {
		case map[string]any:
			flatten(key, t, out)
		case nil:
			out[key] = ""
		default:
			out[key] = fmt.Sprint(t)
		}
	}
}
