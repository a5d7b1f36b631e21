// Package catalog provides the read-only template catalog: the built-in
// templates compiled into the binary plus any user-defined templates found in
// the library directory. The catalog is loaded once at startup and never
// mutated afterwards.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/promptfoundry/prompt-foundry/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed templates/*.yaml
var builtinFS embed.FS

// Built-in template load order; user templates follow in file name order.
var builtinOrder = []string{
	"code-generation",
	"content-creation",
	"image-generation",
	"text-to-video",
}

// Catalog is an ordered, immutable collection of templates
type Catalog struct {
	templates []*models.Template
	byID      map[string]*models.Template
}

// Load builds the catalog from the embedded templates. It fails only on a
// malformed built-in, which is a packaging bug.
func Load() (*Catalog, error) {
	c := &Catalog{byID: make(map[string]*models.Template)}

	byID := make(map[string]*models.Template)
	err := fs.WalkDir(builtinFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".yaml") {
			return nil
		}
		data, err := builtinFS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read built-in template %s: %w", path, err)
		}
		tmpl, err := parseTemplate(data)
		if err != nil {
			return fmt.Errorf("built-in template %s: %w", path, err)
		}
		byID[tmpl.ID] = tmpl
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, id := range builtinOrder {
		tmpl, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("built-in template %q is missing", id)
		}
		c.add(tmpl)
	}

	return c, nil
}

// LoadWithUserTemplates builds the catalog and appends user-defined templates
// found under dir. A malformed user template is skipped with a warning rather
// than failing the whole catalog.
func LoadWithUserTemplates(dir string) (*Catalog, error) {
	c, err := Load()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("failed to read templates directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to read template %s: %v\n", name, err)
			continue
		}
		tmpl, err := parseTemplate(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping template %s: %v\n", name, err)
			continue
		}
		if _, exists := c.byID[tmpl.ID]; exists {
			fmt.Fprintf(os.Stderr, "Warning: template %s duplicates id %q, skipping\n", name, tmpl.ID)
			continue
		}
		tmpl.FilePath = path
		c.add(tmpl)
	}

	return c, nil
}

func (c *Catalog) add(tmpl *models.Template) {
	c.templates = append(c.templates, tmpl)
	c.byID[tmpl.ID] = tmpl
}

// Templates returns all templates in catalog order
func (c *Catalog) Templates() []*models.Template {
	out := make([]*models.Template, len(c.templates))
	copy(out, c.templates)
	return out
}

// Get returns the template with the given id
func (c *Catalog) Get(id string) (*models.Template, bool) {
	tmpl, ok := c.byID[id]
	return tmpl, ok
}

func parseTemplate(data []byte) (*models.Template, error) {
	var tmpl models.Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}
