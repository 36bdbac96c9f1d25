// Package formation holds the catalog of formation templates available per team size.
package formation

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	MinTeamSize = 6
	MaxTeamSize = 11
)

//go:embed formations.yaml
var defaultCatalogYAML []byte

// Template is one formation: the outfield lines from defence to attack.
type Template struct {
	Name        string `yaml:"name" json:"name"`
	Size        int    `yaml:"size" json:"size"`
	Lines       []int  `yaml:"lines" json:"lines"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

type catalogFile struct {
	Formations []Template `yaml:"formations"`
}

// Catalog answers formation lookups by team size. Order within a size is the
// file order, so the first template is the default.
type Catalog struct {
	bySize map[int][]Template
}

// ValidTeamSize reports whether size is an allowed team size.
func ValidTeamSize(size int) bool {
	return size >= MinTeamSize && size <= MaxTeamSize
}

// Parse builds a Catalog from YAML. Every size in [MinTeamSize, MaxTeamSize]
// must have at least one template.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse formation catalog: %w", err)
	}

	c := &Catalog{bySize: make(map[int][]Template)}
	names := make(map[string]struct{}, len(file.Formations))
	for i, t := range file.Formations {
		if err := validateTemplate(t); err != nil {
			return nil, fmt.Errorf("formation #%d: %w", i, err)
		}
		if _, dup := names[t.Name]; dup {
			return nil, fmt.Errorf("formation #%d: duplicate name %q", i, t.Name)
		}
		names[t.Name] = struct{}{}
		c.bySize[t.Size] = append(c.bySize[t.Size], t)
	}

	for size := MinTeamSize; size <= MaxTeamSize; size++ {
		if len(c.bySize[size]) == 0 {
			return nil, fmt.Errorf("no formation defined for team size %d", size)
		}
	}
	return c, nil
}

func validateTemplate(t Template) error {
	if t.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !ValidTeamSize(t.Size) {
		return fmt.Errorf("%q: size %d outside %d..%d", t.Name, t.Size, MinTeamSize, MaxTeamSize)
	}
	outfield := 0
	for _, n := range t.Lines {
		if n <= 0 {
			return fmt.Errorf("%q: lines must be positive", t.Name)
		}
		outfield += n
	}
	if outfield != t.Size-1 {
		return fmt.Errorf("%q: lines add up to %d, want %d outfield players", t.Name, outfield, t.Size-1)
	}
	return nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalog embedded in the binary.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultCatalogYAML)
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// AvailableFormations returns the templates for size in catalog order.
func (c *Catalog) AvailableFormations(size int) []Template {
	src := c.bySize[size]
	out := make([]Template, len(src))
	copy(out, src)
	return out
}

// Lookup finds the template called name among those for size.
func (c *Catalog) Lookup(size int, name string) (Template, bool) {
	for _, t := range c.bySize[size] {
		if t.Name == name {
			return t, true
		}
	}
	return Template{}, false
}

// Sizes lists the team sizes the catalog covers, ascending.
func (c *Catalog) Sizes() []int {
	sizes := make([]int, 0, len(c.bySize))
	for size := range c.bySize {
		sizes = append(sizes, size)
	}
	sort.Ints(sizes)
	return sizes
}
