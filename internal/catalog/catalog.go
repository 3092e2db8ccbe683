package catalog

import (
	"math/rand/v2"
	"slices"
	"sort"
)

// Catalog is the read-only set of context definitions with precomputed
// indices. It is never mutated after construction, so concurrent readers
// need no locking.
type Catalog struct {
	defs         []ContextDefinition
	byID         map[string]*ContextDefinition
	byVariation  map[Variation][]string
	byCategory   map[string][]string
	categoryList []string
}

// build constructs a catalog from already validated definitions.
func build(defs []ContextDefinition) *Catalog {
	c := &Catalog{
		defs:        defs,
		byID:        make(map[string]*ContextDefinition, len(defs)),
		byVariation: make(map[Variation][]string),
		byCategory:  make(map[string][]string),
	}

	// Sort by ID so every index and random pick is deterministic.
	sort.Slice(c.defs, func(i, j int) bool { return c.defs[i].ID < c.defs[j].ID })

	for i := range c.defs {
		d := &c.defs[i]
		c.byID[d.ID] = d
		for _, v := range d.Variations {
			c.byVariation[v] = append(c.byVariation[v], d.ID)
		}
		c.byCategory[d.Category] = append(c.byCategory[d.Category], d.ID)
	}

	for cat := range c.byCategory {
		c.categoryList = append(c.categoryList, cat)
	}
	sort.Strings(c.categoryList)

	return c
}

// Get returns the definition for id, or *ErrNotFound.
func (c *Catalog) Get(id string) (ContextDefinition, error) {
	d, ok := c.byID[id]
	if !ok {
		return ContextDefinition{}, &ErrNotFound{ID: id}
	}
	return d.clone(), nil
}

// Has reports whether id is in the catalog.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Compatible returns the sorted ids of every context supporting v.
// An empty result is valid.
func (c *Catalog) Compatible(v Variation) []string {
	return slices.Clone(c.byVariation[v])
}

// IsCompatible reports whether context id supports v.
func (c *Catalog) IsCompatible(id string, v Variation) bool {
	d, ok := c.byID[id]
	return ok && d.Supports(v)
}

// PickRandomCompatible samples one compatible context id uniformly using rng.
func (c *Catalog) PickRandomCompatible(v Variation, rng *rand.Rand) (string, error) {
	ids := c.byVariation[v]
	if len(ids) == 0 {
		return "", &ErrNoCompatibleContext{Variation: v}
	}
	return ids[rng.IntN(len(ids))], nil
}

// All returns every definition sorted by ID.
func (c *Catalog) All() []ContextDefinition {
	out := make([]ContextDefinition, len(c.defs))
	for i := range c.defs {
		out[i] = c.defs[i].clone()
	}
	return out
}

// Len returns the number of contexts.
func (c *Catalog) Len() int {
	return len(c.defs)
}

// Categories returns the distinct categories in alphabetical order.
func (c *Catalog) Categories() []string {
	return slices.Clone(c.categoryList)
}

// ByCategory returns the definitions in category, sorted by ID.
func (c *Catalog) ByCategory(category string) []ContextDefinition {
	ids := c.byCategory[category]
	out := make([]ContextDefinition, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.byID[id].clone())
	}
	return out
}
