package nutrition

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FoodCatalogEntry holds nutrition facts per 100g of a food.
type FoodCatalogEntry struct {
	Name            string  `json:"name"              yaml:"name"`
	CaloriesPer100g float64 `json:"calories_per_100g" yaml:"calories_per_100g"`
	ProteinG        float64 `json:"protein_g"         yaml:"protein_g"`
	CarbsG          float64 `json:"carbs_g"           yaml:"carbs_g"`
	FatG            float64 `json:"fat_g"             yaml:"fat_g"`
}

// Catalog is the static food table. It is never mutated after construction,
// so a single value can be shared by concurrent callers.
type Catalog struct {
	entries []FoodCatalogEntry
}

// catalogFile is the on-disk shape: {"foods": [...]}.
type catalogFile struct {
	Foods []FoodCatalogEntry `json:"foods" yaml:"foods"`
}

// NewCatalog copies entries into a Catalog, preserving order.
func NewCatalog(entries []FoodCatalogEntry) Catalog {
	cp := make([]FoodCatalogEntry, len(entries))
	copy(cp, entries)
	return Catalog{entries: cp}
}

// LoadCatalog reads the catalog at path. Any read or parse failure yields an
// empty catalog; use ReadCatalog to learn why.
func LoadCatalog(path string) Catalog {
	c, err := ReadCatalog(path)
	if err != nil {
		return Catalog{}
	}
	return c
}

// ReadCatalog reads and decodes the catalog file at path. Files ending in
// .yaml or .yml are decoded as YAML, anything else as JSON.
func ReadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}

	var file catalogFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	default:
		err = json.Unmarshal(data, &file)
	}
	if err != nil {
		return Catalog{}, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return NewCatalog(file.Foods), nil
}

// Lookup finds the first entry whose name equals name, ignoring case.
func (c Catalog) Lookup(name string) (FoodCatalogEntry, bool) {
	for _, e := range c.entries {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return FoodCatalogEntry{}, false
}

// Entries returns a copy of the catalog in load order.
func (c Catalog) Entries() []FoodCatalogEntry {
	out := make([]FoodCatalogEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Search returns entries whose name contains query, ignoring case.
// An empty query returns every entry.
func (c Catalog) Search(query string) []FoodCatalogEntry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.Entries()
	}
	out := []FoodCatalogEntry{}
	for _, e := range c.entries {
		if strings.Contains(strings.ToLower(e.Name), q) {
			out = append(out, e)
		}
	}
	return out
}

// Len reports the number of entries.
func (c Catalog) Len() int {
	return len(c.entries)
}
