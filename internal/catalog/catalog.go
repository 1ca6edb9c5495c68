// Package catalog holds the fixed category and domain reference data.
//
// The ten categories and their partition into three domains are loaded once
// from an embedded document and validated at startup. Nothing at runtime may
// mutate them; every other package treats the catalog as a constant.
package catalog

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"riskwatch/internal/common"
)

//go:embed categories.yaml
var categoriesYAML []byte

// Rubric gives the scoring anchors for a category.
type Rubric struct {
	Low  string `yaml:"low" json:"low"`
	High string `yaml:"high" json:"high"`
}

// Category is one fixed risk indicator scored 1-10.
type Category struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Domain      string `yaml:"domain" json:"domain"`
	Description string `yaml:"description" json:"description"`
	Rubric      Rubric `yaml:"rubric" json:"rubric"`
}

// Domain is one fixed grouping of categories.
type Domain struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

// Catalog is the validated set of domains and categories.
type Catalog struct {
	Domains    []Domain   `yaml:"domains" json:"domains"`
	Categories []Category `yaml:"categories" json:"categories"`

	byID       map[string]Category
	byDomain   map[string][]string
	domainByID map[string]Domain
}

// ExpectedCategories is the fixed number of scored categories.
const ExpectedCategories = 10

var defaultCatalog *Catalog

func init() {
	c, err := Parse(categoriesYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded category catalog is invalid: %v", err))
	}
	defaultCatalog = c
}

// Default returns the process-wide catalog loaded from the embedded document.
func Default() *Catalog {
	return defaultCatalog
}

// Parse decodes and validates a catalog document. It enforces the partition
// contract: every category belongs to exactly one known domain, ids are
// unique, every domain is non-empty, and exactly ExpectedCategories
// categories exist.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidCatalog, err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}

	c.byID = make(map[string]Category, len(c.Categories))
	c.byDomain = make(map[string][]string, len(c.Domains))
	c.domainByID = make(map[string]Domain, len(c.Domains))
	for _, d := range c.Domains {
		c.domainByID[d.ID] = d
	}
	for _, cat := range c.Categories {
		c.byID[cat.ID] = cat
		c.byDomain[cat.Domain] = append(c.byDomain[cat.Domain], cat.ID)
	}

	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Categories) != ExpectedCategories {
		return fmt.Errorf("%w: expected %d categories, found %d",
			common.ErrInvalidCatalog, ExpectedCategories, len(c.Categories))
	}
	if len(c.Domains) == 0 {
		return fmt.Errorf("%w: no domains defined", common.ErrInvalidCatalog)
	}

	domains := make(map[string]bool, len(c.Domains))
	for _, d := range c.Domains {
		if d.ID == "" || d.Name == "" {
			return fmt.Errorf("%w: domain with empty id or name", common.ErrInvalidCatalog)
		}
		if domains[d.ID] {
			return fmt.Errorf("%w: duplicate domain %q", common.ErrInvalidCatalog, d.ID)
		}
		domains[d.ID] = true
	}

	populated := make(map[string]bool, len(c.Domains))
	seen := make(map[string]bool, len(c.Categories))
	for _, cat := range c.Categories {
		if cat.ID == "" || cat.Name == "" {
			return fmt.Errorf("%w: category with empty id or name", common.ErrInvalidCatalog)
		}
		if seen[cat.ID] {
			return fmt.Errorf("%w: category %q assigned more than once", common.ErrInvalidCatalog, cat.ID)
		}
		seen[cat.ID] = true
		if !domains[cat.Domain] {
			return fmt.Errorf("%w: category %q references unknown domain %q",
				common.ErrInvalidCatalog, cat.ID, cat.Domain)
		}
		populated[cat.Domain] = true
	}

	for id := range domains {
		if !populated[id] {
			return fmt.Errorf("%w: domain %q has no categories", common.ErrInvalidCatalog, id)
		}
	}

	return nil
}

// Category returns the category with the given id.
func (c *Catalog) Category(id string) (Category, bool) {
	cat, ok := c.byID[id]
	return cat, ok
}

// CategoryIDs returns all category ids in a stable sorted order.
func (c *Catalog) CategoryIDs() []string {
	ids := make([]string, 0, len(c.byID))
	for id := range c.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DomainCategories returns the category ids belonging to a domain.
func (c *Catalog) DomainCategories(domainID string) []string {
	return append([]string(nil), c.byDomain[domainID]...)
}

// DomainIDs returns all domain ids in declaration order.
func (c *Catalog) DomainIDs() []string {
	ids := make([]string, 0, len(c.Domains))
	for _, d := range c.Domains {
		ids = append(ids, d.ID)
	}
	return ids
}

// DomainName returns the display name for a domain id.
func (c *Catalog) DomainName(domainID string) string {
	return c.domainByID[domainID].Name
}
