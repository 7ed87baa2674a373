// Package catalog holds the read-only marketplace records shown by the client:
// featured listings, the jobs board, chat previews and the city list.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog is an immutable snapshot of marketplace records. A reload produces a
// new Catalog rather than mutating an existing one.
type Catalog struct {
	Cities   []string      `yaml:"cities" json:"cities"`
	Listings []Listing     `yaml:"listings" json:"listings"`
	Jobs     []JobListing  `yaml:"jobs" json:"jobs"`
	Chats    []ChatPreview `yaml:"chats" json:"chats"`
}

// Load reads a catalog from a YAML file. Sections missing from the file fall
// back to the built-in records.
func Load(path string) (*Catalog, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("catalog file must have .yaml or .yml extension")
	}

	// #nosec G304 - path comes from the user's own configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	return Parse(data)
}

// Parse decodes catalog YAML and validates it
func Parse(data []byte) (*Catalog, error) {
	var fileCatalog Catalog
	if err := yaml.Unmarshal(data, &fileCatalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}

	c := Default()
	if len(fileCatalog.Cities) > 0 {
		c.Cities = fileCatalog.Cities
	}
	if len(fileCatalog.Listings) > 0 {
		c.Listings = fileCatalog.Listings
	}
	if len(fileCatalog.Jobs) > 0 {
		c.Jobs = fileCatalog.Jobs
	}
	if len(fileCatalog.Chats) > 0 {
		c.Chats = fileCatalog.Chats
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks id uniqueness and category tags
func (c *Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Listings))
	for i := range c.Listings {
		l := &c.Listings[i]
		if l.ID == "" {
			return fmt.Errorf("listing %d: id is required", i)
		}
		if seen[l.ID] {
			return fmt.Errorf("listing %s: duplicate id", l.ID)
		}
		seen[l.ID] = true
		if !l.Category.Valid() {
			return fmt.Errorf("listing %s: invalid category %q", l.ID, l.Category)
		}
	}

	jobIDs := make(map[string]bool, len(c.Jobs))
	for _, j := range c.Jobs {
		if j.ID == "" || jobIDs[j.ID] {
			return fmt.Errorf("job %q: missing or duplicate id", j.ID)
		}
		jobIDs[j.ID] = true
	}
	return nil
}

// Find returns the listing with the given id
func (c *Catalog) Find(id string) (Listing, bool) {
	for _, l := range c.Listings {
		if l.ID == id {
			return l, true
		}
	}
	return Listing{}, false
}

// ByCategory returns listings in category, or all listings for the empty category
func (c *Catalog) ByCategory(category Category) []Listing {
	if category == "" {
		return c.Listings
	}
	var out []Listing
	for _, l := range c.Listings {
		if l.Category == category {
			out = append(out, l)
		}
	}
	return out
}

// Search matches query against title, location and description (case-insensitive)
func (c *Catalog) Search(query string) []Listing {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return c.Listings
	}
	var out []Listing
	for _, l := range c.Listings {
		if strings.Contains(strings.ToLower(l.Title), query) ||
			strings.Contains(strings.ToLower(l.Location), query) ||
			strings.Contains(strings.ToLower(l.Description), query) {
			out = append(out, l)
		}
	}
	return out
}

// PopularCities returns the first n cities
func (c *Catalog) PopularCities(n int) []string {
	if n > len(c.Cities) {
		n = len(c.Cities)
	}
	return c.Cities[:n]
}

// UnreadCount sums unread messages across chats
func (c *Catalog) UnreadCount() int {
	total := 0
	for _, ch := range c.Chats {
		total += ch.Unread
	}
	return total
}
