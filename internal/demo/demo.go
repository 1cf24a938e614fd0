// Package demo holds the small hardcoded card list used when no live data is
// available or the query is empty.
package demo

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"cardscout/internal/model"
)

//go:embed cards.yaml
var embedded []byte

// Catalog is read-only after Load.
type Catalog struct {
	cards []model.CardRow
}

// Load reads the list from path, or the built-in list when path is empty.
func Load(path string) (*Catalog, error) {
	data := embedded
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read demo cards: %w", err)
		}
		data = b
	}
	var cards []model.CardRow
	if err := yaml.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("parse demo cards: %w", err)
	}
	return &Catalog{cards: cards}, nil
}

// MustDefault returns the built-in list.
func MustDefault() *Catalog {
	c, err := Load("")
	if err != nil {
		panic(err)
	}
	return c
}

// Cards returns a copy safe for the caller to filter and sort.
func (c *Catalog) Cards() []model.CardRow {
	out := make([]model.CardRow, len(c.cards))
	copy(out, c.cards)
	return out
}

func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.cards))
	for _, card := range c.cards {
		names = append(names, card.Name)
	}
	return names
}
