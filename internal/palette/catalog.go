// Package palette exposes named colour groups for the UI colour picker.
package palette

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"worldmark/internal/colormix"
)

// Errors
var (
	ErrSourceNotFound = errors.New("palette source not found")
	ErrSourceInvalid  = errors.New("palette source is not valid JSON")
)

// Catalog is a read-only lookup of named palettes, loaded once at
// startup and never mutated.
type Catalog struct {
	// palettes maps palette name to its ordered hex codes.
	palettes map[string][]string
	// order preserves the source ordering of palette names.
	order []string
	// nameByHex is the canonical hex -> display name mapping. The first
	// name seen wins when palettes share a colour.
	nameByHex map[string]string
	// hexByName is the reverse mapping.
	hexByName map[string]string
}

// source document shapes

type paletteFile struct {
	Palettes []paletteEntry `json:"palettes"`
}

type paletteEntry struct {
	PaletteName string       `json:"paletteName"`
	Colors      []colorEntry `json:"colors"`
}

type colorEntry struct {
	Hex      string `json:"hex"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// Load parses the palette definition file. Callers should fall back to
// Default() when this fails.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("read palette source: %w", err)
	}

	var file paletteFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceInvalid, err)
	}

	c := newCatalog()
	for _, p := range file.Palettes {
		name := p.PaletteName
		if name == "" {
			name = "Unknown"
		}
		var hexes []string
		for _, entry := range p.Colors {
			if entry.Hex == "" {
				continue
			}
			hex := colormix.Normalise(entry.Hex)
			hexes = append(hexes, hex)
			c.addName(hex, displayName(name, entry))
		}
		c.add(name, hexes)
	}
	return c, nil
}

// displayName picks a usable name for a colour entry. Shade palettes in
// the source carry machine names, so entries without a real name get a
// positional Dark/Medium/Light label instead.
func displayName(paletteName string, entry colorEntry) string {
	name := entry.Name
	if name != "" && !strings.HasPrefix(name, paletteName) {
		return name
	}
	if strings.Contains(paletteName, "shades") {
		base := capitalise(strings.SplitN(paletteName, "_", 2)[0])
		switch {
		case entry.Position <= 3:
			return "Dark " + base
		case entry.Position >= 7:
			return "Light " + base
		default:
			return "Medium " + base
		}
	}
	return "Colour " + colormix.Normalise(entry.Hex)
}

func capitalise(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func newCatalog() *Catalog {
	return &Catalog{
		palettes:  make(map[string][]string),
		nameByHex: make(map[string]string),
		hexByName: make(map[string]string),
	}
}

func (c *Catalog) add(name string, hexes []string) {
	if _, ok := c.palettes[name]; !ok {
		c.order = append(c.order, name)
	}
	c.palettes[name] = hexes
}

func (c *Catalog) addName(hex, name string) {
	if _, ok := c.nameByHex[hex]; !ok {
		c.nameByHex[hex] = name
	}
	if _, ok := c.hexByName[name]; !ok {
		c.hexByName[name] = hex
	}
}

// Names returns the palette names in source order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Colours returns the ordered hex codes of the named palette, or nil.
func (c *Catalog) Colours(palette string) []string {
	hexes, ok := c.palettes[palette]
	if !ok {
		return nil
	}
	out := make([]string, len(hexes))
	copy(out, hexes)
	return out
}

// AllColours returns every colour across all palettes, deduplicated and
// sorted by display name (the picker ordering).
func (c *Catalog) AllColours() []Colour {
	seen := make(map[string]struct{})
	var all []Colour
	for _, name := range c.order {
		for _, hex := range c.palettes[name] {
			if _, ok := seen[hex]; ok {
				continue
			}
			seen[hex] = struct{}{}
			all = append(all, Colour{Hex: hex, Name: c.NameFor(hex)})
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all
}

// NameFor resolves a hex code to its display name. Unknown codes
// resolve to the hex code itself; lookup never fails.
func (c *Catalog) NameFor(hex string) string {
	hex = colormix.Normalise(hex)
	if name, ok := c.nameByHex[hex]; ok {
		return name
	}
	return hex
}

// HexFor resolves a display name back to its hex code, or "" if the
// name is unknown.
func (c *Catalog) HexFor(name string) string {
	return c.hexByName[name]
}

// Colour is a single picker entry.
type Colour struct {
	Hex  string `json:"hex"`
	Name string `json:"name"`
}

// Default returns the built-in fallback palette used when the source
// file is missing or malformed.
func Default() *Catalog {
	c := newCatalog()
	entries := []Colour{
		{Hex: "#16697A", Name: "Caribbean Current"},
		{Hex: "#DBF4A7", Name: "Mindaro"},
		{Hex: "#A24936", Name: "Chestnut"},
		{Hex: "#7EBCE6", Name: "Maya Blue"},
		{Hex: "#E6BEAE", Name: "Pale Dogwood"},
		{Hex: "#79AF91", Name: "Cambridge Blue"},
		{Hex: "#BF9F6F", Name: "Lion"},
		{Hex: "#996662", Name: "Rose Taupe"},
		{Hex: "#90838E", Name: "Taupe Gray"},
		{Hex: "#B2BDCA", Name: "French Gray"},
	}
	hexes := make([]string, 0, len(entries))
	for _, e := range entries {
		hexes = append(hexes, e.Hex)
		c.addName(e.Hex, e.Name)
	}
	c.add("default", hexes)
	return c
}
