// Package geo loads the country boundary source consumed by the map
// renderer and the country picker.
package geo

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"worldmark/internal/model"
)

// Errors
var (
	ErrSourceNotFound = errors.New("boundary source not found")
	ErrSourceInvalid  = errors.New("boundary source is not valid GeoJSON")
)

// codeProperty is the feature property carrying the alpha-2 code.
// The source marks disputed or code-less territories with "-99".
const (
	codeProperty = "ISO3166-1-Alpha-2"
	noCode       = "-99"
)

// Country is one selectable region.
type Country struct {
	Code model.CountryCode `json:"code"`
	Name string            `json:"name"`
}

// Feature is one raw GeoJSON feature, retained so the map payload can
// carry the original geometry through to the client-side renderer.
type Feature struct {
	Type       string          `json:"type"`
	Properties map[string]any  `json:"properties"`
	Geometry   json.RawMessage `json:"geometry"`
}

type featureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Catalog holds the loaded boundary data.
type Catalog struct {
	countries []Country
	byCode    map[model.CountryCode]Country
	features  []Feature
}

// Load parses the boundary GeoJSON at path. Features without a usable
// alpha-2 code are kept for rendering but excluded from the country
// list.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("read boundary source: %w", err)
	}

	var fc featureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceInvalid, err)
	}

	c := &Catalog{
		byCode:   make(map[model.CountryCode]Country),
		features: fc.Features,
	}
	for _, f := range fc.Features {
		code, _ := f.Properties[codeProperty].(string)
		if code == "" || code == noCode {
			continue
		}
		name, _ := f.Properties["name"].(string)
		country := Country{Code: model.CountryCode(code), Name: name}
		if _, ok := c.byCode[country.Code]; ok {
			continue
		}
		c.byCode[country.Code] = country
		c.countries = append(c.countries, country)
	}
	sort.Slice(c.countries, func(i, j int) bool { return c.countries[i].Name < c.countries[j].Name })
	return c, nil
}

// Countries returns all countries sorted by display name.
func (c *Catalog) Countries() []Country {
	out := make([]Country, len(c.countries))
	copy(out, c.countries)
	return out
}

// Count returns the number of selectable countries.
func (c *Catalog) Count() int {
	return len(c.countries)
}

// Valid reports whether code identifies a known country.
func (c *Catalog) Valid(code model.CountryCode) bool {
	_, ok := c.byCode[code]
	return ok
}

// Name returns the display name for a code, or the code itself when
// unknown.
func (c *Catalog) Name(code model.CountryCode) string {
	if country, ok := c.byCode[code]; ok {
		return country.Name
	}
	return string(code)
}

// Features returns the raw features for the map payload.
func (c *Catalog) Features() []Feature {
	return c.features
}

// CodeOf extracts the alpha-2 code from a raw feature, or "" when the
// feature has none.
func CodeOf(f Feature) model.CountryCode {
	code, _ := f.Properties[codeProperty].(string)
	if code == noCode {
		return ""
	}
	return model.CountryCode(code)
}
