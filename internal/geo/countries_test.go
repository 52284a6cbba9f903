package geo

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load(filepath.Join("testdata", "countries.geojson"))
	require.NoError(t, err)
	return c
}

func TestLoadSkipsUncodedAndDuplicateFeatures(t *testing.T) {
	c := load(t)

	// The "-99" feature and the duplicate FR feature are excluded from
	// the country list.
	assert.Equal(t, 3, c.Count())

	countries := c.Countries()
	require.Len(t, countries, 3)
	assert.Equal(t, "Australia", countries[0].Name)
	assert.Equal(t, "France", countries[1].Name)
	assert.Equal(t, "Germany", countries[2].Name)
}

func TestLoadKeepsAllFeaturesForRendering(t *testing.T) {
	c := load(t)
	assert.Len(t, c.Features(), 5)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "nope.geojson"))
	assert.ErrorIs(t, err, ErrSourceNotFound)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "..", "countries.go"))
	assert.ErrorIs(t, err, ErrSourceInvalid)
}

func TestValid(t *testing.T) {
	c := load(t)

	assert.True(t, c.Valid("DE"))
	assert.True(t, c.Valid("FR"))
	assert.False(t, c.Valid("XX"))
	assert.False(t, c.Valid("-99"))
}

func TestName(t *testing.T) {
	c := load(t)

	assert.Equal(t, "Germany", c.Name("DE"))
	assert.Equal(t, "XX", c.Name("XX"))
}

func TestCodeOf(t *testing.T) {
	c := load(t)
	features := c.Features()

	assert.Equal(t, "DE", string(CodeOf(features[0])))
	// The uncoded territory yields no code
	assert.Equal(t, "", string(CodeOf(features[2])))
}
