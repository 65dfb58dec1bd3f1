package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDocument(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "Femi Kayode", c.Profile.Name)
	assert.Len(t, c.Sections, 5)
	assert.Len(t, c.Projects, 4)
	assert.Len(t, c.Stats, 3)
	assert.Equal(t, "Experience", c.Stats[2].Label)
	assert.Contains(t, string(c.Profile.AboutHTML), "<strong>React</strong>")
	assert.True(t, strings.HasPrefix(string(c.Projects[0].SummaryHTML), "<p>"))
}

func TestSectionLookup(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	s, err := c.Section("skills")
	require.NoError(t, err)
	assert.Equal(t, "Skills", s.Title)

	_, err = c.Section("blog")
	assert.ErrorIs(t, err, ErrSectionNotFound)
}

func TestAppHref(t *testing.T) {
	assert.Equal(t, "#about", App{ID: "about"}.Href())
	assert.Equal(t, "https://github.com/", App{ID: "github", URL: "https://github.com/"}.Href())
}

func TestParseRejectsInvalidDocuments(t *testing.T) {
	cases := map[string]string{
		"missing name":    "stats: [{label: a, value: b}]",
		"missing stats":   "profile: {name: X}",
		"duplicate ids":   "profile: {name: X}\nstats: [{label: a}]\nsections: [{id: a}, {id: a}]",
		"unknown field":   "profile: {name: X, shoe_size: 44}\nstats: [{label: a}]",
		"not yaml at all": "::::",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestStoreReloadKeepsPreviousOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profile: {name: First}\nstats: [{label: a, value: '1'}]\n"), 0o644))

	store, err := NewStore(path, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "First", store.Get().Profile.Name)

	require.NoError(t, os.WriteFile(path, []byte("profile: {name: ''}\n"), 0o644))
	assert.Error(t, store.Reload())
	assert.Equal(t, "First", store.Get().Profile.Name)

	require.NoError(t, os.WriteFile(path, []byte("profile: {name: Second}\nstats: [{label: a, value: '1'}]\n"), 0o644))
	require.NoError(t, store.Reload())
	assert.Equal(t, "Second", store.Get().Profile.Name)
}
