package goquery_test

import (
	"testing"

	"github.com/fwojciec/aivi"
	"github.com/fwojciec/aivi/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractHits(t *testing.T) {
	t.Parallel()

	t.Run("scrapes DuckDuckGo results", func(t *testing.T) {
		t.Parallel()

		hits, err := goquery.ExtractHits(duckDuckGoHTML, "https://html.duckduckgo.com/html/?q=magnets", goquery.LayoutDuckDuckGo)

		require.NoError(t, err)
		require.Len(t, hits, 2)
		assert.Equal(t, "Magnets for kids", hits[0].Title)
		assert.Equal(t, "https://example.org/magnets", hits[0].URL)
		assert.Equal(t, "https://physics.example.com/magnetism", hits[1].URL)
		assert.Equal(t, "Magnets work because moving charges create magnetic fields that align.", hits[1].Snippet)
	})

	t.Run("unwraps Google redirect links", func(t *testing.T) {
		t.Parallel()

		hits, err := goquery.ExtractHits(googleHTML, "https://www.google.com/search?q=photosynthesis", goquery.LayoutGoogle)

		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.Equal(t, "https://en.example.org/wiki/Photosynthesis", hits[0].URL)
		assert.Equal(t, "Photosynthesis - Encyclopedia", hits[0].Title)
	})

	t.Run("rejects invalid base URL", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.ExtractHits("<html></html>", "://bad", goquery.LayoutGeneric)

		assert.Equal(t, aivi.EINVALID, aivi.ErrorCode(err))
	})

	t.Run("page without results", func(t *testing.T) {
		t.Parallel()

		hits, err := goquery.ExtractHits("<html><body><p>No results.</p></body></html>", "https://example.com", goquery.LayoutDuckDuckGo)

		require.NoError(t, err)
		assert.Empty(t, hits)
	})
}

func TestRegistry_GetForHTML(t *testing.T) {
	t.Parallel()

	r := goquery.NewRegistry()

	assert.Equal(t, "duckduckgo", r.GetForHTML(duckDuckGoHTML).Name)
	assert.Equal(t, "google", r.GetForHTML(googleHTML).Name)
	assert.Equal(t, "generic", r.GetForHTML("<html><body><article><h2>x</h2></article></body></html>").Name)
}

func TestRegistry_Register(t *testing.T) {
	t.Parallel()

	r := goquery.NewRegistry()
	r.Register(goquery.Layout{Name: "custom", Result: ".hit"})

	l, ok := r.Get("custom")

	require.True(t, ok)
	assert.Equal(t, ".hit", l.Result)
}
