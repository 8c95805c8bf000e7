package http_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fwojciec/aivi"
	aivihttp "github.com/fwojciec/aivi/http"
	"github.com/fwojciec/aivi/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const openSearchXML = `<?xml version="1.0"?>
<SearchSuggestion xmlns="http://opensearch.org/searchsuggest2" version="2.0">
  <Query xml:space="preserve">gravity</Query>
  <Section>
    <Item>
      <Text xml:space="preserve">Gravity</Text>
      <Url xml:space="preserve">%[1]s/wiki/Gravity</Url>
      <Description xml:space="preserve">Attraction of masses</Description>
    </Item>
    <Item>
      <Text xml:space="preserve">Gravity (film)</Text>
      <Url xml:space="preserve">%[1]s/wiki/Gravity_(film)</Url>
    </Item>
  </Section>
</SearchSuggestion>`

const emptyOpenSearchXML = `<?xml version="1.0"?>
<SearchSuggestion xmlns="http://opensearch.org/searchsuggest2" version="2.0">
  <Query xml:space="preserve">zzzz</Query>
  <Section/>
</SearchSuggestion>`

// passthrough returns an extractor and converter that hand the page body
// through unchanged, so tests can serve Markdown directly.
func passthrough() (*mock.Extractor, *mock.Converter) {
	return &mock.Extractor{
			ExtractFn: func(html string) (*aivi.ExtractResult, error) {
				return &aivi.ExtractResult{ContentHTML: html}, nil
			},
		}, &mock.Converter{
			ConvertFn: func(html string) (string, error) { return html, nil },
		}
}

func newWikiServer(t *testing.T, search string, articles map[string]string) *httptest.Server {
	t.Helper()
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/w/api.php" {
			assert.Equal(t, "opensearch", r.URL.Query().Get("action"))
			assert.Equal(t, "xml", r.URL.Query().Get("format"))
			if strings.Contains(search, "%[1]s") {
				fmt.Fprintf(w, search, server.URL)
			} else {
				_, _ = w.Write([]byte(search))
			}
			return
		}
		body, ok := articles[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestWikiSearcher_Search(t *testing.T) {
	t.Parallel()

	long1 := "Gravity is a fundamental interaction primarily observed as mutual attraction between masses."
	long2 := "On Earth, gravity gives weight to physical objects and causes the tides of the oceans."
	long3 := "It has important biological functions, guiding plant growth through gravitropism."
	long4 := "This fourth paragraph is long enough but lies beyond the opening three paragraphs."

	t.Run("returns opening paragraphs of best article", func(t *testing.T) {
		t.Parallel()

		article := strings.Join([]string{"# Gravity", long1, "Short one.", long2, long3, long4}, "\n\n")
		server := newWikiServer(t, openSearchXML, map[string]string{"/wiki/Gravity": article})
		ext, conv := passthrough()
		s := aivihttp.NewWikiSearcher(aivihttp.NewFetcher(), ext, conv)
		s.BaseURL = server.URL

		result, err := s.Search(context.Background(), "gravity")

		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, long1+"\n\n"+long2, result.Summary)
		require.Len(t, result.Sources, 2)
		assert.Equal(t, "Gravity", result.Sources[0].Title)
		assert.Equal(t, server.URL+"/wiki/Gravity", result.Sources[0].URL)
	})

	t.Run("measures paragraph length in characters", func(t *testing.T) {
		t.Parallel()

		// 44 characters, 80 bytes.
		shortCyrillic := strings.TrimSpace(strings.Repeat("сила ", 9))
		article := strings.Join([]string{shortCyrillic, long1}, "\n\n")
		server := newWikiServer(t, openSearchXML, map[string]string{"/wiki/Gravity": article})
		ext, conv := passthrough()
		s := aivihttp.NewWikiSearcher(aivihttp.NewFetcher(), ext, conv)
		s.BaseURL = server.URL

		result, err := s.Search(context.Background(), "gravity")

		require.NoError(t, err)
		assert.Equal(t, long1, result.Summary)
	})

	t.Run("falls back to description when article has no long prose", func(t *testing.T) {
		t.Parallel()

		server := newWikiServer(t, openSearchXML, map[string]string{"/wiki/Gravity": "Too short."})
		ext, conv := passthrough()
		s := aivihttp.NewWikiSearcher(aivihttp.NewFetcher(), ext, conv)
		s.BaseURL = server.URL

		result, err := s.Search(context.Background(), "gravity")

		require.NoError(t, err)
		assert.Equal(t, "Attraction of masses", result.Summary)
	})

	t.Run("tries next candidate when article fetch fails", func(t *testing.T) {
		t.Parallel()

		server := newWikiServer(t, openSearchXML, map[string]string{"/wiki/Gravity_(film)": long1})
		ext, conv := passthrough()
		s := aivihttp.NewWikiSearcher(aivihttp.NewFetcher(), ext, conv)
		s.BaseURL = server.URL

		result, err := s.Search(context.Background(), "gravity")

		require.NoError(t, err)
		assert.Equal(t, long1, result.Summary)
	})

	t.Run("no suggestions is an unsuccessful result", func(t *testing.T) {
		t.Parallel()

		server := newWikiServer(t, emptyOpenSearchXML, nil)
		ext, conv := passthrough()
		s := aivihttp.NewWikiSearcher(aivihttp.NewFetcher(), ext, conv)
		s.BaseURL = server.URL

		result, err := s.Search(context.Background(), "zzzz")

		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.False(t, result.Usable())
	})

	t.Run("malformed XML is an error", func(t *testing.T) {
		t.Parallel()

		server := newWikiServer(t, "<SearchSuggestion><Item>", nil)
		ext, conv := passthrough()
		s := aivihttp.NewWikiSearcher(aivihttp.NewFetcher(), ext, conv)
		s.BaseURL = server.URL

		_, err := s.Search(context.Background(), "gravity")

		require.Error(t, err)
	})

	t.Run("empty query is invalid", func(t *testing.T) {
		t.Parallel()

		ext, conv := passthrough()
		s := aivihttp.NewWikiSearcher(&mock.Fetcher{}, ext, conv)

		_, err := s.Search(context.Background(), "  ")

		assert.Equal(t, aivi.EINVALID, aivi.ErrorCode(err))
	})
}
