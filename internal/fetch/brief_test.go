package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func longOffer() string {
	var sb strings.Builder
	for i := 1; i <= 20; i++ {
		fmt.Fprintf(&sb, "<p>Night %d: stay three nights and pay for two at any of our city hotels.</p>\n", i)
	}
	return sb.String()
}

func serveHTML(t *testing.T, html string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(html))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestBrief_StaticPage(t *testing.T) {
	server := serveHTML(t, `<html><body><main>`+longOffer()+`</main></body></html>`)

	rendered := false
	text, err := Brief(context.Background(), server.URL, BriefOptions{
		Render: func(context.Context, string) (string, error) {
			rendered = true
			return "", nil
		},
	})
	require.NoError(t, err)
	assert.Contains(t, text, "stay three nights")
	assert.False(t, rendered, "long static text needs no browser")
}

func TestBrief_FallsBackToBrowser(t *testing.T) {
	server := serveHTML(t, `<html><body><div id="root"></div><noscript>Enable JS</noscript></body></html>`)

	var renderedURL string
	text, err := Brief(context.Background(), server.URL, BriefOptions{
		Render: func(_ context.Context, url string) (string, error) {
			renderedURL = url
			return `<html><body><main>` + longOffer() + `</main></body></html>`, nil
		},
	})
	require.NoError(t, err)
	assert.Equal(t, server.URL, renderedURL)
	assert.Contains(t, text, "stay three nights")
}

func TestBrief_BrowserFailureKeepsStaticText(t *testing.T) {
	server := serveHTML(t, `<html><body><main>Flash deal: 20% off</main></body></html>`)

	text, err := Brief(context.Background(), server.URL, BriefOptions{
		Render: func(context.Context, string) (string, error) {
			return "", errors.New("chrome not installed")
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Flash deal: 20% off", text)
}

func TestBrief_UseBrowser(t *testing.T) {
	text, err := Brief(context.Background(), "https://example.com/offer", BriefOptions{
		UseBrowser: true,
		Render: func(context.Context, string) (string, error) {
			return `<html><body><article>Winter in the Alps</article></body></html>`, nil
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Winter in the Alps", text)
}

func TestBrief_UseBrowserError(t *testing.T) {
	_, err := Brief(context.Background(), "https://example.com/offer", BriefOptions{
		UseBrowser: true,
		Render: func(context.Context, string) (string, error) {
			return "", errors.New("timeout")
		},
	})
	require.Error(t, err)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
}

func TestBrief_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := Brief(context.Background(), server.URL, BriefOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "line one", truncate("line one\nline two", 12))
	assert.Equal(t, "abcdef", truncate("abcdefghij", 6))

	// No newline before the limit in CJK text: cut on a rune boundary
	cjk := truncate("a"+strings.Repeat("酒店优惠", 1000), MaxBriefLength)
	assert.True(t, utf8.ValidString(cjk))
	assert.LessOrEqual(t, len(cjk), MaxBriefLength)
	assert.Equal(t, "a酒", truncate("a酒店", 5))
}
