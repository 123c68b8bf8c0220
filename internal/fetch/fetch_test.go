package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL_Success(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><h1>Test</h1></body></html>"))
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, server.URL, result.URL)
	assert.Contains(t, result.HTML, "<h1>Test</h1>")
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, "text/html", result.ContentType)
	assert.Equal(t, DefaultUserAgent, gotAgent)
}

func TestURL_InvalidURL(t *testing.T) {
	for _, raw := range []string{"", "not-a-valid-url", "example.com", "http://", "ftp://example.com/file"} {
		t.Run(raw, func(t *testing.T) {
			_, err := URL(context.Background(), raw, nil)

			var fetchErr *Error
			require.ErrorAs(t, err, &fetchErr)
			assert.Contains(t, err.Error(), "invalid URL")
		})
	}
}

func TestURL_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
	assert.Contains(t, err.Error(), "404")
}

func TestURL_BodyLimitAndHeaders(t *testing.T) {
	var gotLang string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLang = r.Header.Get("Accept-Language")
		_, _ = w.Write([]byte(strings.Repeat("x", 100)))
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, &Options{
		MaxBodyBytes: 10,
		Headers:      map[string]string{"Accept-Language": "en-US"},
	})
	require.NoError(t, err)
	assert.Len(t, result.HTML, 10)
	assert.Equal(t, "en-US", gotLang)
}

func TestURL_CanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := URL(ctx, server.URL, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractMainText(t *testing.T) {
	tests := []struct {
		name      string
		html      string
		selectors []string
		noise     []string
		contains  []string
		excludes  []string
	}{
		{
			name:      "main element",
			html:      `<html><body><nav>Navigation</nav><main><h1>Main Content</h1><p>The important text.</p></main><footer>Footer</footer></body></html>`,
			selectors: JobPostingSelectors(),
			contains:  []string{"Main Content", "The important text."},
			excludes:  []string{"Navigation", "Footer"},
		},
		{
			name:      "job description wins over main",
			html:      `<html><body><main><div class="sidebar">Sidebar junk</div><div class="job-description"><h2>Requirements</h2><p>5 years of Go</p></div><p>Other jobs</p></main></body></html>`,
			selectors: JobPostingSelectors(),
			contains:  []string{"Requirements", "5 years of Go"},
			excludes:  []string{"Sidebar junk", "Other jobs"},
		},
		{
			name:      "body fallback",
			html:      `<html><body><div>Some content here.</div></body></html>`,
			selectors: JobPostingSelectors(),
			contains:  []string{"Some content here."},
		},
		{
			name:      "noise selectors",
			html:      `<html><body><main><p>Keep</p><div class="eeo-statement">Equal opportunity</div></main></body></html>`,
			selectors: []string{"main"},
			noise:     []string{".eeo-statement"},
			contains:  []string{"Keep"},
			excludes:  []string{"Equal opportunity"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := ExtractMainText(tt.html, tt.selectors, tt.noise...)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, text, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, text, s)
			}
		})
	}
}

func TestExtractMainText_TrimsLines(t *testing.T) {
	text, err := ExtractMainText("<html><body><main>\n   First  \n\n\n   Second\n</main></body></html>", []string{"main"})
	require.NoError(t, err)
	assert.Equal(t, "First\nSecond", text)
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser("   short   "))
	assert.False(t, ShouldUseBrowser(strings.Repeat("a", MinContentLength)))
}
