package harvest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelevant(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"https://example.com/app.js", true},
		{"https://example.com/bundle.min.js?v=3", true},
		{"/config/settings.json", true},
		{"https://example.com/robots.txt", true},
		{"https://example.com/.env", true},
		{"https://example.com/package.json", true},
		{"https://example.com/styles.css", false},
		{"https://example.com/logo.png", false},
		{"https://example.com/about", false},
		{"https://example.com/", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Relevant(tt.in), "input %q", tt.in)
	}
}

func TestHarvest(t *testing.T) {
	page := `<!doctype html><html><head>
		<script src="/assets/app.js"></script>
		<link rel="stylesheet" href="/styles.css">
		<a href="/robots.txt">robots</a>
		<a href="/about">about</a>
	</head><body>
		<script>var apiKey = "value";</script>
	</body></html>`

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			_, _ = w.Write([]byte(page))
		case "/assets/app.js":
			_, _ = w.Write([]byte("console.log('hi');"))
		case "/robots.txt":
			_, _ = w.Write([]byte("User-agent: *"))
		default:
			http.NotFound(w, r)
		}
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	dest := t.TempDir()
	h := New("test-agent", 5*time.Second, false, zerolog.New(nil).Level(zerolog.Disabled))

	saved, err := h.Harvest(context.Background(), srv.URL, dest)
	require.NoError(t, err)
	require.Len(t, saved, 3)

	var names []string
	for _, p := range saved {
		names = append(names, filepath.Base(p))
		_, err := os.Stat(p)
		assert.NoError(t, err)
	}
	joined := strings.Join(names, " ")
	assert.Contains(t, joined, "app.js")
	assert.Contains(t, joined, "robots.txt")
	assert.Contains(t, joined, "inline_0.js")
	assert.NotContains(t, joined, "styles.css")

	for _, p := range saved {
		if strings.HasSuffix(p, "inline_0.js") {
			body, err := os.ReadFile(p)
			require.NoError(t, err)
			assert.Equal(t, `var apiKey = "value";`, string(body))
		}
	}
}

func TestHarvestSkipsFailedDownloads(t *testing.T) {
	page := `<html><head><script src="/missing.js"></script></head></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			_, _ = w.Write([]byte(page))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	h := New("test-agent", 5*time.Second, false, zerolog.New(nil).Level(zerolog.Disabled))
	saved, err := h.Harvest(context.Background(), srv.URL, t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestHarvestUnreachableTarget(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	h := New("test-agent", 5*time.Second, false, zerolog.New(nil).Level(zerolog.Disabled))
	_, err := h.Harvest(context.Background(), srv.URL, t.TempDir())
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	base, _ := url.Parse("https://example.com/dir/page.html")

	assert.Equal(t, "https://example.com/app.js", resolve(base, "/app.js"))
	assert.Equal(t, "https://example.com/dir/rel.js", resolve(base, "rel.js"))
	assert.Equal(t, "https://cdn.example.com/lib.js", resolve(base, "https://cdn.example.com/lib.js"))
	assert.Equal(t, "", resolve(base, "javascript:void(0)"))
	assert.Equal(t, "", resolve(base, "data:text/plain,hi"))
}

func TestSafeName(t *testing.T) {
	assert.Equal(t, "0_app.js", safeName("https://example.com/assets/app.js", 0))
	assert.Equal(t, "3_download", safeName("https://example.com/", 3))
	// query strings and odd characters never leak into the filename
	name := safeName("https://example.com/a%20b/x;y.js?v=1", 1)
	assert.NotContains(t, name, "?")
	assert.NotContains(t, name, ";")
	assert.True(t, strings.HasPrefix(name, "1_"))
}
