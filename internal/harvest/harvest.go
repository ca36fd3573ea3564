package harvest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/edhofdc/sourcecode-scanner/internal/cache"
)

// Harvester fetches a target page and downloads its security-relevant
// resources (external scripts, linked files, inline scripts) into a per-scan
// directory. The rest of the pipeline only sees the resulting file paths.
type Harvester struct {
	client    *http.Client
	userAgent string
	useCache  bool
	logger    zerolog.Logger
}

func New(userAgent string, timeout time.Duration, useCache bool, logger zerolog.Logger) *Harvester {
	return &Harvester{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		useCache:  useCache,
		logger:    logger,
	}
}

// Harvest downloads everything relevant reachable from targetURL into
// destDir and returns the saved paths. Individual download failures are
// logged and skipped; only an unreachable target page is an error.
func (h *Harvester) Harvest(ctx context.Context, targetURL, destDir string) ([]string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, err
	}

	base, err := url.Parse(targetURL)
	if err != nil {
		return nil, fmt.Errorf("invalid target url: %w", err)
	}

	body, err := h.fetch(ctx, targetURL)
	if err != nil {
		return nil, fmt.Errorf("fetching target page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parsing target page: %w", err)
	}

	var saved []string
	seen := map[string]struct{}{}

	download := func(ref string) {
		resolved := resolve(base, ref)
		if resolved == "" {
			return
		}
		if _, dup := seen[resolved]; dup {
			return
		}
		seen[resolved] = struct{}{}
		p, err := h.download(ctx, resolved, destDir, len(saved))
		if err != nil {
			h.logger.Warn().Err(err).Str("url", resolved).Msg("download failed")
			return
		}
		saved = append(saved, p)
	}

	doc.Find("script[src]").Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok {
			download(src)
		}
	})
	doc.Find("a[href], link[href]").Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok && Relevant(href) {
			download(href)
		}
	})

	inline := 0
	doc.Find("script:not([src])").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}
		name := fmt.Sprintf("inline_%d.js", inline)
		inline++
		p := filepath.Join(destDir, name)
		if err := os.WriteFile(p, []byte(text), 0o644); err != nil {
			h.logger.Warn().Err(err).Str("file", name).Msg("saving inline script failed")
			return
		}
		saved = append(saved, p)
	})

	h.logger.Info().Int("files", len(saved)).Str("target", targetURL).Msg("harvest complete")
	return saved, nil
}

func (h *Harvester) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", h.userAgent)
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// download fetches one resource, going through the content cache so repeat
// scans of a target skip re-downloading, and writes it under destDir.
func (h *Harvester) download(ctx context.Context, rawURL, destDir string, index int) (string, error) {
	key := cache.Key(rawURL)
	body, hit := []byte(nil), false
	if h.useCache {
		body, hit = cache.Load(key)
	}
	if !hit {
		var err error
		body, err = h.fetch(ctx, rawURL)
		if err != nil {
			return "", err
		}
		if h.useCache {
			if err := cache.Store(key, body); err != nil {
				h.logger.Debug().Err(err).Msg("cache store failed")
			}
		}
	}

	name := safeName(rawURL, index)
	p := filepath.Join(destDir, name)
	if err := os.WriteFile(p, body, 0o644); err != nil {
		return "", err
	}
	return p, nil
}

func resolve(base *url.URL, ref string) string {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return ""
	}
	abs := base.ResolveReference(u)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return ""
	}
	return abs.String()
}

// safeName derives a collision-free local filename from the resource URL.
func safeName(rawURL string, index int) string {
	u, _ := url.Parse(rawURL)
	name := "download"
	if u != nil && u.Path != "" && u.Path != "/" {
		name = path.Base(u.Path)
	}
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	return fmt.Sprintf("%d_%s", index, name)
}
