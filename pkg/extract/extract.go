// Package extract retrieves a web page and reduces it to readable plain text
// for grounding search results. Extraction is strictly best-effort: every
// failure path degrades to the caller-supplied fallback text.
package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dyatlov/go-opengraph/opengraph"
	"github.com/rs/zerolog"

	"github.com/Filichkin/web-search-agent/pkg/shared/stringutil"
)

// Extractor fetches pages and extracts readable text. It holds no per-call
// state and is safe for concurrent use.
type Extractor struct {
	cfg      Config
	client   *http.Client
	botCheck BotCheck
}

// New creates an extractor with the given config and the default bot check.
func New(cfg Config) *Extractor {
	cfg = cfg.withDefaults()
	return &Extractor{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.FetchTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 5 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		botCheck: DefaultBotCheck,
	}
}

// WithBotCheck replaces the bot-check predicate. A nil check disables it.
func (e *Extractor) WithBotCheck(check BotCheck) *Extractor {
	e.botCheck = check
	return e
}

// Extract fetches pageURL and returns its readable text, cleaned and
// truncated to maxChars. On any failure (network, parse, empty content,
// bot-check hit) it returns the cleaned fallback instead. The returned string
// may be empty if the fallback is empty too; Extract never returns an error.
// A single attempt is made per call; retries are the caller's concern.
func (e *Extractor) Extract(ctx context.Context, pageURL, fallback string, maxChars int) string {
	if maxChars <= 0 {
		maxChars = e.cfg.MaxChars
	}
	log := zerolog.Ctx(ctx).With().Str("component", "extract").Str("url", pageURL).Logger()

	text := ""
	if strings.TrimSpace(pageURL) != "" {
		extracted, err := e.fetchText(ctx, pageURL)
		if err != nil {
			log.Warn().Err(err).Msg("Page extraction failed, using fallback")
		} else {
			text = extracted
		}
	}

	text = stringutil.Truncate(stringutil.CleanText(text), maxChars)
	if text != "" && e.botCheck != nil && e.botCheck(text) {
		log.Debug().Msg("Extracted text looks like a bot check, using fallback")
		text = ""
	}
	if text != "" {
		log.Debug().Int("chars", len(text)).Msg("Page text extracted")
		return text
	}

	return stringutil.Truncate(stringutil.CleanText(fallback), maxChars)
}

func (e *Extractor) fetchText(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", e.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("http %d: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, e.cfg.MaxPageBytes))
	if err != nil {
		return "", err
	}
	return extractReadableText(string(body)), nil
}

// extractReadableText reduces an HTML document to its main text. It prefers
// article/main containers over the full body and falls back to the OpenGraph
// description when the document carries no usable text at all.
func extractReadableText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	doc.Find("script, style, noscript, iframe, svg, nav, header, footer, form, aside").Remove()

	text := ""
	for _, selector := range []string{"article", "main", "body"} {
		candidate := strings.TrimSpace(doc.Find(selector).First().Text())
		// Too-short containers are usually wrappers around an SPA root.
		if len(candidate) >= 80 {
			text = candidate
			break
		}
		if text == "" {
			text = candidate
		}
	}
	if text != "" {
		return text
	}

	og := opengraph.NewOpenGraph()
	if err := og.ProcessHTML(strings.NewReader(html)); err == nil && og.Description != "" {
		return og.Description
	}
	return ""
}
