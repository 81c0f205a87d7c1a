package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const articlePage = `<!DOCTYPE html>
<html><head><title>Test</title><style>body { color: red; }</style></head>
<body>
<nav>Home | About | Contact</nav>
<article>
  <h1>Observed   weather</h1>
  <p>Paris is sunny today with a high of   21 degrees and light wind from the west.</p>
  <script>console.log("tracking")</script>
</article>
<footer>Copyright notice</footer>
</body></html>`

func serve(t *testing.T, status int, body string) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server.URL
}

func TestExtractReadsArticleText(t *testing.T) {
	url := serve(t, http.StatusOK, articlePage)
	e := New(DefaultConfig())

	got := e.Extract(context.Background(), url, "fallback", 500)
	if !strings.Contains(got, "Paris is sunny today with a high of 21 degrees") {
		t.Fatalf("article text not extracted: %q", got)
	}
	if strings.Contains(got, "tracking") || strings.Contains(got, "color: red") {
		t.Fatalf("script/style leaked into extraction: %q", got)
	}
	if strings.Contains(got, "Home | About") || strings.Contains(got, "Copyright") {
		t.Fatalf("nav/footer leaked into extraction: %q", got)
	}
	if strings.Contains(got, "  ") {
		t.Fatalf("whitespace not collapsed: %q", got)
	}
}

func TestExtractNeverExceedsMaxChars(t *testing.T) {
	long := "<html><body><article>" + strings.Repeat("word and more text here to fill the page body out, ", 100) + "</article></body></html>"
	url := serve(t, http.StatusOK, long)
	e := New(DefaultConfig())

	for _, maxChars := range []int{10, 50, 300} {
		got := e.Extract(context.Background(), url, "", maxChars)
		if len([]rune(got)) > maxChars {
			t.Fatalf("maxChars=%d: got %d chars", maxChars, len([]rune(got)))
		}
	}
}

func TestExtractFallsBackOnHTTPError(t *testing.T) {
	url := serve(t, http.StatusForbidden, "denied")
	e := New(DefaultConfig())

	got := e.Extract(context.Background(), url, "  the <b>original</b>   description ", 100)
	if got != "the original description" {
		t.Fatalf("got %q, want cleaned fallback", got)
	}
}

func TestExtractFallsBackOnUnreachableHost(t *testing.T) {
	e := New(DefaultConfig())
	got := e.Extract(context.Background(), "http://127.0.0.1:1/nope", "fallback text", 100)
	if got != "fallback text" {
		t.Fatalf("got %q, want fallback", got)
	}
}

func TestExtractFallsBackOnEmptyURL(t *testing.T) {
	e := New(DefaultConfig())
	if got := e.Extract(context.Background(), "", "fallback", 100); got != "fallback" {
		t.Fatalf("got %q, want fallback", got)
	}
	if got := e.Extract(context.Background(), "", "", 100); got != "" {
		t.Fatalf("got %q, want empty string for empty fallback", got)
	}
}

func TestExtractDiscardsBotCheckPages(t *testing.T) {
	page := `<html><body><article>
	Please complete the CAPTCHA to verify you are human before continuing to the site content.
	</article></body></html>`
	url := serve(t, http.StatusOK, page)
	e := New(DefaultConfig())

	got := e.Extract(context.Background(), url, "search engine description", 200)
	if got != "search engine description" {
		t.Fatalf("got %q, want fallback after bot-check hit", got)
	}
	if strings.Contains(strings.ToLower(got), "captcha") {
		t.Fatalf("bot-check phrase must never be returned: %q", got)
	}
}

func TestExtractCustomBotCheck(t *testing.T) {
	page := `<html><body><article>This page says ACCESS DENIED somewhere in the text of its body content.</article></body></html>`
	url := serve(t, http.StatusOK, page)
	e := New(DefaultConfig()).WithBotCheck(func(text string) bool {
		return strings.Contains(text, "ACCESS DENIED")
	})

	if got := e.Extract(context.Background(), url, "fb", 200); got != "fb" {
		t.Fatalf("got %q, want fallback from custom bot check", got)
	}
}

func TestExtractUsesOpenGraphDescriptionWhenBodyIsEmpty(t *testing.T) {
	page := `<html><head>
	<meta property="og:title" content="Empty page"/>
	<meta property="og:description" content="Description from OpenGraph metadata."/>
	</head><body><div id="root"></div></body></html>`
	url := serve(t, http.StatusOK, page)
	e := New(DefaultConfig())

	got := e.Extract(context.Background(), url, "fallback", 200)
	if got != "Description from OpenGraph metadata." {
		t.Fatalf("got %q, want og:description", got)
	}
}

func TestDefaultBotCheck(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Solve this CAPTCHA to continue", true},
		{"Please Verify You Are Human", true},
		{"Подтвердите, что запросы отправляли вы, а не робот", true},
		{"Paris is sunny today", false},
		{"", false},
	}
	for _, tc := range tests {
		if got := DefaultBotCheck(tc.text); got != tc.want {
			t.Errorf("DefaultBotCheck(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}
