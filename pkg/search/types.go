package search

// Request represents a normalized web search request.
type Request struct {
	Query     string
	Count     int
	Country   string
	Freshness string
}

// Result is a normalized search result.
type Result struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Published   string `json:"published,omitempty"`
}

// Response is a normalized search response.
type Response struct {
	Query     string
	Provider  string
	Count     int
	TookMs    int64
	Results   []Result
	NoResults bool
}
