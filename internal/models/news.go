package models

// NewsArticle is a dashboard-facing news item. Time carries the relative age
// string ("2h ago"), PublishedAt the original provider timestamp.
type NewsArticle struct {
	Title       string `json:"title"`
	Source      string `json:"source"`
	Time        string `json:"time"`
	URL         string `json:"url"`
	Description string `json:"description"`
	PublishedAt string `json:"publishedAt,omitempty"`
}

// NewsResult is the news endpoint payload.
type NewsResult struct {
	Articles     []NewsArticle `json:"articles"`
	TotalResults int           `json:"totalResults"`
	Fallback     bool          `json:"fallback,omitempty"`
}

// RawArticle is a news article as returned by the news provider.
type RawArticle struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	PublishedAt string    `json:"publishedAt"`
	Source      RawSource `json:"source"`
}

// RawSource is the provider's nested source object.
type RawSource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewsResponse is the news provider's envelope. A Status of "error" carries
// Code and Message instead of articles.
type NewsResponse struct {
	Status       string       `json:"status"`
	TotalResults int          `json:"totalResults"`
	Articles     []RawArticle `json:"articles"`
	Code         string       `json:"code,omitempty"`
	Message      string       `json:"message,omitempty"`
}
