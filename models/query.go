package models

type QueryPostRequest struct {
	// Query text to send to the backend.
	Query string `json:"query"`

	// TopK is the number of retrieved passages to request.
	TopK int `json:"top_k"`

	// History contains recent turns so the backend can resolve follow-up
	// questions. Capped by the caller, omitted when empty.
	History []HistoryMessage `json:"history,omitempty"`
}

type HistoryMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type QueryPostResponse struct {
	Answer string `json:"answer"`

	// Citations is the key the backend emits. Sources is accepted as an
	// alias, since some deployments name the field that way.
	Citations []Citation `json:"citations"`
	Sources   []Citation `json:"sources"`

	FollowUps []string `json:"follow_ups"`
}

// AllCitations returns the citation list regardless of which key the
// backend used. Citations wins if both are present.
func (r QueryPostResponse) AllCitations() []Citation {
	if len(r.Citations) > 0 {
		return r.Citations
	}
	return r.Sources
}

// Citation is one retrieved passage backing an answer. Every field is
// optional: rank and snippet come from the retriever, the rest from
// document metadata.
type Citation struct {
	Rank         int    `json:"rank,omitempty"`
	ID           string `json:"id,omitempty"`
	Title        string `json:"title,omitempty"`
	SourceURL    string `json:"source_url,omitempty"`
	SourceDomain string `json:"source_domain,omitempty"`
	Date         string `json:"date,omitempty"`
	Snippet      string `json:"snippet,omitempty"`
	Text         string `json:"text,omitempty"`
}

// Label returns the display name for the citation.
func (c Citation) Label() string {
	if c.Title != "" {
		return c.Title
	}
	if c.ID != "" {
		return c.ID
	}
	return "Untitled"
}

// Body returns the passage text for the citation.
func (c Citation) Body() string {
	if c.Snippet != "" {
		return c.Snippet
	}
	return c.Text
}
