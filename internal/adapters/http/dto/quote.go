package dto

import "github.com/jsamuelsen/quotebox/internal/domain"

// QuoteDTO is the wire form of a quote.
type QuoteDTO struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

// FromQuote converts a domain quote.
func FromQuote(q domain.Quote) QuoteDTO {
	return QuoteDTO{Text: q.Text, Category: q.Category}
}

// RandomQuoteQuery holds the query of GET /quotes/random.
type RandomQuoteQuery struct {
	// Category filters the pick. Empty means every category. Any category
	// that can be added can be selected, so its length is not limited.
	Category string `form:"category" json:"category"`
}

// Filter returns the category filter for the widget.
func (q RandomQuoteQuery) Filter() string {
	if q.Category == "" {
		return domain.AllCategories
	}

	return q.Category
}

// QuoteResponse reports what the quote display shows.
type QuoteResponse struct {
	// Display is the text rendered in the quote display.
	Display string `json:"display"`

	// Quote is nil when nothing matched the filter.
	Quote *QuoteDTO `json:"quote"`
}

// CategoriesResponse lists the category filter options.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// AddQuoteRequest is the body of POST /quotes. Blank fields are rejected by
// the widget, not by binding, so the client receives the widget's message.
type AddQuoteRequest struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

// MutationResponse reports a successful add or import.
type MutationResponse struct {
	// Message is the success notification.
	Message string `json:"message"`

	// Categories is the refreshed filter option set.
	Categories []string `json:"categories"`

	// Count is the collection size after the change.
	Count int `json:"count"`

	// Imported is the number of quotes an import appended.
	Imported *int `json:"imported,omitempty"`
}
