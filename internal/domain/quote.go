// Package domain contains core business entities and rules.
package domain

// NoQuotesMessage is displayed when the active filter matches nothing.
const NoQuotesMessage = "No quotes available in this category."

// Quote is a text/category pair, the atomic record of the widget.
// Quotes carry no identity: two quotes with equal fields are indistinguishable.
type Quote struct {
	// Text is the quotation itself.
	Text string `json:"text"`

	// Category groups quotes for filtering.
	Category string `json:"category"`
}

// Format renders a quote the way the display surface shows it:
// "<text>" - (<category>). The text is not escaped.
func (q Quote) Format() string {
	return `"` + q.Text + `" - (` + q.Category + `)`
}

// Collection is an ordered sequence of quotes in insertion order.
type Collection []Quote

// Len returns the number of quotes in the collection.
func (c Collection) Len() int {
	return len(c)
}

// Append returns a new collection with quotes added at the end.
// The receiver is never modified, so callers can keep the previous
// collection until the new one has been persisted.
func (c Collection) Append(quotes ...Quote) Collection {
	out := make(Collection, 0, len(c)+len(quotes))
	out = append(out, c...)
	out = append(out, quotes...)

	return out
}

// Clone returns an independent copy that is never nil.
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	copy(out, c)

	return out
}

// DefaultQuotes returns the seed collection used when nothing has been stored yet.
func DefaultQuotes() Collection {
	return Collection{
		{Text: "The best way to predict the future is to create it.", Category: "Motivation"},
		{Text: "Success is not final, failure is not fatal: it is the courage to continue that counts.", Category: "Success"},
		{Text: "Believe you can and you're halfway there.", Category: "Inspiration"},
		{Text: "Happiness depends upon ourselves.", Category: "Happiness"},
	}
}
