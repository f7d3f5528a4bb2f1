package domain

// Severity classifies a user notification.
type Severity string

const (
	// SeveritySuccess reports a completed mutation.
	SeveritySuccess Severity = "success"

	// SeverityError reports a rejected interaction.
	SeverityError Severity = "error"
)

// User-facing notification texts.
const (
	MsgQuoteAdded     = "Quote added successfully!"
	MsgQuotesImported = "Quotes imported successfully!"
	MsgMissingFields  = "Please enter both a quote and a category."
	MsgInvalidFormat  = "Invalid JSON format!"
	MsgParseFailure   = "Error reading JSON file!"
	MsgStorageFailure = "Quotes could not be saved."
)

// Notification is a blocking message shown to the user after an interaction.
type Notification struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Success builds a success notification.
func Success(message string) Notification {
	return Notification{Severity: SeveritySuccess, Message: message}
}

// Failure builds an error notification.
func Failure(message string) Notification {
	return Notification{Severity: SeverityError, Message: message}
}
