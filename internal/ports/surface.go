package ports

import "github.com/jsamuelsen/quotebox/internal/domain"

// Surface is the user interface the widget renders to.
// Front ends implement it to collect what one interaction produced:
// the HTTP adapter records into a response, the terminal prints.
type Surface interface {
	// Display replaces the text of the quote display.
	Display(text string)

	// SetCategoryOptions replaces the whole category filter option set.
	SetCategoryOptions(options []string)

	// ClearInputs empties the add-quote input fields.
	ClearInputs()

	// Notify shows a blocking notification to the user.
	Notify(n domain.Notification)
}
