// Package view provides ports.Surface implementations.
package view

import (
	"github.com/jsamuelsen/quotebox/internal/domain"
	"github.com/jsamuelsen/quotebox/internal/ports"
)

// Recorder captures what one widget operation rendered so a caller can
// turn it into a response. A Recorder serves a single operation and is not
// safe for concurrent use.
type Recorder struct {
	display       string
	displayed     bool
	options       []string
	optionsSet    bool
	cleared       bool
	notifications []domain.Notification
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Display implements ports.Surface.
func (r *Recorder) Display(text string) {
	r.display = text
	r.displayed = true
}

// SetCategoryOptions implements ports.Surface.
func (r *Recorder) SetCategoryOptions(options []string) {
	r.options = append([]string(nil), options...)
	r.optionsSet = true
}

// ClearInputs implements ports.Surface.
func (r *Recorder) ClearInputs() {
	r.cleared = true
}

// Notify implements ports.Surface.
func (r *Recorder) Notify(n domain.Notification) {
	r.notifications = append(r.notifications, n)
}

// Displayed returns the last displayed text and whether anything was displayed.
func (r *Recorder) Displayed() (string, bool) {
	return r.display, r.displayed
}

// Options returns the last option set and whether options were rendered.
func (r *Recorder) Options() ([]string, bool) {
	return r.options, r.optionsSet
}

// Cleared reports whether the inputs were cleared.
func (r *Recorder) Cleared() bool {
	return r.cleared
}

// Notifications returns every notification in the order it was raised.
func (r *Recorder) Notifications() []domain.Notification {
	return r.notifications
}

// LastNotification returns the most recent notification.
func (r *Recorder) LastNotification() (domain.Notification, bool) {
	if len(r.notifications) == 0 {
		return domain.Notification{}, false
	}

	return r.notifications[len(r.notifications)-1], true
}

var _ ports.Surface = (*Recorder)(nil)
