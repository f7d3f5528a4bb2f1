package view

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsamuelsen/quotebox/internal/domain"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder()

	_, ok := r.Displayed()
	assert.False(t, ok)
	_, ok = r.LastNotification()
	assert.False(t, ok)

	r.Display("first")
	r.Display("second")
	r.SetCategoryOptions([]string{domain.AllCategories, "A"})
	r.ClearInputs()
	r.Notify(domain.Failure("bad"))
	r.Notify(domain.Success("good"))

	text, ok := r.Displayed()
	assert.True(t, ok)
	assert.Equal(t, "second", text)

	options, ok := r.Options()
	assert.True(t, ok)
	assert.Equal(t, []string{domain.AllCategories, "A"}, options)

	assert.True(t, r.Cleared())
	assert.Len(t, r.Notifications(), 2)

	last, ok := r.LastNotification()
	assert.True(t, ok)
	assert.Equal(t, domain.Success("good"), last)
}

func TestRecorder_OptionsAreCopied(t *testing.T) {
	r := NewRecorder()
	in := []string{"a"}

	r.SetCategoryOptions(in)
	in[0] = "b"

	options, _ := r.Options()
	assert.Equal(t, []string{"a"}, options)
}

func TestTerminal(t *testing.T) {
	tests := []struct {
		name      string
		opts      []TerminalOption
		render    func(*Terminal)
		expectOut string
		expectErr string
	}{
		{
			name:      "display",
			render:    func(term *Terminal) { term.Display(`"q" - (c)`) },
			expectOut: "\"q\" - (c)\n",
		},
		{
			name:      "success goes to out",
			render:    func(term *Terminal) { term.Notify(domain.Success(domain.MsgQuoteAdded)) },
			expectOut: domain.MsgQuoteAdded + "\n",
		},
		{
			name:      "failure goes to err",
			render:    func(term *Terminal) { term.Notify(domain.Failure(domain.MsgInvalidFormat)) },
			expectErr: domain.MsgInvalidFormat + "\n",
		},
		{
			name:   "options hidden by default",
			render: func(term *Terminal) { term.SetCategoryOptions([]string{"x"}) },
		},
		{
			name:      "options shown when enabled",
			opts:      []TerminalOption{WithCategoryOptions()},
			render:    func(term *Terminal) { term.SetCategoryOptions([]string{domain.AllCategories, "A"}) },
			expectOut: domain.AllCategories + "\nA\n",
		},
		{
			name:   "clear inputs prints nothing",
			render: func(term *Terminal) { term.ClearInputs() },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer

			term := NewTerminal(&out, &errOut, append(tt.opts, WithoutColor())...)
			tt.render(term)

			assert.Equal(t, tt.expectOut, out.String())
			assert.Equal(t, tt.expectErr, errOut.String())
		})
	}
}
