package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Export file metadata offered to front ends.
const (
	ExportFileName    = "quotes.json"
	ExportContentType = "application/json"
)

// ExportQuotes serializes the collection as indented JSON. The output has
// two-space indentation, no HTML escaping and no trailing newline, and an
// empty collection exports as [].
func (w *Widget) ExportQuotes(ctx context.Context) ([]byte, error) {
	w.mu.Lock()
	quotes := w.quotes.Clone()
	w.mu.Unlock()

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(quotes); err != nil {
		return nil, fmt.Errorf("encoding export: %w", err)
	}

	w.metrics.Export()
	w.logger.DebugContext(ctx, "collection exported", slog.Int("size", quotes.Len()))

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
