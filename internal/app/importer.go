package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jsamuelsen/quotebox/internal/domain"
	"github.com/jsamuelsen/quotebox/internal/platform/metrics"
	"github.com/jsamuelsen/quotebox/internal/ports"
)

// ImportState is a step of the import flow:
// Idle → FileSelected → Parsing → {Success | InvalidFormat | ParseFailure} → Idle.
type ImportState string

const (
	ImportIdle          ImportState = "idle"
	ImportFileSelected  ImportState = "file_selected"
	ImportParsing       ImportState = "parsing"
	ImportSucceeded     ImportState = "success"
	ImportInvalidFormat ImportState = "invalid_format"
	ImportParseFailure  ImportState = "parse_failure"
)

// ImportSummary describes a successful import.
type ImportSummary struct {
	// Imported is the number of quotes appended.
	Imported int `json:"imported"`

	// Total is the collection size after the import.
	Total int `json:"total"`
}

// ImportResult is delivered by ImportQuotesAsync once the import completes.
type ImportResult struct {
	Summary ImportSummary
	Err     error

	// Skipped is set when there was no file to import.
	Skipped bool
}

// importSchema accepts any JSON array. Elements are not constrained.
const importSchema = `{"type": "array"}`

var loadImportSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(importSchema))
})

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ImportQuotes appends the quotes in a JSON array to the collection.
//
// Returns a domain.ImportError of kind ImportParseFailure when data is not
// JSON and of kind ImportInvalidFormat when it is JSON but not an array.
// Elements are appended without shape validation. Nothing is appended on error.
// Unknown members are dropped and non-string fields become empty, so exporting
// afterwards is not byte-identical to the imported file.
func (w *Widget) ImportQuotes(ctx context.Context, ui ports.Surface, data []byte) (ImportSummary, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.reportImportState(ImportFileSelected)

	return w.importLocked(ctx, surfaceOrDiscard(ui), data)
}

// ImportQuotesAsync reads r on its own goroutine and then imports its
// contents. The returned channel receives exactly one result.
// A nil reader means no file was chosen and the import is skipped.
func (w *Widget) ImportQuotesAsync(ctx context.Context, ui ports.Surface, r io.Reader) <-chan ImportResult {
	out := make(chan ImportResult, 1)

	if r == nil {
		out <- ImportResult{Skipped: true}
		close(out)

		return out
	}

	w.reportImportState(ImportFileSelected)

	go func() {
		defer close(out)

		data, err := readAll(ctx, r)

		w.mu.Lock()
		defer w.mu.Unlock()

		ui = surfaceOrDiscard(ui)

		if err != nil {
			w.reportImportState(ImportParsing)

			out <- ImportResult{Err: w.rejectImport(ctx, ui, domain.NewParseFailureError(err))}

			return
		}

		summary, err := w.importLocked(ctx, ui, data)
		out <- ImportResult{Summary: summary, Err: err}
	}()

	return out
}

// importLocked runs the import. Callers hold w.mu.
func (w *Widget) importLocked(ctx context.Context, ui ports.Surface, data []byte) (ImportSummary, error) {
	w.reportImportState(ImportParsing)

	imported, err := decodeImport(data)
	if err != nil {
		return ImportSummary{}, w.rejectImport(ctx, ui, err)
	}

	next, err := w.mutator.run(ctx, mutation{
		name: "import_quotes",
		perform: func(current domain.Collection) (domain.Collection, error) {
			return current.Append(imported...), nil
		},
	}, w.quotes)
	if err != nil {
		w.metrics.Import(metrics.ResultStorageError, 0)
		w.reportImportState(ImportIdle)
		ui.Notify(domain.Failure(domain.MsgStorageFailure))

		return ImportSummary{}, domain.NewUnavailableError("durable storage", err.Error())
	}

	w.commit(next)
	w.metrics.Import(metrics.ResultSuccess, len(imported))
	w.reportImportState(ImportSucceeded)
	w.reportImportState(ImportIdle)

	ui.SetCategoryOptions(domain.CategoryOptions(w.quotes))
	ui.Notify(domain.Success(domain.MsgQuotesImported))

	return ImportSummary{Imported: len(imported), Total: w.quotes.Len()}, nil
}

func (w *Widget) rejectImport(ctx context.Context, ui ports.Surface, err error) error {
	state, result, msg := ImportParseFailure, metrics.ResultParseFailure, domain.MsgParseFailure
	if domain.IsInvalidFormat(err) {
		state, result, msg = ImportInvalidFormat, metrics.ResultInvalidFormat, domain.MsgInvalidFormat
	}

	w.logger.DebugContext(ctx, "import rejected", slog.Any("error", err))

	w.metrics.Import(result, 0)
	w.reportImportState(state)
	w.reportImportState(ImportIdle)
	ui.Notify(domain.Failure(msg))

	return err
}

func (w *Widget) reportImportState(s ImportState) {
	if w.onImportState != nil {
		w.onImportState(s)
	}
}

// decodeImport parses data as a JSON array of quotes.
func decodeImport(data []byte) (domain.Collection, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	if !json.Valid(data) {
		return nil, domain.NewParseFailureError(errors.New("not valid JSON"))
	}

	schema, err := loadImportSchema()
	if err != nil {
		return nil, fmt.Errorf("loading import schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, domain.NewParseFailureError(err)
	}

	if !result.Valid() {
		return nil, domain.NewInvalidFormatError(fmt.Errorf("%v", result.Errors()))
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, domain.NewParseFailureError(err)
	}

	quotes := make(domain.Collection, 0, len(elems))
	for _, e := range elems {
		quotes = append(quotes, decodeElement(e))
	}

	return quotes, nil
}

// decodeElement keeps string text and category members of an object.
// Anything else becomes an empty field.
func decodeElement(raw json.RawMessage) domain.Quote {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return domain.Quote{}
	}

	return domain.Quote{
		Text:     stringMember(fields, "text"),
		Category: stringMember(fields, "category"),
	}
}

func stringMember(fields map[string]json.RawMessage, name string) string {
	raw, ok := fields[name]
	if !ok {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}

	return s
}

// readAll reads r until EOF or until ctx is done.
func readAll(ctx context.Context, r io.Reader) ([]byte, error) {
	type readResult struct {
		data []byte
		err  error
	}

	done := make(chan readResult, 1)

	go func() {
		data, err := io.ReadAll(r)
		done <- readResult{data: data, err: err}
	}()

	select {
	case res := <-done:
		return res.data, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
