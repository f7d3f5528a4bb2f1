package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jsamuelsen/quotebox/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotebox/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotebox/internal/adapters/storage"
	"github.com/jsamuelsen/quotebox/internal/adapters/view"
	"github.com/jsamuelsen/quotebox/internal/app"
	"github.com/jsamuelsen/quotebox/internal/platform/logging"
	"github.com/jsamuelsen/quotebox/internal/platform/telemetry"
	"github.com/jsamuelsen/quotebox/internal/ports"
)

// importField is the multipart field carrying an import file.
const importField = "file"

// QuoteHandler exposes the quote widget over HTTP.
type QuoteHandler struct {
	widget   *app.Widget
	sessions ports.KeyValueStore
}

// NewQuoteHandler creates a quote handler. sessions is the shared session
// store; each request sees only its own namespace of it. A nil sessions
// store disables last-quote tracking.
func NewQuoteHandler(widget *app.Widget, sessions ports.KeyValueStore) *QuoteHandler {
	return &QuoteHandler{
		widget:   widget,
		sessions: sessions,
	}
}

// sessionStore returns the session namespace of the calling client.
func (h *QuoteHandler) sessionStore(c *gin.Context) ports.KeyValueStore {
	id := middleware.GetSessionID(c)
	if h.sessions == nil || id == "" {
		return nil
	}

	return storage.ForSession(h.sessions, id)
}

// GetCategories handles GET /api/v1/categories.
func (h *QuoteHandler) GetCategories(c *gin.Context) {
	rec := view.NewRecorder()
	h.widget.UpdateCategoryFilter(rec)

	options, _ := rec.Options()
	c.JSON(http.StatusOK, dto.CategoriesResponse{Categories: options})
}

// GetRandomQuote handles GET /api/v1/quotes/random?category=.
// An empty match is not an error: the display carries the empty message
// and quote is null.
func (h *QuoteHandler) GetRandomQuote(c *gin.Context) {
	var query dto.RandomQuoteQuery
	if err := dto.BindQueryAndValidate(c, &query); err != nil {
		dto.RespondBindingError(c, err)
		return
	}

	ctx, span := telemetry.StartOperation(c.Request.Context(), "show_random_quote",
		attribute.String("quote.category", query.Filter()),
	)
	defer span.End()

	rec := view.NewRecorder()

	q, ok := h.widget.ShowRandomQuote(ctx, rec, h.sessionStore(c), query.Filter())
	display, _ := rec.Displayed()

	resp := dto.QuoteResponse{Display: display}
	if ok {
		quote := dto.FromQuote(q)
		resp.Quote = &quote
	}

	c.JSON(http.StatusOK, resp)
}

// GetLastQuote handles GET /api/v1/quotes/last. Returns 204 when the
// session has not been shown a quote yet.
func (h *QuoteHandler) GetLastQuote(c *gin.Context) {
	ctx, span := telemetry.StartOperation(c.Request.Context(), "restore_last_quote")
	defer span.End()

	rec := view.NewRecorder()

	q, ok := h.widget.RestoreLastQuote(ctx, rec, h.sessionStore(c))
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}

	display, _ := rec.Displayed()
	quote := dto.FromQuote(q)

	c.JSON(http.StatusOK, dto.QuoteResponse{Display: display, Quote: &quote})
}

// AddQuote handles POST /api/v1/quotes.
func (h *QuoteHandler) AddQuote(c *gin.Context) {
	var req dto.AddQuoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondBindingError(c, err)
		return
	}

	ctx, span := telemetry.StartOperation(c.Request.Context(), "add_quote")
	defer span.End()

	rec := view.NewRecorder()

	if err := h.widget.AddNewQuote(ctx, rec, req.Text, req.Category); err != nil {
		span.RecordError(err)
		dto.HandleErrorMessage(c, err, notificationMessage(rec))

		return
	}

	options, _ := rec.Options()

	c.JSON(http.StatusCreated, dto.MutationResponse{
		Message:    notificationMessage(rec),
		Categories: options,
		Count:      len(h.widget.Quotes()),
	})
}

// ExportQuotes handles GET /api/v1/quotes/export. The collection is sent
// as a quotes.json attachment.
func (h *QuoteHandler) ExportQuotes(c *gin.Context) {
	ctx, span := telemetry.StartOperation(c.Request.Context(), "export_quotes")
	defer span.End()

	data, err := h.widget.ExportQuotes(ctx)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+app.ExportFileName+`"`)
	c.Data(http.StatusOK, app.ExportContentType, data)
}

// ImportQuotes handles POST /api/v1/quotes/import. The payload is either
// the multipart field "file" or the raw request body. No file, or an empty
// body, is the same as cancelling the file picker: 204 and nothing changes.
func (h *QuoteHandler) ImportQuotes(c *gin.Context) {
	r, closeFn, err := importReader(c)
	if err != nil {
		if isTooLarge(err) {
			dto.AbortWithErrorCode(c, dto.ErrorCodeTooLarge, "import file is too large")
			return
		}

		dto.AbortWithErrorCode(c, dto.ErrorCodeBadRequest, err.Error())

		return
	}
	defer closeFn()

	ctx, span := telemetry.StartOperation(c.Request.Context(), "import_quotes")
	defer span.End()

	rec := view.NewRecorder()
	res := <-h.widget.ImportQuotesAsync(ctx, rec, r)

	switch {
	case res.Skipped:
		c.Status(http.StatusNoContent)
	case res.Err != nil:
		span.RecordError(res.Err)

		if isTooLarge(res.Err) {
			dto.AbortWithErrorCode(c, dto.ErrorCodeTooLarge, "import file is too large")
			return
		}

		dto.HandleErrorMessage(c, res.Err, notificationMessage(rec))
	default:
		options, _ := rec.Options()
		imported := res.Summary.Imported

		logging.FromContext(ctx).InfoContext(ctx, "quotes imported",
			slog.Int("imported", imported),
			slog.Int("total", res.Summary.Total),
		)

		c.JSON(http.StatusOK, dto.MutationResponse{
			Message:    notificationMessage(rec),
			Categories: options,
			Count:      res.Summary.Total,
			Imported:   &imported,
		})
	}
}

// importReader picks the import source. A nil reader means no file.
func importReader(c *gin.Context) (io.Reader, func(), error) {
	noop := func() {}

	if c.ContentType() == "multipart/form-data" {
		fh, err := c.FormFile(importField)
		if errors.Is(err, http.ErrMissingFile) {
			return nil, noop, nil
		}

		if err != nil {
			return nil, noop, err
		}

		f, err := fh.Open()
		if err != nil {
			return nil, noop, err
		}

		return f, func() { _ = f.Close() }, nil
	}

	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil, noop, nil
	}

	return c.Request.Body, noop, nil
}

func isTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	return errors.As(err, &tooLarge)
}

// notificationMessage returns the text of the last notification raised.
func notificationMessage(rec *view.Recorder) string {
	n, ok := rec.LastNotification()
	if !ok {
		return ""
	}

	return n.Message
}

// RegisterQuoteRoutes registers the widget routes on rg.
func (h *QuoteHandler) RegisterQuoteRoutes(rg *gin.RouterGroup) {
	rg.GET("/categories", h.GetCategories)

	quotes := rg.Group("/quotes")
	quotes.GET("/random", h.GetRandomQuote)
	quotes.GET("/last", h.GetLastQuote)
	quotes.POST("", h.AddQuote)
	quotes.GET("/export", h.ExportQuotes)
	quotes.POST("/import", h.ImportQuotes)
}
