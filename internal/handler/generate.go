package handler

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/joestump/joe-writer/internal/intake"
	"github.com/joestump/joe-writer/internal/render"
	"github.com/joestump/joe-writer/internal/writer"
)

// User-facing messages. They are always rendered as escaped plain text.
const (
	msgNotConfigured = "The generation service is not configured. Check the server logs and your credentials."
	msgTooLarge      = "The submitted form is too large."
	msgUnexpected    = "An unexpected error occurred while processing your request: "
	msgModelFailure  = "An error occurred while communicating with the generation service: "
)

// IndexPage is the template data for the input form.
type IndexPage struct {
	BasePage
	Personas       []writer.Persona
	DefaultPersona string
}

// ResultPage is the template data for the result view. Exactly one of
// Content and Error is set.
type ResultPage struct {
	BasePage
	GenerationID    string
	Persona         string
	TargetWordCount int
	Content         template.HTML
	Error           string
}

// GenerateHandler serves the form and runs generations.
type GenerateHandler struct {
	writer    *writer.Writer
	configErr error
	maxUpload int64
	logger    *zap.Logger
}

// NewGenerateHandler creates a GenerateHandler. A nil w or a non-nil
// configErr puts the handler in not-configured mode: every POST answers with
// msgNotConfigured and nothing is sent to the model.
func NewGenerateHandler(w *writer.Writer, configErr error, maxUpload int64, logger *zap.Logger) *GenerateHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GenerateHandler{writer: w, configErr: configErr, maxUpload: maxUpload, logger: logger}
}

// Index serves GET /.
func (h *GenerateHandler) Index(w http.ResponseWriter, r *http.Request) {
	renderPage(w, http.StatusOK, "index.html", IndexPage{
		BasePage:       newBasePage("Content Writer"),
		Personas:       []writer.Persona{writer.PersonaArticle, writer.PersonaCopywriter},
		DefaultPersona: intake.DefaultPersona,
	})
}

// Generate serves POST /generate.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	page := ResultPage{BasePage: newBasePage("Generated Content")}

	if h.writer == nil || h.configErr != nil {
		page.Error = msgNotConfigured
		renderPage(w, http.StatusServiceUnavailable, "result.html", page)
		return
	}

	req, err := intake.Parse(w, r, h.maxUpload)
	if err != nil {
		h.logger.Warn("intake failed", zap.Error(err))
		status := http.StatusBadRequest
		page.Error = msgUnexpected + err.Error()
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			status = http.StatusRequestEntityTooLarge
			page.Error = msgTooLarge
		}
		renderPage(w, status, "result.html", page)
		return
	}
	page.Persona = req.Persona

	res, err := h.writer.Write(r.Context(), req)
	if err != nil {
		status, msg := classify(req, err)
		h.logger.Error("generation failed",
			zap.String("persona", req.Persona),
			zap.Int("status", status),
			zap.Error(err),
		)
		page.Error = msg
		renderPage(w, status, "result.html", page)
		return
	}

	html, err := render.Markdown(res.Content)
	if err != nil {
		h.logger.Error("render failed", zap.String("generation_id", res.ID), zap.Error(err))
		page.Error = msgUnexpected + err.Error()
		renderPage(w, http.StatusInternalServerError, "result.html", page)
		return
	}

	page.GenerationID = res.ID
	page.TargetWordCount = res.TargetWordCount
	page.Content = html
	renderPage(w, http.StatusOK, "result.html", page)
}

// classify maps a Write error to a status code and a user-facing message.
func classify(req writer.GenerationRequest, err error) (int, string) {
	var se *writer.StepError
	switch {
	case errors.Is(err, writer.ErrInvalidPersona):
		return http.StatusBadRequest, fmt.Sprintf("Invalid persona selected: %q.", req.Persona)
	case errors.Is(err, writer.ErrNotConfigured):
		return http.StatusServiceUnavailable, msgNotConfigured
	case errors.As(err, &se):
		return http.StatusBadGateway, msgModelFailure + se.Err.Error()
	default:
		return http.StatusInternalServerError, msgUnexpected + err.Error()
	}
}
