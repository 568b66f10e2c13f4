package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/joestump/joe-writer/internal/intake"
	"github.com/joestump/joe-writer/internal/render"
	"github.com/joestump/joe-writer/internal/writer"
)

type generateAPIHandler struct {
	writer    *writer.Writer
	configErr error
	maxBody   int64
	logger    *zap.Logger
}

// Generate runs one generation.
//
// @Summary      Generate content
// @Description  Runs the brief and draft steps (or the single step) and returns the markdown and its HTML rendering.
// @Tags         generate
// @Accept       json
// @Produce      json
// @Param        body  body      GenerateRequest  true  "Generation input"
// @Success      200   {object}  GenerateResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      413   {object}  ErrorResponse
// @Failure      502   {object}  ErrorResponse
// @Failure      503   {object}  ErrorResponse
// @Router       /generate [post]
func (h *generateAPIHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if h.writer == nil || h.configErr != nil {
		writeError(w, http.StatusServiceUnavailable, "generation service is not configured", codeNotConfigured)
		return
	}

	if h.maxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}
	var body GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large", codeTooLarge)
			return
		}
		writeError(w, http.StatusBadRequest, "invalid JSON body", codeBadRequest)
		return
	}

	req := writer.GenerationRequest{
		Persona:    intake.DefaultPersona,
		Competitor: strings.TrimSpace(body.CompetitorData),
		BrandVoice: body.BrandVoiceData,
	}
	if body.Persona != nil {
		req.Persona = *body.Persona
	}
	if req.BrandVoice == "" {
		req.BrandVoice = intake.DefaultBrandVoice
	}

	res, err := h.writer.Write(r.Context(), req)
	if err != nil {
		var se *writer.StepError
		switch {
		case errors.Is(err, writer.ErrInvalidPersona):
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid persona %q", req.Persona), codeInvalidPersona)
		case errors.Is(err, writer.ErrNotConfigured):
			writeError(w, http.StatusServiceUnavailable, "generation service is not configured", codeNotConfigured)
		case errors.As(err, &se):
			h.logger.Error("api generation failed", zap.String("step", se.Step), zap.Error(err))
			writeError(w, http.StatusBadGateway, se.Err.Error(), codeGenerationError)
		default:
			h.logger.Error("api generation failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, err.Error(), codeInternal)
		}
		return
	}

	html, err := render.Markdown(res.Content)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error(), codeInternal)
		return
	}

	writeJSON(w, http.StatusOK, GenerateResponse{
		ID:              res.ID,
		Persona:         string(res.Persona),
		TargetWordCount: res.TargetWordCount,
		Brief:           res.Brief,
		Content:         res.Content,
		HTML:            string(html),
	})
}

// Personas lists the accepted persona values.
//
// @Summary      List personas
// @Tags         generate
// @Produce      json
// @Success      200  {array}  string
// @Router       /personas [get]
func (h *generateAPIHandler) Personas(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, []writer.Persona{writer.PersonaArticle, writer.PersonaCopywriter})
}
