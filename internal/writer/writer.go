package writer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/joestump/joe-writer/internal/llm"
	"github.com/joestump/joe-writer/internal/metrics"
	"github.com/joestump/joe-writer/internal/prompt"
)

// Mode selects how many round trips are made to the model.
type Mode string

const (
	// ModeChain asks for a strategic brief first, then drafts from it.
	ModeChain Mode = "chain"
	// ModeSingle sends the instruction file plus the raw competitor text once.
	ModeSingle Mode = "single"
)

// Step names, used in errors, logs and metrics.
const (
	StepBrief  = "brief"
	StepDraft  = "draft"
	StepSingle = "single"
)

// singleDataHeader separates the instructions from the pasted competitor
// text in single mode.
const singleDataHeader = "\n\n# User-Provided Raw Competitor Data\n\n---\n\n"

// ErrNotConfigured is returned when no generation service is available.
var ErrNotConfigured = errors.New("generation service not configured")

// GenerationRequest is one form submission.
type GenerationRequest struct {
	Persona    string
	Competitor string
	BrandVoice string
}

// Result is the outcome of a successful Write.
type Result struct {
	ID              string
	Persona         Persona
	TargetWordCount int
	// Brief is empty in single mode.
	Brief string
	// Content is the final markdown.
	Content string
	// Prompts holds every prompt sent, in order.
	Prompts []string
}

// StepError wraps a failed model call with the step it belongs to.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string { return fmt.Sprintf("%s step: %v", e.Step, e.Err) }

func (e *StepError) Unwrap() error { return e.Err }

// Writer runs the prompt chain for one request at a time. It holds no
// per-request state and is safe for concurrent use.
type Writer struct {
	gen    llm.Generator
	store  *prompt.Store
	mode   Mode
	logger *zap.Logger
}

// New creates a Writer. gen may be nil, in which case every Write fails with
// ErrNotConfigured.
func New(gen llm.Generator, store *prompt.Store, mode Mode, logger *zap.Logger) *Writer {
	if mode == "" {
		mode = ModeChain
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{gen: gen, store: store, mode: mode, logger: logger}
}

// Write checks that a generator is configured, validates the persona, fills
// the templates and calls the model once (single mode) or twice (chain mode).
// Calls are sequential: the draft prompt needs the brief.
func (w *Writer) Write(ctx context.Context, req GenerationRequest) (*Result, error) {
	persona, err := ParsePersona(req.Persona)
	if w.gen == nil {
		label := string(persona)
		if err != nil {
			label = "invalid"
		}
		metrics.GenerationsTotal.WithLabelValues(label, "not_configured").Inc()
		return nil, ErrNotConfigured
	}
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues("invalid", "invalid_persona").Inc()
		return nil, err
	}

	res := &Result{
		ID:              uuid.NewString(),
		Persona:         persona,
		TargetWordCount: TargetWordCount(persona, req.Competitor),
	}
	log := w.logger.With(zap.String("generation_id", res.ID), zap.String("persona", string(persona)))

	if w.mode == ModeSingle {
		err = w.writeSingle(ctx, log, req, res)
	} else {
		err = w.writeChain(ctx, log, req, res)
	}
	if err != nil {
		outcome := "template_error"
		var se *StepError
		if errors.As(err, &se) {
			outcome = "model_error"
		}
		metrics.GenerationsTotal.WithLabelValues(string(persona), outcome).Inc()
		return nil, err
	}

	metrics.GenerationsTotal.WithLabelValues(string(persona), "ok").Inc()
	return res, nil
}

func (w *Writer) writeChain(ctx context.Context, log *zap.Logger, req GenerationRequest, res *Result) error {
	m, err := w.store.Manifest()
	if err != nil {
		return err
	}
	steps, ok := m.Personas[string(res.Persona)]
	if !ok {
		return fmt.Errorf("no templates configured for persona %q", res.Persona)
	}

	target := strconv.Itoa(res.TargetWordCount)
	briefPrompt, err := w.fill(steps.Brief, prompt.Vars{
		"brand_voice_data":  req.BrandVoice,
		"brand_data":        req.BrandVoice,
		"target_word_count": target,
		"competitor_data":   req.Competitor,
	})
	if err != nil {
		return err
	}
	res.Brief, err = w.call(ctx, log, StepBrief, briefPrompt, res)
	if err != nil {
		return err
	}

	draftVars := prompt.Vars{
		"brand_voice_data": req.BrandVoice,
		"brand_data":       req.BrandVoice,
		"strategic_brief":  res.Brief,
	}
	if res.Persona == PersonaArticle {
		draftVars["target_word_count"] = target
	}
	draftPrompt, err := w.fill(steps.Draft, draftVars)
	if err != nil {
		return err
	}
	res.Content, err = w.call(ctx, log, StepDraft, draftPrompt, res)
	return err
}

func (w *Writer) writeSingle(ctx context.Context, log *zap.Logger, req GenerationRequest, res *Result) error {
	m, err := w.store.Manifest()
	if err != nil {
		return err
	}
	instructions, err := w.fill(m.Single, prompt.Vars{
		"brand_voice_data":  req.BrandVoice,
		"brand_data":        req.BrandVoice,
		"target_word_count": strconv.Itoa(res.TargetWordCount),
	})
	if err != nil {
		return err
	}
	res.Content, err = w.call(ctx, log, StepSingle, instructions+singleDataHeader+req.Competitor, res)
	return err
}

func (w *Writer) fill(name string, vars prompt.Vars) (string, error) {
	tmpl, err := w.store.Load(name)
	if err != nil {
		return "", err
	}
	return tmpl.Fill(vars)
}

func (w *Writer) call(ctx context.Context, log *zap.Logger, step, p string, res *Result) (string, error) {
	res.Prompts = append(res.Prompts, p)
	start := time.Now()
	out, err := w.gen.Generate(ctx, p)
	elapsed := time.Since(start)
	metrics.StepDuration.WithLabelValues(step).Observe(elapsed.Seconds())

	if err != nil {
		metrics.StepErrorsTotal.WithLabelValues(step).Inc()
		log.Error("generation step failed",
			zap.String("step", step),
			zap.Duration("latency", elapsed),
			zap.Error(err),
		)
		return "", &StepError{Step: step, Err: err}
	}
	log.Info("generation step",
		zap.String("step", step),
		zap.Int("prompt_chars", len(p)),
		zap.Int("output_chars", len(out)),
		zap.Duration("latency", elapsed),
	)
	return out, nil
}
