package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/thoga72-SAP/birkenbihllab/internal/domain"
	"github.com/thoga72-SAP/birkenbihllab/internal/provider"
)

// trainerService defines the minimal interface needed by TrainerHandler.
type trainerService interface {
	LookupOptions(ctx context.Context, word, contextLine string, existing []string) ([]string, error)
	TranslateText(ctx context.Context, text string) (*provider.TranslationResult, error)
	RecordChoice(ctx context.Context, sourceWord, candidate string) error
	Prepare(ctx context.Context, text string) ([]domain.LineState, error)
	ApplyPick(ctx context.Context, line *domain.LineState, tokenIdx int, sel domain.Selection) error
	CountFor(sourceWord, candidate string) int
}

// TrainerHandler serves the vocabulary-trainer REST endpoints.
type TrainerHandler struct {
	svc trainerService
	log *slog.Logger
}

// NewTrainerHandler creates a TrainerHandler.
func NewTrainerHandler(svc trainerService, logger *slog.Logger) *TrainerHandler {
	return &TrainerHandler{svc: svc, log: logger.With("handler", "trainer")}
}

type translateRequest struct {
	Word    string   `json:"word"`
	Context string   `json:"context,omitempty"`
	Options []string `json:"options,omitempty"`
}

type translateResponse struct {
	Word    string   `json:"word"`
	Options []string `json:"options"`
}

type fulltextRequest struct {
	Text string `json:"text"`
}

type fulltextResponse struct {
	Translation string `json:"translation"`
}

type saveVocabRequest struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
}

type saveVocabResponse struct {
	Count int `json:"count"`
}

type prepareRequest struct {
	Text string `json:"text"`
}

type prepareResponse struct {
	Lines []lineJSON `json:"lines"`
}

type pickRequest struct {
	Line       lineJSON      `json:"line"`
	TokenIndex int           `json:"tokenIndex"`
	Selection  selectionJSON `json:"selection"`
}

type pickResponse struct {
	Line lineJSON `json:"line"`
}

type selectionJSON struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

type lineJSON struct {
	Text   string      `json:"text"`
	Tokens []tokenJSON `json:"tokens"`
}

type tokenJSON struct {
	Text        string   `json:"text"`
	Punctuation bool     `json:"punctuation"`
	ProperName  bool     `json:"properName,omitempty"`
	Translation string   `json:"translation"`
	Confirmed   bool     `json:"confirmed"`
	Options     []string `json:"options"`
}

// Translate handles POST /api/translate: candidates for one word, all
// sources merged and ranked.
func (h *TrainerHandler) Translate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	options, err := h.svc.LookupOptions(r.Context(), req.Word, req.Context, req.Options)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if options == nil {
		options = []string{}
	}
	writeJSON(w, http.StatusOK, translateResponse{Word: req.Word, Options: options})
}

// TranslateFulltext handles POST /api/translate/fulltext.
func (h *TrainerHandler) TranslateFulltext(w http.ResponseWriter, r *http.Request) {
	var req fulltextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.TranslateText(r.Context(), req.Text)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, fulltextResponse{Translation: result.Text})
}

// SaveVocab handles POST /api/vocab/save: reinforce a confirmed choice.
func (h *TrainerHandler) SaveVocab(w http.ResponseWriter, r *http.Request) {
	var req saveVocabRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.RecordChoice(r.Context(), req.Word, req.Translation); err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saveVocabResponse{
		Count: h.svc.CountFor(req.Word, req.Translation),
	})
}

// PrepareLines handles POST /api/lines/prepare.
func (h *TrainerHandler) PrepareLines(w http.ResponseWriter, r *http.Request) {
	var req prepareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lines, err := h.svc.Prepare(r.Context(), req.Text)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := prepareResponse{Lines: make([]lineJSON, 0, len(lines))}
	for _, line := range lines {
		resp.Lines = append(resp.Lines, toLineJSON(line))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Pick handles POST /api/lines/pick: the client sends the line state back,
// the pick is applied and recorded, and the updated line is returned.
func (h *TrainerHandler) Pick(w http.ResponseWriter, r *http.Request) {
	var req pickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sel, err := toSelection(req.Selection)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	line := fromLineJSON(req.Line)
	if err := h.svc.ApplyPick(r.Context(), &line, req.TokenIndex, sel); err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pickResponse{Line: toLineJSON(line)})
}

func (h *TrainerHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "upstream timeout")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func toSelection(s selectionJSON) (domain.Selection, error) {
	switch domain.SelectionKind(s.Kind) {
	case domain.SelectionSuggested:
		return domain.Suggested(s.Text), nil
	case domain.SelectionManual:
		return domain.Manual(s.Text), nil
	default:
		return domain.Selection{}, domain.NewValidationError("selection", "kind must be suggested or manual")
	}
}

func toLineJSON(line domain.LineState) lineJSON {
	out := lineJSON{Text: line.Text, Tokens: make([]tokenJSON, 0, len(line.Tokens))}
	for _, ts := range line.Tokens {
		options := ts.Options
		if options == nil {
			options = []string{}
		}
		out.Tokens = append(out.Tokens, tokenJSON{
			Text:        ts.Token.Text,
			Punctuation: ts.Token.Punctuation,
			ProperName:  ts.Token.ProperName,
			Translation: ts.Translation,
			Confirmed:   ts.Confirmed,
			Options:     options,
		})
	}
	return out
}

func fromLineJSON(in lineJSON) domain.LineState {
	line := domain.LineState{Text: in.Text, Tokens: make([]domain.TokenState, 0, len(in.Tokens))}
	for _, tj := range in.Tokens {
		line.Tokens = append(line.Tokens, domain.TokenState{
			Token: domain.Token{
				Text:        tj.Text,
				Punctuation: tj.Punctuation,
				ProperName:  tj.ProperName,
			},
			Translation: tj.Translation,
			Confirmed:   tj.Confirmed,
			Options:     tj.Options,
		})
	}
	return line
}
