package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/cleared-dev/ledgermap/internal/classify"
	"github.com/cleared-dev/ledgermap/internal/model"
	"github.com/cleared-dev/ledgermap/internal/report"
	"github.com/cleared-dev/ledgermap/internal/rules"
	"github.com/cleared-dev/ledgermap/internal/statement"
)

// maxBody bounds request bodies.
const maxBody = 8 << 20

// Handlers groups all HTTP handler methods and their dependencies.
type Handlers struct {
	opts   Options
	placer *statement.Placer
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Error("encoding response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return false
	}
	return true
}

func (h *Handlers) store(variant string) (*rules.Store, bool) {
	switch model.Variant(variant) {
	case "", model.VariantPrimary:
		return h.opts.Primary, true
	case model.VariantComparison:
		return h.opts.Comparison, h.opts.Comparison != nil
	}
	return nil, false
}

// --- GetTaxonomy ---

type taxonomyEntry struct {
	Code          string `json:"code"`
	Description   string `json:"description"`
	Level         int    `json:"level"`
	Statements    string `json:"statements"`
	Note          bool   `json:"note,omitempty"`
	Uncategorised bool   `json:"uncategorised,omitempty"`
}

func (h *Handlers) GetTaxonomy(w http.ResponseWriter, r *http.Request) {
	var out []taxonomyEntry
	for e := range h.opts.Primary.Taxonomy().All() {
		out = append(out, taxonomyEntry{
			Code:          e.Code.String(),
			Description:   e.Description,
			Level:         e.Level(),
			Statements:    e.Statements.String(),
			Note:          e.Note,
			Uncategorised: e.Uncategorised,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": out, "total": len(out)})
}

// --- GetPlacement ---

func (h *Handlers) GetPlacement(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		writeError(w, http.StatusBadRequest, "category is required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"category":  category,
		"placement": h.placer.Placement(category),
	})
}

// --- GetRules ---

func (h *Handlers) GetRules(w http.ResponseWriter, r *http.Request) {
	s, ok := h.store(chi.URLParam(r, "variant"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown variant")
		return
	}
	writeJSON(w, http.StatusOK, rules.ToFile(s))
}

// --- Classify ---

type classifyRequest struct {
	Variant string                `json:"variant"`
	Ledgers []model.LedgerAccount `json:"ledgers"`
}

func (h *Handlers) Classify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if !decode(w, r, &req) {
		return
	}
	s, ok := h.store(req.Variant)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown variant "+req.Variant)
		return
	}

	nm, err := s.Taxonomy().BuildNoteNumberMap(h.opts.Config.StartNoteNumber, h.opts.Config.IncludeContingentLiabilities)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	batch := classify.New(s, classify.WithNotes(nm)).Run(model.NormalizeAll(req.Ledgers))

	var failures []string
	for _, f := range batch.Failures {
		failures = append(failures, f.Error())
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"results":  batch.Results,
		"stats":    classify.Summarize(batch.Results),
		"context":  batch.Context,
		"failures": failures,
	})
}

// --- Statements ---

type statementsRequest struct {
	Current []model.LedgerAccount `json:"current"`
	Prior   []model.LedgerAccount `json:"prior"`
}

func (h *Handlers) Statements(w http.ResponseWriter, r *http.Request) {
	var req statementsRequest
	if !decode(w, r, &req) {
		return
	}
	rep, err := report.Build(report.Input{
		Current:    model.NormalizeAll(req.Current),
		Prior:      model.NormalizeAll(req.Prior),
		Primary:    h.opts.Primary,
		Comparison: h.opts.Comparison,
		Config:     h.opts.Config,
	})
	if err != nil {
		logrus.WithError(err).Error("building statements")
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rep)
}
