package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/fabworks/stepquote/internal/material"
	"github.com/fabworks/stepquote/internal/metrics"
	"github.com/fabworks/stepquote/internal/pricing"
	"github.com/fabworks/stepquote/internal/quote"
)

type quoteRequest struct {
	Volume        float64  `json:"volume"`
	MaterialID    int64    `json:"materialId"`
	Quantity      *int     `json:"quantity"`
	MarkupPercent *float64 `json:"markupPercent"`
	FileName      string   `json:"fileName"`
}

// withDefaults fills in the documented defaults for omitted fields.
func (q quoteRequest) withDefaults() (quantity int, markupPercent float64) {
	quantity = pricing.DefaultQuantity
	if q.Quantity != nil {
		quantity = *q.Quantity
	}
	markupPercent = pricing.DefaultMarkupPercent
	if q.MarkupPercent != nil {
		markupPercent = *q.MarkupPercent
	}
	return quantity, markupPercent
}

func (s *server) handleQuoteCreate(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	mat, err := s.materials.Get(r.Context(), req.MaterialID)
	if err != nil {
		if errors.Is(err, material.ErrNotFound) {
			http.Error(w, "material not found", http.StatusNotFound)
			return
		}
		s.log.Error("material lookup failed", "materialId", req.MaterialID, "error", err)
		http.Error(w, "failed to resolve material", http.StatusInternalServerError)
		return
	}

	quantity, markupPercent := req.withDefaults()
	result, err := pricing.Calculate(req.Volume, mat, quantity, markupPercent)
	if err != nil {
		var verr *pricing.ValidationError
		if errors.As(err, &verr) {
			http.Error(w, verr.Error(), http.StatusBadRequest)
			return
		}
		s.log.Error("quote calculation failed", "error", err)
		http.Error(w, "failed to calculate quote", http.StatusInternalServerError)
		return
	}

	saved, err := s.quotes.Save(r.Context(), strings.TrimSpace(req.FileName), result)
	if err != nil {
		s.log.Error("failed to save quote", "error", err)
		http.Error(w, "failed to save quote", http.StatusInternalServerError)
		return
	}

	metrics.QuotesCreated.Inc()
	writeJSON(w, http.StatusCreated, saved)
}

func (s *server) handleQuotesList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	quotes, err := s.quotes.List(r.Context(), query)
	if err != nil {
		s.log.Error("failed to list quotes", "error", err)
		http.Error(w, "failed to load quotes", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, quotes)
}

func (s *server) handleQuoteDetail(w http.ResponseWriter, r *http.Request) {
	q, ok := s.quoteByID(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (s *server) handleQuoteText(w http.ResponseWriter, r *http.Request) {
	q, ok := s.quoteByID(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(q.Text()))
}

func (s *server) quoteByID(w http.ResponseWriter, r *http.Request) (quote.Quote, bool) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "invalid quote id", http.StatusBadRequest)
		return quote.Quote{}, false
	}

	q, err := s.quotes.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, quote.ErrNotFound) {
			http.NotFound(w, r)
			return quote.Quote{}, false
		}
		s.log.Error("failed to load quote", "id", id, "error", err)
		http.Error(w, "failed to load quote", http.StatusInternalServerError)
		return quote.Quote{}, false
	}

	return q, true
}

func (s *server) handleMaterialsList(w http.ResponseWriter, r *http.Request) {
	materials, err := s.materials.List(r.Context())
	if err != nil {
		s.log.Error("failed to list materials", "error", err)
		http.Error(w, "failed to load materials", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, materials)
}
