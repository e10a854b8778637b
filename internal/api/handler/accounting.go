package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/branda-app/branda/internal/api/response"
	"github.com/branda-app/branda/internal/domain"
)

// AccountingHandler handles bookkeeping endpoints
type AccountingHandler struct {
	entries domain.AccountingRepository
}

// NewAccountingHandler creates a new accounting handler
func NewAccountingHandler(entries domain.AccountingRepository) *AccountingHandler {
	return &AccountingHandler{entries: entries}
}

// Create records an income or expense entry
func (h *AccountingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.AccountingEntryCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessages(err))
		return
	}

	date := time.Now().UTC()
	if input.Date != nil {
		date = input.Date.UTC()
	}

	entry := &domain.AccountingEntry{
		Type:     input.Type,
		Category: input.Category,
		Label:    input.Label,
		Amount:   input.Amount,
		Date:     date,
	}
	if err := h.entries.Create(r.Context(), entry); err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, entry)
}

// Get returns one entry
func (h *AccountingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(r, "entryID")
	if !ok {
		response.BadRequest(w, "invalid entry ID")
		return
	}

	entry, err := h.entries.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, entry)
}

// List returns entries within the requested period, optionally filtered
// by type (income or expense)
func (h *AccountingHandler) List(w http.ResponseWriter, r *http.Request) {
	start, end, err := parsePeriodQuery(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	entryType := domain.AccountingEntryType(r.URL.Query().Get("type"))
	if entryType != "" && entryType != domain.EntryIncome && entryType != domain.EntryExpense {
		response.BadRequest(w, "type must be income or expense")
		return
	}

	entries, err := h.entries.ListByPeriod(r.Context(), entryType, start, end)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, entries)
}

// Report returns the income, expense and net totals for the period
func (h *AccountingHandler) Report(w http.ResponseWriter, r *http.Request) {
	start, end, err := parsePeriodQuery(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	entries, err := h.entries.ListByPeriod(r.Context(), "", start, end)
	if err != nil {
		response.FromError(w, err)
		return
	}

	var income, expenses float64
	for _, entry := range entries {
		switch entry.Type {
		case domain.EntryIncome:
			income += entry.Amount
		case domain.EntryExpense:
			expenses += entry.Amount
		}
	}

	response.OK(w, map[string]any{
		"start":    start,
		"end":      end,
		"income":   income,
		"expenses": expenses,
		"net":      income - expenses,
		"entries":  len(entries),
	})
}

// Delete removes an entry
func (h *AccountingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(r, "entryID")
	if !ok {
		response.BadRequest(w, "invalid entry ID")
		return
	}

	if err := h.entries.Delete(r.Context(), id); err != nil {
		response.FromError(w, err)
		return
	}

	response.NoContent(w)
}
