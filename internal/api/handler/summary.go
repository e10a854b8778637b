package handler

import (
	"net/http"

	"github.com/branda-app/branda/internal/api/response"
	"github.com/branda-app/branda/internal/domain"
)

// SummaryHandler exposes read access to conversation summaries. Summaries
// are produced asynchronously by the summary worker; there is no write
// endpoint.
type SummaryHandler struct {
	summaries domain.SummaryRepository
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(summaries domain.SummaryRepository) *SummaryHandler {
	return &SummaryHandler{summaries: summaries}
}

// GetByConversation returns the summary of one conversation
func (h *SummaryHandler) GetByConversation(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(r, "conversationID")
	if !ok {
		response.BadRequest(w, "invalid conversation ID")
		return
	}

	summary, err := h.summaries.GetByConversation(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, summary)
}

// ListByPeriod returns summaries updated within the requested period
func (h *SummaryHandler) ListByPeriod(w http.ResponseWriter, r *http.Request) {
	start, end, err := parsePeriodQuery(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	summaries, err := h.summaries.ListByPeriod(r.Context(), start, end)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, summaries)
}
