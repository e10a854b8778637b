package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/branda-app/branda/internal/api/response"
	"github.com/branda-app/branda/internal/bot"
	"github.com/branda-app/branda/internal/domain"
)

// parsePeriodQuery resolves the reporting window from query parameters.
// Explicit RFC 3339 start/end bounds win; otherwise the French period
// label is parsed, defaulting to the current month.
func parsePeriodQuery(r *http.Request) (start, end time.Time, err error) {
	q := r.URL.Query()
	rawStart, rawEnd := q.Get("start"), q.Get("end")

	if rawStart != "" || rawEnd != "" {
		start, err = time.Parse(time.RFC3339, rawStart)
		if err != nil {
			return time.Time{}, time.Time{}, domain.NewValidationError("invalid start date, expected RFC 3339")
		}
		end, err = time.Parse(time.RFC3339, rawEnd)
		if err != nil {
			return time.Time{}, time.Time{}, domain.NewValidationError("invalid end date, expected RFC 3339")
		}
		if !end.After(start) {
			return time.Time{}, time.Time{}, domain.NewValidationError("end must be after start")
		}
		return start, end, nil
	}

	period := bot.ParsePeriod(q.Get("period"), time.Now().UTC())
	return period.Start, period.End, nil
}

// SaleHandler handles sales record endpoints
type SaleHandler struct {
	sales domain.SaleRepository
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(sales domain.SaleRepository) *SaleHandler {
	return &SaleHandler{sales: sales}
}

// Create records a sale. Line totals and the sale total are computed
// server side from quantity and unit price.
func (h *SaleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.SaleCreate
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

	sale := &domain.Sale{
		Customer: input.Customer,
		Date:     date,
		Items:    make([]domain.SaleItem, 0, len(input.Items)),
	}
	for _, item := range input.Items {
		total := float64(item.Quantity) * item.UnitPrice
		sale.Items = append(sale.Items, domain.SaleItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  total,
		})
		sale.TotalAmount += total
	}

	if err := h.sales.Create(r.Context(), sale); err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, sale)
}

// Get returns one sale
func (h *SaleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(r, "saleID")
	if !ok {
		response.BadRequest(w, "invalid sale ID")
		return
	}

	sale, err := h.sales.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, sale)
}

// List returns sales within the requested period
func (h *SaleHandler) List(w http.ResponseWriter, r *http.Request) {
	start, end, err := parsePeriodQuery(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	sales, err := h.sales.ListByPeriod(r.Context(), start, end)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, sales)
}

// Delete removes a sale record
func (h *SaleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(r, "saleID")
	if !ok {
		response.BadRequest(w, "invalid sale ID")
		return
	}

	if err := h.sales.Delete(r.Context(), id); err != nil {
		response.FromError(w, err)
		return
	}

	response.NoContent(w)
}
