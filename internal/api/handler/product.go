package handler

import (
	"encoding/json"
	"net/http"

	"github.com/branda-app/branda/internal/api/response"
	"github.com/branda-app/branda/internal/domain"
)

// ProductHandler handles catalog endpoints
type ProductHandler struct {
	products domain.ProductRepository
}

// NewProductHandler creates a new product handler
func NewProductHandler(products domain.ProductRepository) *ProductHandler {
	return &ProductHandler{products: products}
}

// Create adds a product to the catalog
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.ProductCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessages(err))
		return
	}

	product := &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		Stock:       input.Stock,
	}
	if err := h.products.Create(r.Context(), product); err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, product)
}

// Get returns one product
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(r, "productID")
	if !ok {
		response.BadRequest(w, "invalid product ID")
		return
	}

	product, err := h.products.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, product)
}

// List returns the catalog, optionally filtered by category
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	activeOnly := r.URL.Query().Get("include_inactive") != "true"

	products, err := h.products.List(r.Context(), category, activeOnly)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, products)
}

// ListOutOfStock returns products with no remaining stock
func (h *ProductHandler) ListOutOfStock(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListOutOfStock(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, products)
}

// Update applies a partial update to a product
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(r, "productID")
	if !ok {
		response.BadRequest(w, "invalid product ID")
		return
	}

	var input domain.ProductUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessages(err))
		return
	}

	if err := h.products.Update(r.Context(), id, &input); err != nil {
		response.FromError(w, err)
		return
	}

	product, err := h.products.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, product)
}

// Delete removes a product from the catalog
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(r, "productID")
	if !ok {
		response.BadRequest(w, "invalid product ID")
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		response.FromError(w, err)
		return
	}

	response.NoContent(w)
}
