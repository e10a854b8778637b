package handler

import (
	"encoding/json"
	"net/http"

	"github.com/branda-app/branda/internal/api/response"
	"github.com/branda-app/branda/internal/domain"
)

// EmployeeHandler handles staff, schedule and review endpoints
type EmployeeHandler struct {
	employees domain.EmployeeRepository
	shifts    domain.ShiftRepository
	reviews   domain.PerformanceRepository
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(
	employees domain.EmployeeRepository,
	shifts domain.ShiftRepository,
	reviews domain.PerformanceRepository,
) *EmployeeHandler {
	return &EmployeeHandler{
		employees: employees,
		shifts:    shifts,
		reviews:   reviews,
	}
}

// Create adds a staff member
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.EmployeeCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessages(err))
		return
	}

	employee := &domain.Employee{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Position:  input.Position,
		Email:     input.Email,
		Phone:     input.Phone,
	}
	if err := h.employees.Create(r.Context(), employee); err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, employee)
}

// Get returns one staff member
func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(r, "employeeID")
	if !ok {
		response.BadRequest(w, "invalid employee ID")
		return
	}

	employee, err := h.employees.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, employee)
}

// List returns the staff roster
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("include_inactive") != "true"

	employees, err := h.employees.List(r.Context(), activeOnly)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, employees)
}

// Update applies a partial update to a staff member
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(r, "employeeID")
	if !ok {
		response.BadRequest(w, "invalid employee ID")
		return
	}

	var input domain.EmployeeUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessages(err))
		return
	}

	if err := h.employees.Update(r.Context(), id, &input); err != nil {
		response.FromError(w, err)
		return
	}

	employee, err := h.employees.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, employee)
}

// Delete removes a staff member
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(r, "employeeID")
	if !ok {
		response.BadRequest(w, "invalid employee ID")
		return
	}

	if err := h.employees.Delete(r.Context(), id); err != nil {
		response.FromError(w, err)
		return
	}

	response.NoContent(w)
}

// CreateShift schedules a work period for an employee
func (h *EmployeeHandler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var input domain.ShiftCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessages(err))
		return
	}

	if _, err := h.employees.Get(r.Context(), input.EmployeeID); err != nil {
		response.FromError(w, err)
		return
	}

	shift := &domain.Shift{
		EmployeeID: input.EmployeeID,
		Start:      input.Start.UTC(),
		End:        input.End.UTC(),
		Notes:      input.Notes,
	}
	if err := h.shifts.Create(r.Context(), shift); err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, shift)
}

// ListShifts returns the schedule for the requested period
func (h *EmployeeHandler) ListShifts(w http.ResponseWriter, r *http.Request) {
	start, end, err := parsePeriodQuery(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	shifts, err := h.shifts.ListByPeriod(r.Context(), start, end)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, shifts)
}

// ListEmployeeShifts returns one employee's schedule for the period
func (h *EmployeeHandler) ListEmployeeShifts(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(r, "employeeID")
	if !ok {
		response.BadRequest(w, "invalid employee ID")
		return
	}

	start, end, err := parsePeriodQuery(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	shifts, err := h.shifts.ListByEmployee(r.Context(), id, start, end)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, shifts)
}

// DeleteShift removes a scheduled shift
func (h *EmployeeHandler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(r, "shiftID")
	if !ok {
		response.BadRequest(w, "invalid shift ID")
		return
	}

	if err := h.shifts.Delete(r.Context(), id); err != nil {
		response.FromError(w, err)
		return
	}

	response.NoContent(w)
}

// CreateReview records a performance review
func (h *EmployeeHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var input domain.PerformanceReviewCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessages(err))
		return
	}

	if _, err := h.employees.Get(r.Context(), input.EmployeeID); err != nil {
		response.FromError(w, err)
		return
	}

	review := &domain.PerformanceReview{
		EmployeeID: input.EmployeeID,
		Period:     input.Period,
		Score:      input.Score,
		Comments:   input.Comments,
	}
	if err := h.reviews.Create(r.Context(), review); err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, review)
}

// ListEmployeeReviews returns one employee's reviews, most recent first
func (h *EmployeeHandler) ListEmployeeReviews(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(r, "employeeID")
	if !ok {
		response.BadRequest(w, "invalid employee ID")
		return
	}

	reviews, err := h.reviews.ListByEmployee(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, reviews)
}

// DeleteReview removes a performance review
func (h *EmployeeHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(r, "reviewID")
	if !ok {
		response.BadRequest(w, "invalid review ID")
		return
	}

	if err := h.reviews.Delete(r.Context(), id); err != nil {
		response.FromError(w, err)
		return
	}

	response.NoContent(w)
}
