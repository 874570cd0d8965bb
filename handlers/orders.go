package handlers

import (
	"net/http"

	"github.com/bimmills/portal/models"
)

// CreateOrder places an order and records its sale
// @Summary      Create order
// @Description  Place an order. A sales-ledger entry is written in the same transaction and a confirmation email is queued when an email is given.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        order  body      models.OrderInput  true  "Order contents"
// @Success      201    {object}  Response{data=models.OrderCreated}
// @Failure      400    {object}  Response{error=string}
// @Failure      404    {object}  Response{error=string}
// @Router       /api/orders [post]
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var input models.OrderInput
	if err := h.decode(r, &input); err != nil {
		writeServiceError(w, r, err)
		return
	}

	order, err := h.orders.Create(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, models.OrderCreated{Order: order, Message: "Order created successfully"})
}

// ListOrders lists all orders
// @Summary      List orders
// @Description  Get all orders, newest first.
// @Tags         orders
// @Produce      json
// @Success      200  {object}  Response{data=[]models.Order}
// @Router       /api/orders [get]
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// GetOrder retrieves a single order by ID
// @Summary      Get order
// @Tags         orders
// @Produce      json
// @Param        id   path      int  true  "Order ID"
// @Success      200  {object}  Response{data=models.Order}
// @Failure      404  {object}  Response{error=string}
// @Router       /api/orders/{id} [get]
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	order, err := h.orders.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// RequestCancellation flags an order for cancellation
// @Summary      Request order cancellation
// @Description  The customer confirms with the email used at checkout. The order is only flagged; an administrator deletes it.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id       path      int                         true  "Order ID"
// @Param        request  body      models.CancellationRequest  true  "Customer email"
// @Success      200      {object}  Response{data=models.CancellationResult}
// @Failure      403      {object}  Response{error=string}
// @Failure      404      {object}  Response{error=string}
// @Router       /api/orders/{id}/request-cancellation [post]
func (h *Handler) RequestCancellation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	var input models.CancellationRequest
	if err := h.decode(r, &input); err != nil {
		writeServiceError(w, r, err)
		return
	}

	res, err := h.orders.RequestCancellation(r.Context(), id, input.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// DeleteOrder cancels an order
// @Summary      Delete order
// @Description  Remove an order and its sales-ledger entry, then queue a cancellation email.
// @Tags         orders
// @Produce      json
// @Param        id   path      int  true  "Order ID"
// @Success      200  {object}  Response{data=models.DeletedOrder}
// @Failure      404  {object}  Response{error=string}
// @Router       /api/orders/{id} [delete]
func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	deleted, err := h.orders.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deleted)
}
