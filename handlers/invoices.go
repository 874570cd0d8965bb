package handlers

import (
	"net/http"

	"github.com/bimmills/portal/models"
)

// GenerateInvoice creates an invoice from an order
// @Summary      Generate invoice
// @Description  Snapshot an order into a new invoice, computing tax and total.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        invoice  body      models.InvoiceInput  true  "Order and billing details"
// @Success      200      {object}  Response{data=models.Invoice}
// @Failure      400      {object}  Response{error=string}
// @Failure      404      {object}  Response{error=string}
// @Router       /api/invoices/generate [post]
func (h *Handler) GenerateInvoice(w http.ResponseWriter, r *http.Request) {
	var input models.InvoiceInput
	if err := h.decode(r, &input); err != nil {
		writeServiceError(w, r, err)
		return
	}

	inv, err := h.invoices.Generate(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

// ListInvoices lists invoices
// @Summary      List invoices
// @Tags         invoices
// @Produce      json
// @Param        skip   query     int  false  "Offset"  default(0)
// @Param        limit  query     int  false  "Page size"  default(100)
// @Success      200    {object}  Response{data=[]models.Invoice}
// @Router       /api/invoices [get]
func (h *Handler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	skip, limit := paging(r, 100)
	invoices, err := h.invoices.List(r.Context(), skip, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, invoices)
}

// GetInvoice retrieves a single invoice by ID
// @Summary      Get invoice
// @Tags         invoices
// @Produce      json
// @Param        id   path      int  true  "Invoice ID"
// @Success      200  {object}  Response{data=models.Invoice}
// @Failure      404  {object}  Response{error=string}
// @Router       /api/invoices/{id} [get]
func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	inv, err := h.invoices.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

// ListInvoicesByOrder lists the invoices generated for an order
// @Summary      List invoices for an order
// @Tags         invoices
// @Produce      json
// @Param        order_id  path      int  true  "Order ID"
// @Success      200       {object}  Response{data=[]models.Invoice}
// @Router       /api/invoices/order/{order_id} [get]
func (h *Handler) ListInvoicesByOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "order_id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	invoices, err := h.invoices.ListByOrder(r.Context(), orderID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, invoices)
}

// UpdateInvoiceStatus sets an invoice's payment status
// @Summary      Update invoice status
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id      path      int                        true  "Invoice ID"
// @Param        status  body      models.InvoiceStatusInput  true  "New payment status"
// @Success      200     {object}  Response{data=models.Invoice}
// @Failure      400     {object}  Response{error=string}
// @Failure      404     {object}  Response{error=string}
// @Router       /api/invoices/{id}/status [put]
func (h *Handler) UpdateInvoiceStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	var input models.InvoiceStatusInput
	if err := h.decode(r, &input); err != nil {
		writeServiceError(w, r, err)
		return
	}

	inv, err := h.invoices.UpdateStatus(r.Context(), id, input.Status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}
