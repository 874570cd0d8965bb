package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bimmills/portal/models"
	"github.com/bimmills/portal/service"
)

const vendorPaymentSelectQuery = `SELECT p.id, p.vendor_id, p.payment_number, p.description, p.amount,
		p.payment_method, p.payment_date, p.due_date, p.status, p.reference_number, p.bill_reference,
		p.notes, p.created_at, v.id, v.name, v.company_name
		FROM vendor_payments p
		LEFT JOIN vendors v ON p.vendor_id = v.id`

func scanVendorPayment(scanner interface{ Scan(...any) error }) (models.VendorPayment, error) {
	var (
		p           models.VendorPayment
		vendorID    sql.NullInt64
		vendorName  sql.NullString
		companyName *string
	)
	err := scanner.Scan(&p.ID, &p.VendorID, &p.PaymentNumber, &p.Description, &p.Amount,
		&p.PaymentMethod, &p.PaymentDate, &p.DueDate, &p.Status, &p.ReferenceNumber, &p.BillReference,
		&p.Notes, &p.CreatedAt, &vendorID, &vendorName, &companyName)
	if err == nil && vendorID.Valid {
		p.Vendor = &models.VendorSummary{ID: int(vendorID.Int64), Name: vendorName.String, CompanyName: companyName}
	}
	return p, err
}

func (h *Handler) getVendorPaymentByID(ctx context.Context, id int) (models.VendorPayment, error) {
	p, err := scanVendorPayment(h.db.QueryRowContext(ctx, vendorPaymentSelectQuery+" WHERE p.id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return p, service.NotFound("Vendor payment")
	}
	return p, err
}

func (h *Handler) queryVendorPayments(w http.ResponseWriter, r *http.Request, query string, args ...any) {
	rows, err := h.db.QueryContext(r.Context(), query, args...)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	defer rows.Close()

	payments := []models.VendorPayment{}
	for rows.Next() {
		p, err := scanVendorPayment(rows)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		payments = append(payments, p)
	}
	writeJSON(w, http.StatusOK, payments)
}

// ListVendorPayments lists vendor payments
// @Summary      List vendor payments
// @Description  Latest payment date first, optionally filtered by status.
// @Tags         vendor-payments
// @Produce      json
// @Param        status  query     string  false  "Filter by status"
// @Param        skip    query     int     false  "Offset"  default(0)
// @Param        limit   query     int     false  "Page size"  default(100)
// @Success      200     {object}  Response{data=[]models.VendorPayment}
// @Router       /api/vendor-payments [get]
func (h *Handler) ListVendorPayments(w http.ResponseWriter, r *http.Request) {
	skip, limit := paging(r, 100)
	query := vendorPaymentSelectQuery
	var args []any

	if s := r.URL.Query().Get("status"); s != "" {
		query += " WHERE p.status = $1"
		args = append(args, s)
	}
	query += fmt.Sprintf(" ORDER BY p.payment_date DESC, p.id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, skip)

	h.queryVendorPayments(w, r, query, args...)
}

// ListPaymentsByVendor lists the payments made to one vendor
// @Summary      List payments for a vendor
// @Tags         vendor-payments
// @Produce      json
// @Param        vendor_id  path      int  true  "Vendor ID"
// @Success      200        {object}  Response{data=[]models.VendorPayment}
// @Router       /api/vendor-payments/vendor/{vendor_id} [get]
func (h *Handler) ListPaymentsByVendor(w http.ResponseWriter, r *http.Request) {
	vendorID, err := pathID(r, "vendor_id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.queryVendorPayments(w, r, vendorPaymentSelectQuery+" WHERE p.vendor_id = $1 ORDER BY p.payment_date DESC, p.id DESC", vendorID)
}

// GetVendorPayment retrieves a single vendor payment by ID
// @Summary      Get vendor payment
// @Tags         vendor-payments
// @Produce      json
// @Param        id   path      int  true  "Payment ID"
// @Success      200  {object}  Response{data=models.VendorPayment}
// @Failure      404  {object}  Response{error=string}
// @Router       /api/vendor-payments/{id} [get]
func (h *Handler) GetVendorPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	p, err := h.getVendorPaymentByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// CreateVendorPayment records a payment to a vendor
// @Summary      Create vendor payment
// @Description  A VP- payment number is assigned. The vendor must exist.
// @Tags         vendor-payments
// @Accept       json
// @Produce      json
// @Param        payment  body      models.VendorPaymentInput  true  "Payment details"
// @Success      200      {object}  Response{data=models.VendorPayment}
// @Failure      400      {object}  Response{error=string}
// @Failure      404      {object}  Response{error=string}
// @Router       /api/vendor-payments [post]
func (h *Handler) CreateVendorPayment(w http.ResponseWriter, r *http.Request) {
	var input models.VendorPaymentInput
	if err := h.decode(r, &input); err != nil {
		writeServiceError(w, r, err)
		return
	}
	if _, err := h.getVendorByID(r.Context(), *input.VendorID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	now := time.Now().UTC()
	if input.PaymentDate == nil {
		input.PaymentDate = &models.FlexTime{Time: now}
	}
	cols, vals := input.Fields()
	cols = append(cols, "payment_number", "created_at")
	vals = append(vals, service.DocumentNumber(service.VendorPaymentPrefix, now), now)

	var id int
	err := h.db.QueryRowContext(r.Context(),
		"INSERT INTO vendor_payments ("+strings.Join(cols, ", ")+") VALUES ("+placeholders(1, len(cols))+") RETURNING id",
		vals...).Scan(&id)
	if err != nil {
		writeServiceError(w, r, fmt.Errorf("inserting vendor payment: %w", err))
		return
	}

	p, err := h.getVendorPaymentByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// UpdateVendorPayment updates the supplied fields of a payment
// @Summary      Update vendor payment
// @Description  Only fields present in the body are changed. The vendor cannot be reassigned.
// @Tags         vendor-payments
// @Accept       json
// @Produce      json
// @Param        id       path      int                        true  "Payment ID"
// @Param        payment  body      models.VendorPaymentInput  true  "Fields to change"
// @Success      200      {object}  Response{data=models.VendorPayment}
// @Failure      404      {object}  Response{error=string}
// @Router       /api/vendor-payments/{id} [put]
func (h *Handler) UpdateVendorPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	var input models.VendorPaymentInput
	if err := h.decodePartial(r, &input); err != nil {
		writeServiceError(w, r, err)
		return
	}
	input.VendorID = nil

	if cols, vals := input.Fields(); len(cols) > 0 {
		res, err := h.db.ExecContext(r.Context(),
			fmt.Sprintf("UPDATE vendor_payments SET %s WHERE id = $%d", setClause(cols), len(cols)+1),
			append(vals, id)...)
		if err != nil {
			writeServiceError(w, r, fmt.Errorf("updating vendor payment %d: %w", id, err))
			return
		}
		if n, _ := res.RowsAffected(); n == 0 {
			writeServiceError(w, r, service.NotFound("Vendor payment"))
			return
		}
	}

	p, err := h.getVendorPaymentByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DeleteVendorPayment deletes a vendor payment
// @Summary      Delete vendor payment
// @Tags         vendor-payments
// @Produce      json
// @Param        id   path      int  true  "Payment ID"
// @Success      200  {object}  Response{data=Message}
// @Failure      404  {object}  Response{error=string}
// @Router       /api/vendor-payments/{id} [delete]
func (h *Handler) DeleteVendorPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	res, err := h.db.ExecContext(r.Context(), "DELETE FROM vendor_payments WHERE id = $1", id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeServiceError(w, r, service.NotFound("Vendor payment"))
		return
	}
	writeJSON(w, http.StatusOK, Message{Message: "Vendor payment deleted successfully"})
}
