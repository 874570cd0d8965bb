package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bimmills/portal/models"
	"github.com/bimmills/portal/service"
)

const vendorSelectQuery = `SELECT id, name, company_name, contact_person, email, phone, address, vendor_type,
		gstin, pan, bank_account, bank_name, ifsc_code, notes, created_at
		FROM vendors`

func scanVendor(scanner interface{ Scan(...any) error }) (models.Vendor, error) {
	var v models.Vendor
	err := scanner.Scan(&v.ID, &v.Name, &v.CompanyName, &v.ContactPerson, &v.Email, &v.Phone, &v.Address,
		&v.VendorType, &v.GSTIN, &v.PAN, &v.BankAccount, &v.BankName, &v.IFSCCode, &v.Notes, &v.CreatedAt)
	return v, err
}

func (h *Handler) getVendorByID(ctx context.Context, id int) (models.Vendor, error) {
	v, err := scanVendor(h.db.QueryRowContext(ctx, vendorSelectQuery+" WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return v, service.NotFound("Vendor")
	}
	return v, err
}

// placeholders renders "$from, $from+1, ..." for n values.
func placeholders(from, n int) string {
	p := make([]string, n)
	for i := range p {
		p[i] = fmt.Sprintf("$%d", from+i)
	}
	return strings.Join(p, ", ")
}

// setClause renders "a = $1, b = $2" for cols.
func setClause(cols []string) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprintf("%s = $%d", c, i+1)
	}
	return strings.Join(parts, ", ")
}

// ListVendors lists vendors
// @Summary      List vendors
// @Tags         vendors
// @Produce      json
// @Param        skip   query     int  false  "Offset"  default(0)
// @Param        limit  query     int  false  "Page size"  default(100)
// @Success      200    {object}  Response{data=[]models.Vendor}
// @Router       /api/vendors [get]
func (h *Handler) ListVendors(w http.ResponseWriter, r *http.Request) {
	skip, limit := paging(r, 100)
	rows, err := h.db.QueryContext(r.Context(), vendorSelectQuery+" ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2", limit, skip)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	defer rows.Close()

	vendors := []models.Vendor{}
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		vendors = append(vendors, v)
	}
	writeJSON(w, http.StatusOK, vendors)
}

// GetVendor retrieves a single vendor by ID
// @Summary      Get vendor
// @Tags         vendors
// @Produce      json
// @Param        id   path      int  true  "Vendor ID"
// @Success      200  {object}  Response{data=models.Vendor}
// @Failure      404  {object}  Response{error=string}
// @Router       /api/vendors/{id} [get]
func (h *Handler) GetVendor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	v, err := h.getVendorByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// CreateVendor creates a new vendor
// @Summary      Create vendor
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        vendor  body      models.VendorInput  true  "Vendor details"
// @Success      200     {object}  Response{data=models.Vendor}
// @Failure      400     {object}  Response{error=string}
// @Router       /api/vendors [post]
func (h *Handler) CreateVendor(w http.ResponseWriter, r *http.Request) {
	var input models.VendorInput
	if err := h.decode(r, &input); err != nil {
		writeServiceError(w, r, err)
		return
	}

	cols, vals := input.Fields()
	var id int
	err := h.db.QueryRowContext(r.Context(),
		"INSERT INTO vendors ("+strings.Join(cols, ", ")+") VALUES ("+placeholders(1, len(cols))+") RETURNING id",
		vals...).Scan(&id)
	if err != nil {
		writeServiceError(w, r, fmt.Errorf("inserting vendor: %w", err))
		return
	}

	v, err := h.getVendorByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// UpdateVendor updates the supplied fields of a vendor
// @Summary      Update vendor
// @Description  Only fields present in the body are changed.
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        id      path      int                 true  "Vendor ID"
// @Param        vendor  body      models.VendorInput  true  "Fields to change"
// @Success      200     {object}  Response{data=models.Vendor}
// @Failure      404     {object}  Response{error=string}
// @Router       /api/vendors/{id} [put]
func (h *Handler) UpdateVendor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	var input models.VendorInput
	if err := h.decodePartial(r, &input); err != nil {
		writeServiceError(w, r, err)
		return
	}
	if input.Name != nil && *input.Name == "" {
		writeServiceError(w, r, service.Invalid("name must not be empty"))
		return
	}

	if cols, vals := input.Fields(); len(cols) > 0 {
		res, err := h.db.ExecContext(r.Context(),
			fmt.Sprintf("UPDATE vendors SET %s WHERE id = $%d", setClause(cols), len(cols)+1),
			append(vals, id)...)
		if err != nil {
			writeServiceError(w, r, fmt.Errorf("updating vendor %d: %w", id, err))
			return
		}
		if n, _ := res.RowsAffected(); n == 0 {
			writeServiceError(w, r, service.NotFound("Vendor"))
			return
		}
	}

	v, err := h.getVendorByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// DeleteVendor deletes a vendor
// @Summary      Delete vendor
// @Description  Vendors that still have payments cannot be deleted.
// @Tags         vendors
// @Produce      json
// @Param        id   path      int  true  "Vendor ID"
// @Success      200  {object}  Response{data=Message}
// @Failure      400  {object}  Response{error=string}
// @Failure      404  {object}  Response{error=string}
// @Router       /api/vendors/{id} [delete]
func (h *Handler) DeleteVendor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if _, err := h.getVendorByID(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	var payments int
	if err := h.db.QueryRowContext(r.Context(), "SELECT COUNT(*) FROM vendor_payments WHERE vendor_id = $1", id).Scan(&payments); err != nil {
		writeServiceError(w, r, err)
		return
	}
	if payments > 0 {
		writeServiceError(w, r, service.Invalid(fmt.Sprintf("vendor has %d payment(s); delete them first", payments)))
		return
	}

	res, err := h.db.ExecContext(r.Context(), "DELETE FROM vendors WHERE id = $1", id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeServiceError(w, r, service.NotFound("Vendor"))
		return
	}
	writeJSON(w, http.StatusOK, Message{Message: "Vendor deleted successfully"})
}
