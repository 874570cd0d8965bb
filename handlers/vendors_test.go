package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/bimmills/portal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVendorCRUD(t *testing.T) {
	s := newTestServer(t, false)

	code, env := s.do(http.MethodPost, "/api/vendors", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "name is required", env.Error)

	code, env = s.do(http.MethodPost, "/api/vendors", map[string]any{"name": "Sri Yarns", "gstin": "33ABCDE1234F1Z5"})
	require.Equal(t, http.StatusOK, code, env.Error)
	v := decode[models.Vendor](t, env)
	assert.Equal(t, "33ABCDE1234F1Z5", *v.GSTIN)

	path := fmt.Sprintf("/api/vendors/%d", v.ID)
	code, env = s.do(http.MethodPut, path, map[string]any{"phone": "0422-123456"})
	require.Equal(t, http.StatusOK, code, env.Error)
	updated := decode[models.Vendor](t, env)
	assert.Equal(t, "Sri Yarns", updated.Name)
	assert.Equal(t, "0422-123456", *updated.Phone)
	assert.Equal(t, "33ABCDE1234F1Z5", *updated.GSTIN)

	code, _ = s.do(http.MethodPut, "/api/vendors/999", map[string]any{"phone": "1"})
	assert.Equal(t, http.StatusNotFound, code)

	code, env = s.do(http.MethodGet, "/api/vendors", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]models.Vendor](t, env), 1)

	code, env = s.do(http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Vendor deleted successfully", decode[Message](t, env).Message)

	code, env = s.do(http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Vendor not found", env.Error)
}

func TestVendorPayments(t *testing.T) {
	s := newTestServer(t, false)

	_, env := s.do(http.MethodPost, "/api/vendors", map[string]any{"name": "Loom Works", "company_name": "Loom Works Pvt Ltd"})
	vendor := decode[models.Vendor](t, env)

	code, env := s.do(http.MethodPost, "/api/vendor-payments", map[string]any{"vendor_id": 999, "amount": 10})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Vendor not found", env.Error)

	code, env = s.do(http.MethodPost, "/api/vendor-payments", map[string]any{"vendor_id": vendor.ID})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "amount is required", env.Error)

	code, env = s.do(http.MethodPost, "/api/vendor-payments", map[string]any{"vendor_id": vendor.ID, "amount": 5000, "description": "yarn"})
	require.Equal(t, http.StatusOK, code, env.Error)
	first := decode[models.VendorPayment](t, env)
	assert.Regexp(t, `^VP-\d{8}-[0-9A-F]{8}$`, first.PaymentNumber)
	assert.Equal(t, "Pending", first.Status)
	require.NotNil(t, first.Vendor)
	assert.Equal(t, "Loom Works", first.Vendor.Name)
	assert.Equal(t, "Loom Works Pvt Ltd", *first.Vendor.CompanyName)

	code, env = s.do(http.MethodPost, "/api/vendor-payments", map[string]any{
		"vendor_id": vendor.ID, "amount": 700, "status": "Paid", "payment_date": "2020-01-15",
	})
	require.Equal(t, http.StatusOK, code, env.Error)
	second := decode[models.VendorPayment](t, env)
	assert.True(t, time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC).Equal(second.PaymentDate))
	assert.NotEqual(t, first.PaymentNumber, second.PaymentNumber)

	code, env = s.do(http.MethodGet, "/api/vendor-payments?status=Paid", nil)
	require.Equal(t, http.StatusOK, code)
	paid := decode[[]models.VendorPayment](t, env)
	require.Len(t, paid, 1)
	assert.Equal(t, second.ID, paid[0].ID)

	code, env = s.do(http.MethodGet, fmt.Sprintf("/api/vendor-payments/vendor/%d", vendor.ID), nil)
	require.Equal(t, http.StatusOK, code)
	byVendor := decode[[]models.VendorPayment](t, env)
	require.Len(t, byVendor, 2)
	assert.Equal(t, first.ID, byVendor[0].ID, "latest payment date first")

	code, env = s.do(http.MethodPut, fmt.Sprintf("/api/vendor-payments/%d", first.ID), map[string]any{"status": "Paid", "vendor_id": 999})
	require.Equal(t, http.StatusOK, code, env.Error)
	updated := decode[models.VendorPayment](t, env)
	assert.Equal(t, "Paid", updated.Status)
	assert.Equal(t, vendor.ID, updated.VendorID)
	assert.Equal(t, "yarn", *updated.Description)

	code, env = s.do(http.MethodDelete, fmt.Sprintf("/api/vendors/%d", vendor.ID), nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Error, "payment")

	code, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/vendor-payments/%d", first.ID), nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = s.do(http.MethodGet, fmt.Sprintf("/api/vendor-payments/%d", first.ID), nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/vendor-payments/%d", first.ID), nil)
	assert.Equal(t, http.StatusNotFound, code)
}
