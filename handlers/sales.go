package handlers

import (
	"net/http"

	"github.com/bimmills/portal/models"
)

// ListSales lists the sales ledger
// @Summary      List sales
// @Description  Get every sales-ledger entry, newest first.
// @Tags         sales
// @Produce      json
// @Success      200  {object}  Response{data=[]models.Sale}
// @Router       /api/sales [get]
func (h *Handler) ListSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.sales.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sales)
}

// GetAnalytics summarizes the sales ledger
// @Summary      Sales analytics
// @Description  Total revenue, order count and revenue per weekday.
// @Tags         sales
// @Produce      json
// @Success      200  {object}  Response{data=models.Analytics}
// @Router       /api/sales/analytics [get]
func (h *Handler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	a, err := h.sales.Analytics(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

type billingData struct {
	UsageStats models.UsageStats `json:"usage_stats"`
}

// GetBilling reports processed order volume
// @Summary      Billing usage
// @Tags         admin
// @Produce      json
// @Success      200  {object}  Response{data=billingData}
// @Router       /admin/billing [get]
// @Security     BearerAuth
func (h *Handler) GetBilling(w http.ResponseWriter, r *http.Request) {
	u, err := h.sales.Usage(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, billingData{UsageStats: u})
}
