package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/bimmills/portal/models"
)

// SubmitEnquiry stores a contact-form enquiry
// @Summary      Submit enquiry
// @Description  Stores the enquiry and queues an acknowledgement to the sender and a notice to staff.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        enquiry  body      models.EnquiryInput  true  "Enquiry"
// @Success      201      {object}  Response{data=Message}
// @Failure      400      {object}  Response{error=string}
// @Router       /users/enquiry [post]
func (h *Handler) SubmitEnquiry(w http.ResponseWriter, r *http.Request) {
	var input models.EnquiryInput
	if err := h.decode(r, &input); err != nil {
		writeServiceError(w, r, err)
		return
	}

	e := models.Enquiry{
		Name:      input.Name,
		Phone:     string(input.Phone),
		Company:   input.Company,
		Email:     input.Email,
		Message:   input.Message,
		CreatedAt: time.Now().UTC(),
	}
	err := h.db.QueryRowContext(r.Context(), `INSERT INTO enquiries (name, phone, company, email, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		e.Name, e.Phone, e.Company, e.Email, e.Message, e.CreatedAt).Scan(&e.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.mailer.EnquiryReceived(e)
	writeJSON(w, http.StatusCreated, Message{Message: "Enquiry submitted successfully"})
}

// ListEnquiries lists enquiries
// @Summary      List enquiries
// @Tags         admin
// @Produce      json
// @Success      200  {object}  Response{data=[]models.Enquiry}
// @Router       /admin/enquiries [get]
// @Security     BearerAuth
func (h *Handler) ListEnquiries(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.QueryContext(r.Context(), `SELECT id, name, phone, company, email, message, created_at
		FROM enquiries ORDER BY created_at DESC, id DESC`)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	defer rows.Close()

	enquiries := []models.Enquiry{}
	for rows.Next() {
		var e models.Enquiry
		if err := rows.Scan(&e.ID, &e.Name, &e.Phone, &e.Company, &e.Email, &e.Message, &e.CreatedAt); err != nil {
			writeServiceError(w, r, err)
			return
		}
		enquiries = append(enquiries, e)
	}
	writeJSON(w, http.StatusOK, enquiries)
}

// DeleteEnquiry removes an enquiry
// @Summary      Delete enquiry
// @Tags         admin
// @Produce      json
// @Param        id   path      int  true  "Enquiry ID"
// @Success      200  {object}  Response{data=Message}
// @Failure      404  {object}  Response{error=string}
// @Router       /admin/enquiries/{id} [delete]
// @Security     BearerAuth
func (h *Handler) DeleteEnquiry(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, "enquiries", "Enquiry", "Enquiry deleted successfully")
}

// SendEmail sends an ad-hoc email from the dashboard
// @Summary      Send email
// @Description  Delivered synchronously; a delivery failure is returned as 500.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        email  body      models.EmailInput  true  "Message"
// @Success      200    {object}  Response{data=Message}
// @Failure      400    {object}  Response{error=string}
// @Failure      500    {object}  Response{error=string}
// @Router       /admin/send-email [post]
// @Security     BearerAuth
func (h *Handler) SendEmail(w http.ResponseWriter, r *http.Request) {
	var input models.EmailInput
	if err := h.decode(r, &input); err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := h.mailer.SendCustom(r.Context(), input.ToEmail, input.Subject, input.Body); err != nil {
		slog.Error("failed to send email", "to", input.ToEmail, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to send email")
		return
	}
	writeJSON(w, http.StatusOK, Message{Message: "Email sent successfully"})
}
