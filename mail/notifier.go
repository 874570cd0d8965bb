package mail

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bimmills/portal/config"
	"github.com/bimmills/portal/models"
)

const (
	subjectEnquiryAck   = "✅ Enquiry Submitted Successfully | %s"
	subjectEnquiryAdmin = "📩 New Enquiry Received | %s"
	subjectOrderPlaced  = "✅ Order Received Successfully | %s"
	subjectOrderCancel  = "✅ Order Cancelled Successfully | %s"
)

// Notifier renders customer and staff emails and hands them to a Dispatcher.
type Notifier struct {
	d             *Dispatcher
	company       string
	adminEmail    string
	websiteDomain string
}

func NewNotifier(d *Dispatcher, cfg config.MailConfig) *Notifier {
	return &Notifier{
		d:             d,
		company:       cfg.FromName,
		adminEmail:    cfg.AdminEmail,
		websiteDomain: strings.TrimRight(cfg.WebsiteDomain, "/"),
	}
}

func (n *Notifier) subject(format string) string {
	return fmt.Sprintf(format, n.company)
}

// OrderPlaced queues the order confirmation for the customer.
func (n *Notifier) OrderPlaced(o models.Order) {
	body, err := render("order_placed.html", orderView{
		Company:   n.company,
		Name:      orEmpty(o.UserName, "Customer"),
		OrderID:   o.ID,
		Product:   orEmpty(o.ProductName, "-"),
		Quantity:  orEmpty(o.Quantity, "-"),
		Phone:     orEmpty(o.UserPhone, "-"),
		Address:   orEmpty(o.UserAddress, "-"),
		Amount:    formatRupees(o.AmountOrZero()),
		CancelURL: n.websiteDomain + "/cancel-order",
	})
	if err != nil {
		slog.Error("failed to render order confirmation", "order_id", o.ID, "error", err)
		return
	}
	n.d.Submit(Message{To: o.Email(), Subject: n.subject(subjectOrderPlaced), Body: body})
}

// OrderCancelled queues the cancellation confirmation for the customer.
func (n *Notifier) OrderCancelled(o models.Order) {
	body, err := render("order_cancelled.html", orderView{
		Company: n.company,
		Name:    orEmpty(o.UserName, "Customer"),
		OrderID: o.ID,
		Product: orEmpty(o.ProductName, "-"),
		Amount:  formatRupees(o.AmountOrZero()),
	})
	if err != nil {
		slog.Error("failed to render cancellation", "order_id", o.ID, "error", err)
		return
	}
	n.d.Submit(Message{To: o.Email(), Subject: n.subject(subjectOrderCancel), Body: body})
}

// EnquiryReceived queues an acknowledgement to the sender and, when an admin
// address is configured, a notice to staff.
func (n *Notifier) EnquiryReceived(e models.Enquiry) {
	view := enquiryView{Company: n.company, Name: e.Name, Enquiry: e}

	body, err := render("enquiry_ack.html", view)
	if err != nil {
		slog.Error("failed to render enquiry acknowledgement", "enquiry_id", e.ID, "error", err)
	} else {
		n.d.Submit(Message{To: e.Email, Subject: n.subject(subjectEnquiryAck), Body: body})
	}

	if n.adminEmail == "" {
		slog.Warn("mail.admin_email not set, skipping enquiry notice", "enquiry_id", e.ID)
		return
	}
	body, err = render("enquiry_admin.html", view)
	if err != nil {
		slog.Error("failed to render enquiry notice", "enquiry_id", e.ID, "error", err)
		return
	}
	n.d.Submit(Message{To: n.adminEmail, Subject: n.subject(subjectEnquiryAdmin), Body: body})
}

// SendCustom delivers an admin-authored HTML email immediately.
func (n *Notifier) SendCustom(ctx context.Context, to, subject, body string) error {
	return n.d.Send(ctx, Message{To: to, Subject: subject, Body: body})
}
