package handlers

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/bimmills/portal/auth"
	"github.com/bimmills/portal/config"
	"github.com/bimmills/portal/models"
	"github.com/bimmills/portal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Mailer is the part of the notification layer the handlers use directly.
type Mailer interface {
	EnquiryReceived(e models.Enquiry)
	SendCustom(ctx context.Context, to, subject, body string) error
}

// Deps are the collaborators a Handler is built from.
type Deps struct {
	DB           *sql.DB
	Orders       *service.Orders
	Invoices     *service.Invoices
	Sales        *service.Sales
	Mailer       Mailer
	Tokens       *auth.Tokens
	EnforceAdmin bool
}

// Handler serves the HTTP API.
type Handler struct {
	db           *sql.DB
	orders       *service.Orders
	invoices     *service.Invoices
	sales        *service.Sales
	mailer       Mailer
	tokens       *auth.Tokens
	enforceAdmin bool
	validate     *validator.Validate
}

func New(d Deps) *Handler {
	return &Handler{
		db:           d.DB,
		orders:       d.Orders,
		invoices:     d.Invoices,
		sales:        d.Sales,
		mailer:       d.Mailer,
		tokens:       d.Tokens,
		enforceAdmin: d.EnforceAdmin,
		validate:     newValidator(),
	}
}

// Router builds the chi router with all API routes mounted.
func (h *Handler) Router(cfg config.ServerConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", h.Root)

	r.Route("/api", func(r chi.Router) {
		// Orders
		r.Get("/orders", h.ListOrders)
		r.Post("/orders", h.CreateOrder)
		r.Get("/orders/{id}", h.GetOrder)
		r.Post("/orders/{id}/request-cancellation", h.RequestCancellation)
		r.Delete("/orders/{id}", h.DeleteOrder)

		// Invoices
		r.Post("/invoices/generate", h.GenerateInvoice)
		r.Get("/invoices", h.ListInvoices)
		r.Get("/invoices/{id}", h.GetInvoice)
		r.Get("/invoices/order/{order_id}", h.ListInvoicesByOrder)
		r.Put("/invoices/{id}/status", h.UpdateInvoiceStatus)

		// Sales
		r.Get("/sales", h.ListSales)
		r.Get("/sales/analytics", h.GetAnalytics)

		// Vendors
		r.Get("/vendors", h.ListVendors)
		r.Post("/vendors", h.CreateVendor)
		r.Get("/vendors/{id}", h.GetVendor)
		r.Put("/vendors/{id}", h.UpdateVendor)
		r.Delete("/vendors/{id}", h.DeleteVendor)

		// Vendor payments
		r.Get("/vendor-payments", h.ListVendorPayments)
		r.Post("/vendor-payments", h.CreateVendorPayment)
		r.Get("/vendor-payments/{id}", h.GetVendorPayment)
		r.Put("/vendor-payments/{id}", h.UpdateVendorPayment)
		r.Delete("/vendor-payments/{id}", h.DeleteVendorPayment)
		r.Get("/vendor-payments/vendor/{vendor_id}", h.ListPaymentsByVendor)

		// Shop
		r.Get("/readymade-products", h.ListShopItems)
		r.Get("/readymade-products/cat/all", h.ListCatalogue)
		r.Get("/readymade-products/{id}", h.GetShopItem)
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/register", h.RegisterUser)
		r.Post("/login", h.LoginUser)
		r.Post("/enquiry", h.SubmitEnquiry)
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.RegisterAdmin)
		r.Post("/login", h.LoginAdmin)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(h.RequireAdmin)

		r.Get("/enquiries", h.ListEnquiries)
		r.Delete("/enquiries/{id}", h.DeleteEnquiry)
		r.Post("/send-email", h.SendEmail)

		r.Get("/products", h.ListProducts)
		r.Post("/products", h.CreateProduct)
		r.Put("/products/{id}", h.UpdateProduct)
		r.Delete("/products/{id}", h.DeleteProduct)

		r.Get("/fabrics", h.ListFabrics)
		r.Post("/fabrics", h.CreateFabric)
		r.Put("/fabrics/{id}", h.UpdateFabric)
		r.Delete("/fabrics/{id}", h.DeleteFabric)

		r.Get("/employees", h.ListEmployees)
		r.Post("/employees", h.CreateEmployee)
		r.Put("/employees/{id}", h.UpdateEmployee)
		r.Delete("/employees/{id}", h.DeleteEmployee)

		r.Get("/billing", h.GetBilling)
	})

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// Root reports that the API is up.
// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  Response{data=Message}
// @Router       / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Message{Message: "API running"})
}
