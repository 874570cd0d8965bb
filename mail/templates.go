package mail

import (
	"bytes"
	"embed"
	"html/template"
	"strings"

	"github.com/bimmills/portal/models"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type enquiryView struct {
	Company string
	Name    string
	Enquiry models.Enquiry
}

type orderView struct {
	Company   string
	Name      string
	OrderID   int
	Product   string
	Quantity  string
	Phone     string
	Address   string
	Amount    string
	CancelURL string
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// formatRupees renders an amount as ₹1,234.50.
func formatRupees(amount float64) string {
	s := decimal.NewFromFloat(amount).StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return "₹" + sign + b.String() + "." + frac
}

func orEmpty(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
