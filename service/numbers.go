package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Document number prefixes.
const (
	InvoicePrefix       = "INV"
	VendorPaymentPrefix = "VP"
)

// TransactionID builds the sales-ledger id for an order created at now.
func TransactionID(orderID int, now time.Time) string {
	return fmt.Sprintf("TXN-%d-%d", orderID, now.UnixMicro())
}

// DocumentNumber builds PREFIX-YYYYMMDD-XXXXXXXX where the suffix is the
// first eight hex digits of a random UUID, upper-cased. Uniqueness is
// enforced by the database, not here.
func DocumentNumber(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("20060102"), strings.ToUpper(uuid.NewString()[:8]))
}
