package models

import "time"

// Vendor is a supplier the business pays.
type Vendor struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	CompanyName   *string   `json:"company_name"`
	ContactPerson *string   `json:"contact_person"`
	Email         *string   `json:"email"`
	Phone         *string   `json:"phone"`
	Address       *string   `json:"address"`
	VendorType    *string   `json:"vendor_type"`
	GSTIN         *string   `json:"gstin"`
	PAN           *string   `json:"pan"`
	BankAccount   *string   `json:"bank_account"`
	BankName      *string   `json:"bank_name"`
	IFSCCode      *string   `json:"ifsc_code"`
	Notes         *string   `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
}

// VendorInput is used for creating vendors and for partial updates: on update
// only non-nil fields are written.
type VendorInput struct {
	Name          *string `json:"name"`
	CompanyName   *string `json:"company_name"`
	ContactPerson *string `json:"contact_person"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	VendorType    *string `json:"vendor_type"`
	GSTIN         *string `json:"gstin"`
	PAN           *string `json:"pan"`
	BankAccount   *string `json:"bank_account"`
	BankName      *string `json:"bank_name"`
	IFSCCode      *string `json:"ifsc_code"`
	Notes         *string `json:"notes"`
}

// Validate checks a create payload.
func (v *VendorInput) Validate() string {
	if v.Name == nil || *v.Name == "" {
		return "name is required"
	}
	return ""
}

// Fields returns the supplied columns and values in a stable order.
func (v *VendorInput) Fields() ([]string, []any) {
	var cols []string
	var vals []any
	add := func(col string, val *string) {
		if val != nil {
			cols = append(cols, col)
			vals = append(vals, *val)
		}
	}
	add("name", v.Name)
	add("company_name", v.CompanyName)
	add("contact_person", v.ContactPerson)
	add("email", v.Email)
	add("phone", v.Phone)
	add("address", v.Address)
	add("vendor_type", v.VendorType)
	add("gstin", v.GSTIN)
	add("pan", v.PAN)
	add("bank_account", v.BankAccount)
	add("bank_name", v.BankName)
	add("ifsc_code", v.IFSCCode)
	add("notes", v.Notes)
	return cols, vals
}
