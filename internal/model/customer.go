package model

import "encoding/json"

// Customer represents a patron of the restaurant as stored in the
// `customers` table.  A zero ID means the record has not been persisted
// yet; the repository fills it in on the first save.
//
// Fields:
//  ID        – primary key identifier (zero until saved).
//  FirstName – given name.
//  LastName  – family name.
//  Phone     – contact number, nil when unknown.
//  Notes     – free text kept by the staff, never nil (empty when absent).
type Customer struct {
	ID        uint64  `json:"id"`         // customers.id
	FirstName string  `json:"first_name"` // customers.first_name
	LastName  string  `json:"last_name"`  // customers.last_name
	Phone     *string `json:"phone"`      // customers.phone (nullable)
	Notes     string  `json:"notes"`      // customers.notes
}

// CustomerFields holds raw values received for a new or edited customer.
// Phone and Notes are pointers so that absent values can be told apart
// from empty ones.
type CustomerFields struct {
	FirstName string
	LastName  string
	Phone     *string
	Notes     *string
}

// NewCustomer builds an unsaved customer from user supplied fields.
func NewCustomer(f CustomerFields) *Customer {
	c := &Customer{}
	c.Apply(f)
	return c
}

// Apply overwrites every mutable field of c with f.  Names and phone are
// kept exactly as received; only notes are normalized.  The ID is left alone.
func (c *Customer) Apply(f CustomerFields) {
	c.FirstName = f.FirstName
	c.LastName = f.LastName
	c.Phone = f.Phone
	c.SetNotes(f.Notes)
}

// SetNotes stores v, normalizing a missing value to the empty string.
func (c *Customer) SetNotes(v *string) { c.Notes = Notes(v) }

// FullName joins first and last name with a single space.
func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// TopCustomer is a customer annotated with the number of reservations
// that ranked it in the top customers report.
type TopCustomer struct {
	Customer
	TotalReservations int `json:"total_reservations"`
}

// CustomerView is the JSON shape of a customer, including the derived
// full name.
type CustomerView struct {
	ID        uint64  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	FullName  string  `json:"full_name"`
	Phone     *string `json:"phone"`
	Notes     string  `json:"notes"`
}

// View returns c as rendered in API responses.
func (c Customer) View() CustomerView {
	return CustomerView{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		FullName:  c.FullName(),
		Phone:     c.Phone,
		Notes:     c.Notes,
	}
}

func (c Customer) MarshalJSON() ([]byte, error) { return json.Marshal(c.View()) }

func (t TopCustomer) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		CustomerView
		TotalReservations int `json:"total_reservations"`
	}{t.View(), t.TotalReservations})
}
