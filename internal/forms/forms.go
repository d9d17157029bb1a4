// Package forms validates user input before it reaches the network.
// Validation runs on submit, produces at most one message per field, and
// keeps the product's original (Indonesian) user-facing messages.
package forms

import (
	"net/mail"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/labstock-id/labstock/internal/models"
)

// Errors maps a field name to the first failing rule's message. An empty
// map means the form is valid.
type Errors map[string]string

// Valid reports whether no field failed.
func (e Errors) Valid() bool {
	return len(e) == 0
}

// LoginForm carries the login fields as typed by the user.
type LoginForm struct {
	Email    string
	Password string
}

func (f LoginForm) Validate() Errors {
	errs := Errors{}
	if !validEmail(f.Email) {
		errs["email"] = "Format email tidak valid"
	}
	if utf8.RuneCountInString(f.Password) < 6 {
		errs["password"] = "Password minimal 6 karakter"
	}
	return errs
}

// RegisterForm carries the registration fields.
type RegisterForm struct {
	Name     string
	Email    string
	Password string
}

func (f RegisterForm) Validate() Errors {
	errs := Errors{}
	switch n := utf8.RuneCountInString(f.Name); {
	case n < 2:
		errs["name"] = "Nama minimal 2 karakter"
	case n > 100:
		errs["name"] = "Nama maksimal 100 karakter"
	}
	if !validEmail(f.Email) {
		errs["email"] = "Format email tidak valid"
	}
	if utf8.RuneCountInString(f.Password) < 6 {
		errs["password"] = "Password minimal 6 karakter"
	}
	return errs
}

// ItemForm carries the inventory item fields as typed, quantity included:
// it stays a string until validation has passed.
type ItemForm struct {
	Name        string
	Category    string
	Quantity    string
	Description string
}

func (f ItemForm) Validate() Errors {
	errs := Errors{}

	name := strings.TrimSpace(f.Name)
	switch {
	case name == "":
		errs["name"] = "Nama item wajib diisi"
	case utf8.RuneCountInString(f.Name) > 100:
		errs["name"] = "Nama maksimal 100 karakter"
	}

	switch {
	case f.Category == "":
		errs["category"] = "Kategori wajib dipilih"
	case !models.ValidCategory(f.Category):
		errs["category"] = "Kategori tidak valid"
	}

	if f.Quantity == "" {
		errs["quantity"] = "Jumlah wajib diisi"
	} else if qty, err := strconv.Atoi(f.Quantity); err != nil || qty < 0 {
		errs["quantity"] = "Jumlah harus berupa angka positif"
	}

	if f.Description != "" && utf8.RuneCountInString(f.Description) > 500 {
		errs["description"] = "Deskripsi maksimal 500 karakter"
	}

	return errs
}

// Item converts a validated form into the request payload. Call only
// after Validate reported no errors.
func (f ItemForm) Item() models.ItemInput {
	qty, _ := strconv.Atoi(f.Quantity)
	return models.ItemInput{
		Name:        strings.TrimSpace(f.Name),
		Category:    f.Category,
		Quantity:    qty,
		Description: strings.TrimSpace(f.Description),
	}
}

func validEmail(addr string) bool {
	parsed, err := mail.ParseAddress(addr)
	return err == nil && parsed.Address == addr
}
