package forms_test

import (
	"strings"
	"testing"

	"github.com/labstock-id/labstock/internal/forms"
)

func TestLoginFormValidate(t *testing.T) {
	tests := []struct {
		name       string
		form       forms.LoginForm
		wantFields []string
	}{
		{
			name: "valid",
			form: forms.LoginForm{Email: "a@b.com", Password: "secret1"},
		},
		{
			name:       "invalid email",
			form:       forms.LoginForm{Email: "not-an-email", Password: "secret1"},
			wantFields: []string{"email"},
		},
		{
			name:       "short password",
			form:       forms.LoginForm{Email: "a@b.com", Password: "12345"},
			wantFields: []string{"password"},
		},
		{
			name:       "both invalid",
			form:       forms.LoginForm{Email: "", Password: ""},
			wantFields: []string{"email", "password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.form.Validate()
			assertFields(t, errs, tt.wantFields)
		})
	}
}

func TestRegisterFormValidate(t *testing.T) {
	tests := []struct {
		name       string
		form       forms.RegisterForm
		wantFields []string
	}{
		{
			name: "valid",
			form: forms.RegisterForm{Name: "Ani", Email: "ani@lab.id", Password: "secret1"},
		},
		{
			name:       "name too short",
			form:       forms.RegisterForm{Name: "A", Email: "ani@lab.id", Password: "secret1"},
			wantFields: []string{"name"},
		},
		{
			name:       "name too long",
			form:       forms.RegisterForm{Name: strings.Repeat("x", 101), Email: "ani@lab.id", Password: "secret1"},
			wantFields: []string{"name"},
		},
		{
			name:       "everything wrong",
			form:       forms.RegisterForm{Name: "", Email: "nope", Password: "123"},
			wantFields: []string{"name", "email", "password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.form.Validate()
			assertFields(t, errs, tt.wantFields)
		})
	}
}

func TestItemFormValidate(t *testing.T) {
	valid := forms.ItemForm{Name: "Beaker", Category: "Alat Gelas", Quantity: "10"}

	tests := []struct {
		name       string
		mutate     func(*forms.ItemForm)
		wantFields []string
	}{
		{
			name:   "valid",
			mutate: func(f *forms.ItemForm) {},
		},
		{
			name:       "empty name",
			mutate:     func(f *forms.ItemForm) { f.Name = "   " },
			wantFields: []string{"name"},
		},
		{
			name:       "name too long",
			mutate:     func(f *forms.ItemForm) { f.Name = strings.Repeat("x", 101) },
			wantFields: []string{"name"},
		},
		{
			name:       "missing category",
			mutate:     func(f *forms.ItemForm) { f.Category = "" },
			wantFields: []string{"category"},
		},
		{
			name:       "unknown category",
			mutate:     func(f *forms.ItemForm) { f.Category = "Perkakas" },
			wantFields: []string{"category"},
		},
		{
			name:       "missing quantity",
			mutate:     func(f *forms.ItemForm) { f.Quantity = "" },
			wantFields: []string{"quantity"},
		},
		{
			name:       "negative quantity",
			mutate:     func(f *forms.ItemForm) { f.Quantity = "-1" },
			wantFields: []string{"quantity"},
		},
		{
			name:       "non-numeric quantity",
			mutate:     func(f *forms.ItemForm) { f.Quantity = "ten" },
			wantFields: []string{"quantity"},
		},
		{
			name:       "description too long",
			mutate:     func(f *forms.ItemForm) { f.Description = strings.Repeat("x", 501) },
			wantFields: []string{"description"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := valid
			tt.mutate(&form)
			errs := form.Validate()
			assertFields(t, errs, tt.wantFields)
		})
	}
}

// Empty name reports the required-field message, not the length one:
// first failing rule per field wins.
func TestItemFormFirstRuleWins(t *testing.T) {
	form := forms.ItemForm{Name: "", Category: "Alat Gelas", Quantity: "1"}
	errs := form.Validate()
	if errs["name"] != "Nama item wajib diisi" {
		t.Fatalf("expected required-field message, got %q", errs["name"])
	}
}

func TestItemFormItem(t *testing.T) {
	form := forms.ItemForm{
		Name:        "  Beaker ",
		Category:    "Alat Gelas",
		Quantity:    "10",
		Description: " 250ml ",
	}
	in := form.Item()
	if in.Name != "Beaker" {
		t.Errorf("expected trimmed name, got %q", in.Name)
	}
	if in.Quantity != 10 {
		t.Errorf("expected quantity 10, got %d", in.Quantity)
	}
	if in.Description != "250ml" {
		t.Errorf("expected trimmed description, got %q", in.Description)
	}
}

func assertFields(t *testing.T, errs forms.Errors, want []string) {
	t.Helper()
	if len(want) == 0 {
		if !errs.Valid() {
			t.Fatalf("expected no errors, got %v", errs)
		}
		return
	}
	if len(errs) != len(want) {
		t.Fatalf("expected errors on %v, got %v", want, errs)
	}
	for _, field := range want {
		if msg, ok := errs[field]; !ok || msg == "" {
			t.Errorf("expected an error for field %q, got %v", field, errs)
		}
	}
}
