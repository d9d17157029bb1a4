package devserver

import (
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/labstock-id/labstock/internal/models"
)

// validateItem mirrors the client-side rules so direct API consumers get
// the same contract.
func validateItem(in models.ItemInput) []FieldError {
	var errs []FieldError
	switch {
	case strings.TrimSpace(in.Name) == "":
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	case utf8.RuneCountInString(in.Name) > 100:
		errs = append(errs, FieldError{Field: "name", Message: "name must be at most 100 characters"})
	}
	if !models.ValidCategory(in.Category) {
		errs = append(errs, FieldError{Field: "category", Message: "unknown category"})
	}
	if in.Quantity < 0 {
		errs = append(errs, FieldError{Field: "quantity", Message: "quantity cannot be negative"})
	}
	if utf8.RuneCountInString(in.Description) > 500 {
		errs = append(errs, FieldError{Field: "description", Message: "description must be at most 500 characters"})
	}
	return errs
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	items := s.items.ListByUser(userID(r))

	// ?envelope=1 wraps the list the way some backend builds do.
	if r.URL.Query().Get("envelope") != "" {
		writeJSON(w, http.StatusOK, map[string]any{"data": items})
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var in models.ItemInput
	if err := readJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	if errs := validateItem(in); len(errs) > 0 {
		writeFieldErrors(w, "validation failed", errs)
		return
	}

	item := s.items.Create(userID(r), in)
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	item, err := s.items.Get(userID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var in models.ItemInput
	if err := readJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	if errs := validateItem(in); len(errs) > 0 {
		writeFieldErrors(w, "validation failed", errs)
		return
	}

	item, err := s.items.Update(userID(r), chi.URLParam(r, "id"), in)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "item not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "could not update item")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := s.items.Delete(userID(r), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "item not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "could not delete item")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
