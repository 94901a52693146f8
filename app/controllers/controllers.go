// Package controllers holds the HTTP handlers. Controllers stay thin:
// bind, call a service, write the envelope.
package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/766ms/Glam-rent-v1/pkg/apperr"
)

// uintParam reads a positive integer route parameter.
func uintParam(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.New(apperr.Validation, "Invalid "+name)
	}
	return uint(id), nil
}
