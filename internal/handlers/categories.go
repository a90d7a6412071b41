// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkwell/internal/catalog"
	"inkwell/internal/models"
)

// Categories holds dependencies for the category handlers.
type Categories struct {
	svc *catalog.Service
}

// NewCategories creates the category handler group.
func NewCategories(svc *catalog.Service) *Categories {
	return &Categories{svc: svc}
}

// categoryRequest is the JSON body for creating a category.
type categoryRequest struct {
	Name string `json:"name"`
}

// List returns all categories with their post counts.
//
// GET /api/categories
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.ListCategories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// Create creates a new category.
//
// POST /api/admin/categories
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, models.NewValidation("invalid request body"))
		return
	}
	if msg := validateCategoryName(req.Name); msg != "" {
		writeError(w, models.NewValidation(msg))
		return
	}

	category, err := h.svc.CreateCategory(r.Context(), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

// Delete removes a category. Posts keep existing; only the associations
// to this category are removed.
//
// DELETE /api/admin/categories/{id}
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, models.NewValidation("invalid category id"))
		return
	}

	if err := h.svc.DeleteCategory(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
