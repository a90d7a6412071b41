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

// Posts holds dependencies for the post handlers.
type Posts struct {
	svc *catalog.Service
}

// NewPosts creates the post handler group.
func NewPosts(svc *catalog.Service) *Posts {
	return &Posts{svc: svc}
}

// postRequest is the JSON body for creating or updating a post.
type postRequest struct {
	Title         string      `json:"title"`
	Content       string      `json:"content"`
	CoverImageKey *string     `json:"coverImageKey"`
	CategoryIDs   []uuid.UUID `json:"categoryIds"`
}

// List returns all posts, newest first, with their categories.
//
// GET /api/posts
func (h *Posts) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.ListPosts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// Get returns a single post by ID.
//
// GET /api/posts/{id}
func (h *Posts) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, models.NewValidation("invalid post id"))
		return
	}

	post, err := h.svc.GetPost(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Create creates a new post with its category associations.
//
// POST /api/admin/posts
func (h *Posts) Create(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, models.NewValidation("invalid request body"))
		return
	}
	if msg := validatePost(req.Title, req.Content); msg != "" {
		writeError(w, models.NewValidation(msg))
		return
	}

	post, err := h.svc.CreatePost(r.Context(), catalog.PostInput{
		Title:         req.Title,
		Content:       req.Content,
		CoverImageKey: req.CoverImageKey,
		CategoryIDs:   req.CategoryIDs,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

// Update replaces a post's fields and category set.
//
// PUT /api/admin/posts/{id}
func (h *Posts) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, models.NewValidation("invalid post id"))
		return
	}

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, models.NewValidation("invalid request body"))
		return
	}
	if msg := validatePost(req.Title, req.Content); msg != "" {
		writeError(w, models.NewValidation(msg))
		return
	}

	post, err := h.svc.UpdatePost(r.Context(), id, catalog.PostInput{
		Title:         req.Title,
		Content:       req.Content,
		CoverImageKey: req.CoverImageKey,
		CategoryIDs:   req.CategoryIDs,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Delete removes a post and its category associations.
//
// DELETE /api/admin/posts/{id}
func (h *Posts) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, models.NewValidation("invalid post id"))
		return
	}

	if err := h.svc.DeletePost(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
