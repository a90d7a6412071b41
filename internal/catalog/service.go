// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog implements the service layer over the post and category
// repositories. It owns cross-cutting policy: input validation, cover
// image key shape checks, error classification, and read caching. Image
// bytes never pass through here — callers upload first and hand over the
// resulting key.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/google/uuid"

	"inkwell/internal/blobstore"
	"inkwell/internal/cache"
	"inkwell/internal/models"
)

// PostRepository is the post half of the catalog repository.
// *store.PostStore satisfies it.
type PostRepository interface {
	Create(title, content string, coverImageKey *string, categoryIDs []uuid.UUID) (*models.Post, error)
	Update(id uuid.UUID, title, content string, coverImageKey *string, categoryIDs []uuid.UUID) (*models.Post, error)
	Delete(id uuid.UUID) error
	FindByID(id uuid.UUID) (*models.Post, error)
	List() ([]models.Post, error)
}

// CategoryRepository is the category half of the catalog repository.
// *store.CategoryStore satisfies it.
type CategoryRepository interface {
	Create(name string) (*models.Category, error)
	Delete(id uuid.UUID) error
	List() ([]models.Category, error)
}

// Service orchestrates catalog mutations and reads.
type Service struct {
	posts      PostRepository
	categories CategoryRepository
	cache      *cache.CatalogCache // nil disables read caching
}

// NewService creates the catalog service. The cache may be nil.
func NewService(posts PostRepository, categories CategoryRepository, cc *cache.CatalogCache) *Service {
	return &Service{posts: posts, categories: categories, cache: cc}
}

// PostInput carries the validated fields for a post create or update.
type PostInput struct {
	Title         string
	Content       string
	CoverImageKey *string
	CategoryIDs   []uuid.UUID
}

// CreatePost validates the input and creates the post with its category
// set in one transaction. Not idempotent: callers must not blindly retry
// after a timeout of unknown outcome.
func (s *Service) CreatePost(ctx context.Context, in PostInput) (*models.Post, error) {
	if err := validatePostInput(in); err != nil {
		return nil, err
	}

	post, err := s.posts.Create(in.Title, in.Content, in.CoverImageKey, in.CategoryIDs)
	if err != nil {
		return nil, classify(err)
	}

	s.invalidate(ctx)
	return post, nil
}

// UpdatePost validates the input and atomically replaces the post's fields
// and its entire category association set.
func (s *Service) UpdatePost(ctx context.Context, id uuid.UUID, in PostInput) (*models.Post, error) {
	if err := validatePostInput(in); err != nil {
		return nil, err
	}

	post, err := s.posts.Update(id, in.Title, in.Content, in.CoverImageKey, in.CategoryIDs)
	if err != nil {
		return nil, classify(err)
	}

	s.invalidate(ctx)
	return post, nil
}

// DeletePost removes a post and its association rows.
func (s *Service) DeletePost(ctx context.Context, id uuid.UUID) error {
	if err := s.posts.Delete(id); err != nil {
		return classify(err)
	}
	s.invalidate(ctx)
	return nil
}

// GetPost returns a post with its resolved category list.
func (s *Service) GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	if payload, ok := s.cacheGet(ctx, cache.PostKey(id.String())); ok {
		var post models.Post
		if err := json.Unmarshal(payload, &post); err == nil {
			return &post, nil
		}
	}

	post, err := s.posts.FindByID(id)
	if err != nil {
		return nil, classify(err)
	}
	if post == nil {
		return nil, models.NewNotFound("post", id)
	}

	s.cacheSet(ctx, cache.PostKey(id.String()), post)
	return post, nil
}

// ListPosts returns all posts newest-first.
func (s *Service) ListPosts(ctx context.Context) ([]models.Post, error) {
	if payload, ok := s.cacheGet(ctx, cache.PostsKey()); ok {
		var posts []models.Post
		if err := json.Unmarshal(payload, &posts); err == nil {
			return posts, nil
		}
	}

	posts, err := s.posts.List()
	if err != nil {
		return nil, classify(err)
	}

	s.cacheSet(ctx, cache.PostsKey(), posts)
	return posts, nil
}

// CreateCategory validates the name and creates the category.
func (s *Service) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	if n := utf8.RuneCountInString(name); n < models.CategoryNameMinLen || n > models.CategoryNameMaxLen {
		return nil, models.NewValidation(fmt.Sprintf(
			"category name must be %d to %d characters",
			models.CategoryNameMinLen, models.CategoryNameMaxLen,
		))
	}

	category, err := s.categories.Create(name)
	if err != nil {
		return nil, classify(err)
	}

	s.invalidate(ctx)
	return category, nil
}

// DeleteCategory removes a category, cascading its association rows while
// leaving the referencing posts in place.
func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.categories.Delete(id); err != nil {
		return classify(err)
	}
	s.invalidate(ctx)
	return nil
}

// ListCategories returns all categories with post counts.
func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	if payload, ok := s.cacheGet(ctx, cache.CategoriesKey()); ok {
		var categories []models.Category
		if err := json.Unmarshal(payload, &categories); err == nil {
			return categories, nil
		}
	}

	categories, err := s.categories.List()
	if err != nil {
		return nil, classify(err)
	}

	s.cacheSet(ctx, cache.CategoriesKey(), categories)
	return categories, nil
}

// validatePostInput enforces the post field contracts before any
// repository call. The cover key check is shape-only: it rejects keys
// that cannot have been produced by the blob store without a network
// round-trip per write.
func validatePostInput(in PostInput) error {
	if in.Title == "" {
		return models.NewValidation("title is required")
	}
	if in.Content == "" {
		return models.NewValidation("content is required")
	}
	if in.CoverImageKey != nil && *in.CoverImageKey != "" && !blobstore.ValidKey(*in.CoverImageKey) {
		return models.NewValidation("coverImageKey is not a valid image store key")
	}
	return nil
}

// classify passes typed catalog errors through unchanged and wraps
// everything else as a transient database failure, preserving the cause.
func classify(err error) error {
	if models.KindOf(err) != "" {
		return err
	}
	return models.NewDatabaseUnavailable(err)
}

func (s *Service) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.Get(ctx, key)
}

func (s *Service) cacheSet(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(v)
	if err != nil {
		slog.Warn("catalog cache marshal error", "key", key, "error", err)
		return
	}
	s.cache.Set(ctx, key, payload)
}

// invalidate clears all cached catalog reads after a mutation.
func (s *Service) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.InvalidateAll(ctx)
	}
}
