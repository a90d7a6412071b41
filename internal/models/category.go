// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Category name length bounds, counted in runes so multibyte names
// (e.g. Japanese) are measured in characters, not bytes.
const (
	CategoryNameMinLen = 2
	CategoryNameMaxLen = 16
)

// Category represents a post category. Names are unique across all
// categories (case-sensitive exact match).
type Category struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`

	// PostCount is populated by list queries; it is not a table column.
	PostCount int `json:"postCount"`
}

// CategoryRef is the resolved id+name pair attached to a post.
type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
