// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Post represents an article in the catalog. A post may reference at most
// one cover image by its content-addressed storage key; the key is a weak
// reference — deleting a post never deletes the underlying image.
type Post struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	CoverImageKey *string    `json:"coverImageKey,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`

	// Categories holds the resolved category set, populated by store reads.
	Categories []CategoryRef `json:"categories"`
}

// HasCover returns true if the post references a cover image.
func (p *Post) HasCover() bool {
	return p.CoverImageKey != nil && *p.CoverImageKey != ""
}

// CategoryIDs returns the ids of the post's resolved categories.
func (p *Post) CategoryIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.Categories))
	for _, c := range p.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}
