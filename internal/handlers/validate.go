// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strings"
	"unicode/utf8"

	"inkwell/internal/models"
)

// Validation limits for post fields. Category name limits live in the
// models package because the database enforces them too.
const (
	maxTitleLen   = 300
	maxContentLen = 100_000
)

// validatePost checks post inputs and returns the first error found.
func validatePost(title, content string) string {
	if strings.TrimSpace(title) == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	if strings.TrimSpace(content) == "" {
		return "Content is required."
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return "Content is too long (max 100,000 characters)."
	}
	return ""
}

// validateCategoryName checks a category name against the length bounds.
func validateCategoryName(name string) string {
	n := utf8.RuneCountInString(name)
	if n < models.CategoryNameMinLen || n > models.CategoryNameMaxLen {
		return "Category name must be between 2 and 16 characters."
	}
	return ""
}
