// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies catalog errors so the API boundary can map each to
// an HTTP status without string matching. Kinds survive wrapping: use
// KindOf to classify any error in a chain.
type ErrorKind string

const (
	// KindValidation marks malformed or out-of-bounds input (4xx).
	KindValidation ErrorKind = "validation"

	// KindNotFound marks a referenced entity that does not exist (4xx).
	KindNotFound ErrorKind = "not_found"

	// KindInvalidReference marks a category id in a post mutation that
	// references a nonexistent category (4xx).
	KindInvalidReference ErrorKind = "invalid_reference"

	// KindUnauthorized marks a missing, malformed, or rejected credential (401).
	KindUnauthorized ErrorKind = "unauthorized"

	// KindStorageUnavailable marks a transient object storage failure (5xx).
	KindStorageUnavailable ErrorKind = "storage_unavailable"

	// KindDatabaseUnavailable marks a transient database failure (5xx).
	KindDatabaseUnavailable ErrorKind = "database_unavailable"
)

// Error is the typed application error carried from stores and services up
// to the API boundary. Msg is safe to show to callers; Err holds the
// underlying cause for logging.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error

	// Resource names the entity a not-found error refers to ("post",
	// "category"), letting callers translate the error without parsing Msg.
	Resource string
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidation returns a validation error with a caller-facing message.
func NewValidation(msg string) *Error {
	return &Error{Kind: KindValidation, Msg: msg}
}

// NewNotFound returns a not-found error for the named resource.
func NewNotFound(resource string, id any) *Error {
	return &Error{
		Kind:     KindNotFound,
		Msg:      fmt.Sprintf("%s %v not found", resource, id),
		Resource: resource,
	}
}

// NewInvalidReference returns an error for a post mutation referencing a
// category that does not exist. The offending id is part of the message.
func NewInvalidReference(categoryID any) *Error {
	return &Error{Kind: KindInvalidReference, Msg: fmt.Sprintf("category %v does not exist", categoryID)}
}

// NewUnauthorized returns an authentication failure error.
func NewUnauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Msg: msg}
}

// NewStorageUnavailable wraps a transient object storage failure.
func NewStorageUnavailable(err error) *Error {
	return &Error{Kind: KindStorageUnavailable, Msg: "object storage unavailable", Err: err}
}

// NewDatabaseUnavailable wraps a transient database failure.
func NewDatabaseUnavailable(err error) *Error {
	return &Error{Kind: KindDatabaseUnavailable, Msg: "database unavailable", Err: err}
}

// AsError returns the typed *Error in err's chain, or nil.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// KindOf returns the kind of err, or an empty kind for untyped errors.
func KindOf(err error) ErrorKind {
	if e := AsError(err); e != nil {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
