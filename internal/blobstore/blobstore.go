// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package blobstore implements a content-addressed store for cover images.
// Object keys are derived from a hash of the content, so identical bytes
// map to the same key no matter how often or under what filename they are
// uploaded, and re-uploads are free.
package blobstore

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"

	"inkwell/internal/models"
)

// KeyPrefix namespaces content-addressed keys in the bucket.
const KeyPrefix = "covers/"

// hexDigestLen is the length of the hex-encoded content hash in a key.
const hexDigestLen = 2 * md5.Size

// Backend is the object storage capability the store writes through.
// storage.Client satisfies it; tests use an in-memory fake.
type Backend interface {
	Exists(ctx context.Context, key string) (bool, error)
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	PublicURL(key string) string
}

// Store deduplicates uploads by content fingerprint.
type Store struct {
	backend Backend
}

// New creates a content-addressed store over the given backend.
func New(backend Backend) *Store {
	return &Store{backend: backend}
}

// Put stores data under its content-derived key and returns the key. If an
// object already exists at the key the upload is skipped and the existing
// key is returned, making Put idempotent and safe to retry unconditionally.
// The hash only needs to make accidental collisions negligible; the threat
// model is dedup, not adversarial collision.
func (s *Store) Put(ctx context.Context, data []byte, contentType string) (string, error) {
	key := Key(data)

	exists, err := s.backend.Exists(ctx, key)
	if err != nil {
		return "", models.NewStorageUnavailable(err)
	}
	if exists {
		return key, nil
	}

	if err := s.backend.Upload(ctx, key, contentType, bytes.NewReader(data), int64(len(data))); err != nil {
		return "", models.NewStorageUnavailable(err)
	}
	return key, nil
}

// PublicURL derives the public URL for a stored key. Pure derivation:
// existence is deferred to fetch time.
func (s *Store) PublicURL(key string) string {
	return s.backend.PublicURL(key)
}

// Key computes the content-addressed key for the given bytes.
func Key(data []byte) string {
	sum := md5.Sum(data)
	return KeyPrefix + hex.EncodeToString(sum[:])
}

// ValidKey reports whether key has the shape this store produces
// (prefix + lowercase hex digest). It is a shape check only, used to
// reject cover image keys that cannot have come from Put without a
// network round-trip.
func ValidKey(key string) bool {
	if len(key) != len(KeyPrefix)+hexDigestLen {
		return false
	}
	if key[:len(KeyPrefix)] != KeyPrefix {
		return false
	}
	for _, r := range key[len(KeyPrefix):] {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}
