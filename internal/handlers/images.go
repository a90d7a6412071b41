// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"io"
	"net/http"

	"inkwell/internal/blobstore"
	"inkwell/internal/models"
)

// maxUploadSize is the maximum allowed image upload size (10 MB).
const maxUploadSize = 10 << 20

// allowedImageTypes defines MIME types accepted for cover uploads.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Images holds dependencies for the image upload handler.
type Images struct {
	blobs *blobstore.Store
}

// NewImages creates the image handler group. blobs may be nil when object
// storage is not configured; uploads then fail with 503.
func NewImages(blobs *blobstore.Store) *Images {
	return &Images{blobs: blobs}
}

// uploadResponse is the JSON body returned after a successful upload.
type uploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// Upload accepts a multipart image upload and stores it under its
// content-derived key. Uploading the same bytes twice returns the same
// key without writing a second object.
//
// POST /api/admin/images
func (h *Images) Upload(w http.ResponseWriter, r *http.Request) {
	if h.blobs == nil {
		writeError(w, &models.Error{
			Kind: models.KindStorageUnavailable,
			Msg:  "object storage is not configured",
		})
		return
	}

	// Limit request body to maxUploadSize + some overhead for form fields.
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge,
			errorResponse{Error: "File too large. Maximum size is 10 MB."})
		return
	}

	// The original filename is irrelevant: keys derive from content.
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, models.NewValidation("missing file field"))
		return
	}
	defer file.Close()

	// Sniff the actual content type rather than trusting the client.
	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		writeError(w, models.NewValidation("unreadable upload"))
		return
	}
	contentType := http.DetectContentType(head[:n])
	if !allowedImageTypes[contentType] {
		writeError(w, models.NewValidation("unsupported file type; images only"))
		return
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		writeError(w, models.NewValidation("unreadable upload"))
		return
	}
	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, models.NewValidation("unreadable upload"))
		return
	}
	if len(data) == 0 {
		writeError(w, models.NewValidation("empty file"))
		return
	}

	key, err := h.blobs.Put(r.Context(), data, contentType)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, uploadResponse{
		Key: key,
		URL: h.blobs.PublicURL(key),
	})
}
