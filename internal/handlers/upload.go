// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"catalogweb/internal/imaging"
	"catalogweb/internal/storage"
)

// maxUploadSize is the maximum accepted file size (10 MB).
const maxUploadSize = 10 << 20

// allowedUploadTypes maps accepted MIME types to the extension used in
// the object key.
var allowedUploadTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"image/svg+xml":   ".svg",
	"application/pdf": ".pdf",
}

// uploadFolders are the accepted values of the folder form field.
var uploadFolders = map[string]bool{
	"categories":     true,
	"sub-categories": true,
	"products":       true,
}

// defaultUploadFolder holds uploads sent without a folder.
const defaultUploadFolder = "uploads"

// Upload handles admin file uploads to the public bucket.
type Upload struct {
	storage ObjectStorage
	now     func() time.Time
}

// NewUpload creates the upload handler. storage may be nil, in which case
// every upload is refused with 503.
func NewUpload(storage ObjectStorage) *Upload {
	return &Upload{storage: storage, now: time.Now}
}

// sniffType detects the content type from the file bytes. SVG is
// recognised from its extension and markup since DetectContentType
// reports it as XML or text.
func sniffType(filename string, data []byte) string {
	ct := http.DetectContentType(data)
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if strings.HasSuffix(strings.ToLower(filename), ".svg") &&
		(strings.Contains(ct, "xml") || ct == "text/plain") &&
		bytes.Contains(data, []byte("<svg")) {
		return "image/svg+xml"
	}
	return ct
}

// Create stores the multipart field "file" and returns its public URL.
func (h *Upload) Create(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		writeError(w, http.StatusServiceUnavailable, "object storage is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1<<20)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "file too large (max 10 MB)")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	folder := r.FormValue("folder")
	if folder == "" {
		folder = defaultUploadFolder
	} else if !uploadFolders[folder] {
		writeError(w, http.StatusBadRequest, "folder must be categories, sub-categories or products")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		writeError(w, http.StatusRequestEntityTooLarge, "file too large (max 10 MB)")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		internalError(w, "read upload failed", err)
		return
	}
	if len(data) > maxUploadSize {
		writeError(w, http.StatusRequestEntityTooLarge, "file too large (max 10 MB)")
		return
	}
	if len(data) == 0 {
		writeError(w, http.StatusBadRequest, "file is empty")
		return
	}

	contentType := sniffType(header.Filename, data)
	if _, ok := allowedUploadTypes[contentType]; !ok {
		writeError(w, http.StatusBadRequest, "file type "+contentType+" is not allowed")
		return
	}

	if imaging.Resizable(contentType) {
		res, err := imaging.Downscale(data, contentType, imaging.MaxWidth)
		switch {
		case errors.Is(err, imaging.ErrTooManyPixels):
			writeError(w, http.StatusBadRequest, "image dimensions too large")
			return
		case err != nil:
			writeError(w, http.StatusBadRequest, "image could not be decoded")
			return
		case res.Resized:
			slog.Info("upload downscaled", "from", header.Filename, "width", res.Width, "height", res.Height)
			data, contentType = res.Data, res.ContentType
		}
	}

	key := storage.ObjectKey(folder, allowedUploadTypes[contentType], h.now())
	if err := h.storage.Upload(r.Context(), key, contentType, bytes.NewReader(data), int64(len(data))); err != nil {
		internalError(w, "s3 upload failed", err, "key", key)
		return
	}

	slog.Info("file uploaded", "key", key, "type", contentType, "size", len(data))
	writeJSON(w, http.StatusCreated, map[string]string{
		"url": h.storage.FileURL(key),
		"key": key,
	})
}
