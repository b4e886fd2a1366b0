package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/healio-platform/healio-api/internal/httperr"
	"github.com/healio-platform/healio-api/internal/storage"
)

type UploadHandler struct {
	uploader *storage.Uploader
}

func NewUploadHandler(uploader *storage.Uploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

// TherapistCertificate receives the multipart "file" field and returns the
// stored object's URL. Called during therapist registration, before the
// account exists, so the route is public.
func (h *UploadHandler) TherapistCertificate(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "A 'file' field is required.")
		return
	}

	if header.Size > storage.MaxUploadBytes {
		httperr.PayloadTooLarge(c, "file_too_large", "Certificates are limited to 10MB.")
		return
	}

	f, err := header.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_file", "Could not read upload.")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, storage.MaxUploadBytes+1))
	if err != nil {
		httperr.Internal(c, "failed_to_read_file", "Could not read upload.")
		return
	}
	if len(data) > storage.MaxUploadBytes {
		httperr.PayloadTooLarge(c, "file_too_large", "Certificates are limited to 10MB.")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	url, err := h.uploader.Upload(c.Request.Context(), contentType, data)
	if err != nil {
		code, ok := httperr.AsBusiness(err)
		switch {
		case ok && code == "unsupported_file_type":
			httperr.UnsupportedMedia(c, code, "Only PDF, JPEG and PNG certificates are accepted.")
		case ok:
			httperr.BadRequest(c, code, "The file could not be processed.")
		default:
			httperr.Internal(c, "failed_to_store_file", "Could not store the certificate.")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}
