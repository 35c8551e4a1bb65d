package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Harukino1/ReturnHub/internal/apperr"
)

// maxUploadBytes caps a single uploaded file at 5 MiB.
const maxUploadBytes = 5 << 20

// Upload folders accepted from clients.
var allowedUploadFolders = map[string]bool{
	"reports":  true,
	"proofs":   true,
	"profiles": true,
}

// UploadFile handles POST /api/uploads. Multipart form with a "file" part
// and a "folder" field; responds with the stored object's public URL.
func (h *Handler) UploadFile(c *gin.Context) {
	if !h.Uploads.Enabled() {
		respondError(c, apperr.Validation("file storage is not configured"))
		return
	}
	folder := c.PostForm("folder")
	if !allowedUploadFolders[folder] {
		badRequest(c, "invalid upload folder")
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "file part missing")
		return
	}
	if fileHeader.Size > maxUploadBytes {
		badRequest(c, "file too large")
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		respondError(c, err)
		return
	}
	if len(data) > maxUploadBytes {
		badRequest(c, "file too large")
		return
	}

	url, err := h.Uploads.Upload(c.Request.Context(), folder,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"url": url})
}
