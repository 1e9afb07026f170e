package handler

import (
	"errors"
	"log"
	"net/http"

	"marksapi/internal/filestore"
	"marksapi/internal/service"
	"marksapi/internal/tabular"
)

type UploadHandler struct {
	importService *service.ImportService
	store         *filestore.Store
	maxUploadMB   int64
}

func NewUploadHandler(importService *service.ImportService, store *filestore.Store, maxUploadMB int64) *UploadHandler {
	return &UploadHandler{importService: importService, store: store, maxUploadMB: maxUploadMB}
}

// UploadMarks accepts one spreadsheet in the multipart field "file", keeps
// the raw blob for provenance, and runs the import on behalf of the
// authenticated uploader. File-level problems are rejected before any write;
// bad rows are skipped and reported back in the response.
func (h *UploadHandler) UploadMarks(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadMB << 20); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "File too large or bad request")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	filename := filestore.Sanitize(header.Filename)
	if filename == "" {
		writeError(w, http.StatusBadRequest, "Empty filename")
		return
	}

	if !tabular.Supported(filename) {
		writeError(w, http.StatusBadRequest, "Unsupported file type")
		return
	}

	if _, err := h.store.Save(filename, file); err != nil {
		log.Println("Error saving the file:", err)
		writeError(w, http.StatusInternalServerError, "Failed to store file")
		return
	}

	blob, err := h.store.Open(filename)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read stored file")
		return
	}
	defer blob.Close()

	table, err := tabular.Read(blob, filename)
	if err != nil {
		log.Printf("Failed reading %s: %v", filename, err)
		writeError(w, http.StatusBadRequest, "Invalid spreadsheet")
		return
	}

	claims := ClaimsFrom(r.Context())
	summary, err := h.importService.ImportTable(table, claims.Email, filename)

	var missing *service.MissingColumnError
	if errors.As(err, &missing) {
		writeError(w, http.StatusBadRequest, "Missing required columns")
		return
	}
	if err != nil {
		log.Printf("Import of %s failed: %v", filename, err)
		writeError(w, http.StatusInternalServerError, "Import failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "success",
		"processed":  summary.Processed,
		"row_errors": summary.RowErrors,
	})
}
