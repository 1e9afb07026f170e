package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"marksapi/internal/filestore"
	"marksapi/internal/service"
)

type AdminHandler struct {
	importService *service.ImportService
	store         *filestore.Store
}

func NewAdminHandler(importService *service.ImportService, store *filestore.Store) *AdminHandler {
	return &AdminHandler{importService: importService, store: store}
}

// UploadInfo is one recorded upload enriched with blob metadata.
type UploadInfo struct {
	Name       string `json:"name"`
	UploadedBy string `json:"uploaded_by"`
	SizeBytes  int64  `json:"size_bytes"`
	ModifiedAt int64  `json:"modified_at"`
}

// ListUploads returns the recorded uploads whose blob is still present in
// the file store, with size and modification time.
func (h *AdminHandler) ListUploads(w http.ResponseWriter, r *http.Request) {
	uploads, err := h.importService.ListUploads()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list uploads")
		return
	}

	files := make([]UploadInfo, 0, len(uploads))
	for _, u := range uploads {
		info, err := h.store.Stat(u.Filename)
		if err != nil {
			// Blob removed out of band; skip the record.
			continue
		}
		files = append(files, UploadInfo{
			Name:       u.Filename,
			UploadedBy: u.UploadedBy,
			SizeBytes:  info.Size(),
			ModifiedAt: info.ModTime().Unix(),
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"uploads": files})
}

// DeleteUpload removes the stored blob, the upload record, and every mark
// imported from that file. Students are untouched.
func (h *AdminHandler) DeleteUpload(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Filename string `json:"filename"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	name := filestore.Sanitize(req.Filename)
	if name == "" {
		writeError(w, http.StatusBadRequest, "filename required")
		return
	}

	if err := h.store.Remove(name); err != nil {
		log.Printf("Error removing blob %s: %v", name, err)
	}

	if err := h.importService.DeleteUpload(name); err != nil {
		writeError(w, http.StatusInternalServerError, "Delete failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
