package handler

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"worldmark/internal/visitstore"
	"worldmark/internal/web/middleware"
)

// maxStoreUploadBytes caps uploaded store files at 32 MiB
const maxStoreUploadBytes = 32 << 20

// StoreFileHandler manages the backing store file: re-initialisation,
// download and replacement via upload. Path is empty when the store
// has no file backing, in which case download and upload are refused.
type StoreFileHandler struct {
	store  visitstore.Store
	path   string
	logger *slog.Logger
}

// NewStoreFileHandler creates a new StoreFileHandler
func NewStoreFileHandler(store visitstore.Store, path string, logger *slog.Logger) *StoreFileHandler {
	return &StoreFileHandler{
		store:  store,
		path:   path,
		logger: logger,
	}
}

// New re-initialises the store, discarding all participants
func (h *StoreFileHandler) New(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Init(r.Context()); err != nil {
		h.logger.Error("init store", slog.String("error", err.Error()))
		middleware.SetFlash(w, "error", "Could not create a new store")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	middleware.SetFlash(w, "success", "Created a fresh store")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Download serves the store file as an attachment
func (h *StoreFileHandler) Download(w http.ResponseWriter, r *http.Request) {
	if h.path == "" {
		middleware.SetFlash(w, "error", "The current store is not file-backed")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	f, err := os.Open(h.path)
	if err != nil {
		middleware.SetFlash(w, "error", "No store file exists yet")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filepath.Base(h.path)+`"`)
	if _, err := io.Copy(w, f); err != nil {
		h.logger.Error("download store", slog.String("error", err.Error()))
	}
}

// Upload replaces the store file with the uploaded one
func (h *StoreFileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.path == "" {
		middleware.SetFlash(w, "error", "The current store is not file-backed")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := r.ParseMultipartForm(maxStoreUploadBytes); err != nil {
		middleware.SetFlash(w, "error", "Invalid upload")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	file, _, err := r.FormFile("store")
	if err != nil {
		middleware.SetFlash(w, "error", "No store file was attached")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	defer file.Close()

	if err := h.replaceStoreFile(file); err != nil {
		h.logger.Error("upload store", slog.String("error", err.Error()))
		middleware.SetFlash(w, "error", "Could not replace the store file")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	middleware.SetFlash(w, "success", "Store file replaced")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// replaceStoreFile writes the upload to a sibling temp file and renames
// it over the store path, so a failed upload never truncates the store.
func (h *StoreFileHandler) replaceStoreFile(src io.Reader) error {
	dir := filepath.Dir(h.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(h.path)+".upload-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, io.LimitReader(src, maxStoreUploadBytes)); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), h.path)
}
