package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/tendant/simple-blob/pkg/simpleblob"
)

// FileResponse is the response body for a file record
type FileResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	MediaType    string    `json:"media_type,omitempty"`
	Size         int64     `json:"size"`
	LastModified int64     `json:"last_modified"`
	BackendName  string    `json:"backend_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toFileResponse(record *simpleblob.FileRecord) FileResponse {
	return FileResponse{
		ID:           record.ID.String(),
		Name:         record.Name,
		MediaType:    record.MediaType,
		Size:         record.Size,
		LastModified: record.LastModified,
		BackendName:  record.BackendName,
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
	}
}

// FilesHandler handles HTTP requests for registered files
type FilesHandler struct {
	registry simpleblob.Registry
}

// NewFilesHandler creates a new files handler
func NewFilesHandler(registry simpleblob.Registry) *FilesHandler {
	return &FilesHandler{registry: registry}
}

// Routes returns the routes for files
func (h *FilesHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.UploadFile)
	r.Get("/", h.ListFiles)
	r.Get("/{id}", h.DownloadFile)
	r.Get("/{id}/meta", h.GetFileMeta)
	r.Delete("/{id}", h.DeleteFile)

	return r
}

// maxUploadBytes bounds a single upload body.
const maxUploadBytes = 1 << 30

// UploadFile registers the raw request body as a new file. The file name
// comes from the X-File-Name header, the media type from Content-Type, and an
// optional X-Last-Modified header carries epoch milliseconds.
func (h *FilesHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	name := r.Header.Get("X-File-Name")
	if name == "" {
		http.Error(w, "X-File-Name header is required", http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		slog.Error("Failed to read upload body", "error", err)
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	opts := []simpleblob.Option{simpleblob.WithType(r.Header.Get("Content-Type"))}
	if v := r.Header.Get("X-Last-Modified"); v != "" {
		ms, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			http.Error(w, "invalid X-Last-Modified header", http.StatusBadRequest)
			return
		}
		opts = append(opts, simpleblob.WithLastModified(ms))
	}

	file, err := simpleblob.NewFile([]simpleblob.BlobPart{simpleblob.BytesPart(data)}, name, opts...)
	if err != nil {
		slog.Error("Failed to construct file", "name", name, "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	record, err := h.registry.Put(r.Context(), file)
	if err != nil {
		slog.Error("Failed to register file", "name", name, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	slog.Info("File uploaded", "file_id", record.ID.String(), "name", record.Name, "size", record.Size)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toFileResponse(record))
}

// ListFiles returns all file records
func (h *FilesHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	records, err := h.registry.List(r.Context())
	if err != nil {
		slog.Error("Failed to list files", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]FileResponse, 0, len(records))
	for _, record := range records {
		resp = append(resp, toFileResponse(record))
	}
	render.JSON(w, r, resp)
}

// DownloadFile streams a file's content. A single-range Range header is
// served from a zero-copy slice of the blob with a 206 response.
func (h *FilesHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid file ID", http.StatusBadRequest)
		return
	}

	file, record, err := h.registry.Get(r.Context(), id)
	if err != nil {
		h.renderRegistryError(w, err)
		return
	}

	blob := file.Blob
	status := http.StatusOK
	var contentRange string

	if rangeHeader := r.Header.Get("Range"); rangeHeader != "" {
		start, end, ok := parseByteRange(rangeHeader, blob.Size())
		if !ok {
			w.Header().Set("Content-Range", fmt.Sprintf("bytes */%d", blob.Size()))
			http.Error(w, "invalid range", http.StatusRequestedRangeNotSatisfiable)
			return
		}
		sliced := blob.SliceRange(start, end)
		contentRange = fmt.Sprintf("bytes %d-%d/%d", start, start+sliced.Size()-1, blob.Size())
		blob = sliced
		status = http.StatusPartialContent
	}

	mediaType := record.MediaType
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", mediaType)
	w.Header().Set("Content-Length", strconv.FormatInt(blob.Size(), 10))
	w.Header().Set("Accept-Ranges", "bytes")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", record.Name))
	if contentRange != "" {
		w.Header().Set("Content-Range", contentRange)
	}
	w.WriteHeader(status)

	if _, err := io.Copy(w, blob.Reader()); err != nil {
		slog.Error("Failed to stream file", "file_id", id.String(), "error", err)
	}
}

// GetFileMeta returns the file record
func (h *FilesHandler) GetFileMeta(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid file ID", http.StatusBadRequest)
		return
	}

	record, err := h.registry.GetRecord(r.Context(), id)
	if err != nil {
		h.renderRegistryError(w, err)
		return
	}

	render.JSON(w, r, toFileResponse(record))
}

// DeleteFile removes a file record and its stored content
func (h *FilesHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid file ID", http.StatusBadRequest)
		return
	}

	if err := h.registry.Delete(r.Context(), id); err != nil {
		h.renderRegistryError(w, err)
		return
	}

	slog.Info("File deleted", "file_id", id.String())
	w.WriteHeader(http.StatusNoContent)
}

func (h *FilesHandler) renderRegistryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, simpleblob.ErrFileNotFound), errors.Is(err, simpleblob.ErrObjectNotFound):
		http.Error(w, "file not found", http.StatusNotFound)
	default:
		slog.Error("Registry operation failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// parseByteRange parses a single-range "bytes=a-b" header against the given
// size, returning half-open slice bounds. Suffix ranges ("bytes=-n") and
// open-ended ranges ("bytes=a-") are supported; multi-range requests and
// ranges starting at or past the end are rejected.
func parseByteRange(header string, size int64) (start, end int64, ok bool) {
	spec, found := strings.CutPrefix(header, "bytes=")
	if !found || strings.Contains(spec, ",") {
		return 0, 0, false
	}
	first, last, found := strings.Cut(strings.TrimSpace(spec), "-")
	if !found {
		return 0, 0, false
	}

	if first == "" {
		// Suffix range: last n bytes.
		n, err := strconv.ParseInt(last, 10, 64)
		if err != nil || n <= 0 || size == 0 {
			return 0, 0, false
		}
		start = size - n
		if start < 0 {
			start = 0
		}
		return start, size, true
	}

	start, err := strconv.ParseInt(first, 10, 64)
	if err != nil || start < 0 || start >= size {
		return 0, 0, false
	}
	if last == "" {
		return start, size, true
	}
	lastByte, err := strconv.ParseInt(last, 10, 64)
	if err != nil || lastByte < start {
		return 0, 0, false
	}
	return start, lastByte + 1, true
}
