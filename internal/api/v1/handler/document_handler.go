package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"vendorhub/internal/api/v1/dto"
	"vendorhub/internal/middleware"
	"vendorhub/internal/model"
	"vendorhub/internal/service"
	"vendorhub/internal/storage"

	"github.com/rs/zerolog"
)

const (
	multipartMemory   = 8 << 20
	multipartOverhead = 1 << 20
)

// DocumentHandler handles document upload, listing, download and deletion.
type DocumentHandler struct {
	docs     service.DocumentService
	limiter  *middleware.RateLimiter
	maxBytes int64
	logger   zerolog.Logger
	now      func() time.Time
}

// NewDocumentHandler creates a new DocumentHandler. limiter may be nil.
func NewDocumentHandler(docs service.DocumentService, limiter *middleware.RateLimiter, maxBytes int64, logger zerolog.Logger) *DocumentHandler {
	return &DocumentHandler{
		docs:     docs,
		limiter:  limiter,
		maxBytes: maxBytes,
		logger:   logger.With().Str("handler", "DocumentHandler").Logger(),
		now:      time.Now,
	}
}

// RegisterRoutes mounts document routes. Uploads pass through the rate limiter.
func (h *DocumentHandler) RegisterRoutes(mux *http.ServeMux, authMw, tenantMw func(http.Handler) http.Handler) {
	read := func(f http.HandlerFunc) http.Handler { return authMw(tenantMw(f)) }
	write := func(f http.HandlerFunc) http.Handler { return authMw(tenantMw(middleware.RequireWrite(f))) }

	var upload http.Handler = http.HandlerFunc(h.upload)
	if h.limiter != nil {
		upload = h.limiter.Middleware(upload)
	}
	mux.Handle("GET /documents", read(h.list))
	mux.Handle("POST /documents", authMw(tenantMw(middleware.RequireWrite(upload))))
	mux.Handle("GET /documents/{documentId}/download", read(h.download))
	mux.Handle("DELETE /documents/{documentId}", write(h.delete))
}

// list godoc
// @Summary List documents
// @Tags documents
// @Security BearerAuth
// @Produce json
// @Param vendor_id query string false "Only documents of this vendor"
// @Success 200 {array} model.Document
// @Router /documents [get]
func (h *DocumentHandler) list(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrFail(w, r)
	if !ok {
		return
	}
	var vendorID *string
	if v := r.URL.Query().Get("vendor_id"); v != "" {
		vendorID = &v
	}
	docs, err := h.docs.ListDocuments(r.Context(), actor.OrganizationID, vendorID)
	if err != nil {
		writeError(w, h.logger, err, "Failed to list documents")
		return
	}
	if docs == nil {
		docs = []model.Document{}
	}
	writeJSON(w, http.StatusOK, docs)
}

func optionalField(r *http.Request, key string) *string {
	v := strings.TrimSpace(r.FormValue(key))
	if v == "" {
		return nil
	}
	return &v
}

// upload godoc
// @Summary Upload document
// @Description Stores a contract or other file. The type is detected from the content; PDF, Word, Excel, images and plain text are accepted.
// @Tags documents
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File"
// @Param name formData string false "Display name (defaults to the file name)"
// @Param description formData string false "Description"
// @Param vendor_id formData string false "Vendor ID"
// @Param subscription_id formData string false "Subscription ID"
// @Success 201 {object} model.Document
// @Failure 400 {string} string "Invalid multipart form"
// @Failure 413 {string} string "File too large"
// @Failure 415 {string} string "Unsupported file type"
// @Failure 429 {string} string "Too many requests"
// @Router /documents [post]
func (h *DocumentHandler) upload(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrFail(w, r)
	if !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+multipartOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, service.ErrFileTooLarge.Error(), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	in := service.UploadInput{
		FileName:       header.Filename,
		Name:           strings.TrimSpace(r.FormValue("name")),
		Description:    optionalField(r, "description"),
		VendorID:       optionalField(r, "vendor_id"),
		SubscriptionID: optionalField(r, "subscription_id"),
		Body:           file,
	}
	doc, err := h.docs.UploadDocument(r.Context(), actor.OrganizationID, actor.UserID, in)
	if err != nil {
		writeError(w, h.logger, err, "Failed to upload document")
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

// download godoc
// @Summary Document download link
// @Description Returns a presigned URL valid for a short time.
// @Tags documents
// @Security BearerAuth
// @Produce json
// @Param documentId path string true "Document ID"
// @Success 200 {object} dto.DownloadURLResponseDTO
// @Failure 404 {string} string "Document not found"
// @Router /documents/{documentId}/download [get]
func (h *DocumentHandler) download(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrFail(w, r)
	if !ok {
		return
	}
	url, err := h.docs.DownloadURL(r.Context(), actor.OrganizationID, r.PathValue("documentId"))
	if err != nil {
		writeError(w, h.logger, err, "Failed to create download link")
		return
	}
	writeJSON(w, http.StatusOK, dto.DownloadURLResponseDTO{URL: url, ExpiresAt: h.now().Add(storage.PresignTTL).UTC()})
}

// delete godoc
// @Summary Delete document
// @Tags documents
// @Security BearerAuth
// @Param documentId path string true "Document ID"
// @Success 204 "No Content"
// @Failure 404 {string} string "Document not found"
// @Router /documents/{documentId} [delete]
func (h *DocumentHandler) delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrFail(w, r)
	if !ok {
		return
	}
	if err := h.docs.DeleteDocument(r.Context(), actor.OrganizationID, r.PathValue("documentId")); err != nil {
		writeError(w, h.logger, err, "Failed to delete document")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
