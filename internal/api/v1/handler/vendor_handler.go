package handler

import (
	"net/http"

	"vendorhub/internal/api/v1/dto"
	"vendorhub/internal/middleware"
	"vendorhub/internal/model"
	"vendorhub/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// VendorHandler handles vendor and category endpoints.
type VendorHandler struct {
	vendors    service.VendorService
	categories service.CategoryService
	subs       service.SubscriptionService
	validate   *validator.Validate
	logger     zerolog.Logger
}

// NewVendorHandler creates a new VendorHandler.
func NewVendorHandler(
	vendors service.VendorService,
	categories service.CategoryService,
	subs service.SubscriptionService,
	validate *validator.Validate,
	logger zerolog.Logger,
) *VendorHandler {
	return &VendorHandler{
		vendors:    vendors,
		categories: categories,
		subs:       subs,
		validate:   validate,
		logger:     logger.With().Str("handler", "VendorHandler").Logger(),
	}
}

// RegisterRoutes mounts vendor and category routes.
func (h *VendorHandler) RegisterRoutes(mux *http.ServeMux, authMw, tenantMw func(http.Handler) http.Handler) {
	read := func(f http.HandlerFunc) http.Handler { return authMw(tenantMw(f)) }
	write := func(f http.HandlerFunc) http.Handler { return authMw(tenantMw(middleware.RequireWrite(f))) }

	mux.Handle("GET /vendors", read(h.listVendors))
	mux.Handle("POST /vendors", write(h.createVendor))
	mux.Handle("GET /vendors/{vendorId}", read(h.getVendor))
	mux.Handle("PUT /vendors/{vendorId}", write(h.updateVendor))
	mux.Handle("DELETE /vendors/{vendorId}", write(h.deleteVendor))
	mux.Handle("GET /vendors/{vendorId}/subscriptions", read(h.vendorSubscriptions))

	mux.Handle("GET /categories", read(h.listCategories))
	mux.Handle("POST /categories", write(h.createCategory))
}

// listVendors godoc
// @Summary List vendors
// @Description Lists vendors with subscription counts and total active cost.
// @Tags vendors
// @Security BearerAuth
// @Produce json
// @Success 200 {array} model.VendorSummary
// @Failure 500 {string} string "Failed to list vendors"
// @Router /vendors [get]
func (h *VendorHandler) listVendors(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrFail(w, r)
	if !ok {
		return
	}
	vendors, err := h.vendors.ListVendors(r.Context(), actor.OrganizationID)
	if err != nil {
		writeError(w, h.logger, err, "Failed to list vendors")
		return
	}
	if vendors == nil {
		vendors = []model.VendorSummary{}
	}
	writeJSON(w, http.StatusOK, vendors)
}

// createVendor godoc
// @Summary Create vendor
// @Tags vendors
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param vendor body dto.VendorDTO true "Vendor"
// @Success 201 {object} model.Vendor
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 403 {string} string "Forbidden"
// @Router /vendors [post]
func (h *VendorHandler) createVendor(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrFail(w, r)
	if !ok {
		return
	}
	var req dto.VendorDTO
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}
	v, err := h.vendors.CreateVendor(r.Context(), actor.OrganizationID, req.ToModel())
	if err != nil {
		writeError(w, h.logger, err, "Failed to create vendor")
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

// getVendor godoc
// @Summary Get vendor
// @Tags vendors
// @Security BearerAuth
// @Produce json
// @Param vendorId path string true "Vendor ID"
// @Success 200 {object} model.Vendor
// @Failure 404 {string} string "Vendor not found"
// @Router /vendors/{vendorId} [get]
func (h *VendorHandler) getVendor(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrFail(w, r)
	if !ok {
		return
	}
	v, err := h.vendors.GetVendor(r.Context(), actor.OrganizationID, r.PathValue("vendorId"))
	if err != nil {
		writeError(w, h.logger, err, "Failed to retrieve vendor")
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// updateVendor godoc
// @Summary Update vendor
// @Description Replaces every editable vendor field.
// @Tags vendors
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param vendorId path string true "Vendor ID"
// @Param vendor body dto.VendorDTO true "Vendor"
// @Success 200 {object} model.Vendor
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 404 {string} string "Vendor not found"
// @Router /vendors/{vendorId} [put]
func (h *VendorHandler) updateVendor(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrFail(w, r)
	if !ok {
		return
	}
	var req dto.VendorDTO
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}
	v := req.ToModel()
	v.ID = r.PathValue("vendorId")
	if v.Status == "" {
		v.Status = model.VendorActive
	}
	updated, err := h.vendors.UpdateVendor(r.Context(), actor.OrganizationID, v)
	if err != nil {
		writeError(w, h.logger, err, "Failed to update vendor")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// deleteVendor godoc
// @Summary Delete vendor
// @Description Refuses with 409 while the vendor still has subscriptions.
// @Tags vendors
// @Security BearerAuth
// @Param vendorId path string true "Vendor ID"
// @Success 204 "No Content"
// @Failure 404 {string} string "Vendor not found"
// @Failure 409 {string} string "Vendor still has subscriptions"
// @Router /vendors/{vendorId} [delete]
func (h *VendorHandler) deleteVendor(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrFail(w, r)
	if !ok {
		return
	}
	if err := h.vendors.DeleteVendor(r.Context(), actor.OrganizationID, r.PathValue("vendorId")); err != nil {
		writeError(w, h.logger, err, "Failed to delete vendor")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// vendorSubscriptions godoc
// @Summary Subscriptions of a vendor
// @Tags vendors
// @Security BearerAuth
// @Produce json
// @Param vendorId path string true "Vendor ID"
// @Success 200 {array} dto.SubscriptionResponseDTO
// @Failure 404 {string} string "Vendor not found"
// @Router /vendors/{vendorId}/subscriptions [get]
func (h *VendorHandler) vendorSubscriptions(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrFail(w, r)
	if !ok {
		return
	}
	subs, err := h.subs.GetSubscriptionsByVendor(r.Context(), actor.OrganizationID, r.PathValue("vendorId"))
	if err != nil {
		writeError(w, h.logger, err, "Failed to list vendor subscriptions")
		return
	}
	writeJSON(w, http.StatusOK, dto.NewSubscriptionResponses(subs))
}

// listCategories godoc
// @Summary List categories
// @Tags categories
// @Security BearerAuth
// @Produce json
// @Success 200 {array} model.Category
// @Router /categories [get]
func (h *VendorHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.categories.ListCategories(r.Context())
	if err != nil {
		writeError(w, h.logger, err, "Failed to list categories")
		return
	}
	if cats == nil {
		cats = []model.Category{}
	}
	writeJSON(w, http.StatusOK, cats)
}

// createCategory godoc
// @Summary Create category
// @Tags categories
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param category body dto.CategoryCreateDTO true "Category"
// @Success 201 {object} model.Category
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Router /categories [post]
func (h *VendorHandler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.CategoryCreateDTO
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}
	c, err := h.categories.CreateCategory(r.Context(), req.ToModel())
	if err != nil {
		writeError(w, h.logger, err, "Failed to create category")
		return
	}
	writeJSON(w, http.StatusCreated, c)
}
