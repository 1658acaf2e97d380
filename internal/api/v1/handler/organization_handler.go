package handler

import (
	"net/http"
	"strconv"

	"vendorhub/internal/api/v1/dto"
	"vendorhub/internal/middleware"
	"vendorhub/internal/model"
	"vendorhub/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// OrganizationHandler handles profile, organization, team and activity endpoints.
type OrganizationHandler struct {
	orgs     service.OrganizationService
	activity service.ActivityService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewOrganizationHandler creates a new OrganizationHandler.
func NewOrganizationHandler(orgs service.OrganizationService, activity service.ActivityService, validate *validator.Validate, logger zerolog.Logger) *OrganizationHandler {
	return &OrganizationHandler{
		orgs:     orgs,
		activity: activity,
		validate: validate,
		logger:   logger.With().Str("handler", "OrganizationHandler").Logger(),
	}
}

// RegisterRoutes mounts organization routes. /me and /organizations only need
// an authenticated user; the rest run inside the caller's organization.
func (h *OrganizationHandler) RegisterRoutes(mux *http.ServeMux, authMw, tenantMw func(http.Handler) http.Handler) {
	tenant := func(f http.HandlerFunc) http.Handler { return authMw(tenantMw(f)) }

	mux.Handle("GET /me", authMw(http.HandlerFunc(h.me)))
	mux.Handle("POST /organizations", authMw(http.HandlerFunc(h.createOrganization)))
	mux.Handle("GET /organization/spending", tenant(h.spending))
	mux.Handle("GET /team/members", tenant(h.listMembers))
	mux.Handle("PUT /team/members/{profileId}/role", tenant(h.updateRole))
	mux.Handle("GET /activity", tenant(h.listActivity))
}

// me godoc
// @Summary Current user
// @Description Returns the caller's profile, creating it on first use, and their organization if any.
// @Tags organization
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.MeResponseDTO
// @Failure 401 {string} string "Unauthorized"
// @Failure 500 {string} string "Failed to load profile"
// @Router /me [get]
func (h *OrganizationHandler) me(w http.ResponseWriter, r *http.Request) {
	userID, email, ok := middleware.UserFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	profile, org, err := h.orgs.Me(r.Context(), userID, email)
	if err != nil {
		writeError(w, h.logger, err, "Failed to load profile")
		return
	}
	writeJSON(w, http.StatusOK, dto.MeResponseDTO{Profile: *profile, Organization: org})
}

// createOrganization godoc
// @Summary Create organization
// @Description Creates an organization and makes the caller its owner.
// @Tags organization
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param organization body dto.OrganizationCreateDTO true "Organization"
// @Success 201 {object} model.Organization
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 409 {string} string "User already belongs to an organization"
// @Failure 500 {string} string "Failed to create organization"
// @Router /organizations [post]
func (h *OrganizationHandler) createOrganization(w http.ResponseWriter, r *http.Request) {
	userID, email, ok := middleware.UserFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	var req dto.OrganizationCreateDTO
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}
	org, err := h.orgs.InitializeOrganization(r.Context(), userID, email, req.Name, req.Description)
	if err != nil {
		writeError(w, h.logger, err, "Failed to create organization")
		return
	}
	writeJSON(w, http.StatusCreated, org)
}

// spending godoc
// @Summary Organization spending
// @Description Total monthly and yearly cost of active subscriptions plus vendor count.
// @Tags organization
// @Security BearerAuth
// @Produce json
// @Success 200 {object} service.Spending
// @Failure 403 {string} string "User has no organization"
// @Failure 500 {string} string "Failed to compute spending"
// @Router /organization/spending [get]
func (h *OrganizationHandler) spending(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrFail(w, r)
	if !ok {
		return
	}
	s, err := h.orgs.GetSpending(r.Context(), actor.OrganizationID)
	if err != nil {
		writeError(w, h.logger, err, "Failed to compute spending")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// listMembers godoc
// @Summary List team members
// @Tags team
// @Security BearerAuth
// @Produce json
// @Success 200 {array} model.Profile
// @Failure 500 {string} string "Failed to list members"
// @Router /team/members [get]
func (h *OrganizationHandler) listMembers(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrFail(w, r)
	if !ok {
		return
	}
	members, err := h.orgs.ListMembers(r.Context(), actor.OrganizationID)
	if err != nil {
		writeError(w, h.logger, err, "Failed to list members")
		return
	}
	if members == nil {
		members = []model.Profile{}
	}
	writeJSON(w, http.StatusOK, members)
}

// updateRole godoc
// @Summary Change a member's role
// @Description Owners and admins may change roles. Only owners may grant or revoke ownership.
// @Tags team
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param profileId path string true "Profile ID"
// @Param role body dto.RoleUpdateDTO true "New role"
// @Success 200 {object} model.Profile
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 403 {string} string "Forbidden"
// @Failure 404 {string} string "Member not found"
// @Router /team/members/{profileId}/role [put]
func (h *OrganizationHandler) updateRole(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrFail(w, r)
	if !ok {
		return
	}
	var req dto.RoleUpdateDTO
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}
	p, err := h.orgs.UpdateMemberRole(r.Context(), actor, r.PathValue("profileId"), model.Role(req.Role))
	if err != nil {
		writeError(w, h.logger, err, "Failed to update role")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// listActivity godoc
// @Summary Recent activity
// @Tags activity
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Maximum entries (default 50, max 200)"
// @Success 200 {array} model.ActivityLog
// @Failure 400 {string} string "Invalid limit"
// @Router /activity [get]
func (h *OrganizationHandler) listActivity(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrFail(w, r)
	if !ok {
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}
	entries, err := h.activity.List(r.Context(), actor.OrganizationID, limit)
	if err != nil {
		writeError(w, h.logger, err, "Failed to list activity")
		return
	}
	if entries == nil {
		entries = []model.ActivityLog{}
	}
	writeJSON(w, http.StatusOK, entries)
}
