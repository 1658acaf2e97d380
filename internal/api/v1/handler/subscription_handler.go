package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"vendorhub/internal/analytics"
	"vendorhub/internal/api/v1/dto"
	"vendorhub/internal/middleware"
	"vendorhub/internal/model"
	"vendorhub/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SubscriptionHandler handles subscription analytics and lifecycle endpoints.
type SubscriptionHandler struct {
	subs     service.SubscriptionService
	validate *validator.Validate
	logger   zerolog.Logger
	now      func() time.Time
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(subs service.SubscriptionService, validate *validator.Validate, logger zerolog.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		subs:     subs,
		validate: validate,
		logger:   logger.With().Str("handler", "SubscriptionHandler").Logger(),
		now:      time.Now,
	}
}

// RegisterRoutes mounts subscription routes.
func (h *SubscriptionHandler) RegisterRoutes(mux *http.ServeMux, authMw, tenantMw func(http.Handler) http.Handler) {
	read := func(f http.HandlerFunc) http.Handler { return authMw(tenantMw(f)) }
	write := func(f http.HandlerFunc) http.Handler { return authMw(tenantMw(middleware.RequireWrite(f))) }

	mux.Handle("GET /subscriptions", read(h.list))
	mux.Handle("POST /subscriptions", write(h.create))
	mux.Handle("GET /subscriptions/stats", read(h.stats))
	mux.Handle("GET /subscriptions/renewal-alerts", read(h.renewalAlerts))
	mux.Handle("GET /subscriptions/cost-breakdown", read(h.costBreakdown))
	mux.Handle("GET /subscriptions/cost-breakdown/export", read(h.exportCostBreakdown))
	mux.Handle("PATCH /subscriptions/bulk", write(h.bulkUpdate))
	mux.Handle("GET /subscriptions/{subscriptionId}", read(h.get))
	mux.Handle("PUT /subscriptions/{subscriptionId}", write(h.update))
	mux.Handle("DELETE /subscriptions/{subscriptionId}", write(h.delete))
	mux.Handle("GET /subscriptions/{subscriptionId}/renewals", read(h.renewals))
	mux.Handle("POST /subscriptions/{subscriptionId}/renew", write(h.renew))
	mux.Handle("POST /subscriptions/{subscriptionId}/cancel", write(h.cancel))
	mux.Handle("POST /subscriptions/{subscriptionId}/reactivate", write(h.reactivate))
}

// list godoc
// @Summary List subscriptions
// @Description Lists subscriptions with derived costs and renewal urgency. All filters are optional and combine with AND.
// @Tags subscriptions
// @Security BearerAuth
// @Produce json
// @Param vendor query string false "Exact vendor name"
// @Param team query string false "Exact team name"
// @Param status query string false "Status" Enums(active, inactive, trial, cancelled, expired)
// @Param billing_cycle query string false "Billing cycle" Enums(monthly, quarterly, yearly)
// @Param renewal_period query string false "Renews within the window (renewal date required)" Enums(next_7_days, next_30_days, next_60_days, next_90_days, next_365_days)
// @Param min_cost query string false "Minimum monthly-equivalent cost (inclusive)"
// @Param max_cost query string false "Maximum monthly-equivalent cost (inclusive)"
// @Success 200 {array} dto.SubscriptionResponseDTO
// @Failure 400 {string} string "Invalid filter"
// @Router /subscriptions [get]
func (h *SubscriptionHandler) list(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrFail(w, r)
	if !ok {
		return
	}
	filters, err := analytics.ParseFilters(r.URL.Query())
	if err != nil {
		http.Error(w, "Invalid filter: "+err.Error(), http.StatusBadRequest)
		return
	}
	subs, err := h.subs.GetEnhancedSubscriptions(r.Context(), actor.OrganizationID, &filters)
	if err != nil {
		writeError(w, h.logger, err, "Failed to list subscriptions")
		return
	}
	writeJSON(w, http.StatusOK, dto.NewSubscriptionResponses(subs))
}

// create godoc
// @Summary Create subscription
// @Description Currency defaults to USD, status to active, auto_renew to true. Without next_renewal_date the first renewal is one cycle after start_date.
// @Tags subscriptions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param subscription body dto.SubscriptionCreateDTO true "Subscription"
// @Success 201 {object} dto.SubscriptionResponseDTO
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 404 {string} string "Vendor not found"
// @Router /subscriptions [post]
func (h *SubscriptionHandler) create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrFail(w, r)
	if !ok {
		return
	}
	var req dto.SubscriptionCreateDTO
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}
	sub, err := req.ToModel()
	if err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	created, err := h.subs.CreateSubscription(r.Context(), actor.OrganizationID, sub)
	if err != nil {
		writeError(w, h.logger, err, "Failed to create subscription")
		return
	}
	writeJSON(w, http.StatusCreated, dto.NewSubscriptionResponse(*created))
}

// stats godoc
// @Summary Subscription statistics
// @Tags subscriptions
// @Security BearerAuth
// @Produce json
// @Success 200 {object} analytics.SubscriptionStats
// @Router /subscriptions/stats [get]
func (h *SubscriptionHandler) stats(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrFail(w, r)
	if !ok {
		return
	}
	stats, err := h.subs.GetSubscriptionStats(r.Context(), actor.OrganizationID)
	if err != nil {
		writeError(w, h.logger, err, "Failed to compute statistics")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// renewalAlerts godoc
// @Summary Renewal alerts
// @Description Subscriptions renewing within 30 days or overdue, soonest first.
// @Tags subscriptions
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.RenewalAlertDTO
// @Router /subscriptions/renewal-alerts [get]
func (h *SubscriptionHandler) renewalAlerts(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrFail(w, r)
	if !ok {
		return
	}
	alerts, err := h.subs.GetRenewalAlerts(r.Context(), actor.OrganizationID)
	if err != nil {
		writeError(w, h.logger, err, "Failed to compute renewal alerts")
		return
	}
	writeJSON(w, http.StatusOK, dto.NewRenewalAlerts(alerts))
}

// costBreakdown godoc
// @Summary Cost breakdown
// @Description Active spending by period, team, vendor and billing cycle.
// @Tags subscriptions
// @Security BearerAuth
// @Produce json
// @Success 200 {object} analytics.CostBreakdown
// @Router /subscriptions/cost-breakdown [get]
func (h *SubscriptionHandler) costBreakdown(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrFail(w, r)
	if !ok {
		return
	}
	b, err := h.subs.GetCostBreakdown(r.Context(), actor.OrganizationID)
	if err != nil {
		writeError(w, h.logger, err, "Failed to compute cost breakdown")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// exportCostBreakdown godoc
// @Summary Export cost breakdown
// @Description Downloads the cost breakdown and active subscriptions as an XLSX workbook.
// @Tags subscriptions
// @Security BearerAuth
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Router /subscriptions/cost-breakdown/export [get]
func (h *SubscriptionHandler) exportCostBreakdown(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrFail(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.subs.ExportCostBreakdown(r.Context(), actor.OrganizationID, &buf); err != nil {
		writeError(w, h.logger, err, "Failed to export cost breakdown")
		return
	}
	name := fmt.Sprintf("cost-breakdown-%s.xlsx", analytics.FormatDate(h.now()))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	w.Header().Set("Content-Length", fmt.Sprint(buf.Len()))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

// bulkUpdate godoc
// @Summary Bulk update subscriptions
// @Description Applies the same partial update to every listed subscription of the organization.
// @Tags subscriptions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.BulkUpdateDTO true "IDs and updates"
// @Success 200 {object} dto.BulkUpdateResponseDTO
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Router /subscriptions/bulk [patch]
func (h *SubscriptionHandler) bulkUpdate(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrFail(w, r)
	if !ok {
		return
	}
	var req dto.BulkUpdateDTO
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}
	patch, err := req.Updates.ToPatch()
	if err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	n, err := h.subs.BulkUpdateSubscriptions(r.Context(), actor.OrganizationID, req.IDs, patch)
	if err != nil {
		writeError(w, h.logger, err, "Failed to update subscriptions")
		return
	}
	writeJSON(w, http.StatusOK, dto.BulkUpdateResponseDTO{Updated: n})
}

// get godoc
// @Summary Get subscription
// @Tags subscriptions
// @Security BearerAuth
// @Produce json
// @Param subscriptionId path string true "Subscription ID"
// @Success 200 {object} dto.SubscriptionResponseDTO
// @Failure 404 {string} string "Subscription not found"
// @Router /subscriptions/{subscriptionId} [get]
func (h *SubscriptionHandler) get(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrFail(w, r)
	if !ok {
		return
	}
	sub, err := h.subs.GetSubscription(r.Context(), actor.OrganizationID, r.PathValue("subscriptionId"))
	if err != nil {
		writeError(w, h.logger, err, "Failed to retrieve subscription")
		return
	}
	writeJSON(w, http.StatusOK, dto.NewSubscriptionResponse(*sub))
}

// update godoc
// @Summary Update subscription
// @Description Partial update. Omitted fields are left unchanged.
// @Tags subscriptions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param subscriptionId path string true "Subscription ID"
// @Param subscription body dto.SubscriptionUpdateDTO true "Fields to change"
// @Success 200 {object} dto.SubscriptionResponseDTO
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 404 {string} string "Subscription not found"
// @Router /subscriptions/{subscriptionId} [put]
func (h *SubscriptionHandler) update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrFail(w, r)
	if !ok {
		return
	}
	var req dto.SubscriptionUpdateDTO
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}
	patch, err := req.ToPatch()
	if err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	sub, err := h.subs.UpdateSubscription(r.Context(), actor.OrganizationID, r.PathValue("subscriptionId"), patch)
	if err != nil {
		writeError(w, h.logger, err, "Failed to update subscription")
		return
	}
	writeJSON(w, http.StatusOK, dto.NewSubscriptionResponse(*sub))
}

// delete godoc
// @Summary Delete subscription
// @Tags subscriptions
// @Security BearerAuth
// @Param subscriptionId path string true "Subscription ID"
// @Success 204 "No Content"
// @Failure 404 {string} string "Subscription not found"
// @Router /subscriptions/{subscriptionId} [delete]
func (h *SubscriptionHandler) delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrFail(w, r)
	if !ok {
		return
	}
	if err := h.subs.DeleteSubscription(r.Context(), actor.OrganizationID, r.PathValue("subscriptionId")); err != nil {
		writeError(w, h.logger, err, "Failed to delete subscription")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// renewals godoc
// @Summary Renewal history
// @Tags subscriptions
// @Security BearerAuth
// @Produce json
// @Param subscriptionId path string true "Subscription ID"
// @Success 200 {array} model.Renewal
// @Failure 404 {string} string "Subscription not found"
// @Router /subscriptions/{subscriptionId}/renewals [get]
func (h *SubscriptionHandler) renewals(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrFail(w, r)
	if !ok {
		return
	}
	rs, err := h.subs.ListRenewals(r.Context(), actor.OrganizationID, r.PathValue("subscriptionId"))
	if err != nil {
		writeError(w, h.logger, err, "Failed to list renewals")
		return
	}
	if rs == nil {
		rs = []model.Renewal{}
	}
	writeJSON(w, http.StatusOK, rs)
}

// renew godoc
// @Summary Renew subscription
// @Description Moves the renewal date one billing cycle forward, or to new_renewal_date, optionally changing the cost.
// @Tags subscriptions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param subscriptionId path string true "Subscription ID"
// @Param request body dto.RenewDTO false "Renewal options"
// @Success 200 {object} dto.SubscriptionResponseDTO
// @Failure 404 {string} string "Subscription not found"
// @Router /subscriptions/{subscriptionId}/renew [post]
func (h *SubscriptionHandler) renew(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrFail(w, r)
	if !ok {
		return
	}
	var req dto.RenewDTO
	if r.ContentLength != 0 && !decodeAndValidate(w, r, h.validate, &req) {
		return
	}
	var next *time.Time
	if req.NewRenewalDate != nil {
		d, err := analytics.ParseDate(*req.NewRenewalDate)
		if err != nil {
			http.Error(w, "Validation failed: invalid new_renewal_date", http.StatusBadRequest)
			return
		}
		next = &d
	}
	sub, err := h.subs.RenewSubscription(r.Context(), actor.OrganizationID, r.PathValue("subscriptionId"), req.NewCost, next)
	if err != nil {
		writeError(w, h.logger, err, "Failed to renew subscription")
		return
	}
	writeJSON(w, http.StatusOK, dto.NewSubscriptionResponse(*sub))
}

// cancel godoc
// @Summary Cancel subscription
// @Description Marks the subscription cancelled and turns off auto-renew.
// @Tags subscriptions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param subscriptionId path string true "Subscription ID"
// @Param request body dto.CancelDTO false "Cancellation options"
// @Success 200 {object} dto.SubscriptionResponseDTO
// @Failure 404 {string} string "Subscription not found"
// @Router /subscriptions/{subscriptionId}/cancel [post]
func (h *SubscriptionHandler) cancel(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrFail(w, r)
	if !ok {
		return
	}
	var req dto.CancelDTO
	if r.ContentLength != 0 && !decodeAndValidate(w, r, h.validate, &req) {
		return
	}
	var effective *time.Time
	if req.EffectiveDate != nil {
		d, err := analytics.ParseDate(*req.EffectiveDate)
		if err != nil {
			http.Error(w, "Validation failed: invalid effective_date", http.StatusBadRequest)
			return
		}
		effective = &d
	}
	sub, err := h.subs.CancelSubscription(r.Context(), actor.OrganizationID, r.PathValue("subscriptionId"), effective)
	if err != nil {
		writeError(w, h.logger, err, "Failed to cancel subscription")
		return
	}
	writeJSON(w, http.StatusOK, dto.NewSubscriptionResponse(*sub))
}

// reactivate godoc
// @Summary Reactivate subscription
// @Tags subscriptions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param subscriptionId path string true "Subscription ID"
// @Param request body dto.ReactivateDTO true "Next renewal date"
// @Success 200 {object} dto.SubscriptionResponseDTO
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 404 {string} string "Subscription not found"
// @Router /subscriptions/{subscriptionId}/reactivate [post]
func (h *SubscriptionHandler) reactivate(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrFail(w, r)
	if !ok {
		return
	}
	var req dto.ReactivateDTO
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}
	next, err := analytics.ParseDate(req.NextRenewalDate)
	if err != nil {
		http.Error(w, "Validation failed: invalid next_renewal_date", http.StatusBadRequest)
		return
	}
	sub, err := h.subs.ReactivateSubscription(r.Context(), actor.OrganizationID, r.PathValue("subscriptionId"), next)
	if err != nil {
		writeError(w, h.logger, err, "Failed to reactivate subscription")
		return
	}
	writeJSON(w, http.StatusOK, dto.NewSubscriptionResponse(*sub))
}
